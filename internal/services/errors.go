package services

import "errors"

// Service errors. Handlers map these onto HTTP statuses; anything else
// surfaces as a 500.
var (
	ErrNotFound           = errors.New("record not found")
	ErrNotOwner           = errors.New("not authorized")
	ErrSelfFollow         = errors.New("cannot follow yourself")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrBlankQuery         = errors.New("search query is required")
	ErrEmptyContent       = errors.New("content is required")
)

// viewerArg turns an optional viewer id into a query argument. A nil viewer
// binds SQL NULL, which makes the viewer-relative EXISTS subqueries evaluate
// to false for anonymous requests.
func viewerArg(viewerID *uint) interface{} {
	if viewerID == nil {
		return nil
	}
	return *viewerID
}
