package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const maxPageSize = 100

// Pagination carries the normalized page/limit query parameters plus the
// optional keyset cursor used by the feed.
type Pagination struct {
	Page   int
	Limit  int
	Cursor *uint
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination normalizes ?page=&limit=&cursor=. Out-of-range values fall
// back to page 1 and the given default limit.
func ParsePagination(ctx *gin.Context, defaultLimit int) Pagination {
	p := Pagination{Page: 1, Limit: defaultLimit}

	if page, err := strconv.Atoi(ctx.Query("page")); err == nil && page > 0 {
		p.Page = page
	}

	if limit, err := strconv.Atoi(ctx.Query("limit")); err == nil && limit > 0 && limit <= maxPageSize {
		p.Limit = limit
	}

	if cursor, err := strconv.ParseUint(ctx.Query("cursor"), 10, 64); err == nil && cursor > 0 {
		id := uint(cursor)
		p.Cursor = &id
	}

	return p
}
