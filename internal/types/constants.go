package types

import (
	"os"
	"strings"
)

// ContextUserKey is where the auth middleware stores the resolved caller.
const ContextUserKey = "user"

// AllowedOrigins feeds both the CORS layer and the feed socket origin check.
// Local dev hosts are always allowed; deployments extend the list through
// CLIENT_URL and the comma-separated ALLOWED_ORIGINS.
var AllowedOrigins = loadAllowedOrigins()

func loadAllowedOrigins() []string {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	return origins
}
