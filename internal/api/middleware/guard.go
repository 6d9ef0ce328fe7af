package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// PageRule protects the pages under Prefix with the token cookie of one role.
type PageRule struct {
	Prefix    string // e.g. "/carer"
	Cookie    string // e.g. "carer_token"
	LoginPath string // e.g. "/carer/login"; never guarded
}

// PageGuard redirects a page request to its role's login route when the
// role's token cookie is absent. Only presence is checked; the API validates
// the token on every call. Requests outside every rule pass through.
func PageGuard(rules ...PageRule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method != http.MethodGet && req.Method != http.MethodHead {
				return next(c)
			}

			path := req.URL.Path
			for _, rule := range rules {
				if !underPrefix(path, rule.Prefix) || underPrefix(path, rule.LoginPath) {
					continue
				}
				if ck, err := c.Cookie(rule.Cookie); err != nil || ck.Value == "" {
					return c.Redirect(http.StatusFound, rule.LoginPath)
				}
				break
			}
			return next(c)
		}
	}
}

func underPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	return path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/")
}
