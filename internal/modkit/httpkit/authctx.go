package httpkit

import (
	"net/http"

	perrs "promptstash/internal/platform/errors"
)

// SessionToken returns the opaque session token from the named cookie
func SessionToken(r *http.Request, cookieName string) (string, error) {
	c, err := r.Cookie(cookieName)
	if err != nil || c.Value == "" {
		return "", perrs.Unauthorizedf("not authenticated")
	}
	return c.Value, nil
}
