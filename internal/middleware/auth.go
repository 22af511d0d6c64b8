package middleware

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// AdminPasswordHeader carries the admin password on admin routes
const AdminPasswordHeader = "X-Admin-Password"

// AdminAuth guards admin routes with a shared password. The password is
// hashed once; each request is checked with bcrypt so comparison time does
// not depend on how much of the guess matches.
func AdminAuth(password string, logger *slog.Logger) (func(next http.Handler) http.Handler, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			supplied := r.Header.Get(AdminPasswordHeader)
			if supplied == "" {
				http.Error(w, "Unauthorized: admin password required", http.StatusUnauthorized)
				return
			}

			if err := bcrypt.CompareHashAndPassword(hash, []byte(supplied)); err != nil {
				logger.Warn("admin authentication failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				http.Error(w, "Forbidden: invalid admin password", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}, nil
}
