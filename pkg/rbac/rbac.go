// Package rbac gates routes by staff role. Roles are flat, there is no
// hierarchy: a route either names the roles it accepts or accepts any
// authenticated staff member.
package rbac

import (
	"net/http"

	"github.com/spectraretail/spectra-pos/pkg/middleware"
	"github.com/spectraretail/spectra-pos/pkg/response"
)

// HasRole rejects requests whose authenticated role is not in the allow list.
// It must run after middleware.Auth.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r.Context())
			if !ok {
				response.Unauthorized(w)
				return
			}

			if _, ok := allowed[role]; !ok {
				response.Forbidden(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
