package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/spectraretail/spectra-pos/pkg/auth"
	"github.com/spectraretail/spectra-pos/pkg/response"
	"github.com/spectraretail/spectra-pos/pkg/session"
)

type ctxKey string

const (
	userIDKey ctxKey = "auth.user_id"
	roleKey   ctxKey = "auth.role"
)

// Auth authenticates a request from either a Bearer token or the session
// cookie, in that order of preference, and stores the staff identity on the
// request context.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
			token := strings.TrimPrefix(header, "Bearer ")

			claims, err := auth.ValidateToken(token)
			if err != nil {
				response.Error(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims.StaffID, claims.Role)))
			return
		}

		if sess := session.FromCtx(r); sess != nil {
			if staffID, ok := sess.GetUint("staff_id"); ok {
				role, _ := sess.GetString("role")
				next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), staffID, role)))
				return
			}
		}

		response.Unauthorized(w)
	})
}

func withIdentity(ctx context.Context, staffID uint, role string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, staffID)
	return context.WithValue(ctx, roleKey, role)
}

// UserIDFromCtx returns the authenticated staff id, if any.
func UserIDFromCtx(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey).(uint)
	return id, ok
}

// RoleFromCtx returns the authenticated staff role, if any.
func RoleFromCtx(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}
