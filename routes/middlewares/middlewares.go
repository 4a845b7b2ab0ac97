package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/jwtauth"
)

// StaffID returns the authenticated staff member's id (the token
// subject), or "" when the request carries no usable token.
func StaffID(ctx context.Context) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// Roles splits the comma joined 'roles' claim.
func Roles(ctx context.Context) []string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	rolesClaim, _ := claims["roles"].(string)
	if rolesClaim == "" {
		return nil
	}
	parts := strings.Split(rolesClaim, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			roles = append(roles, p)
		}
	}
	return roles
}

func HasRole(ctx context.Context, role string) bool {
	for _, r := range Roles(ctx) {
		if r == role {
			return true
		}
	}
	return false
}

// RequireStaff rejects tokens that verified but carry no subject; a
// submission must always be attributable to somebody.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if StaffID(r.Context()) == "" {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole guards a subtree behind one entry of the 'roles' claim.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !HasRole(r.Context(), role) {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
