// Package rbac maps catalog roles to permissions.
package rbac

import (
	"context"
	"net/http"
	"strings"
)

const (
	PermVariantsView = "variants:view"
	PermImportsView  = "imports:view"
	PermImport       = "compendium:import"
)

// RolePermissions is the default policy. "*" grants everything and a trailing
// "*" grants a prefix (e.g. "imports:*").
var RolePermissions = map[string][]string{
	"viewer": {PermVariantsView},
	"editor": {PermVariantsView, PermImportsView, PermImport},
	"admin":  {"*"},
}

type Policy map[string][]string

func (p Policy) Has(role, perm string) bool {
	for _, granted := range p[role] {
		if granted == "*" || granted == perm {
			return true
		}
		if strings.HasSuffix(granted, "*") && strings.HasPrefix(perm, strings.TrimSuffix(granted, "*")) {
			return true
		}
	}
	return false
}

var defaultPolicy = Policy(RolePermissions)

// Require rejects requests whose context role lacks any of perms.
func Require(perms ...string) func(http.Handler) http.Handler {
	return defaultPolicy.Require(perms...)
}

func (p Policy) Require(perms ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := RoleFromContext(r.Context())
			for _, perm := range perms {
				if role == "" || !p.Has(role, perm) {
					http.Error(w, "forbidden", http.StatusForbidden)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

type ctxKey struct{}

func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, ctxKey{}, role)
}

func RoleFromContext(ctx context.Context) string {
	s, _ := ctx.Value(ctxKey{}).(string)
	return s
}
