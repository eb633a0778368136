package middleware

import (
	"context"
	"net/http"
)

type contextKey string

const organizationKey contextKey = "organization_id"

// Tenant resolve o tenant da requisição pelo header X-Organization-ID.
// Autenticação é responsabilidade do gateway na frente; aqui só
// garantimos que todo acesso a dados carrega um tenant explícito.
func Tenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		orgID := r.Header.Get("X-Organization-ID")
		if orgID == "" {
			http.Error(w, "unauthorized: missing organization", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), organizationKey, orgID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OrganizationID lê o tenant resolvido pelo middleware. Handlers
// repassam o valor como argumento explícito para usecases e repos.
func OrganizationID(r *http.Request) string {
	if orgID, ok := r.Context().Value(organizationKey).(string); ok {
		return orgID
	}
	return ""
}
