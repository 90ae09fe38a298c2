package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-ledger-sync/internal/logger"
	"github.com/MKhiriev/go-ledger-sync/internal/utils"
)

// auth enforces scope-bound bearer tokens on /api/scopes/{scope} routes.
//
// Requests are rejected with 401 when the "Authorization" header is missing,
// malformed, or carries a token that fails signature, issuer or expiry
// checks, and with 403 when the token grants another scope than the one in
// the path. On success the granted scope is stored in the request context
// under [utils.ScopeCtxKey].
//
// Token checks are off when no sign key is configured.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.tokenSignKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		scope, status, err := h.grantedScope(r)
		if err != nil {
			logger.FromRequest(r).Err(err).Str("func", "*Handler.auth").Int("status", status).Send()
			utils.WriteError(w, err.Error(), status)
			return
		}

		if want := chi.URLParam(r, "scope"); want != scope {
			logger.FromRequest(r).Warn().Str("func", "*Handler.auth").
				Str("token_scope", scope).
				Str("path_scope", want).
				Msg("scope mismatch")
			utils.WriteError(w, ErrScopeMismatch.Error(), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithScope(r.Context(), scope)))
	})
}

// grantedScope validates the bearer token of r and returns its scope, or
// the status to answer with.
func (h *Handler) grantedScope(r *http.Request) (string, int, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", http.StatusUnauthorized, ErrEmptyAuthorizationHeader
	}

	token, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return "", http.StatusUnauthorized, err
	}

	claims, err := utils.ValidateScopeToken(token, h.tokenSignKey, h.tokenIssuer)
	if err != nil {
		return "", http.StatusUnauthorized, err
	}
	return claims.Scope, http.StatusOK, nil
}
