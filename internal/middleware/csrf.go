package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/google/uuid"

	"PATHFINDER_BACK-END/internal/utils"
)

// Anti-forgery token names. The token is issued by the restore endpoint
// as a readable cookie and must be echoed in the request header on every
// state-changing call (double-submit pattern).
const (
	CSRFCookieName = "XSRF-TOKEN"
	CSRFHeaderName = "XSRF-Token"
)

// IssueCSRFToken generates a fresh token and sets it as a cookie the
// client is allowed to read. Returns the token so the restore endpoint
// can also include it in the response body.
func IssueCSRFToken(w http.ResponseWriter, secure bool) string {
	token := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookieName,
		Value:    token,
		Path:     "/",
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	return token
}

// VerifyCSRF enforces the double-submit check on state-changing methods.
func VerifyCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(CSRFCookieName)
		if err != nil || cookie.Value == "" {
			utils.WriteErrorResponse(w, http.StatusForbidden, "CSRF token missing")
			return
		}
		header := r.Header.Get(CSRFHeaderName)
		if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(header)) != 1 {
			utils.WriteErrorResponse(w, http.StatusForbidden, "Invalid CSRF token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
