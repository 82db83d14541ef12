package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"PATHFINDER_BACK-END/internal/config"
	"PATHFINDER_BACK-END/internal/dto"
	"PATHFINDER_BACK-END/internal/middleware"
	"PATHFINDER_BACK-END/internal/store"
	"PATHFINDER_BACK-END/internal/utils"
	"PATHFINDER_BACK-END/internal/validation"
)

// SessionHandler handles login, logout and current-session queries
type SessionHandler struct {
	users   UserStore
	revoker middleware.TokenRevoker
	session *config.SessionConfig
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(users UserStore, revoker middleware.TokenRevoker, session *config.SessionConfig) *SessionHandler {
	return &SessionHandler{users: users, revoker: revoker, session: session}
}

// Current returns the authenticated user, or {"user": null} for anonymous callers
// @Summary Get current session
// @Tags session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Router /api/session [get]
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteJSONResponse(w, http.StatusOK, dto.SessionResponse{User: nil})
		return
	}

	user, err := h.users.ByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Session outlived the account
			utils.WriteJSONResponse(w, http.StatusOK, dto.SessionResponse{User: nil})
			return
		}
		log.Error().Err(err).Msg("restore session user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to restore session")
		return
	}

	resp := toUserResponse(user)
	utils.WriteJSONResponse(w, http.StatusOK, dto.SessionResponse{User: &resp})
}

// Login authenticates a credential (email or username) and password
// @Summary Log in
// @Tags session
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Malformed credentials"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /api/session [post]
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	if errs := validation.Login(&req); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	// A missing user and a wrong password produce the same response, so
	// the endpoint cannot be used to enumerate accounts.
	user, err := h.users.ByCredential(r.Context(), req.Credential)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Error().Err(err).Msg("login lookup")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Login failed")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := middleware.GenerateToken(user.ID, h.session)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	middleware.SetSessionCookie(w, token, h.session)

	resp := toUserResponse(user)
	utils.WriteJSONResponse(w, http.StatusOK, dto.SessionResponse{User: &resp})
}

// Logout revokes the current session token and clears the cookie
// @Summary Log out
// @Tags session
// @Produce json
// @Success 200 {object} dto.ErrorResponse "message: success"
// @Router /api/session [delete]
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if claims, ok := middleware.SessionFromContext(r.Context()); ok {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := h.revoker.Revoke(r.Context(), claims.ID, ttl); err != nil {
			log.Error().Err(err).Msg("revoke session")
		}
	}

	middleware.ClearSessionCookie(w, h.session)
	utils.WriteJSONResponse(w, http.StatusOK, dto.ErrorResponse{Message: "success"})
}

// RestoreCSRF issues the anti-forgery token cookie
// @Summary Restore CSRF token
// @Tags session
// @Produce json
// @Success 200 {object} dto.CSRFRestoreResponse
// @Router /api/csrf/restore [get]
func (h *SessionHandler) RestoreCSRF(w http.ResponseWriter, r *http.Request) {
	token := middleware.IssueCSRFToken(w, h.session.CookieSecure)
	utils.WriteJSONResponse(w, http.StatusOK, dto.CSRFRestoreResponse{CSRFToken: token})
}
