package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	googleOAuth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"

	"PATHFINDER_BACK-END/internal/config"
	"PATHFINDER_BACK-END/internal/dto"
	"PATHFINDER_BACK-END/internal/middleware"
	"PATHFINDER_BACK-END/internal/models"
	"PATHFINDER_BACK-END/internal/store"
	"PATHFINDER_BACK-END/internal/utils"
)

// GoogleAuthHandler handles Google OAuth sign-in
type GoogleAuthHandler struct {
	users        UserStore
	oauth2Config *oauth2.Config
	session      *config.SessionConfig
	frontendURL  string
}

// NewGoogleAuthHandler creates a new GoogleAuthHandler instance
func NewGoogleAuthHandler(users UserStore, cfg *config.Config) *GoogleAuthHandler {
	oauth2Config := &oauth2.Config{
		ClientID:     cfg.GoogleOAuth.ClientID,
		ClientSecret: cfg.GoogleOAuth.ClientSecret,
		RedirectURL:  cfg.GoogleOAuth.RedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &GoogleAuthHandler{
		users:        users,
		oauth2Config: oauth2Config,
		session:      &cfg.Session,
		frontendURL:  cfg.FrontendURL,
	}
}

// GoogleLogin initiates the Google OAuth flow
// @Summary Google OAuth login
// @Description Returns the Google authorization URL the client should visit
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.GoogleLoginResponse
// @Router /api/auth/google [get]
func (h *GoogleAuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := uuid.New().String()
	authURL := h.oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline)

	utils.WriteJSONResponse(w, http.StatusOK, dto.GoogleLoginResponse{
		AuthURL: authURL,
		State:   state,
	})
}

// GoogleCallback handles the Google OAuth callback
// @Summary Google OAuth callback
// @Description Exchanges the authorization code, finds or creates the user, and establishes a session
// @Tags authentication
// @Produce json
// @Param code query string true "Authorization code from Google"
// @Param state query string false "State parameter"
// @Success 302 {string} string "Redirect to the frontend"
// @Failure 400 {object} dto.ErrorResponse "Missing authorization code"
// @Failure 401 {object} dto.ErrorResponse "Invalid authorization code"
// @Router /api/auth/google/callback [get]
func (h *GoogleAuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Authorization code is required")
		return
	}

	token, err := h.oauth2Config.Exchange(r.Context(), code)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid authorization code")
		return
	}

	userInfo, err := h.getGoogleUserInfo(r.Context(), token.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("google userinfo")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to get user info")
		return
	}

	user, err := h.users.ByEmail(r.Context(), userInfo.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error().Err(err).Msg("lookup google user")
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to look up user")
			return
		}
		user, err = h.createGoogleUser(r.Context(), userInfo)
		if err != nil {
			log.Error().Err(err).Msg("create google user")
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
			return
		}
	}

	sessionToken, err := middleware.GenerateToken(user.ID, h.session)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	middleware.SetSessionCookie(w, sessionToken, h.session)

	http.Redirect(w, r, h.frontendURL, http.StatusFound)
}

// getGoogleUserInfo fetches user information from Google
func (h *GoogleAuthHandler) getGoogleUserInfo(ctx context.Context, accessToken string) (*dto.GoogleUserInfo, error) {
	service, err := googleOAuth2.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
	})))
	if err != nil {
		return nil, err
	}

	userInfo, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, err
	}

	verified := false
	if userInfo.VerifiedEmail != nil {
		verified = *userInfo.VerifiedEmail
	}

	return &dto.GoogleUserInfo{
		ID:       userInfo.Id,
		Email:    userInfo.Email,
		Name:     userInfo.Name,
		Picture:  userInfo.Picture,
		Verified: verified,
	}, nil
}

// createGoogleUser registers a first-time Google sign-in. The account
// gets an unguessable password hash, so it can only log in via Google.
func (h *GoogleAuthHandler) createGoogleUser(ctx context.Context, info *dto.GoogleUserInfo) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	firstName, lastName := splitName(info.Name)
	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Email:        info.Email,
		Username:     usernameFromEmail(info.Email),
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = h.users.Create(ctx, user)
	if errors.Is(err, store.ErrUsernameTaken) {
		// Retry once with a numeric suffix
		user.Username = fmt.Sprintf("%.24s%d", user.Username, now.UnixNano()%100000)
		err = h.users.Create(ctx, user)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// usernameFromEmail derives a valid username from the email local part:
// alphanumeric only, 4 to 30 characters.
func usernameFromEmail(email string) string {
	local := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		local = email[:at]
	}

	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	username := b.String()
	if len(username) > 30 {
		username = username[:30]
	}
	for len(username) < 4 {
		username += "0"
	}
	return username
}

func splitName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "Google", "User"
	case 1:
		return parts[0], parts[0]
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
