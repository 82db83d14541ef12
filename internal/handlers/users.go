package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"PATHFINDER_BACK-END/internal/config"
	"PATHFINDER_BACK-END/internal/dto"
	"PATHFINDER_BACK-END/internal/middleware"
	"PATHFINDER_BACK-END/internal/models"
	"PATHFINDER_BACK-END/internal/store"
	"PATHFINDER_BACK-END/internal/utils"
	"PATHFINDER_BACK-END/internal/validation"
)

// UsersHandler handles user registration and lookup
type UsersHandler struct {
	users   UserStore
	session *config.SessionConfig
}

// NewUsersHandler creates a new UsersHandler instance
func NewUsersHandler(users UserStore, session *config.SessionConfig) *UsersHandler {
	return &UsersHandler{users: users, session: session}
}

// Signup handles user registration
// @Summary Register a new user
// @Description Create a new user account and establish a session
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "User registration data"
// @Success 201 {object} dto.SessionResponse "User created"
// @Failure 400 {object} dto.ValidationErrorResponse "Invalid fields"
// @Router /api/users [post]
func (h *UsersHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if errs := validation.Signup(&req); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.users.Create(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			utils.WriteValidationErrors(w, []dto.FieldError{{Field: "email", Message: "User with that email already exists"}})
		case errors.Is(err, store.ErrUsernameTaken):
			utils.WriteValidationErrors(w, []dto.FieldError{{Field: "username", Message: "User with that username already exists"}})
		default:
			log.Error().Err(err).Msg("create user")
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		}
		return
	}

	token, err := middleware.GenerateToken(user.ID, h.session)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	middleware.SetSessionCookie(w, token, h.session)

	resp := toUserResponse(user)
	utils.WriteJSONResponse(w, http.StatusCreated, dto.SessionResponse{User: &resp})
}

// GetUser handles public user lookup by id
// @Summary Get a user
// @Tags users
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} map[string]dto.PublicUserResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /api/users/{userId} [get]
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	user, err := h.users.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		log.Error().Err(err).Msg("get user")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]dto.PublicUserResponse{
		"user": {
			ID:        user.ID.String(),
			Username:  user.Username,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		},
	})
}
