package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"PATHFINDER_BACK-END/internal/dto"
	"PATHFINDER_BACK-END/internal/middleware"
	"PATHFINDER_BACK-END/internal/models"
	"PATHFINDER_BACK-END/internal/store"
	"PATHFINDER_BACK-END/internal/utils"
	"PATHFINDER_BACK-END/internal/validation"
)

// PostsHandler manages trip post endpoints
type PostsHandler struct {
	posts PostStore
}

// NewPostsHandler creates a new PostsHandler instance
func NewPostsHandler(posts PostStore) *PostsHandler {
	return &PostsHandler{posts: posts}
}

// List handles GET /api/posts
// @Summary List all trips
// @Tags posts
// @Produce json
// @Success 200 {object} dto.PostListResponse
// @Router /api/posts [get]
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	details, err := h.posts.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list posts")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch trips")
		return
	}

	posts := make([]dto.PostResponse, 0, len(details))
	for i := range details {
		posts = append(posts, toPostResponse(&details[i]))
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.PostListResponse{Posts: posts})
}

// Get handles GET /api/posts/{postId}
// @Summary Get trip detail
// @Tags posts
// @Produce json
// @Param postId path string true "Trip ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Router /api/posts/{postId} [get]
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found")
		return
	}

	detail, err := h.posts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found")
			return
		}
		log.Error().Err(err).Msg("get post")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toPostResponse(detail))
}

// Create handles POST /api/posts
// @Summary Create a trip
// @Tags posts
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Trip payload"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/posts [post]
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req dto.CreatePostRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	errs := validation.Post(req.Body, req.Status, req.TripLength)
	errs = append(errs, validation.Stops(req.Stops)...)
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	now := time.Now()
	post := &models.Post{
		ID:         uuid.New(),
		OwnerID:    userID,
		Body:       req.Body,
		Status:     req.Status,
		TripLength: req.TripLength,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := h.posts.Create(r.Context(), post, stopsFromInput(req.Stops)); err != nil {
		log.Error().Err(err).Msg("create post")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create trip")
		return
	}

	detail, err := h.posts.Get(r.Context(), post.ID)
	if err != nil {
		log.Error().Err(err).Msg("reload created post")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, toPostResponse(detail))
}

// Update handles PUT /api/posts/{postId}
// @Summary Edit a trip
// @Description Re-validates trip fields; a stops array, when present, replaces all existing stops
// @Tags posts
// @Accept json
// @Produce json
// @Param postId path string true "Trip ID"
// @Param request body dto.UpdatePostRequest true "Trip payload"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Router /api/posts/{postId} [put]
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found")
		return
	}

	var req dto.UpdatePostRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}

	errs := validation.Post(req.Body, req.Status, req.TripLength)
	if req.Stops != nil {
		errs = append(errs, validation.Stops(*req.Stops)...)
	}
	if len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	existing, err := h.posts.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found")
			return
		}
		log.Error().Err(err).Msg("load post")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}
	if !existing.OwnedBy(userID) {
		utils.WriteErrorResponse(w, http.StatusForbidden, "You are not authorized to edit this trip")
		return
	}

	existing.Body = req.Body
	existing.Status = req.Status
	existing.TripLength = req.TripLength
	existing.UpdatedAt = time.Now()

	var stops []models.Stop
	if req.Stops != nil {
		stops = stopsFromInput(*req.Stops)
	}
	if err := h.posts.Update(r.Context(), existing, stops, req.Stops != nil); err != nil {
		log.Error().Err(err).Msg("update post")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to update trip")
		return
	}

	detail, err := h.posts.Get(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("reload updated post")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, toPostResponse(detail))
}

// Delete handles DELETE /api/posts/{postId}
// @Summary Delete a trip
// @Description Deletes the trip along with its stops and reviews
// @Tags posts
// @Produce json
// @Param postId path string true "Trip ID"
// @Success 200 {object} dto.ErrorResponse "message: Successfully deleted"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Router /api/posts/{postId} [delete]
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found")
		return
	}

	existing, err := h.posts.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found")
			return
		}
		log.Error().Err(err).Msg("load post")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}
	if !existing.OwnedBy(userID) {
		utils.WriteErrorResponse(w, http.StatusForbidden, "You are not authorized to delete this trip")
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("delete post")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to delete trip")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ErrorResponse{Message: "Successfully deleted"})
}

// stopsFromInput converts validated stop inputs into models. A stop
// without an explicit order falls back to its array position plus one.
func stopsFromInput(inputs []dto.StopInput) []models.Stop {
	stops := make([]models.Stop, 0, len(inputs))
	for i, in := range inputs {
		order := i + 1
		if in.Order != nil {
			order = *in.Order
		}
		stops = append(stops, models.Stop{
			Order:       order,
			Name:        strings.TrimSpace(in.Name),
			Location:    strings.TrimSpace(in.Location),
			Description: in.Description,
			Days:        in.Days,
		})
	}
	return stops
}
