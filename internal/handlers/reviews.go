package handlers

import (
	"errors"
	"net/http"
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

// ReviewsHandler manages review endpoints nested under posts
type ReviewsHandler struct {
	posts   PostStore
	reviews ReviewStore
}

// NewReviewsHandler creates a new ReviewsHandler instance
func NewReviewsHandler(posts PostStore, reviews ReviewStore) *ReviewsHandler {
	return &ReviewsHandler{posts: posts, reviews: reviews}
}

// Create handles POST /api/posts/{postId}/reviews
// @Summary Review a trip
// @Tags reviews
// @Accept json
// @Produce json
// @Param postId path string true "Trip ID"
// @Param request body dto.ReviewRequest true "Review payload"
// @Success 201 {object} dto.ReviewResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Already reviewed"
// @Failure 404 {object} dto.ErrorResponse "Trip not found"
// @Router /api/posts/{postId}/reviews [post]
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	postID, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found")
		return
	}

	var req dto.ReviewRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if errs := validation.Review(&req); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	if _, err := h.posts.ByID(r.Context(), postID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Trip not found")
			return
		}
		log.Error().Err(err).Msg("load post")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch trip")
		return
	}

	// The duplicate check gives the friendly message; the unique
	// constraint behind Create catches the race it leaves open.
	exists, err := h.reviews.ExistsForUser(r.Context(), postID, userID)
	if err != nil {
		log.Error().Err(err).Msg("check existing review")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create review")
		return
	}
	if exists {
		utils.WriteErrorResponse(w, http.StatusForbidden, "You have already reviewed this trip")
		return
	}

	now := time.Now()
	review := &models.Review{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    userID,
		Rating:    *req.Rating,
		Reviews:   req.Reviews,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.reviews.Create(r.Context(), review); err != nil {
		if errors.Is(err, store.ErrAlreadyReviewed) {
			utils.WriteErrorResponse(w, http.StatusForbidden, "You have already reviewed this trip")
			return
		}
		log.Error().Err(err).Msg("create review")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create review")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, toReviewResponse(review))
}

// Update handles PUT /api/posts/{postId}/reviews/{reviewId}
// @Summary Edit a review
// @Tags reviews
// @Accept json
// @Produce json
// @Param postId path string true "Trip ID"
// @Param reviewId path string true "Review ID"
// @Param request body dto.ReviewRequest true "Review payload"
// @Success 200 {object} dto.ReviewResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Not the reviewer"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Router /api/posts/{postId}/reviews/{reviewId} [put]
func (h *ReviewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req dto.ReviewRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return
	}
	if errs := validation.Review(&req); len(errs) > 0 {
		utils.WriteValidationErrors(w, errs)
		return
	}

	review, ok := h.loadOwnedReview(w, r, userID, "You are not authorized to edit this review")
	if !ok {
		return
	}

	review.Rating = *req.Rating
	review.Reviews = req.Reviews
	review.UpdatedAt = time.Now()
	if err := h.reviews.Update(r.Context(), review); err != nil {
		log.Error().Err(err).Msg("update review")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to update review")
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toReviewResponse(review))
}

// Delete handles DELETE /api/posts/{postId}/reviews/{reviewId}
// @Summary Delete a review
// @Tags reviews
// @Produce json
// @Param postId path string true "Trip ID"
// @Param reviewId path string true "Review ID"
// @Success 200 {object} dto.ErrorResponse "message: Successfully deleted"
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Not the reviewer"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Router /api/posts/{postId}/reviews/{reviewId} [delete]
func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	review, ok := h.loadOwnedReview(w, r, userID, "You are not authorized to delete this review")
	if !ok {
		return
	}

	if err := h.reviews.Delete(r.Context(), review.ID); err != nil {
		log.Error().Err(err).Msg("delete review")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to delete review")
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.ErrorResponse{Message: "Successfully deleted"})
}

// loadOwnedReview resolves the review in the URL and runs the shared
// checks for edit/delete: it must exist, belong to the path's post, and
// be authored by the requester. Each failure gets its own outcome.
// Writes the error response and returns ok=false when any check fails.
func (h *ReviewsHandler) loadOwnedReview(w http.ResponseWriter, r *http.Request, userID uuid.UUID, forbiddenMsg string) (*models.Review, bool) {
	postID, err := uuid.Parse(chi.URLParam(r, "postId"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Review not found")
		return nil, false
	}
	reviewID, err := uuid.Parse(chi.URLParam(r, "reviewId"))
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Review not found")
		return nil, false
	}

	review, err := h.reviews.ByID(r.Context(), reviewID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.WriteErrorResponse(w, http.StatusNotFound, "Review not found")
			return nil, false
		}
		log.Error().Err(err).Msg("load review")
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to fetch review")
		return nil, false
	}
	if review.PostID != postID {
		utils.WriteErrorResponse(w, http.StatusNotFound, "Review not found for this trip")
		return nil, false
	}
	if !review.AuthoredBy(userID) {
		utils.WriteErrorResponse(w, http.StatusForbidden, forbiddenMsg)
		return nil, false
	}
	return review, true
}
