package handlers

import (
	"time"

	"PATHFINDER_BACK-END/internal/dto"
	"PATHFINDER_BACK-END/internal/models"
)

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toUserResponse(u *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func toReviewResponse(r *models.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID.String(),
		PostID:    r.PostID.String(),
		UserID:    r.UserID.String(),
		Rating:    r.Rating,
		Reviews:   r.Reviews,
		CreatedAt: formatTimestamp(r.CreatedAt),
		UpdatedAt: formatTimestamp(r.UpdatedAt),
	}
}

func toPostResponse(d *models.PostDetail) dto.PostResponse {
	stops := make([]dto.StopResponse, 0, len(d.Stops))
	for i := range d.Stops {
		st := &d.Stops[i]
		stops = append(stops, dto.StopResponse{
			ID:          st.ID.String(),
			Order:       st.Order,
			Name:        st.Name,
			Location:    st.Location,
			Description: st.Description,
			Days:        st.Days,
		})
	}

	reviews := make([]dto.ReviewResponse, 0, len(d.Reviews))
	for i := range d.Reviews {
		rv := toReviewResponse(&d.Reviews[i].Review)
		rv.Reviewer = &dto.UserRef{Username: d.Reviews[i].ReviewerUsername}
		reviews = append(reviews, rv)
	}

	return dto.PostResponse{
		ID:         d.ID.String(),
		OwnerID:    d.OwnerID.String(),
		Body:       d.Body,
		Status:     d.Status,
		TripLength: d.TripLength,
		CreatedAt:  formatTimestamp(d.CreatedAt),
		UpdatedAt:  formatTimestamp(d.UpdatedAt),
		Stops:      stops,
		Reviews:    reviews,
		Owner:      dto.UserRef{Username: d.OwnerUsername},
	}
}
