package dto

// ReviewRequest represents the payload to create or edit a review.
// "reviews" is the review text field name the API has always used.
type ReviewRequest struct {
	Rating  *int   `json:"rating"`
	Reviews string `json:"reviews"`
}

// ReviewResponse represents a review in API responses. Reviewer is only
// joined in on trip detail payloads.
type ReviewResponse struct {
	ID        string   `json:"id"`
	PostID    string   `json:"post_id"`
	UserID    string   `json:"user_id"`
	Rating    int      `json:"rating"`
	Reviews   string   `json:"reviews"`
	CreatedAt string   `json:"created_at"`
	UpdatedAt string   `json:"updated_at"`
	Reviewer  *UserRef `json:"reviewer,omitempty"`
}
