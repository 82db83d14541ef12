package dto

// StopInput represents one stop in a create/update trip payload
type StopInput struct {
	Order       *int    `json:"order"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description *string `json:"description"`
	Days        *int    `json:"days"`
}

// CreatePostRequest represents the payload to create a trip
type CreatePostRequest struct {
	Body       string      `json:"body"`
	Status     string      `json:"status"`
	TripLength *int        `json:"tripLength"`
	Stops      []StopInput `json:"stops"`
}

// UpdatePostRequest represents the payload to edit a trip. A nil Stops
// slice leaves existing stops untouched; a present one replaces them all.
type UpdatePostRequest struct {
	Body       string       `json:"body"`
	Status     string       `json:"status"`
	TripLength *int         `json:"tripLength"`
	Stops      *[]StopInput `json:"stops"`
}

// StopResponse represents a stop in trip responses
type StopResponse struct {
	ID          string  `json:"id"`
	Order       int     `json:"order"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description *string `json:"description,omitempty"`
	Days        *int    `json:"days"`
}

// UserRef is the joined owner/reviewer reference in trip payloads
type UserRef struct {
	Username string `json:"username"`
}

// PostResponse represents a trip with its nested stops, reviews and owner
type PostResponse struct {
	ID         string           `json:"id"`
	OwnerID    string           `json:"owner_id"`
	Body       string           `json:"body"`
	Status     string           `json:"status"`
	TripLength *int             `json:"trip_length"`
	CreatedAt  string           `json:"created_at"`
	UpdatedAt  string           `json:"updated_at"`
	Stops      []StopResponse   `json:"stops"`
	Reviews    []ReviewResponse `json:"reviews"`
	Owner      UserRef          `json:"owner"`
}

// PostListResponse envelope for GET /api/posts
type PostListResponse struct {
	Posts []PostResponse `json:"Posts"`
}
