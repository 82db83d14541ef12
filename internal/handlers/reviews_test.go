package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reviewFixture signs up an owner with one trip plus a second user, and
// returns the trip's review collection path.
func reviewFixture(t *testing.T, api *testAPI) (owner, visitor *http.Cookie, reviewsPath string) {
	t.Helper()
	owner = api.signup("planner", "planner@example.com", "password1")
	visitor = api.signup("visitor", "visitor@example.com", "password1")
	created := api.createTrip(owner, tripPayload())
	return owner, visitor, "/api/posts/" + created["id"].(string) + "/reviews"
}

func TestCreateReview(t *testing.T) {
	api := newTestAPI(t)
	_, visitor, path := reviewFixture(t, api)

	rec := api.do(http.MethodPost, path, map[string]any{
		"rating":  4,
		"reviews": "Solid itinerary, skip Faro",
	}, visitor)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	assert.Equal(t, float64(4), body["rating"])
	assert.Equal(t, "Solid itinerary, skip Faro", body["reviews"])
	assert.NotEmpty(t, body["id"])
}

func TestCreateReviewValidation(t *testing.T) {
	api := newTestAPI(t)
	_, visitor, path := reviewFixture(t, api)

	for _, payload := range []map[string]any{
		{"rating": 6, "reviews": "too high"},
		{"rating": 0, "reviews": "too low"},
		{"reviews": "no rating at all"},
	} {
		rec := api.do(http.MethodPost, path, payload, visitor)
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Body.String(), "Rating must be an integer from 1 to 5")
	}

	rec := api.do(http.MethodPost, path, map[string]any{"rating": 3, "reviews": "  "}, visitor)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Review text is required")
}

func TestCreateReviewRequiresAuth(t *testing.T) {
	api := newTestAPI(t)
	_, _, path := reviewFixture(t, api)

	rec := api.do(http.MethodPost, path, map[string]any{"rating": 4, "reviews": "x"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateReviewMissingTrip(t *testing.T) {
	api := newTestAPI(t)
	visitor := api.signup("visitor", "visitor@example.com", "password1")

	rec := api.do(http.MethodPost, "/api/posts/"+uuid.NewString()+"/reviews", map[string]any{
		"rating":  4,
		"reviews": "x",
	}, visitor)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Trip not found")
}

func TestDuplicateReviewForbidden(t *testing.T) {
	api := newTestAPI(t)
	_, visitor, path := reviewFixture(t, api)

	payload := map[string]any{"rating": 5, "reviews": "Loved it"}
	rec := api.do(http.MethodPost, path, payload, visitor)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(http.MethodPost, path, payload, visitor)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You have already reviewed this trip")
}

func TestOwnerMayReviewOwnTrip(t *testing.T) {
	api := newTestAPI(t)
	owner, _, path := reviewFixture(t, api)

	rec := api.do(http.MethodPost, path, map[string]any{
		"rating":  5,
		"reviews": "My own masterpiece",
	}, owner)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestUpdateReview(t *testing.T) {
	api := newTestAPI(t)
	owner, visitor, path := reviewFixture(t, api)

	rec := api.do(http.MethodPost, path, map[string]any{"rating": 2, "reviews": "Meh"}, visitor)
	require.Equal(t, http.StatusCreated, rec.Code)
	reviewID := decodeBody(t, rec)["id"].(string)

	update := map[string]any{"rating": 4, "reviews": "Better on second thought"}

	// Someone other than the author gets a 403.
	rec = api.do(http.MethodPut, path+"/"+reviewID, update, owner)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You are not authorized to edit this review")

	// The review must hang off the post named in the path.
	otherTrip := api.createTrip(owner, tripPayload())
	rec = api.do(http.MethodPut, "/api/posts/"+otherTrip["id"].(string)+"/reviews/"+reviewID, update, visitor)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Review not found for this trip")

	rec = api.do(http.MethodPut, path+"/"+uuid.NewString(), update, visitor)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Review not found")

	rec = api.do(http.MethodPut, path+"/"+reviewID, update, visitor)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Equal(t, float64(4), body["rating"])
	assert.Equal(t, "Better on second thought", body["reviews"])
}

func TestDeleteReview(t *testing.T) {
	api := newTestAPI(t)
	owner, visitor, path := reviewFixture(t, api)

	rec := api.do(http.MethodPost, path, map[string]any{"rating": 1, "reviews": "Regret"}, visitor)
	require.Equal(t, http.StatusCreated, rec.Code)
	reviewID := decodeBody(t, rec)["id"].(string)

	rec = api.do(http.MethodDelete, path+"/"+reviewID, nil, owner)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "You are not authorized to delete this review")

	rec = api.do(http.MethodDelete, path+"/"+reviewID, nil, visitor)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Successfully deleted"}`, rec.Body.String())

	rec = api.do(http.MethodDelete, path+"/"+reviewID, nil, visitor)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Review not found")
}

func TestReviewAppearsOnTripDetail(t *testing.T) {
	api := newTestAPI(t)
	_, visitor, path := reviewFixture(t, api)

	rec := api.do(http.MethodPost, path, map[string]any{"rating": 5, "reviews": "Loved it"}, visitor)
	require.Equal(t, http.StatusCreated, rec.Code)

	tripPath := path[:len(path)-len("/reviews")]
	rec = api.do(http.MethodGet, tripPath, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	reviews, ok := body["reviews"].([]any)
	require.True(t, ok)
	require.Len(t, reviews, 1)

	first, ok := reviews[0].(map[string]any)
	require.True(t, ok)
	reviewer, ok := first["reviewer"].(map[string]any)
	require.True(t, ok, "detail reviews must carry the reviewer")
	assert.Equal(t, "visitor", reviewer["username"])
}
