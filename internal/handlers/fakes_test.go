package handlers_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"PATHFINDER_BACK-END/internal/models"
	"PATHFINDER_BACK-END/internal/store"
)

// memState is shared in-memory storage backing the fake stores. The
// fakes return the same sentinel errors as the pgx-backed stores so the
// handlers see identical outcomes.
type memState struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*models.User
	posts   map[uuid.UUID]*models.Post
	stops   map[uuid.UUID][]models.Stop // keyed by post id
	reviews map[uuid.UUID]*models.Review
	revoked map[string]bool
}

func newMemState() *memState {
	return &memState{
		users:   make(map[uuid.UUID]*models.User),
		posts:   make(map[uuid.UUID]*models.Post),
		stops:   make(map[uuid.UUID][]models.Stop),
		reviews: make(map[uuid.UUID]*models.Review),
		revoked: make(map[string]bool),
	}
}

type memUsers struct{ s *memState }

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return store.ErrEmailTaken
		}
		if strings.EqualFold(existing.Username, u.Username) {
			return store.ErrUsernameTaken
		}
	}
	cp := *u
	m.s.users[u.ID] = &cp
	return nil
}

func (m *memUsers) ByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	u, ok := m.s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) ByCredential(_ context.Context, credential string) (*models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == credential || u.Username == credential {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, u := range m.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

type memPosts struct{ s *memState }

func (m *memPosts) ByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPosts) List(_ context.Context) ([]models.PostDetail, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	posts := make([]*models.Post, 0, len(m.s.posts))
	for _, p := range m.s.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].CreatedAt.Before(posts[j].CreatedAt) })

	details := make([]models.PostDetail, 0, len(posts))
	for _, p := range posts {
		details = append(details, m.detailLocked(p))
	}
	return details, nil
}

func (m *memPosts) Get(_ context.Context, id uuid.UUID) (*models.PostDetail, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	p, ok := m.s.posts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	d := m.detailLocked(p)
	return &d, nil
}

func (m *memPosts) Create(_ context.Context, p *models.Post, stops []models.Stop) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	cp := *p
	m.s.posts[p.ID] = &cp
	m.s.stops[p.ID] = cloneStops(p.ID, stops)
	return nil
}

func (m *memPosts) Update(_ context.Context, p *models.Post, stops []models.Stop, replaceStops bool) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.posts[p.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *p
	m.s.posts[p.ID] = &cp
	if replaceStops {
		m.s.stops[p.ID] = cloneStops(p.ID, stops)
	}
	return nil
}

func (m *memPosts) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.posts[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.s.posts, id)
	delete(m.s.stops, id)
	for rid, r := range m.s.reviews {
		if r.PostID == id {
			delete(m.s.reviews, rid)
		}
	}
	return nil
}

func (m *memPosts) detailLocked(p *models.Post) models.PostDetail {
	d := models.PostDetail{Post: *p}
	if owner, ok := m.s.users[p.OwnerID]; ok {
		d.OwnerUsername = owner.Username
	}

	d.Stops = append([]models.Stop(nil), m.s.stops[p.ID]...)
	sort.SliceStable(d.Stops, func(i, j int) bool { return d.Stops[i].Order < d.Stops[j].Order })

	d.Reviews = make([]models.ReviewDetail, 0)
	for _, r := range m.s.reviews {
		if r.PostID != p.ID {
			continue
		}
		rd := models.ReviewDetail{Review: *r}
		if reviewer, ok := m.s.users[r.UserID]; ok {
			rd.ReviewerUsername = reviewer.Username
		}
		d.Reviews = append(d.Reviews, rd)
	}
	sort.Slice(d.Reviews, func(i, j int) bool { return d.Reviews[i].CreatedAt.Before(d.Reviews[j].CreatedAt) })
	return d
}

func cloneStops(postID uuid.UUID, stops []models.Stop) []models.Stop {
	out := make([]models.Stop, len(stops))
	for i, st := range stops {
		st.ID = uuid.New()
		st.PostID = postID
		out[i] = st
	}
	return out
}

type memReviews struct{ s *memState }

func (m *memReviews) Create(_ context.Context, r *models.Review) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.reviews {
		if existing.PostID == r.PostID && existing.UserID == r.UserID {
			return store.ErrAlreadyReviewed
		}
	}
	cp := *r
	m.s.reviews[r.ID] = &cp
	return nil
}

func (m *memReviews) ByID(_ context.Context, id uuid.UUID) (*models.Review, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	r, ok := m.s.reviews[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memReviews) Update(_ context.Context, r *models.Review) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.reviews[r.ID]; !ok {
		return store.ErrNotFound
	}
	cp := *r
	m.s.reviews[r.ID] = &cp
	return nil
}

func (m *memReviews) Delete(_ context.Context, id uuid.UUID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.reviews[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.s.reviews, id)
	return nil
}

func (m *memReviews) ExistsForUser(_ context.Context, postID, userID uuid.UUID) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, r := range m.s.reviews {
		if r.PostID == postID && r.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type memRevoker struct{ s *memState }

func (m *memRevoker) Revoke(_ context.Context, jti string, _ time.Duration) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.revoked[jti] = true
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return m.s.revoked[jti], nil
}
