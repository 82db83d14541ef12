package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"PATHFINDER_BACK-END/internal/models"
)

// Posts persists trip posts together with their stops.
type Posts struct {
	pool *pgxpool.Pool
}

// NewPosts creates a new Posts store
func NewPosts(pool *pgxpool.Pool) *Posts {
	return &Posts{pool: pool}
}

// ByID returns the bare post row, without associations. Handlers use it
// for ownership checks before mutating.
func (s *Posts) ByID(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	var p models.Post
	err := s.pool.QueryRow(ctx,
		`SELECT id, owner_id, body, status, trip_length, created_at, updated_at FROM posts WHERE id = $1`,
		id).Scan(&p.ID, &p.OwnerID, &p.Body, &p.Status, &p.TripLength, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns all posts with owner username, stops ordered by "order",
// and reviews with reviewer usernames.
func (s *Posts) List(ctx context.Context) ([]models.PostDetail, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT p.id, p.owner_id, p.body, p.status, p.trip_length, p.created_at, p.updated_at, u.username
		   FROM posts p
		   JOIN users u ON u.id = p.owner_id
		  ORDER BY p.created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]models.PostDetail, 0)
	for rows.Next() {
		var d models.PostDetail
		if err := rows.Scan(&d.ID, &d.OwnerID, &d.Body, &d.Status, &d.TripLength, &d.CreatedAt, &d.UpdatedAt, &d.OwnerUsername); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachAssociations(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

// Get returns a single post with associations, or ErrNotFound.
func (s *Posts) Get(ctx context.Context, id uuid.UUID) (*models.PostDetail, error) {
	var d models.PostDetail
	err := s.pool.QueryRow(ctx,
		`SELECT p.id, p.owner_id, p.body, p.status, p.trip_length, p.created_at, p.updated_at, u.username
		   FROM posts p
		   JOIN users u ON u.id = p.owner_id
		  WHERE p.id = $1`, id).Scan(
		&d.ID, &d.OwnerID, &d.Body, &d.Status, &d.TripLength, &d.CreatedAt, &d.UpdatedAt, &d.OwnerUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	details := []models.PostDetail{d}
	if err := s.attachAssociations(ctx, details); err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Create inserts the post and its stops in a single transaction, so a
// failed stop insert aborts the whole create.
func (s *Posts) Create(ctx context.Context, p *models.Post, stops []models.Stop) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO posts (id, owner_id, body, status, trip_length, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.OwnerID, p.Body, p.Status, p.TripLength, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertStops(ctx, tx, p.ID, stops); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Update writes the post fields and, when replaceStops is set, swaps the
// full stop list inside the same transaction. The delete and re-insert
// never become visible separately.
func (s *Posts) Update(ctx context.Context, p *models.Post, stops []models.Stop, replaceStops bool) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE posts SET body = $1, status = $2, trip_length = $3, updated_at = $4 WHERE id = $5`,
		p.Body, p.Status, p.TripLength, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if replaceStops {
		if _, err := tx.Exec(ctx, `DELETE FROM stops WHERE post_id = $1`, p.ID); err != nil {
			return err
		}
		if err := insertStops(ctx, tx, p.ID, stops); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// Delete removes a post; stops and reviews go with it via ON DELETE CASCADE.
func (s *Posts) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func insertStops(ctx context.Context, tx pgx.Tx, postID uuid.UUID, stops []models.Stop) error {
	for i := range stops {
		stops[i].ID = uuid.New()
		stops[i].PostID = postID
		_, err := tx.Exec(ctx,
			`INSERT INTO stops (id, post_id, "order", name, location, description, days)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			stops[i].ID, stops[i].PostID, stops[i].Order, stops[i].Name, stops[i].Location, stops[i].Description, stops[i].Days)
		if err != nil {
			return err
		}
	}
	return nil
}

// attachAssociations fills Stops and Reviews for the given posts.
func (s *Posts) attachAssociations(ctx context.Context, details []models.PostDetail) error {
	if len(details) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(details))
	index := make(map[uuid.UUID]*models.PostDetail, len(details))
	for i := range details {
		ids[i] = details[i].ID
		index[details[i].ID] = &details[i]
		details[i].Stops = make([]models.Stop, 0)
		details[i].Reviews = make([]models.ReviewDetail, 0)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, post_id, "order", name, location, description, days
		   FROM stops
		  WHERE post_id = ANY($1)
		  ORDER BY "order" ASC`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var st models.Stop
		if err := rows.Scan(&st.ID, &st.PostID, &st.Order, &st.Name, &st.Location, &st.Description, &st.Days); err != nil {
			return err
		}
		if d, ok := index[st.PostID]; ok {
			d.Stops = append(d.Stops, st)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	reviewRows, err := s.pool.Query(ctx,
		`SELECT r.id, r.post_id, r.user_id, r.rating, r.reviews, r.created_at, r.updated_at, u.username
		   FROM reviews r
		   JOIN users u ON u.id = r.user_id
		  WHERE r.post_id = ANY($1)
		  ORDER BY r.created_at ASC`, ids)
	if err != nil {
		return err
	}
	defer reviewRows.Close()
	for reviewRows.Next() {
		var rv models.ReviewDetail
		if err := reviewRows.Scan(&rv.ID, &rv.PostID, &rv.UserID, &rv.Rating, &rv.Reviews, &rv.CreatedAt, &rv.UpdatedAt, &rv.ReviewerUsername); err != nil {
			return err
		}
		if d, ok := index[rv.PostID]; ok {
			d.Reviews = append(d.Reviews, rv)
		}
	}
	return reviewRows.Err()
}
