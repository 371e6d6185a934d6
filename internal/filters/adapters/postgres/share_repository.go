package postgres

import (
	"context"
	"errors"
	"fmt"

	"carrier-records-service/internal/filters/core/ports"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ShareRepository is the clipboard backend: a shared URL is stored under a
// fresh UUID that /s/:id resolves.
type ShareRepository struct {
	db    DB
	newID func() string
}

func NewShareRepository(db DB) *ShareRepository {
	return &ShareRepository{db: db, newID: uuid.NewString}
}

var (
	_ ports.ClipboardPort     = (*ShareRepository)(nil)
	_ ports.ShareResolverPort = (*ShareRepository)(nil)
)

const (
	insertShareSQL  = `INSERT INTO shared_links (id, url) VALUES ($1, $2)`
	selectShareSQL  = `SELECT url FROM shared_links WHERE id = $1`
	uniqueViolation = "23505"
)

func (r *ShareRepository) WriteText(ctx context.Context, text string) (string, error) {
	// one retry on an id collision
	for attempt := 0; attempt < 2; attempt++ {
		id := r.newID()
		_, err := r.db.ExecContext(ctx, insertShareSQL, id, text)
		if err == nil {
			return id, nil
		}
		if !isUniqueViolation(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("insert shared link: duplicate id")
}

func (r *ShareRepository) Resolve(ctx context.Context, id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", ports.ErrShareNotFound
	}

	rows, err := r.db.QueryContext(ctx, selectShareSQL, id)
	if err != nil {
		return "", err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return "", err
		}
		return "", ports.ErrShareNotFound
	}

	var url string
	if err := rows.Scan(&url); err != nil {
		return "", err
	}
	return url, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
