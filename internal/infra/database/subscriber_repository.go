package database

import (
	"context"
	"database/sql"
	"fmt"
)

type SubscriberRepository struct {
	DB *sql.DB
}

func NewSubscriberRepository(db *sql.DB) *SubscriberRepository {
	return &SubscriberRepository{DB: db}
}

// Subscribe has set semantics: a duplicate email is a silent no-op.
func (r *SubscriberRepository) Subscribe(ctx context.Context, email string) error {
	query := `INSERT INTO subscribers (email) VALUES ($1) ON CONFLICT (email) DO NOTHING`

	if _, err := r.DB.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("inserting subscriber: %w", err)
	}
	return nil
}
