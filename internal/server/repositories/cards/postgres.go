package cards

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dkrasnova/brandkit/internal/common"
	"github.com/dkrasnova/brandkit/internal/dbx"
	"github.com/dkrasnova/brandkit/internal/server/models"
)

type PostgresRepository struct {
	db dbx.Querier
}

func NewPostgresRepository(db dbx.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Card) (*models.Card, error) {
	query := `
		INSERT INTO cards (uid, content, original_content, status, platform, is_edited)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.UID, c.Content, c.OriginalContent, c.Status, c.Platform, c.IsEdited,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) ListByUID(ctx context.Context, uid string) ([]models.Card, error) {
	query := `
		SELECT id, uid, content, original_content, status, platform, is_edited, created_at, updated_at
		FROM cards
		WHERE uid = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, uid)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var out []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.UID, &c.Content, &c.OriginalContent, &c.Status,
			&c.Platform, &c.IsEdited, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning card row: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating card rows: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Card, error) {
	query := `
		SELECT id, uid, content, original_content, status, platform, is_edited, created_at, updated_at
		FROM cards
		WHERE id = $1
	`
	c := &models.Card{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.UID, &c.Content,
		&c.OriginalContent, &c.Status, &c.Platform, &c.IsEdited, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Card) (*models.Card, error) {
	query := `
		UPDATE cards
		SET content = $2, original_content = $3, status = $4, is_edited = $5, updated_at = $6
		WHERE id = $1
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		c.ID, c.Content, c.OriginalContent, c.Status, c.IsEdited, time.Now().UTC(),
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}
