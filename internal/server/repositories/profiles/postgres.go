package profiles

import (
	"context"
	"database/sql"
	"encoding/json"
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

// keywords live in a jsonb column; scanning []string through database/sql
// needs the round-trip by hand.
func encodeKeywords(keywords []string) ([]byte, error) {
	if keywords == nil {
		keywords = []string{}
	}
	return json.Marshal(keywords)
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	kw, err := encodeKeywords(p.Keywords)
	if err != nil {
		return nil, fmt.Errorf("encoding keywords: %w", err)
	}

	query := `
		INSERT INTO profiles (uid, email, handle, content_type, brand_description,
			keywords, onboarding_step, onboarding_complete, ai_instructions, linkedin_connected)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		p.UID, p.Email, p.Handle, p.ContentType, p.BrandDescription,
		kw, p.OnboardingStep, p.OnboardingComplete, p.AIInstructions, p.LinkedInConnected,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) GetByUID(ctx context.Context, uid string) (*models.Profile, error) {
	query := `
		SELECT id, uid, email, handle, content_type, brand_description,
			keywords, onboarding_step, onboarding_complete, ai_instructions,
			linkedin_connected, created_at, updated_at
		FROM profiles
		WHERE uid = $1
	`
	p := &models.Profile{}
	var kw []byte
	err := r.db.QueryRowContext(ctx, query, uid).Scan(
		&p.ID, &p.UID, &p.Email, &p.Handle, &p.ContentType, &p.BrandDescription,
		&kw, &p.OnboardingStep, &p.OnboardingComplete, &p.AIInstructions,
		&p.LinkedInConnected, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal(kw, &p.Keywords); err != nil {
		return nil, fmt.Errorf("decoding keywords: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	kw, err := encodeKeywords(p.Keywords)
	if err != nil {
		return nil, fmt.Errorf("encoding keywords: %w", err)
	}

	query := `
		UPDATE profiles
		SET email = $2, handle = $3, content_type = $4, brand_description = $5,
			keywords = $6, onboarding_step = $7, onboarding_complete = $8,
			ai_instructions = $9, linkedin_connected = $10, updated_at = $11
		WHERE uid = $1
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		p.UID, p.Email, p.Handle, p.ContentType, p.BrandDescription,
		kw, p.OnboardingStep, p.OnboardingComplete, p.AIInstructions,
		p.LinkedInConnected, time.Now().UTC(),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
