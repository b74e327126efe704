package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/service"
)

type SecretRepository struct {
	db *pgxpool.Pool
}

func NewSecretRepository(db *pgxpool.Pool) service.SecretRepository {
	return &SecretRepository{db: db}
}

// GetDualSecret возвращает хеши секретов субъекта
func (r *SecretRepository) GetDualSecret(ctx context.Context, subjectID string) (*models.DualSecret, error) {
	secret := &models.DualSecret{}
	query := `
		SELECT subject_id, primary_hash, duress_hash, updated_at
		FROM dual_secrets
		WHERE subject_id = $1;
	`
	err := r.db.QueryRow(ctx, query, subjectID).Scan(
		&secret.SubjectID,
		&secret.PrimaryHash,
		&secret.DuressHash,
		&secret.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, service.ErrSecretNotFound
		}
		return nil, fmt.Errorf("failed to get dual secret: %w", err)
	}
	return secret, nil
}

// SaveDualSecret заменяет оба хеша одной строкой
func (r *SecretRepository) SaveDualSecret(ctx context.Context, secret *models.DualSecret) error {
	query := `
		INSERT INTO dual_secrets (subject_id, primary_hash, duress_hash, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (subject_id) DO UPDATE SET
			primary_hash = EXCLUDED.primary_hash,
			duress_hash = EXCLUDED.duress_hash,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := r.db.Exec(ctx, query, secret.SubjectID, secret.PrimaryHash, secret.DuressHash, secret.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save dual secret: %w", err)
	}
	return nil
}
