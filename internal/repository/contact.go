package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_geo/internal/service"
)

type ContactRepository struct {
	db *pgxpool.Pool
}

func NewContactRepository(db *pgxpool.Pool) service.ContactRepository {
	return &ContactRepository{db: db}
}

// ListTrustedContacts возвращает адреса доверенных контактов в порядке добавления
func (r *ContactRepository) ListTrustedContacts(ctx context.Context, subjectID string) ([]string, error) {
	query := `
		SELECT address
		FROM trusted_contacts
		WHERE subject_id = $1
		ORDER BY position;
	`
	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trusted contacts: %w", err)
	}

	contacts, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan trusted contacts: %w", err)
	}
	return contacts, nil
}

// ReplaceTrustedContacts заменяет список контактов в одной транзакции
func (r *ContactRepository) ReplaceTrustedContacts(ctx context.Context, subjectID string, addresses []string) error {
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM trusted_contacts WHERE subject_id = $1;`, subjectID); err != nil {
			return err
		}
		if len(addresses) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for i, address := range addresses {
			batch.Queue(`INSERT INTO trusted_contacts (subject_id, address, position) VALUES ($1, $2, $3);`, subjectID, address, i)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("failed to replace trusted contacts: %w", err)
	}
	return nil
}
