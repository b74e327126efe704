package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/service"
)

// PostgresIndex - геоиндекс в таблице geo_entries. Колонка geohash с COLLATE "C",
// поэтому диапазоны сравниваются побайтно, как в остальных хранилищах.
type PostgresIndex struct {
	db   *pgxpool.Pool
	name string
}

// NewPostgresIndex создаёт индекс с именем name; несколько индексов делят одну таблицу
func NewPostgresIndex(db *pgxpool.Pool, name string) *PostgresIndex {
	return &PostgresIndex{db: db, name: name}
}

var _ service.IndexStore = (*PostgresIndex)(nil)

// Scan возвращает записи с geohash в [start, end)
func (r *PostgresIndex) Scan(ctx context.Context, start, end string) ([]*models.IndexEntry, error) {
	query := `
		SELECT entity_id, geohash, latitude, longitude, payload, updated_at
		FROM geo_entries
		WHERE index_name = $1 AND geohash >= $2 AND geohash < $3
		ORDER BY geohash, entity_id;
	`
	rows, err := r.db.Query(ctx, query, r.name, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to scan geo index: %w", err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.IndexEntry, error) {
		entry := &models.IndexEntry{}
		err := row.Scan(
			&entry.EntityID,
			&entry.Geohash,
			&entry.Point.Latitude,
			&entry.Point.Longitude,
			&entry.Payload,
			&entry.UpdatedAt,
		)
		return entry, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan geo index row: %w", err)
	}
	return entries, nil
}

// Put вставляет запись или перемещает существующую
func (r *PostgresIndex) Put(ctx context.Context, entry *models.IndexEntry) error {
	query := `
		INSERT INTO geo_entries (index_name, entity_id, geohash, latitude, longitude, payload, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (index_name, entity_id) DO UPDATE SET
			geohash = EXCLUDED.geohash,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at;
	`
	payload := entry.Payload
	if payload == nil {
		payload = map[string]string{}
	}
	_, err := r.db.Exec(ctx, query,
		r.name,
		entry.EntityID,
		entry.Geohash,
		entry.Point.Latitude,
		entry.Point.Longitude,
		payload,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to put geo index entry: %w", err)
	}
	return nil
}

// Remove удаляет запись сущности
func (r *PostgresIndex) Remove(ctx context.Context, entityID string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM geo_entries WHERE index_name = $1 AND entity_id = $2;`, r.name, entityID)
	if err != nil {
		return fmt.Errorf("failed to remove geo index entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return service.ErrEntryNotFound
	}
	return nil
}
