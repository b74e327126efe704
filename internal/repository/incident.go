package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/service"
)

// terminalCacheTTL - срок жизни закрытого вызова в кеше; закрытый вызов больше не меняется
const terminalCacheTTL = 10 * time.Minute

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

// NewIncidentRepository создаёт хранилище вызовов. redisClient может быть nil, тогда кеш отключён.
func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create создает новую запись о вызове в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	query := `
		INSERT INTO incidents (id, subject_id, origin_latitude, origin_longitude, origin_geohash,
			state, responders, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	responders := incident.Responders
	if responders == nil {
		responders = []string{}
	}
	_, err := r.db.Exec(ctx, query,
		incident.ID,
		incident.SubjectID,
		incident.Origin.Latitude,
		incident.Origin.Longitude,
		incident.OriginGeohash,
		incident.State,
		responders,
		incident.CreatedAt,
		incident.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает вызов по UUID вместе с треком и сообщениями
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	if cached, err := r.getFromCache(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	incident := &models.Incident{}
	query := `
		SELECT id, subject_id, origin_latitude, origin_longitude, origin_geohash,
			state, responders, created_at, updated_at, resolved_at
		FROM incidents
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&incident.ID,
		&incident.SubjectID,
		&incident.Origin.Latitude,
		&incident.Origin.Longitude,
		&incident.OriginGeohash,
		&incident.State,
		&incident.Responders,
		&incident.CreatedAt,
		&incident.UpdatedAt,
		&incident.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident with id %s: %w", id, service.ErrIncidentNotFound)
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}

	if incident.TrackPoints, err = r.listTrackPoints(ctx, id); err != nil {
		return nil, err
	}
	if incident.Messages, err = r.listMessages(ctx, id); err != nil {
		return nil, err
	}

	if incident.State.Terminal() {
		// ошибка кеша не мешает ответу
		_ = r.setCache(ctx, incident)
	}
	return incident, nil
}

func (r *IncidentRepository) listTrackPoints(ctx context.Context, id uuid.UUID) ([]models.TrackPoint, error) {
	query := `
		SELECT recorded_at, latitude, longitude, geohash
		FROM incident_track_points
		WHERE incident_id = $1
		ORDER BY recorded_at, id;
	`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list track points: %w", err)
	}
	defer rows.Close()

	points := make([]models.TrackPoint, 0)
	for rows.Next() {
		var tp models.TrackPoint
		if err := rows.Scan(&tp.RecordedAt, &tp.Point.Latitude, &tp.Point.Longitude, &tp.Geohash); err != nil {
			return nil, fmt.Errorf("failed to scan track point row: %w", err)
		}
		points = append(points, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error track points iteration: %w", err)
	}
	return points, nil
}

func (r *IncidentRepository) listMessages(ctx context.Context, id uuid.UUID) ([]models.Message, error) {
	query := `
		SELECT sender_id, body, created_at
		FROM incident_messages
		WHERE incident_id = $1
		ORDER BY created_at, id;
	`
	rows, err := r.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.SenderID, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error messages iteration: %w", err)
	}
	return messages, nil
}

// AppendTrackPoint добавляет точку трека. UPDATE в CTE блокирует строку вызова,
// поэтому вставка упорядочена с TransitionState.
func (r *IncidentRepository) AppendTrackPoint(ctx context.Context, id uuid.UUID, point models.TrackPoint) (bool, error) {
	query := `
		WITH active AS (
			UPDATE incidents SET updated_at = NOW()
			WHERE id = $1 AND state = 'active'
			RETURNING id
		)
		INSERT INTO incident_track_points (incident_id, recorded_at, latitude, longitude, geohash)
		SELECT id, $2, $3, $4, $5 FROM active;
	`
	cmdTag, err := r.db.Exec(ctx, query, id, point.RecordedAt, point.Point.Latitude, point.Point.Longitude, point.Geohash)
	if err != nil {
		return false, fmt.Errorf("failed to append track point: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return false, r.ensureExists(ctx, id)
	}
	return true, nil
}

// AppendMessage добавляет сообщение в чат активного вызова
func (r *IncidentRepository) AppendMessage(ctx context.Context, id uuid.UUID, message models.Message) (bool, error) {
	query := `
		WITH active AS (
			UPDATE incidents SET updated_at = NOW()
			WHERE id = $1 AND state = 'active'
			RETURNING id
		)
		INSERT INTO incident_messages (incident_id, sender_id, body, created_at)
		SELECT id, $2, $3, $4 FROM active;
	`
	cmdTag, err := r.db.Exec(ctx, query, id, message.SenderID, message.Body, message.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to append message: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return false, r.ensureExists(ctx, id)
	}
	return true, nil
}

// TransitionState - compare-and-set состояния одним UPDATE
func (r *IncidentRepository) TransitionState(ctx context.Context, id uuid.UUID, from, to models.IncidentState, at time.Time) (bool, error) {
	query := `
		UPDATE incidents SET
			state = $3,
			updated_at = $4,
			resolved_at = $4
		WHERE id = $1 AND state = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, id, from, to, at)
	if err != nil {
		return false, fmt.Errorf("failed to transition incident: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return false, r.ensureExists(ctx, id)
	}
	return true, nil
}

// ensureExists отличает закрытый вызов от несуществующего
func (r *IncidentRepository) ensureExists(ctx context.Context, id uuid.UUID) error {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM incidents WHERE id = $1);`, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check incident existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("incident with id %s: %w", id, service.ErrIncidentNotFound)
	}
	return nil
}

// getFromCache пытается получить закрытый вызов из Redis
func (r *IncidentRepository) getFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	if r.redisClient == nil {
		return nil, nil
	}

	key := fmt.Sprintf("incident:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// setCache сохраняет закрытый вызов в Redis
func (r *IncidentRepository) setCache(ctx context.Context, incident *models.Incident) error {
	if r.redisClient == nil {
		return nil
	}

	key := fmt.Sprintf("incident:%s", incident.ID.String())
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, terminalCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}
