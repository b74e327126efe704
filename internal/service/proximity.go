package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shenikar/emergency_geo/internal/config"
	"github.com/shenikar/emergency_geo/internal/geohash"
	"github.com/shenikar/emergency_geo/internal/metrics"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=proximity.go -destination=mocks/mock_proximity.go -package=mocks

// IndexStore определяет контракт упорядоченного хранилища геоиндекса.
// Scan возвращает записи с geohash в полуоткрытом диапазоне [start, end).
type IndexStore interface {
	Scan(ctx context.Context, start, end string) ([]*models.IndexEntry, error)
	Put(ctx context.Context, entry *models.IndexEntry) error
	Remove(ctx context.Context, entityID string) error
}

// ProximityService определяет контракт поиска сущностей в радиусе от точки
type ProximityService interface {
	FindNear(ctx context.Context, center models.GeoPoint, radiusMeters float64) ([]models.Match, error)
	Index(ctx context.Context, entityID string, point models.GeoPoint, payload map[string]string) (*models.IndexEntry, error)
	Remove(ctx context.Context, entityID string) error
}

type proximityService struct {
	name      string
	index     IndexStore
	precision int
	timeout   time.Duration
	logger    *logrus.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewProximityService создаёт поисковый движок поверх индекса. name различает
// индексы (спасатели, преступления) в логах и метриках.
func NewProximityService(name string, index IndexStore, cfg *config.Config, logger *logrus.Logger, m *metrics.Metrics) ProximityService {
	return &proximityService{
		name:      name,
		index:     index,
		precision: cfg.GeohashPrecision,
		timeout:   cfg.StoreTimeout,
		logger:    logger,
		metrics:   m,
		now:       time.Now,
	}
}

// FindNear находит сущности не дальше radiusMeters от center, отсортированные по расстоянию.
// При ошибке любого сканирования частичный результат не возвращается.
func (s *proximityService) FindNear(ctx context.Context, center models.GeoPoint, radiusMeters float64) ([]models.Match, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":       "proximity",
		"method":        "FindNear",
		"index":         s.name,
		"radius_meters": radiusMeters,
	})
	started := time.Now()

	bounds, err := geohash.PlanRanges(center, radiusMeters, s.precision)
	if err != nil {
		log.WithError(err).Warn("Rejected search request")
		s.metrics.ObserveSearch(s.name, "invalid", time.Since(started))
		return nil, fmt.Errorf("service: invalid search request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	scanned := make([][]*models.IndexEntry, len(bounds))
	for i, b := range bounds {
		g.Go(func() error {
			entries, err := s.index.Scan(gctx, b.Start, b.End)
			if err != nil {
				return fmt.Errorf("scan [%s, %s): %w", b.Start, b.End, err)
			}
			scanned[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Range scan failed")
		s.metrics.ObserveSearch(s.name, "unavailable", time.Since(started))
		return nil, fmt.Errorf("service: %w: %w", ErrSearchUnavailable, err)
	}

	// запись на границе ячеек может попасть в несколько диапазонов
	candidates := make(map[string]*models.IndexEntry)
	for _, entries := range scanned {
		for _, entry := range entries {
			if entry != nil {
				candidates[entry.EntityID] = entry
			}
		}
	}
	s.metrics.ObserveCandidates(s.name, len(candidates))

	matches := make([]models.Match, 0, len(candidates))
	for _, entry := range candidates {
		distance := geohash.Distance(center, entry.Point)
		if distance > radiusMeters {
			continue
		}
		matches = append(matches, models.Match{Entry: entry, DistanceMeters: distance})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceMeters == matches[j].DistanceMeters {
			return matches[i].Entry.EntityID < matches[j].Entry.EntityID
		}
		return matches[i].DistanceMeters < matches[j].DistanceMeters
	})

	log.WithFields(logrus.Fields{
		"bounds":     len(bounds),
		"candidates": len(candidates),
		"matches":    len(matches),
	}).Debug("Search completed")
	s.metrics.ObserveSearch(s.name, "ok", time.Since(started))

	return matches, nil
}

// Index записывает или перемещает сущность в индексе. Geohash всегда вычисляется здесь.
func (s *proximityService) Index(ctx context.Context, entityID string, point models.GeoPoint, payload map[string]string) (*models.IndexEntry, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "proximity",
		"method":    "Index",
		"index":     s.name,
		"entity_id": entityID,
	})

	if entityID == "" {
		return nil, fmt.Errorf("service: %w: entity id is required", ErrInvalidEntity)
	}

	hash, err := geohash.Encode(point, s.precision)
	if err != nil {
		log.WithError(err).Warn("Rejected index update")
		return nil, fmt.Errorf("service: %w: %w", ErrInvalidLocation, err)
	}

	entry := &models.IndexEntry{
		EntityID:  entityID,
		Geohash:   hash,
		Point:     point,
		Payload:   payload,
		UpdatedAt: s.now().UTC(),
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.index.Put(ctx, entry); err != nil {
		log.WithError(err).Error("Failed to write index entry")
		return nil, fmt.Errorf("service: could not index entity: %w: %w", ErrStoreUnavailable, err)
	}

	log.WithField("geohash", hash).Info("Index entry written")
	return entry, nil
}

// Remove удаляет сущность из индекса
func (s *proximityService) Remove(ctx context.Context, entityID string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "proximity",
		"method":    "Remove",
		"index":     s.name,
		"entity_id": entityID,
	})

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.index.Remove(ctx, entityID); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return fmt.Errorf("service: could not remove entity: %w", err)
		}
		log.WithError(err).Error("Failed to remove index entry")
		return fmt.Errorf("service: could not remove entity: %w: %w", ErrStoreUnavailable, err)
	}

	log.Info("Index entry removed")
	return nil
}
