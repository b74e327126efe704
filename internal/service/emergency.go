package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_geo/internal/config"
	"github.com/shenikar/emergency_geo/internal/geohash"
	"github.com/shenikar/emergency_geo/internal/metrics"
	"github.com/shenikar/emergency_geo/internal/models"
	"github.com/shenikar/emergency_geo/internal/notify"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// maxSecretBytes - предел bcrypt; более длинные секреты он сравнивает по префиксу
const maxSecretBytes = 72

//go:generate mockgen -source=emergency.go -destination=mocks/mock_emergency.go -package=mocks

// IncidentRepository определяет контракт хранилища экстренных вызовов.
// AppendTrackPoint, AppendMessage и TransitionState применяются только к активному
// вызову и возвращают false, если вызов уже закрыт.
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.Incident) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	AppendTrackPoint(ctx context.Context, id uuid.UUID, point models.TrackPoint) (bool, error)
	AppendMessage(ctx context.Context, id uuid.UUID, message models.Message) (bool, error)
	// TransitionState - compare-and-set: from -> to только если текущее состояние равно from
	TransitionState(ctx context.Context, id uuid.UUID, from, to models.IncidentState, at time.Time) (bool, error)
}

// SecretRepository определяет контракт хранилища двойных секретов
type SecretRepository interface {
	GetDualSecret(ctx context.Context, subjectID string) (*models.DualSecret, error)
	SaveDualSecret(ctx context.Context, secret *models.DualSecret) error
}

// ContactRepository хранит адреса доставки доверенных контактов субъекта
type ContactRepository interface {
	ListTrustedContacts(ctx context.Context, subjectID string) ([]string, error)
	ReplaceTrustedContacts(ctx context.Context, subjectID string, addresses []string) error
}

// Notifier рассылает оповещение получателям по принципу best-effort
type Notifier interface {
	Notify(ctx context.Context, recipients []string, message models.Notification) models.DeliveryReport
}

// EmergencyService определяет контракт жизненного цикла экстренного вызова:
// active -> canceled | escalated, терминальные состояния поглощающие.
type EmergencyService interface {
	Trigger(ctx context.Context, subjectID string, origin models.GeoPoint) (*models.Incident, error)
	PushLocation(ctx context.Context, id uuid.UUID, point models.GeoPoint, recordedAt time.Time) error
	Resolve(ctx context.Context, id uuid.UUID, presentedSecret string) (models.IncidentState, error)
	GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error)
	PostMessage(ctx context.Context, id uuid.UUID, senderID, body string) error
	SetDualSecret(ctx context.Context, subjectID, primary, duress string) error
	SetTrustedContacts(ctx context.Context, subjectID string, addresses []string) ([]string, error)
	Shutdown(ctx context.Context) error
}

type emergencyService struct {
	incidents  IncidentRepository
	secrets    SecretRepository
	contacts   ContactRepository
	responders ProximityService
	notifier   Notifier
	logger     *logrus.Logger
	metrics    *metrics.Metrics

	precision       int
	storeTimeout    time.Duration
	notifyTimeout   time.Duration
	responderRadius float64
	hashCost        int

	now     func() time.Time
	pending sync.WaitGroup
}

// NewEmergencyService собирает контроллер экстренных вызовов. responders может быть nil,
// тогда спасатели при создании вызова не подбираются.
func NewEmergencyService(
	incidents IncidentRepository,
	secrets SecretRepository,
	contacts ContactRepository,
	responders ProximityService,
	notifier Notifier,
	cfg *config.Config,
	logger *logrus.Logger,
	m *metrics.Metrics,
) EmergencyService {
	return &emergencyService{
		incidents:       incidents,
		secrets:         secrets,
		contacts:        contacts,
		responders:      responders,
		notifier:        notifier,
		logger:          logger,
		metrics:         m,
		precision:       cfg.GeohashPrecision,
		storeTimeout:    cfg.StoreTimeout,
		notifyTimeout:   cfg.NotifyTimeout,
		responderRadius: cfg.ResponderSearchRadiusMeters,
		hashCost:        cfg.SecretHashCost,
		now:             time.Now,
	}
}

// Trigger создаёт активный вызов, привязывает к нему ближайших спасателей
// и оповещает доверенные контакты
func (s *emergencyService) Trigger(ctx context.Context, subjectID string, origin models.GeoPoint) (*models.Incident, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "emergency",
		"method":     "Trigger",
		"subject_id": subjectID,
	})
	log.Info("Attempting to trigger emergency")

	if subjectID == "" {
		return nil, fmt.Errorf("service: %w: subject id is required", ErrInvalidEntity)
	}

	hash, err := geohash.Encode(origin, s.precision)
	if err != nil {
		log.WithError(err).Warn("Rejected emergency with invalid origin")
		return nil, fmt.Errorf("service: %w: %w", ErrInvalidLocation, err)
	}

	now := s.now().UTC()
	incident := &models.Incident{
		ID:            uuid.New(),
		SubjectID:     subjectID,
		Origin:        origin,
		OriginGeohash: hash,
		State:         models.StateActive,
		Responders:    s.engageResponders(ctx, subjectID, origin, log),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.incidents.Create(sctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return nil, fmt.Errorf("service: could not create incident: %w: %w", ErrStoreUnavailable, err)
	}
	s.metrics.IncrementTransition(string(models.StateActive))

	log.WithFields(logrus.Fields{
		"incident_id": incident.ID,
		"responders":  len(incident.Responders),
	}).Info("Emergency triggered")

	s.dispatch(ctx, incident, notificationFor(incident.ID, models.StateActive))
	return incident, nil
}

// engageResponders ищет спасателей рядом с точкой вызова. Ошибка поиска не мешает создать вызов.
func (s *emergencyService) engageResponders(ctx context.Context, subjectID string, origin models.GeoPoint, log *logrus.Entry) []string {
	if s.responders == nil {
		return nil
	}

	matches, err := s.responders.FindNear(ctx, origin, s.responderRadius)
	if err != nil {
		log.WithError(err).Warn("Responder search failed, continuing without responders")
		return nil
	}

	addresses := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Entry.EntityID == subjectID {
			continue
		}
		if address := match.Entry.Payload[models.PayloadAddress]; address != "" {
			addresses = append(addresses, address)
		}
	}
	return notify.UniqueRecipients(addresses)
}

// PushLocation добавляет точку трека к активному вызову
func (s *emergencyService) PushLocation(ctx context.Context, id uuid.UUID, point models.GeoPoint, recordedAt time.Time) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "emergency",
		"method":      "PushLocation",
		"incident_id": id,
	})

	hash, err := geohash.Encode(point, s.precision)
	if err != nil {
		log.WithError(err).Warn("Rejected track point with invalid location")
		return fmt.Errorf("service: %w: %w", ErrInvalidLocation, err)
	}

	incident, err := s.load(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to load incident for location push")
		return err
	}
	if incident.State.Terminal() {
		return fmt.Errorf("service: cannot push location: %w", ErrIncidentClosed)
	}

	if recordedAt.IsZero() {
		recordedAt = s.now()
	}

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	applied, err := s.incidents.AppendTrackPoint(sctx, id, models.TrackPoint{
		RecordedAt: recordedAt.UTC(),
		Point:      point,
		Geohash:    hash,
	})
	if err != nil {
		log.WithError(err).Error("Failed to append track point")
		return fmt.Errorf("service: could not append track point: %w: %w", ErrStoreUnavailable, err)
	}
	if !applied {
		return fmt.Errorf("service: cannot push location: %w", ErrIncidentClosed)
	}

	log.WithField("geohash", hash).Debug("Track point appended")
	return nil
}

// Resolve проверяет предъявленный секрет и переводит вызов в canceled (основной секрет)
// или escalated (тревожный секрет)
func (s *emergencyService) Resolve(ctx context.Context, id uuid.UUID, presentedSecret string) (models.IncidentState, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "emergency",
		"method":      "Resolve",
		"incident_id": id,
	})
	log.Info("Attempting to resolve emergency")

	if len(presentedSecret) > maxSecretBytes {
		log.Warn("Rejected oversized secret")
		return "", fmt.Errorf("service: %w", ErrSecretTooLong)
	}

	incident, err := s.load(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to load incident for resolve")
		return "", err
	}
	// закрытый вызов отклоняется до чтения секретов
	if incident.State.Terminal() {
		log.WithField("state", incident.State).Warn("Resolve attempted on closed incident")
		return "", fmt.Errorf("service: cannot resolve: %w", ErrIncidentClosed)
	}

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	secret, err := s.secrets.GetDualSecret(sctx, incident.SubjectID)
	if err != nil {
		if errors.Is(err, ErrSecretNotFound) {
			log.Warn("Resolve attempted for subject without secrets")
			return "", fmt.Errorf("service: %w", ErrInvalidSecret)
		}
		log.WithError(err).Error("Failed to load dual secret")
		return "", fmt.Errorf("service: could not load secrets: %w: %w", ErrStoreUnavailable, err)
	}

	target, ok := verifySecret(secret, presentedSecret)
	if !ok {
		log.Warn("Secret verification failed")
		return "", fmt.Errorf("service: %w", ErrInvalidSecret)
	}

	now := s.now().UTC()
	applied, err := s.incidents.TransitionState(sctx, id, models.StateActive, target, now)
	if err != nil {
		log.WithError(err).Error("Failed to transition incident state")
		return "", fmt.Errorf("service: could not resolve incident: %w: %w", ErrStoreUnavailable, err)
	}
	if !applied {
		log.Warn("Incident was closed concurrently")
		return "", fmt.Errorf("service: cannot resolve: %w", ErrIncidentClosed)
	}
	s.metrics.IncrementTransition(string(target))

	incident.State = target
	incident.UpdatedAt = now
	incident.ResolvedAt = &now

	// оповещение не откатывает переход: источник истины - состояние в хранилище
	s.dispatch(ctx, incident, notificationFor(id, target))

	log.Info("Emergency resolved")
	return target, nil
}

// verifySecret сравнивает секрет с основным и тревожным хешами. Обе проверки выполняются
// всегда; при совпадении основной секрет имеет приоритет.
func verifySecret(secret *models.DualSecret, presented string) (models.IncidentState, bool) {
	primary := bcrypt.CompareHashAndPassword(secret.PrimaryHash, []byte(presented)) == nil
	duress := bcrypt.CompareHashAndPassword(secret.DuressHash, []byte(presented)) == nil

	switch {
	case primary:
		return models.StateCanceled, true
	case duress:
		return models.StateEscalated, true
	}
	return "", false
}

// GetIncident получает вызов по ID вместе с треком и сообщениями
func (s *emergencyService) GetIncident(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	incident, err := s.load(ctx, id)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":     "emergency",
			"method":      "GetIncident",
			"incident_id": id,
		}).WithError(err).Warn("Failed to get incident")
		return nil, err
	}
	return incident, nil
}

// PostMessage добавляет сообщение в чат активного вызова
func (s *emergencyService) PostMessage(ctx context.Context, id uuid.UUID, senderID, body string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "emergency",
		"method":      "PostMessage",
		"incident_id": id,
		"sender_id":   senderID,
	})

	body = strings.TrimSpace(body)
	if body == "" {
		return fmt.Errorf("service: %w", ErrEmptyMessage)
	}
	if senderID == "" {
		return fmt.Errorf("service: %w: sender id is required", ErrInvalidEntity)
	}

	incident, err := s.load(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to load incident for message")
		return err
	}
	if incident.State.Terminal() {
		return fmt.Errorf("service: cannot post message: %w", ErrIncidentClosed)
	}

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	applied, err := s.incidents.AppendMessage(sctx, id, models.Message{
		SenderID:  senderID,
		Body:      body,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		log.WithError(err).Error("Failed to append message")
		return fmt.Errorf("service: could not append message: %w: %w", ErrStoreUnavailable, err)
	}
	if !applied {
		return fmt.Errorf("service: cannot post message: %w", ErrIncidentClosed)
	}

	log.Debug("Message posted")
	return nil
}

// SetDualSecret сохраняет пару секретов субъекта. Совпадение секретов запрещено:
// иначе отмена и эскалация неразличимы.
func (s *emergencyService) SetDualSecret(ctx context.Context, subjectID, primary, duress string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "emergency",
		"method":     "SetDualSecret",
		"subject_id": subjectID,
	})

	if subjectID == "" {
		return fmt.Errorf("service: %w: subject id is required", ErrInvalidEntity)
	}
	if primary == "" || duress == "" {
		return fmt.Errorf("service: %w: secrets must not be empty", ErrInvalidSecret)
	}
	if len(primary) > maxSecretBytes || len(duress) > maxSecretBytes {
		return fmt.Errorf("service: %w: limit is %d bytes", ErrSecretTooLong, maxSecretBytes)
	}
	if subtle.ConstantTimeCompare([]byte(primary), []byte(duress)) == 1 {
		log.Warn("Rejected colliding secrets")
		return fmt.Errorf("service: %w", ErrSecretCollision)
	}

	primaryHash, err := s.hashSecret(primary)
	if err != nil {
		return err
	}
	duressHash, err := s.hashSecret(duress)
	if err != nil {
		return err
	}

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.secrets.SaveDualSecret(sctx, &models.DualSecret{
		SubjectID:   subjectID,
		PrimaryHash: primaryHash,
		DuressHash:  duressHash,
		UpdatedAt:   s.now().UTC(),
	}); err != nil {
		log.WithError(err).Error("Failed to save dual secret")
		return fmt.Errorf("service: could not save secrets: %w: %w", ErrStoreUnavailable, err)
	}

	log.Info("Dual secret updated")
	return nil
}

// SetTrustedContacts заменяет список доверенных контактов субъекта.
// Возвращает сохранённый список без пустых и повторяющихся адресов.
func (s *emergencyService) SetTrustedContacts(ctx context.Context, subjectID string, addresses []string) ([]string, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "emergency",
		"method":     "SetTrustedContacts",
		"subject_id": subjectID,
	})

	if subjectID == "" {
		return nil, fmt.Errorf("service: %w: subject id is required", ErrInvalidEntity)
	}
	contacts := notify.UniqueRecipients(addresses)

	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if err := s.contacts.ReplaceTrustedContacts(sctx, subjectID, contacts); err != nil {
		log.WithError(err).Error("Failed to save trusted contacts")
		return nil, fmt.Errorf("service: could not save contacts: %w: %w", ErrStoreUnavailable, err)
	}

	log.WithField("contacts", len(contacts)).Info("Trusted contacts updated")
	return contacts, nil
}

func (s *emergencyService) hashSecret(secret string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("service: %w", ErrSecretTooLong)
		}
		return nil, fmt.Errorf("service: could not hash secret: %w", err)
	}
	return hash, nil
}

// Shutdown дожидается завершения фоновых рассылок
func (s *emergencyService) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("service: pending notifications not drained: %w", ctx.Err())
	}
}

func (s *emergencyService) load(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	sctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	incident, err := s.incidents.GetByID(sctx, id)
	if err != nil {
		if errors.Is(err, ErrIncidentNotFound) {
			return nil, fmt.Errorf("service: incident %s: %w", id, ErrIncidentNotFound)
		}
		return nil, fmt.Errorf("service: could not get incident: %w: %w", ErrStoreUnavailable, err)
	}
	return incident, nil
}

// dispatch рассылает оповещение в фоне. Набор получателей - снимок контактов
// и привлечённых спасателей на момент перехода.
func (s *emergencyService) dispatch(ctx context.Context, incident *models.Incident, note models.Notification) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "emergency",
		"method":      "dispatch",
		"incident_id": incident.ID,
		"kind":        note.Kind,
	})
	responders := append([]string(nil), incident.Responders...)
	subjectID := incident.SubjectID

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
		defer cancel()

		contacts, err := s.contacts.ListTrustedContacts(nctx, subjectID)
		if err != nil {
			log.WithError(err).Warn("Failed to load trusted contacts, notifying responders only")
		}

		recipients := notify.UniqueRecipients(append(contacts, responders...))
		if len(recipients) == 0 {
			log.Info("No recipients to notify")
			return
		}

		report := s.notifier.Notify(nctx, recipients, note)
		log.WithFields(logrus.Fields{
			"delivered": report.Delivered,
			"failed":    report.Failed,
		}).Info("Notification fan-out completed")
	}()
}

func notificationFor(id uuid.UUID, state models.IncidentState) models.Notification {
	switch state {
	case models.StateCanceled:
		return models.Notification{
			IncidentID: id,
			Kind:       models.NotificationResolved,
			State:      state,
			Title:      "Emergency Resolved",
			Body:       "The user has verified their identity as safe. No further action required.",
		}
	case models.StateEscalated:
		return models.Notification{
			IncidentID: id,
			Kind:       models.NotificationEscalated,
			State:      state,
			Title:      "Emergency Escalated!",
			Body:       "The user failed identity verification. Immediate intervention needed!",
		}
	default:
		return models.Notification{
			IncidentID: id,
			Kind:       models.NotificationTriggered,
			State:      state,
			Title:      "Emergency Triggered",
			Body:       "Someone who trusts you has triggered an emergency alert. Open the app to follow their location.",
		}
	}
}
