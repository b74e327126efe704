package service

import (
	"errors"

	"github.com/shenikar/emergency_geo/internal/geohash"
)

// Ошибки бизнес-логики. Сравнивать через errors.Is.
var (
	// ErrInvalidCoordinate - координаты вне допустимого диапазона или NaN
	ErrInvalidCoordinate = geohash.ErrInvalidCoordinate
	// ErrInvalidLocation - некорректная точка вызова или трека
	ErrInvalidLocation = errors.New("invalid location")
	// ErrInvalidRadius - отрицательный или бесконечный радиус поиска
	ErrInvalidRadius = geohash.ErrInvalidRadius
	// ErrSearchUnavailable - ошибка ввода-вывода индекса при поиске
	ErrSearchUnavailable = errors.New("search unavailable")
	// ErrStoreUnavailable - ошибка ввода-вывода хранилища вызовов, секретов или контактов
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrIncidentNotFound = errors.New("incident not found")
	// ErrIncidentClosed - вызов уже в терминальном состоянии
	ErrIncidentClosed = errors.New("incident closed")
	// ErrInvalidSecret не различает "неверный секрет" и "секрет от другого вызова"
	ErrInvalidSecret = errors.New("invalid secret")
	// ErrSecretNotFound - у субъекта не заданы секреты, наружу отдаётся как ErrInvalidSecret
	ErrSecretNotFound = errors.New("dual secret not found")
	// ErrSecretTooLong - секрет длиннее 72 байт, больше bcrypt не различает
	ErrSecretTooLong = errors.New("secret is too long")
	// ErrSecretCollision - основной и тревожный секреты совпадают
	ErrSecretCollision = errors.New("primary and duress secrets must differ")
	// ErrEntryNotFound - запись индекса отсутствует
	ErrEntryNotFound = errors.New("index entry not found")
	// ErrInvalidEntity - пустой идентификатор сущности индекса
	ErrInvalidEntity = errors.New("invalid entity")
	ErrEmptyMessage  = errors.New("empty message")
)
