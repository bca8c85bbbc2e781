package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rli-storage-service/internal/metrics"
)

// ErrNotFound is returned by point lookups when no row has the requested id.
var ErrNotFound = errors.New("record not found")

// StoreError wraps a failure reported by the underlying store.
type StoreError struct {
	Entity string
	Op     string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Cause lets github.com/pkg/errors.Cause reach the driver error.
func (e *StoreError) Cause() error { return e.Err }

// Record is the contract every model satisfies to be stored by a Store.
type Record[T any] interface {
	*T
	GetID() uint
	SetID(id uint)
	Validate() error
	TableName() string
}

// Store provides create/update/delete/get for one entity type. Every
// operation holds the store's mutex for its whole duration, so operations on
// the same entity type are fully serialised while different types proceed
// independently.
type Store[T any, PT Record[T]] struct {
	db      *gorm.DB
	mu      sync.Mutex
	entity  string
	metrics *metrics.RepositoryMetrics
}

// NewStore creates a Store for T on the given connection.
func NewStore[T any, PT Record[T]](db *gorm.DB, m *metrics.RepositoryMetrics) *Store[T, PT] {
	return &Store[T, PT]{
		db:      db,
		entity:  PT(new(T)).TableName(),
		metrics: m,
	}
}

// Entity returns the table name the store operates on.
func (s *Store[T, PT]) Entity() string { return s.entity }

func (s *Store[T, PT]) lock() func() {
	start := time.Now()
	s.mu.Lock()
	s.metrics.ObserveLockWait(s.entity, time.Since(start))
	return s.mu.Unlock
}

func (s *Store[T, PT]) storeErr(op string, err error) error {
	return &StoreError{Entity: s.entity, Op: op, Err: err}
}

// Create inserts rec and returns the generated id. Any id already set on rec
// is ignored.
func (s *Store[T, PT]) Create(rec PT) (uint, error) {
	started := time.Now()
	defer s.lock()()

	if err := rec.Validate(); err != nil {
		s.metrics.ObserveOperation(s.entity, "create", metrics.ResultInvalid, started)
		return 0, err
	}
	rec.SetID(0)
	if err := s.db.Omit(clause.Associations).Create(rec).Error; err != nil {
		s.metrics.ObserveOperation(s.entity, "create", metrics.ResultError, started)
		return 0, s.storeErr("create", err)
	}
	s.metrics.ObserveOperation(s.entity, "create", metrics.ResultOK, started)
	return rec.GetID(), nil
}

// Update overwrites every column of row id with the values in rec. It is a
// no-op when the row does not exist.
func (s *Store[T, PT]) Update(id uint, rec PT) error {
	started := time.Now()
	defer s.lock()()

	var n int64
	if err := s.db.Model(PT(new(T))).Where("id = ?", id).Count(&n).Error; err != nil {
		s.metrics.ObserveOperation(s.entity, "update", metrics.ResultError, started)
		return s.storeErr("update", err)
	}
	if n == 0 {
		s.metrics.ObserveOperation(s.entity, "update", metrics.ResultNotFound, started)
		return nil
	}
	if err := rec.Validate(); err != nil {
		s.metrics.ObserveOperation(s.entity, "update", metrics.ResultInvalid, started)
		return err
	}
	rec.SetID(id)
	// Updates never falls back to an insert, so a row removed by a cascade
	// from another entity in the meantime stays removed.
	if err := s.db.Model(rec).Select("*").Omit(clause.Associations).Updates(rec).Error; err != nil {
		s.metrics.ObserveOperation(s.entity, "update", metrics.ResultError, started)
		return s.storeErr("update", err)
	}
	s.metrics.ObserveOperation(s.entity, "update", metrics.ResultOK, started)
	return nil
}

// Delete removes row id; the store cascades the delete to dependent rows.
// It is a no-op when the row does not exist.
func (s *Store[T, PT]) Delete(id uint) error {
	started := time.Now()
	defer s.lock()()

	res := s.db.Delete(PT(new(T)), id)
	if res.Error != nil {
		s.metrics.ObserveOperation(s.entity, "delete", metrics.ResultError, started)
		return s.storeErr("delete", res.Error)
	}
	result := metrics.ResultOK
	if res.RowsAffected == 0 {
		result = metrics.ResultNotFound
	}
	s.metrics.ObserveOperation(s.entity, "delete", result, started)
	return nil
}

// GetByID returns row id, or an error wrapping ErrNotFound.
func (s *Store[T, PT]) GetByID(id uint) (*T, error) {
	started := time.Now()
	defer s.lock()()

	var rec T
	err := s.db.First(&rec, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.metrics.ObserveOperation(s.entity, "get", metrics.ResultNotFound, started)
		return nil, fmt.Errorf("%s %d: %w", s.entity, id, ErrNotFound)
	}
	if err != nil {
		s.metrics.ObserveOperation(s.entity, "get", metrics.ResultError, started)
		return nil, s.storeErr("get", err)
	}
	s.metrics.ObserveOperation(s.entity, "get", metrics.ResultOK, started)
	return &rec, nil
}

// find runs a filtered listing under the store lock, ordered by id.
func (s *Store[T, PT]) find(op string, filter func(tx *gorm.DB) *gorm.DB) ([]T, error) {
	started := time.Now()
	defer s.lock()()

	tx := s.db.Model(PT(new(T))).Order("id")
	if filter != nil {
		tx = filter(tx)
	}
	rows := make([]T, 0)
	if err := tx.Find(&rows).Error; err != nil {
		s.metrics.ObserveOperation(s.entity, op, metrics.ResultError, started)
		return nil, s.storeErr(op, err)
	}
	s.metrics.ObserveOperation(s.entity, op, metrics.ResultOK, started)
	s.metrics.ObserveRows(s.entity, op, len(rows))
	return rows, nil
}

// ids selects the id column of model rows matching query, for use as an
// IN (...) subquery.
func (s *Store[T, PT]) ids(model interface{}, query string, args ...interface{}) *gorm.DB {
	return s.db.Model(model).Select("id").Where(query, args...)
}
