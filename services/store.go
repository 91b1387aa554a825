package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/semaphore"
	"gorm.io/gorm"
)

var (
	ErrPoolExhausted       = errors.New("database connection pool exhausted, retry later")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrUnknownStation      = errors.New("uiccode does not reference a known station")
	ErrUpstreamUnavailable = errors.New("departure information is temporarily unavailable")
	ErrInvalidQuery        = errors.New("invalid query")
)

// Store adalah konteks database yang dibagikan ke semua service.
// Setiap operasi mengambil satu slot (maksimal sebesar pool) dan
// melepasnya kembali di semua jalur keluar.
type Store struct {
	db             *gorm.DB
	slots          *semaphore.Weighted
	acquireTimeout time.Duration
}

func NewStore(db *gorm.DB, poolSize int, acquireTimeout time.Duration) *Store {
	if poolSize < 1 {
		poolSize = 1
	}
	if acquireTimeout <= 0 {
		acquireTimeout = 2 * time.Second
	}
	return &Store{
		db:             db,
		slots:          semaphore.NewWeighted(int64(poolSize)),
		acquireTimeout: acquireTimeout,
	}
}

// DB mengembalikan handle gorm tanpa gate, untuk migrasi dan tooling offline.
func (s *Store) DB() *gorm.DB {
	return s.db
}

// withConn menjalankan fn di sesi yang sudah mendapat slot, terikat ke ctx.
func (s *Store) withConn(ctx context.Context, fn func(tx *gorm.DB) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, s.acquireTimeout)
	defer cancel()

	if err := s.slots.Acquire(acquireCtx, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrPoolExhausted
	}
	defer s.slots.Release(1)

	return fn(s.db.WithContext(ctx))
}
