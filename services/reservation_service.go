package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yeremiapane/bike-reservation/models"
	"github.com/yeremiapane/bike-reservation/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateOutcome int

const (
	Updated UpdateOutcome = iota
	UpdateNotFound
)

func (o UpdateOutcome) String() string {
	if o == Updated {
		return "updated"
	}
	return "not_found"
}

type DeleteOutcome int

const (
	Deleted DeleteOutcome = iota
	DeleteNotFound
)

func (o DeleteOutcome) String() string {
	if o == Deleted {
		return "deleted"
	}
	return "not_found"
}

type ReservationService struct {
	store *Store
}

func NewReservationService(store *Store) *ReservationService {
	return &ReservationService{store: store}
}

// Create menyimpan reservasi baru; reserve_id diisi oleh database.
func (s *ReservationService) Create(ctx context.Context, in models.ReservationInput) (*models.Reservation, error) {
	reservation := in.ToReservation(0)

	err := s.store.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, translateWriteError(err)
	}

	utils.InfoLogger.Printf("Reservation %d created for user=%s uiccode=%d", reservation.ReserveID, reservation.User, reservation.UICCode)
	return &reservation, nil
}

// Update mengganti seluruh kolom kecuali reserve_id dalam satu statement.
// Jika tidak ada baris yang cocok, outcome = UpdateNotFound dan tidak ada baris baru.
func (s *ReservationService) Update(ctx context.Context, id uint, in models.ReservationInput) (UpdateOutcome, *models.Reservation, error) {
	reservation := in.ToReservation(id)

	var affected int64
	err := s.store.withConn(ctx, func(tx *gorm.DB) error {
		res := tx.Model(&models.Reservation{}).
			Where("reserve_id = ?", id).
			Updates(map[string]interface{}{
				"timestamp":     reservation.Timestamp,
				"user":          reservation.User,
				"uiccode":       reservation.UICCode,
				"reserve_start": reservation.ReserveStart,
				"reserve_end":   reservation.ReserveEnd,
			})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return UpdateNotFound, nil, translateWriteError(err)
	}
	if affected == 0 {
		return UpdateNotFound, nil, nil
	}

	utils.InfoLogger.Printf("Reservation %d updated", id)
	return Updated, &reservation, nil
}

func (s *ReservationService) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	var reservation models.Reservation
	err := s.store.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Where("reserve_id = ?", id).Take(&reservation).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (s *ReservationService) List(ctx context.Context, page utils.Pagination) ([]models.Reservation, error) {
	reservations := make([]models.Reservation, 0, page.Take)
	err := s.store.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Order("reserve_id").Offset(page.Skip).Limit(page.Take).Find(&reservations).Error
	})
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

// ListByUser memfilter dengan kecocokan persis (case-sensitive) pada kolom user.
func (s *ReservationService) ListByUser(ctx context.Context, user string, page utils.Pagination) ([]models.Reservation, error) {
	reservations := make([]models.Reservation, 0, page.Take)
	err := s.store.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Scopes(byUser(user)).
			Order("reserve_id").
			Offset(page.Skip).
			Limit(page.Take).
			Find(&reservations).Error
	})
	if err != nil {
		return nil, err
	}
	return reservations, nil
}

func (s *ReservationService) Delete(ctx context.Context, id uint) (DeleteOutcome, error) {
	var affected int64
	err := s.store.withConn(ctx, func(tx *gorm.DB) error {
		res := tx.Where("reserve_id = ?", id).Delete(&models.Reservation{})
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return DeleteNotFound, err
	}
	if affected == 0 {
		return DeleteNotFound, nil
	}

	utils.InfoLogger.Printf("Reservation %d deleted", id)
	return Deleted, nil
}

// byUser memfilter kolom user secara case-sensitive. Di MySQL collation
// default *_ci, jadi perbandingan dilakukan dengan BINARY.
func byUser(user string) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		column := clause.Column{Name: "user"}
		if tx.Dialector.Name() == "mysql" {
			return tx.Where(clause.Expr{SQL: "BINARY ? = ?", Vars: []interface{}{column, user}})
		}
		return tx.Where(clause.Eq{Column: column, Value: user})
	}
}

// translateWriteError memetakan pelanggaran foreign key uiccode ke ErrUnknownStation.
// Driver yang belum menerjemahkan error dikenali dari pesannya.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) || strings.Contains(strings.ToUpper(err.Error()), "FOREIGN KEY") {
		return fmt.Errorf("%w: %v", ErrUnknownStation, err)
	}
	return err
}
