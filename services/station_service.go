package services

import (
	"context"
	"fmt"

	"github.com/yeremiapane/bike-reservation/models"
	"github.com/yeremiapane/bike-reservation/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StationService struct {
	store *Store
}

func NewStationService(store *Store) *StationService {
	return &StationService{store: store}
}

func (s *StationService) List(ctx context.Context, page utils.Pagination) ([]models.Station, error) {
	stations := make([]models.Station, 0, page.Take)
	err := s.store.withConn(ctx, func(tx *gorm.DB) error {
		return tx.Order("uiccode").Offset(page.Skip).Limit(page.Take).Find(&stations).Error
	})
	if err != nil {
		return nil, err
	}
	return stations, nil
}

// Upsert menyisipkan atau memperbarui stasiun berdasarkan uiccode.
// Dipakai oleh perintah `station-import load`, bukan oleh HTTP API.
func (s *StationService) Upsert(ctx context.Context, stations []models.Station) (int64, error) {
	if len(stations) == 0 {
		return 0, nil
	}

	var affected int64
	err := s.store.withConn(ctx, func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "uiccode"}},
			DoUpdates: clause.AssignmentColumns([]string{"stncode", "lat", "lon", "bike_capacity", "stnname"}),
		}).CreateInBatches(stations, 100)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return 0, fmt.Errorf("upsert stations: %w", err)
	}

	utils.InfoLogger.Printf("Upserted %d stations", len(stations))
	return affected, nil
}
