package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yeremiapane/bike-reservation/models"
	"github.com/yeremiapane/bike-reservation/utils"
)

const DefaultMaxJourneys = 40

// DepartureQuery adalah parameter ?date_time=&uic_code=&max_journeys=.
type DepartureQuery struct {
	DateTime    string `form:"date_time"`
	UICCode     int64  `form:"uic_code" binding:"required,gt=0"`
	MaxJourneys int    `form:"max_journeys,default=40" binding:"gte=1,lte=200"`
}

// DepartureService membentuk ulang respons NS tanpa menyimpan apa pun.
type DepartureService struct {
	client *NSClient
}

func NewDepartureService(client *NSClient) *DepartureService {
	return &DepartureService{client: client}
}

func (s *DepartureService) List(ctx context.Context, q DepartureQuery) ([]models.Departure, error) {
	var at time.Time
	if q.DateTime != "" {
		parsed, err := utils.ParseNaive(q.DateTime)
		if err != nil {
			return nil, fmt.Errorf("%w: date_time: %v", ErrInvalidQuery, err)
		}
		at = parsed
	}
	if q.MaxJourneys <= 0 {
		q.MaxJourneys = DefaultMaxJourneys
	}

	raw, err := s.client.Departures(ctx, at, q.UICCode, q.MaxJourneys)
	if err != nil {
		return nil, err
	}

	departures := make([]models.Departure, 0, len(raw))
	for _, d := range raw {
		planned, err := parsePlannedDateTime(d.PlannedDateTime)
		if err != nil {
			return nil, fmt.Errorf("%w: departure %q: %v", ErrUpstreamUnavailable, d.Name, err)
		}
		departures = append(departures, models.Departure{
			Direction:        d.Direction,
			Name:             d.Name,
			PlannedDeparture: models.NewNaiveTime(planned),
			PlannedTrack:     coerceTrack(d.PlannedTrack),
			TrainCategory:    d.TrainCategory,
			Cancelled:        d.Cancelled,
		})
	}
	return departures, nil
}

// parsePlannedDateTime memotong sufiks zona (mis. "+0200") sebelum parsing.
func parsePlannedDateTime(value string) (time.Time, error) {
	if len(value) < len(utils.NaiveLayout) {
		return time.Time{}, fmt.Errorf("planned departure %q too short", value)
	}
	return time.Parse(utils.NaiveLayout, value[:len(utils.NaiveLayout)])
}

// coerceTrack: plannedTrack bisa tidak ada, string, atau angka.
func coerceTrack(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return strings.Trim(string(raw), `"`)
}
