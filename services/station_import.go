package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yeremiapane/bike-reservation/models"
	"github.com/yeremiapane/bike-reservation/utils"
)

// DefaultBikeCapacity adalah kapasitas sepeda yang diberikan ke setiap stasiun hasil import.
const DefaultBikeCapacity = 20

// StationCSVHeader mengikuti kolom file stations.csv.
var StationCSVHeader = []string{"UICCode", "code", "lat", "lng", "bike_capacity", "stnname"}

var extraStationNames = map[string]bool{
	"Vlissingen": true,
	"Delft":      true,
}

type StationImporter struct {
	client *NSClient
}

func NewStationImporter(client *NSClient) *StationImporter {
	return &StationImporter{client: client}
}

// Fetch mengambil stasiun dari NS dan menyaring: MEGA_STATION atau
// Vlissingen/Delft, dan hanya yang berada di NL.
func (si *StationImporter) Fetch(ctx context.Context) ([]models.Station, error) {
	raw, err := si.client.Stations(ctx)
	if err != nil {
		return nil, err
	}

	stations := make([]models.Station, 0)
	for _, s := range raw {
		if !keepStation(s) {
			continue
		}
		uic, err := s.UICCode.Int64()
		if err != nil {
			utils.ErrorLogger.Printf("Skipping station %s: invalid UICCode %q", s.Namen.Lang, s.UICCode)
			continue
		}
		stations = append(stations, models.Station{
			UICCode:      uic,
			StnCode:      s.Code,
			Lat:          s.Lat,
			Lon:          s.Lng,
			BikeCapacity: DefaultBikeCapacity,
			StnName:      s.Namen.Lang,
		})
	}

	utils.InfoLogger.Printf("Fetched %d stations from NS, kept %d", len(raw), len(stations))
	return stations, nil
}

func keepStation(s NSStation) bool {
	if s.Land != "NL" {
		return false
	}
	return s.StationType == "MEGA_STATION" || extraStationNames[s.Namen.Lang]
}

func WriteStationsCSV(w io.Writer, stations []models.Station) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(StationCSVHeader); err != nil {
		return err
	}
	for _, s := range stations {
		record := []string{
			strconv.FormatInt(s.UICCode, 10),
			s.StnCode,
			strconv.FormatFloat(s.Lat, 'f', -1, 64),
			strconv.FormatFloat(s.Lon, 'f', -1, 64),
			strconv.Itoa(s.BikeCapacity),
			s.StnName,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadStationsCSV(r io.Reader) ([]models.Station, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(StationCSVHeader)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("stations csv is empty")
	}
	if err != nil {
		return nil, err
	}
	if strings.Join(header, ",") != strings.Join(StationCSVHeader, ",") {
		return nil, fmt.Errorf("unexpected stations csv header %v", header)
	}

	var stations []models.Station
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		s, err := parseStationRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		stations = append(stations, s)
	}
	return stations, nil
}

func parseStationRecord(record []string) (models.Station, error) {
	var (
		s   models.Station
		err error
	)
	if s.UICCode, err = strconv.ParseInt(record[0], 10, 64); err != nil {
		return s, fmt.Errorf("UICCode: %w", err)
	}
	s.StnCode = record[1]
	if s.Lat, err = strconv.ParseFloat(record[2], 64); err != nil {
		return s, fmt.Errorf("lat: %w", err)
	}
	if s.Lon, err = strconv.ParseFloat(record[3], 64); err != nil {
		return s, fmt.Errorf("lng: %w", err)
	}
	if s.BikeCapacity, err = strconv.Atoi(record[4]); err != nil {
		return s, fmt.Errorf("bike_capacity: %w", err)
	}
	s.StnName = record[5]
	return s, nil
}
