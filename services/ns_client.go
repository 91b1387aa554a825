package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yeremiapane/bike-reservation/config"
	"github.com/yeremiapane/bike-reservation/utils"
)

const (
	nsDeparturesPath = "/reisinformatie-api/api/v2/departures"
	nsStationsPath   = "/reisinformatie-api/api/v2/stations"
	nsKeyHeader      = "Ocp-Apim-Subscription-Key"
	nsMaxBodyBytes   = 8 << 20
)

// NSClient menangani request ke NS reisinformatie API.
type NSClient struct {
	config     *config.NSConfig
	httpClient *http.Client
}

// NewNSClient membuat client dengan timeout eksplisit dan pool koneksi
// maksimal 32 per host.
func NewNSClient(cfg *config.NSConfig) *NSClient {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 32
	transport.MaxIdleConnsPerHost = 32
	transport.MaxConnsPerHost = 32

	return &NSClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
	}
}

// ValidateConfig memeriksa konfigurasi NS sebelum dipakai
func (c *NSClient) ValidateConfig() error {
	if c.config.BaseURL == "" {
		return fmt.Errorf("ns_base_url is not set")
	}
	if c.config.SubscriptionKey == "" || c.config.SubscriptionKey == "<NS_API_KEY>" {
		return fmt.Errorf("ns_api subscription key is not set")
	}
	if c.config.Timeout <= 0 {
		return fmt.Errorf("ns_timeout must be positive")
	}
	return nil
}

// NSDeparture adalah satu elemen payload.departures dari NS.
type NSDeparture struct {
	Direction       string          `json:"direction"`
	Name            string          `json:"name"`
	PlannedDateTime string          `json:"plannedDateTime"`
	PlannedTrack    json.RawMessage `json:"plannedTrack"`
	TrainCategory   string          `json:"trainCategory"`
	Cancelled       bool            `json:"cancelled"`
}

type nsDeparturesResponse struct {
	Payload struct {
		Departures []NSDeparture `json:"departures"`
	} `json:"payload"`
}

type NSStation struct {
	UICCode json.Number `json:"UICCode"`
	Code    string      `json:"code"`
	Lat     float64     `json:"lat"`
	Lng     float64     `json:"lng"`
	Namen   struct {
		Lang   string `json:"lang"`
		Middel string `json:"middel"`
		Kort   string `json:"kort"`
	} `json:"namen"`
	StationType string `json:"stationType"`
	Land        string `json:"land"`
}

type nsStationsResponse struct {
	Payload []NSStation `json:"payload"`
}

// Departures mengambil daftar keberangkatan mentah untuk satu stasiun.
func (c *NSClient) Departures(ctx context.Context, dateTime time.Time, uicCode int64, maxJourneys int) ([]NSDeparture, error) {
	query := url.Values{}
	query.Set("uicCode", fmt.Sprintf("%d", uicCode))
	query.Set("maxJourneys", fmt.Sprintf("%d", maxJourneys))
	if !dateTime.IsZero() {
		query.Set("dateTime", utils.FormatNaive(dateTime))
	}

	var resp nsDeparturesResponse
	if err := c.get(ctx, nsDeparturesPath, query, &resp); err != nil {
		return nil, err
	}
	return resp.Payload.Departures, nil
}

// Stations mengambil seluruh stasiun dari NS.
func (c *NSClient) Stations(ctx context.Context) ([]NSStation, error) {
	var resp nsStationsResponse
	if err := c.get(ctx, nsStationsPath, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Payload, nil
}

func (c *NSClient) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(nsKeyHeader, c.config.SubscriptionKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, nsMaxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrUpstreamUnavailable, err)
	}

	utils.InfoLogger.Debugf("NS %s -> %d in %v", path, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: NS API returned HTTP %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUpstreamUnavailable, err)
	}
	return nil
}
