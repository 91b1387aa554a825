package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/bike-reservation/config"
	"github.com/yeremiapane/bike-reservation/database"
	"github.com/yeremiapane/bike-reservation/models"
	"github.com/yeremiapane/bike-reservation/router"
	"github.com/yeremiapane/bike-reservation/services"
	"github.com/yeremiapane/bike-reservation/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupIntegrationRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db, ""))
	require.NoError(t, db.Create(&models.Station{UICCode: 8400530, StnCode: "RTD", Lat: 51.925, Lon: 4.46889, BikeCapacity: 20, StnName: "Rotterdam Centraal"}).Error)

	ns := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"payload":{"departures":[{"direction":"Utrecht Centraal","name":"NS  2845","plannedDateTime":"2020-10-01T10:12:00+0200","plannedTrack":"9","trainCategory":"IC","cancelled":false}]}}`))
	}))
	t.Cleanup(ns.Close)

	cfg := config.Default()
	cfg.Server.RateLimitRPS = 0
	cfg.NS.SubscriptionKey = "test-key"
	cfg.NS.BaseURL = ns.URL
	cfg.NS.Timeout = time.Second

	r := router.SetupRouter(router.Dependencies{
		Config:   &cfg,
		Store:    services.NewStore(db, cfg.Database.PoolSize, cfg.Database.AcquireTimeout),
		NSClient: services.NewNSClient(&cfg.NS),
	})
	return r, db
}

func call(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://bikes.example.org")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	}
	return w, response
}

// TestEndToEndIntegration menguji flow utama:
// create -> get -> list -> update -> list per user -> delete -> delete lagi.
func TestEndToEndIntegration(t *testing.T) {
	r, _ := setupIntegrationRouter(t)

	// 1. Create (tanpa trailing slash)
	w, response := call(t, r, http.MethodPost, "/reservation", map[string]interface{}{
		"timestamp":     "2020-10-01T09:00:00+02:00",
		"user":          "alice",
		"uiccode":       8400530,
		"reserve_start": "2020-10-01T10:00:00+02:00",
		"reserve_end":   "2020-10-01T11:00:00+02:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "https://bikes.example.org", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	id := uint(response["data"].(map[string]interface{})["reserve_id"].(float64))

	// 2. Get dengan dan tanpa trailing slash
	for _, path := range []string{fmt.Sprintf("/reservation/%d", id), fmt.Sprintf("/reservation/%d/", id)} {
		w, response = call(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "2020-10-01T10:00:00", data["reserve_start"])
	}

	// 3. List
	w, response = call(t, r, http.MethodGet, "/reservation/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 1)

	// 4. Update
	w, _ = call(t, r, http.MethodPut, fmt.Sprintf("/reservation/%d", id), map[string]interface{}{
		"timestamp":     "2020-10-02T09:00:00",
		"user":          "bob",
		"uiccode":       8400530,
		"reserve_start": "2020-10-02T10:00:00",
		"reserve_end":   "2020-10-02T12:00:00",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// 5. List per user
	w, response = call(t, r, http.MethodGet, "/user/bob", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, response["data"].([]interface{}), 1)
	w, response = call(t, r, http.MethodGet, "/user/alice/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, response["data"])

	// 6. Delete dua kali
	w, _ = call(t, r, http.MethodDelete, fmt.Sprintf("/reservation/%d/", id), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = call(t, r, http.MethodDelete, fmt.Sprintf("/reservation/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReadOnlyEndpoints(t *testing.T) {
	r, _ := setupIntegrationRouter(t)

	w, response := call(t, r, http.MethodGet, "/station", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stations := response["data"].([]interface{})
	require.Len(t, stations, 1)
	assert.Equal(t, "Rotterdam Centraal", stations[0].(map[string]interface{})["stnname"])

	w, response = call(t, r, http.MethodGet, "/ns_departures/?uic_code=8400530", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	departures := response["data"].([]interface{})
	require.Len(t, departures, 1)
	assert.Equal(t, "Utrecht Centraal", departures[0].(map[string]interface{})["direction"])

	w, response = call(t, r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", response["message"])

	w, _ = call(t, r, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSPreflightThroughRouter(t *testing.T) {
	r, _ := setupIntegrationRouter(t)

	req, err := http.NewRequest(http.MethodOptions, "/reservation/", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
