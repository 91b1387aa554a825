package Controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/bike-reservation/models"
	"github.com/yeremiapane/bike-reservation/services"
	"github.com/yeremiapane/bike-reservation/utils"
)

// setupTestStore menggunakan SQLite in-memory; satu koneksi fisik supaya
// semua query melihat database yang sama.
func setupTestStore(t *testing.T) *services.Store {
	t.Helper()
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Station{}, &models.Reservation{}))
	return services.NewStore(db, 3, 200*time.Millisecond)
}

func seedStations(t *testing.T, store *services.Store, codes ...int64) {
	t.Helper()
	for i, code := range codes {
		station := models.Station{
			UICCode:      code,
			StnCode:      fmt.Sprintf("S%d", i),
			Lat:          52.0 + float64(i)/10,
			Lon:          4.0 + float64(i)/10,
			BikeCapacity: 20,
			StnName:      fmt.Sprintf("Station %d", i),
		}
		require.NoError(t, store.DB().Create(&station).Error)
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), w.Body.String())
	}
	return w, response
}
