package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/bike-reservation/models"
	"github.com/yeremiapane/bike-reservation/utils"
)

func TestStationListPagination(t *testing.T) {
	store := setupTestStore(t, 3)
	seedStations(t, store, 8400005, 8400001, 8400004, 8400002, 8400003)
	svc := NewStationService(store)

	got, err := svc.List(context.Background(), utils.Pagination{Skip: 0, Take: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(8400001), got[0].UICCode)
	assert.Equal(t, int64(8400002), got[1].UICCode)

	got, err = svc.List(context.Background(), utils.Pagination{Skip: 4, Take: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(8400005), got[0].UICCode)
}

func TestStationUpsert(t *testing.T) {
	store := setupTestStore(t, 3)
	svc := NewStationService(store)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, []models.Station{
		{UICCode: 8400058, StnCode: "ASD", Lat: 52.37, Lon: 4.9, BikeCapacity: 20, StnName: "Amsterdam Centraal"},
		{UICCode: 8400170, StnCode: "DT", Lat: 52.0, Lon: 4.36, BikeCapacity: 20, StnName: "Delft"},
	})
	require.NoError(t, err)

	_, err = svc.Upsert(ctx, []models.Station{
		{UICCode: 8400058, StnCode: "ASD", Lat: 52.37, Lon: 4.9, BikeCapacity: 35, StnName: "Amsterdam Centraal"},
	})
	require.NoError(t, err)

	got, err := svc.List(ctx, utils.Pagination{Take: 10})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 35, got[0].BikeCapacity)
	assert.Equal(t, "Delft", got[1].StnName)

	n, err := svc.Upsert(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
