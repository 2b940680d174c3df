package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantnet_back_end/internal/models"
)

func TestBuildOrderStats(t *testing.T) {
	day1 := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	day2 := time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC)

	orders := []models.Order{
		{Quantity: 1, Price: 10, CreatedAt: day1},
		{Quantity: 2, Price: 20, CreatedAt: day1.Add(3 * time.Hour)},
		{Quantity: 1, Price: 30, CreatedAt: day2},
	}

	totalRevenue, series := buildOrderStats(orders)

	assert.Equal(t, 60.0, totalRevenue)
	require.Len(t, series, 2)

	// Du plus récent au plus ancien.
	assert.Equal(t, "2025-03-11", series[0].Date)
	assert.Equal(t, 1, series[0].Quantity)
	assert.Equal(t, 30.0, series[0].Price)
	assert.Equal(t, 1, series[0].Orders)

	assert.Equal(t, "2025-03-10", series[1].Date)
	assert.Equal(t, 3, series[1].Quantity)
	assert.Equal(t, 30.0, series[1].Price)
	assert.Equal(t, 2, series[1].Orders)
}

func TestBuildOrderStatsEmpty(t *testing.T) {
	totalRevenue, series := buildOrderStats(nil)
	assert.Zero(t, totalRevenue)
	assert.Empty(t, series)
}
