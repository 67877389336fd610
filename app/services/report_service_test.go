package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vitrine/app/models"
)

type fakeOrders struct {
	orders []models.Order
	err    error
}

func (f *fakeOrders) Orders(ctx context.Context, from, to time.Time) ([]models.Order, error) {
	return f.orders, f.err
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestSalesReportAggregation(t *testing.T) {
	src := &fakeOrders{orders: []models.Order{
		{
			ID: 1, PlacedAt: day("2026-08-01"), Total: 75,
			Lines: []models.OrderLine{
				{ProductID: 10, ProductName: "Shirt", Quantity: 3, UnitPrice: 25, Total: 75},
			},
		},
		{
			ID: 2, PlacedAt: day("2026-08-01"), Total: 9,
			Lines: []models.OrderLine{
				{ProductID: 11, ProductName: "Hat", Quantity: 1, UnitPrice: 9, Total: 9},
			},
		},
		{
			ID: 3, PlacedAt: day("2026-08-02"), Total: 50,
			Lines: []models.OrderLine{
				{ProductID: 10, ProductName: "Shirt", Quantity: 2, UnitPrice: 25, Total: 50},
			},
		},
	}}

	svc := NewReportService(src)
	report, err := svc.Sales(context.Background(), day("2026-08-01"), day("2026-08-31"))
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalOrders)
	assert.Equal(t, 6, report.TotalUnits)
	assert.Equal(t, 134.0, report.TotalRevenue)
	assert.InDelta(t, 44.67, report.AvgOrderValue, 0.01)

	require.Len(t, report.Daily, 2)
	assert.Equal(t, models.DailySales{Date: "2026-08-01", Orders: 2, Units: 4, Revenue: 84}, report.Daily[0])
	assert.Equal(t, models.DailySales{Date: "2026-08-02", Orders: 1, Units: 2, Revenue: 50}, report.Daily[1])

	require.Len(t, report.ByProduct, 2)
	assert.Equal(t, "Shirt", report.ByProduct[0].Name, "sorted by revenue descending")
	assert.Equal(t, 125.0, report.ByProduct[0].Revenue)
	assert.Equal(t, 5, report.ByProduct[0].Units)
}

func TestSalesReportEmptyRange(t *testing.T) {
	svc := NewReportService(&fakeOrders{})
	report, err := svc.Sales(context.Background(), day("2026-08-01"), day("2026-08-02"))
	require.NoError(t, err)

	assert.Zero(t, report.TotalOrders)
	assert.Zero(t, report.AvgOrderValue)
	assert.Empty(t, report.Daily)
}
