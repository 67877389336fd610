package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"
	"time"

	"github.com/shashiranjanraj/vitrine/app/catalog"
	"github.com/shashiranjanraj/vitrine/app/models"
	"github.com/shashiranjanraj/vitrine/pkg/collection"
	"github.com/shashiranjanraj/vitrine/pkg/notification"
	"github.com/shashiranjanraj/vitrine/pkg/storage"
)

// OrderSource is the slice of the catalog client the report service
// needs, extracted for tests.
type OrderSource interface {
	Orders(ctx context.Context, from, to time.Time) ([]models.Order, error)
}

var _ OrderSource = (*catalog.Client)(nil)

// ReportService aggregates upstream orders into sales reports for
// superadmins and exports them as CSV to the configured storage disk.
type ReportService struct {
	orders OrderSource
}

func NewReportService(orders OrderSource) *ReportService {
	return &ReportService{orders: orders}
}

// Sales builds the aggregate report for [from, to].
func (s *ReportService) Sales(ctx context.Context, from, to time.Time) (*models.SalesReport, error) {
	orders, err := s.orders.Orders(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &models.SalesReport{
		From:        from,
		To:          to,
		TotalOrders: len(orders),
	}
	for _, o := range orders {
		report.TotalRevenue += o.Total
		for _, l := range o.Lines {
			report.TotalUnits += l.Quantity
		}
	}
	if report.TotalOrders > 0 {
		report.AvgOrderValue = report.TotalRevenue / float64(report.TotalOrders)
	}

	byDay := collection.GroupBy(orders, func(o models.Order) string {
		return o.PlacedAt.Format("2006-01-02")
	})
	for day, dayOrders := range byDay {
		row := models.DailySales{
			Date:    day,
			Orders:  len(dayOrders),
			Revenue: collection.Sum(dayOrders, func(o models.Order) float64 { return o.Total }),
		}
		for _, o := range dayOrders {
			for _, l := range o.Lines {
				row.Units += l.Quantity
			}
		}
		report.Daily = append(report.Daily, row)
	}
	sort.Slice(report.Daily, func(i, j int) bool { return report.Daily[i].Date < report.Daily[j].Date })

	perProduct := map[int64]*models.ProductSales{}
	for _, o := range orders {
		for _, l := range o.Lines {
			row, ok := perProduct[l.ProductID]
			if !ok {
				row = &models.ProductSales{ProductID: l.ProductID, Name: l.ProductName}
				perProduct[l.ProductID] = row
			}
			row.Units += l.Quantity
			row.Revenue += l.Total
		}
	}
	for _, row := range perProduct {
		report.ByProduct = append(report.ByProduct, *row)
	}
	sort.Slice(report.ByProduct, func(i, j int) bool {
		return report.ByProduct[i].Revenue > report.ByProduct[j].Revenue
	})

	return report, nil
}

// ExportCSV renders the per-day breakdown as CSV, stores it on the
// default disk and returns its public URL. The ops channel gets a
// Slack notice when one is configured.
func (s *ReportService) ExportCSV(report *models.SalesReport) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	_ = w.Write([]string{"date", "orders", "units", "revenue"})
	for _, d := range report.Daily {
		_ = w.Write([]string{
			d.Date,
			fmt.Sprintf("%d", d.Orders),
			fmt.Sprintf("%d", d.Units),
			fmt.Sprintf("%.2f", d.Revenue),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("report: render csv: %w", err)
	}

	path := fmt.Sprintf("exports/sales-%s-%s.csv",
		report.From.Format("20060102"), report.To.Format("20060102"))
	if err := storage.Put(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("report: store csv: %w", err)
	}

	url := storage.URL(path)
	notification.SendAsync("", &ReportExportedNotice{
		URL:  url,
		Rows: len(report.Daily),
		Range: fmt.Sprintf("%s to %s",
			report.From.Format("2006-01-02"), report.To.Format("2006-01-02")),
	})
	return url, nil
}
