package models

import "time"

// Order is a completed order fetched from the upstream admin API for
// report aggregation. The storefront never creates orders itself.
type Order struct {
	ID       int64       `json:"id"`
	PlacedAt time.Time   `json:"placed_at"`
	Total    float64     `json:"total"`
	Lines    []OrderLine `json:"lines"`
}

type OrderLine struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Category    string  `json:"category"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Total       float64 `json:"total"`
}

// DailySales is one row of the per-day breakdown.
type DailySales struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Orders  int     `json:"orders"`
	Units   int     `json:"units"`
	Revenue float64 `json:"revenue"`
}

// ProductSales is one row of the per-product breakdown.
type ProductSales struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Units     int     `json:"units"`
	Revenue   float64 `json:"revenue"`
}

// SalesReport is the aggregate served to superadmins and exported as CSV.
type SalesReport struct {
	From          time.Time      `json:"from"`
	To            time.Time      `json:"to"`
	TotalOrders   int            `json:"total_orders"`
	TotalUnits    int            `json:"total_units"`
	TotalRevenue  float64        `json:"total_revenue"`
	AvgOrderValue float64        `json:"avg_order_value"`
	Daily         []DailySales   `json:"daily"`
	ByProduct     []ProductSales `json:"by_product"`
}
