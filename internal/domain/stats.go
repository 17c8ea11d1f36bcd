package domain

import "time"

// CourierStats is the aggregation bundle for one courier. All counters are
// computed inside a single read-only transaction so the numbers are mutually
// consistent.
type CourierStats struct {
	TotalDeliveries     int64
	PendingDeliveries   int64 // status = processing
	CompletedDeliveries int64 // status = delivered
	TodayDeliveries     int64 // delivered, created since local midnight
	TotalEarnings       float64
	AverageRating       *float64       // nil until a rating is recorded
	AverageDeliveryTime *time.Duration // nil when nothing was delivered yet
	DeliveriesByStatus  []StatusCount
	RecentDeliveries    int64 // created within the trailing 7 days
	MonthlyDeliveries   []MonthlyCount
}

// StatusCount is one row of the per-status breakdown.
type StatusCount struct {
	Status OrderStatus
	Count  int64
}

// MonthlyCount is one row of the delivered-per-month breakdown.
// Month is truncated to the first day of the calendar month.
type MonthlyCount struct {
	Month time.Time
	Count int64
}
