package report

import (
	"math"
	"time"
)

// WindowDays is the length of the rolling comparison window
const WindowDays = 30

// Window is a half-open time range [From, To)
type Window struct {
	From time.Time
	To   time.Time
}

// ComparisonWindows returns the current [now-30d, now) and previous
// [now-60d, now-30d) windows.
func ComparisonWindows(now time.Time) (current, previous Window) {
	span := WindowDays * 24 * time.Hour
	current = Window{From: now.Add(-span), To: now}
	previous = Window{From: now.Add(-2 * span), To: now.Add(-span)}
	return current, previous
}

// PercentageChange computes round((cur - prev) / max(1, prev) * 100, 1).
// The denominator saturates at 1, so prev == 0 with N current yields N*100.
func PercentageChange(current, previous float64) float64 {
	denominator := math.Max(1, previous)
	return math.Round((current-previous)/denominator*100*10) / 10
}

// PercentageChanges groups the dashboard trends
type PercentageChanges struct {
	Views     float64
	Inquiries float64
	Messages  float64
	Orders    float64
	Stock     float64
	Revenue   float64
}

// Dashboard is the seller dashboard read model
type Dashboard struct {
	TotalInquiries    int64
	UnreadMessages    int64
	PendingOrders     int64
	ProductViews      int64
	LowStockAlerts    int64
	TodayOrderValue   float64
	PercentageChanges PercentageChanges
}

// PeriodCounts holds one window's raw counts
type PeriodCounts struct {
	Views       int64
	Inquiries   int64
	Messages    int64
	Orders      int64
	StockChange int64
	Revenue     float64
}

// Compare builds the percentage changes between two windows
func Compare(current, previous PeriodCounts) PercentageChanges {
	return PercentageChanges{
		Views:     PercentageChange(float64(current.Views), float64(previous.Views)),
		Inquiries: PercentageChange(float64(current.Inquiries), float64(previous.Inquiries)),
		Messages:  PercentageChange(float64(current.Messages), float64(previous.Messages)),
		Orders:    PercentageChange(float64(current.Orders), float64(previous.Orders)),
		Stock:     PercentageChange(float64(current.StockChange), float64(previous.StockChange)),
		Revenue:   PercentageChange(current.Revenue, previous.Revenue),
	}
}

// FunnelStage is one step of the engagement funnel
type FunnelStage struct {
	Stage string
	Count int64
}

// Funnel returns the views -> inquiries -> orders stages of a window
func Funnel(c PeriodCounts) []FunnelStage {
	return []FunnelStage{
		{Stage: "views", Count: c.Views},
		{Stage: "inquiries", Count: c.Inquiries},
		{Stage: "orders", Count: c.Orders},
	}
}
