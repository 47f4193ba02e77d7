package model

import "time"

// StatusCount is one row of the orders-by-status breakdown.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// KPIResponse aggregates dashboard metrics for the HLM view. Averages and
// ratios substitute zero when the underlying row set is empty.
type KPIResponse struct {
	TimeRangeStartDate      time.Time     `json:"time_range_start_date"`
	TimeRangeEndDate        time.Time     `json:"time_range_end_date"`
	TotalOrders             int64         `json:"total_orders"`
	OrdersByStatus          []StatusCount `json:"orders_by_status"`
	DeliveredOrders         int64         `json:"delivered_orders"`
	AvgCycleTimeMinutes     float64       `json:"avg_cycle_time_minutes"`
	LocationVerifiedRatio   float64       `json:"location_verified_ratio"`
	StaffCurrentlyClockedIn int64         `json:"staff_currently_clocked_in"`
	PendingTimeOffRequests  int64         `json:"pending_time_off_requests"`
}
