package models

// RoomOccupancy is one row of the occupancy breakdown: how many rooms of a
// type are in a given status, with their combined nightly rate.
type RoomOccupancy struct {
	RoomType       RoomType   `json:"room_type"`
	Status         RoomStatus `json:"status"`
	RoomCount      int        `json:"room_count"`
	TotalRateCents int64      `json:"total_rate_cents"`
}

// RevenueByType is one row of the revenue breakdown by room type.
type RevenueByType struct {
	RoomType     RoomType `json:"room_type"`
	BillCount    int      `json:"bill_count"`
	TotalNights  int      `json:"total_nights"`
	RevenueCents int64    `json:"revenue_cents"`
}

// ReportSummary aggregates the management report in one shot.
type ReportSummary struct {
	TotalRooms           int                       `json:"total_rooms"`
	OccupiedRooms        int                       `json:"occupied_rooms"`
	AvailableRooms       int                       `json:"available_rooms"`
	OccupancyRate        float64                   `json:"occupancy_rate"`
	Occupancy            []RoomOccupancy           `json:"occupancy"`
	TotalRevenueCents    int64                     `json:"total_revenue_cents"`
	RevenueByType        []RevenueByType           `json:"revenue_by_type"`
	TotalBills           int                       `json:"total_bills"`
	TotalReservations    int                       `json:"total_reservations"`
	ActiveReservations   int                       `json:"active_reservations"`
	ReservationsByStatus map[ReservationStatus]int `json:"reservations_by_status"`
	AvailableByType      map[RoomType]int          `json:"available_by_type"`
}
