package entity

// PlatformStats is the admin dashboard summary.
type PlatformStats struct {
	Customers         int
	Providers         int
	ProvidersByStatus map[ProviderStatus]int
	Services          int
	Bookings          int
	BookingsByStatus  map[BookingStatus]int
	Reviews           int
}
