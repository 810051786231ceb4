package response

import "wedding-marketplace/internal/data/entity"

type StatsResponse struct {
	Customers         int                           `json:"customers"`
	Providers         int                           `json:"providers"`
	ProvidersByStatus map[entity.ProviderStatus]int `json:"providers_by_status"`
	Services          int                           `json:"services"`
	Bookings          int                           `json:"bookings"`
	BookingsByStatus  map[entity.BookingStatus]int  `json:"bookings_by_status"`
	Reviews           int                           `json:"reviews"`
}

func StatsToResponse(s *entity.PlatformStats) StatsResponse {
	return StatsResponse{
		Customers:         s.Customers,
		Providers:         s.Providers,
		ProvidersByStatus: s.ProvidersByStatus,
		Services:          s.Services,
		Bookings:          s.Bookings,
		BookingsByStatus:  s.BookingsByStatus,
		Reviews:           s.Reviews,
	}
}
