package usecase

import (
	"time"

	"wedding-marketplace/internal/data/repository"
	"wedding-marketplace/pkg/database"
	"wedding-marketplace/pkg/token"
	"wedding-marketplace/pkg/utils"

	"go.uber.org/zap"
)

// Dependencies are the collaborators shared by every service.
type Dependencies struct {
	Repo        *repository.Repository
	Tx          database.Transactor
	Tokens      *token.Manager
	Revocations token.RevocationStore
	Notifier    Notifier
	Config      *utils.Config
	Log         *zap.Logger
	// Clock defaults to time.Now.
	Clock func() time.Time
}

func (d Dependencies) notifier() Notifier {
	if d.Notifier == nil {
		return nopNotifier{}
	}
	return d.Notifier
}

func (d Dependencies) clock() func() time.Time {
	if d.Clock == nil {
		return time.Now
	}
	return d.Clock
}

type Service struct {
	Auth    AuthService
	Profile ProfileService
	Listing ListingService
	Booking BookingService
	Review  ReviewService
	Admin   AdminService
}

func NewService(deps Dependencies) *Service {
	return &Service{
		Auth:    NewAuthService(deps),
		Profile: NewProfileService(deps),
		Listing: NewListingService(deps),
		Booking: NewBookingService(deps),
		Review:  NewReviewService(deps),
		Admin:   NewAdminService(deps),
	}
}
