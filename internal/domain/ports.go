package domain

import "context"

type ExperienceRepository interface {
	// Write paths
	UpsertExperience(ctx context.Context, e Experience) error
	UpsertI18n(ctx context.Context, i ExperienceI18n) error
	LogMiss(ctx context.Context, id int64, status int, reason string) error

	// Read paths
	GetExperience(ctx context.Context, id int64, lang string) (ExperienceView, error)
	ListExperiences(ctx context.Context, q ExperiencesQuery) (ExperiencesPage, error)
}

type BookingRepository interface {
	InsertBooking(ctx context.Context, b Booking) (int64, error)
	GetBooking(ctx context.Context, reference string) (Booking, error)
	PartnerPayouts(ctx context.Context, partnerID int64) (PayoutSummary, error)
}

type CatalogClient interface {
	GetExperience(ctx context.Context, id int64) (map[string]any, error)
	GetTranslation(ctx context.Context, id int64, lang string) (map[string]any, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type EventPublisher interface {
	PublishBookingCreated(ctx context.Context, ev BookingCreated) error
}

// Read models & queries
type ExperienceView struct {
	ID           int64
	PartnerID    int64
	BasePrice    int64
	ChildRule    bool
	PremiumOpt   bool
	Capacity     *int
	DurationMin  *int
	Country      *string
	Region       *string
	Currency     string
	Title        *string
	Description  *string
	Itinerary    *string
	MeetingPoint *string
	Language     string
}

type ExperiencesQuery struct {
	Lang    string
	Country *string
	Limit   int
}

type ExperiencesPage struct {
	Items []ExperienceView
}
