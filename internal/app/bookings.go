package app

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"asili_experiences/internal/adapters/observability"
	"asili_experiences/internal/booking"
	"asili_experiences/internal/domain"
)

type BookingService struct {
	experiences domain.ExperienceRepository
	bookings    domain.BookingRepository
	handoff     *HandoffService
	events      domain.EventPublisher // nil when no broker is configured
	now         func() time.Time
}

func NewBookingService(exp domain.ExperienceRepository, b domain.BookingRepository, h *HandoffService, ev domain.EventPublisher) *BookingService {
	return &BookingService{experiences: exp, bookings: b, handoff: h, events: ev, now: time.Now}
}

func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

type BookingRequest struct {
	SessionID     string
	Selection     booking.Selection
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
}

// Create validates the request, prices it, and writes the booking with the
// partner/platform split recorded. Validation failures come back as field
// errors, not Go errors; only infrastructure problems return err.
func (s *BookingService) Create(ctx context.Context, req BookingRequest) (domain.Booking, booking.Result, error) {
	ev, err := s.experiences.GetExperience(ctx, req.Selection.ExperienceID, "en")
	if err != nil {
		return domain.Booking{}, booking.Result{}, err
	}

	sel := req.Selection
	if !ev.PremiumOpt {
		sel.Option = booking.OptionStandard
	}

	rules := booking.Rules{Capacity: ev.Capacity, Now: s.now}
	res := rules.Validate(sel)
	res = appendContactErrors(res, req)
	if !res.OK() {
		return domain.Booking{}, res, nil
	}

	price := booking.Quote(ev.BasePrice, ev.ChildRule, sel.Option, sel.Adults, sel.Children)
	b := domain.Booking{
		Reference:      uuid.NewString(),
		ExperienceID:   ev.ID,
		PartnerID:      ev.PartnerID,
		Date:           sel.Date,
		Adults:         sel.Adults,
		Children:       sel.Children,
		Option:         string(sel.Option),
		Subtotal:       price.Subtotal,
		PartnerAmount:  price.PartnerAmount,
		PlatformAmount: price.PlatformAmount,
		Currency:       ev.Currency,
		CustomerName:   strings.TrimSpace(req.CustomerName),
		CustomerEmail:  strings.TrimSpace(req.CustomerEmail),
		CustomerPhone:  req.CustomerPhone,
		CreatedAt:      s.now().UTC(),
	}
	id, err := s.bookings.InsertBooking(ctx, b)
	if err != nil {
		return domain.Booking{}, booking.Result{}, err
	}
	b.ID = id
	observability.ObserveBooking(b.Option)

	// The draft is done once the booking exists.
	if s.handoff != nil && req.SessionID != "" {
		s.handoff.Clear(ctx, req.SessionID)
	}

	if s.events != nil {
		evn := domain.BookingCreated{
			Reference:      b.Reference,
			ExperienceID:   b.ExperienceID,
			PartnerID:      b.PartnerID,
			Date:           b.Date,
			Participants:   b.Adults + b.Children,
			Subtotal:       b.Subtotal,
			PartnerAmount:  b.PartnerAmount,
			PlatformAmount: b.PlatformAmount,
			Currency:       b.Currency,
			CustomerEmail:  b.CustomerEmail,
		}
		if err := s.events.PublishBookingCreated(ctx, evn); err != nil {
			log.Warn().Err(err).Str("reference", b.Reference).Msg("booking event publish failed")
		}
	}
	return b, res, nil
}

func (s *BookingService) Get(ctx context.Context, reference string) (domain.Booking, error) {
	return s.bookings.GetBooking(ctx, reference)
}

func (s *BookingService) PartnerPayouts(ctx context.Context, partnerID int64) (domain.PayoutSummary, error) {
	return s.bookings.PartnerPayouts(ctx, partnerID)
}

func appendContactErrors(res booking.Result, req BookingRequest) booking.Result {
	if strings.TrimSpace(req.CustomerName) == "" {
		res.Errors = append(res.Errors, booking.FieldError{
			Field: "name", Code: "Required", Message: "your name is required",
		})
	}
	email := strings.TrimSpace(req.CustomerEmail)
	if email == "" || !strings.Contains(email, "@") {
		res.Errors = append(res.Errors, booking.FieldError{
			Field: "email", Code: "Required", Message: "a valid email is required",
		})
	}
	return res
}
