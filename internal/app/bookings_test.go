package app_test

import (
	"context"
	"testing"

	"asili_experiences/internal/app"
	"asili_experiences/internal/booking"
	"asili_experiences/internal/domain"
)

type fakeBookings struct {
	inserted []domain.Booking
	payouts  domain.PayoutSummary
}

func (f *fakeBookings) InsertBooking(ctx context.Context, b domain.Booking) (int64, error) {
	f.inserted = append(f.inserted, b)
	return int64(len(f.inserted)), nil
}
func (f *fakeBookings) GetBooking(ctx context.Context, ref string) (domain.Booking, error) {
	for _, b := range f.inserted {
		if b.Reference == ref {
			return b, nil
		}
	}
	return domain.Booking{}, domain.ErrNotFound
}
func (f *fakeBookings) PartnerPayouts(ctx context.Context, partnerID int64) (domain.PayoutSummary, error) {
	return f.payouts, nil
}

type fakePublisher struct {
	events []domain.BookingCreated
	err    error
}

func (p *fakePublisher) PublishBookingCreated(ctx context.Context, ev domain.BookingCreated) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func validRequest() app.BookingRequest {
	return app.BookingRequest{
		SessionID: "sess-1",
		Selection: booking.Selection{
			ExperienceID: 12, Date: "2024-07-01", Adults: 2, Children: 1, Option: booking.OptionPremium,
		},
		CustomerName:  "Amina Odhiambo",
		CustomerEmail: "amina@example.com",
	}
}

func TestCreateBooking_PersistsSplitAndPublishes(t *testing.T) {
	repo := &fakeRepo{ev: safariView()}
	bks := &fakeBookings{}
	store := &fakeStore{sel: validRequest().Selection, has: true}
	pub := &fakePublisher{}
	svc := app.NewBookingService(repo, bks, app.NewHandoffService(store), pub).
		WithClock(clock(t, "2024-06-10T09:00:00+03:00"))

	b, res, err := svc.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !res.OK() {
		t.Fatalf("unexpected validation errors: %+v", res.Errors)
	}
	if b.Reference == "" || b.ID == 0 {
		t.Fatalf("missing identifiers: %+v", b)
	}
	if b.Subtotal != 1138 || b.PartnerAmount != 1024 || b.PlatformAmount != 114 {
		t.Fatalf("unexpected amounts: %+v", b)
	}
	if b.PartnerID != 3 || b.Currency != "KES" {
		t.Fatalf("unexpected partner/currency: %+v", b)
	}
	if !store.cleared {
		t.Fatal("expected hand-off selection cleared after booking")
	}
	if len(pub.events) != 1 || pub.events[0].Reference != b.Reference {
		t.Fatalf("expected one booking event, got %+v", pub.events)
	}
	if pub.events[0].PartnerAmount+pub.events[0].PlatformAmount != pub.events[0].Subtotal {
		t.Fatalf("split drift in event: %+v", pub.events[0])
	}
}

func TestCreateBooking_ValidationStopsPersist(t *testing.T) {
	repo := &fakeRepo{ev: safariView()}
	bks := &fakeBookings{}
	svc := app.NewBookingService(repo, bks, nil, nil).
		WithClock(clock(t, "2024-06-10T09:00:00+03:00"))

	req := validRequest()
	req.Selection.Adults = 0
	_, res, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.OK() || res.Field(booking.FieldAdults) == "" {
		t.Fatalf("expected adults error, got %+v", res.Errors)
	}
	if len(bks.inserted) != 0 {
		t.Fatal("invalid booking must not be persisted")
	}
}

func TestCreateBooking_ContactRequired(t *testing.T) {
	svc := app.NewBookingService(&fakeRepo{ev: safariView()}, &fakeBookings{}, nil, nil).
		WithClock(clock(t, "2024-06-10T09:00:00+03:00"))

	req := validRequest()
	req.CustomerName = "  "
	req.CustomerEmail = "not-an-email"
	_, res, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Field("name") == "" || res.Field("email") == "" {
		t.Fatalf("expected contact errors, got %+v", res.Errors)
	}
}

func TestCreateBooking_PublishFailureDoesNotFail(t *testing.T) {
	pub := &fakePublisher{err: context.DeadlineExceeded}
	svc := app.NewBookingService(&fakeRepo{ev: safariView()}, &fakeBookings{}, nil, pub).
		WithClock(clock(t, "2024-06-10T09:00:00+03:00"))

	b, res, err := svc.Create(context.Background(), validRequest())
	if err != nil || !res.OK() {
		t.Fatalf("booking should succeed despite broker failure: err=%v res=%+v", err, res.Errors)
	}
	if b.Reference == "" {
		t.Fatalf("missing reference: %+v", b)
	}
}

func TestCreateBooking_SameDayCutoff(t *testing.T) {
	svc := app.NewBookingService(&fakeRepo{ev: safariView()}, &fakeBookings{}, nil, nil).
		WithClock(clock(t, "2024-06-10T11:00:01+03:00"))

	req := validRequest()
	req.Selection.Date = "2024-06-10"
	_, res, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.Field(booking.FieldDate) == "" {
		t.Fatalf("expected cutoff error, got %+v", res.Errors)
	}
}
