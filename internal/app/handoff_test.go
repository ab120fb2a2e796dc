package app_test

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"asili_experiences/internal/app"
	"asili_experiences/internal/booking"
)

type fakeStore struct {
	sel     booking.Selection
	has     bool
	err     error
	cleared bool
}

func (s *fakeStore) Save(ctx context.Context, sid string, sel booking.Selection) error {
	if s.err != nil {
		return s.err
	}
	s.sel, s.has = sel, true
	return nil
}
func (s *fakeStore) Load(ctx context.Context, sid string) (booking.Selection, bool, error) {
	return s.sel, s.has, s.err
}
func (s *fakeStore) Clear(ctx context.Context, sid string) error {
	s.has = false
	s.cleared = true
	return s.err
}

func TestHandoff_SaveThenLoad(t *testing.T) {
	st := &fakeStore{}
	h := app.NewHandoffService(st)
	ctx := context.Background()

	in := booking.Selection{ExperienceID: 12, Date: "2024-07-01", Adults: 2, Children: 1, Option: booking.OptionPremium}
	h.Save(ctx, "sess-1", in)

	out, fromStore := h.Load(ctx, "sess-1", 12, url.Values{})
	if !fromStore || out != in {
		t.Fatalf("expected stored selection, got fromStore=%v %+v", fromStore, out)
	}
}

func TestHandoff_QueryFallbackOnMiss(t *testing.T) {
	h := app.NewHandoffService(&fakeStore{})
	q := url.Values{"date": {"2024-07-01"}, "adults": {"3"}, "option": {"premium"}}

	out, fromStore := h.Load(context.Background(), "sess-1", 12, q)
	if fromStore {
		t.Fatal("expected query fallback")
	}
	if out.ExperienceID != 12 || out.Adults != 3 || out.Date != "2024-07-01" || out.Option != booking.OptionPremium {
		t.Fatalf("unexpected fallback selection: %+v", out)
	}
}

func TestHandoff_QueryFallbackOnDifferentExperience(t *testing.T) {
	st := &fakeStore{sel: booking.Selection{ExperienceID: 99, Adults: 5}, has: true}
	h := app.NewHandoffService(st)

	out, fromStore := h.Load(context.Background(), "sess-1", 12, url.Values{"adults": {"2"}})
	if fromStore || out.ExperienceID != 12 || out.Adults != 2 {
		t.Fatalf("expected fallback for mismatched experience, got fromStore=%v %+v", fromStore, out)
	}
}

func TestHandoff_SaveIsBestEffort(t *testing.T) {
	st := &fakeStore{err: errors.New("store down")}
	h := app.NewHandoffService(st)

	// Must not panic or surface the failure; Load degrades to query params.
	h.Save(context.Background(), "sess-1", booking.Selection{ExperienceID: 12, Adults: 1})
	out, fromStore := h.Load(context.Background(), "sess-1", 12, url.Values{})
	if fromStore || out.Adults != 1 {
		t.Fatalf("expected default fallback, got fromStore=%v %+v", fromStore, out)
	}
}
