package app

import (
	"context"
	"fmt"
	"time"

	"asili_experiences/internal/booking"
	"asili_experiences/internal/domain"
)

type QueryService struct {
	repo     domain.ExperienceRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewQueryService(r domain.ExperienceRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl, now: time.Now}
}

// WithClock overrides the validator clock; tests pin the same-day cutoff with it.
func (s *QueryService) WithClock(now func() time.Time) *QueryService {
	s.now = now
	return s
}

func (s *QueryService) GetExperience(ctx context.Context, id int64, lang string) (domain.ExperienceView, error) {
	key := fmt.Sprintf("experience:%d:%s", id, lang)
	var ev domain.ExperienceView
	if ok, _ := s.cache.Get(ctx, key, &ev); ok {
		return ev, nil
	}
	e, err := s.repo.GetExperience(ctx, id, lang)
	if err != nil {
		return domain.ExperienceView{}, err
	}
	_ = s.cache.Set(ctx, key, e, int(s.cacheTTL.Seconds()))
	return e, nil
}

func (s *QueryService) ListExperiences(ctx context.Context, q domain.ExperiencesQuery) (domain.ExperiencesPage, error) {
	return s.repo.ListExperiences(ctx, q)
}

// QuoteResult is what every booking surface renders: the localized
// experience, per-field validation state, and the running price. The
// breakdown is present even while the selection is invalid so the price
// keeps updating as the traveler edits the form.
type QuoteResult struct {
	Experience domain.ExperienceView `json:"experience"`
	Selection  booking.Selection     `json:"selection"`
	Validation booking.Result        `json:"validation"`
	CanProceed bool                  `json:"can_proceed"`
	Breakdown  *booking.Breakdown    `json:"breakdown,omitempty"`
}

// QuoteSelection validates and prices a selection against an experience.
// A premium option on an experience that only sells the standard tier is
// quietly treated as standard; the catalog decides what is on offer.
func (s *QueryService) QuoteSelection(ctx context.Context, id int64, lang string, sel booking.Selection) (QuoteResult, error) {
	ev, err := s.GetExperience(ctx, id, lang)
	if err != nil {
		return QuoteResult{}, err
	}
	sel.ExperienceID = id
	if !ev.PremiumOpt {
		sel.Option = booking.OptionStandard
	}

	rules := booking.Rules{Capacity: ev.Capacity, Now: s.now}
	res := rules.Validate(sel)

	out := QuoteResult{Experience: ev, Selection: sel, Validation: res, CanProceed: res.OK()}
	if sel.Adults >= 1 && sel.Children >= 0 {
		b := booking.Quote(ev.BasePrice, ev.ChildRule, sel.Option, sel.Adults, sel.Children)
		out.Breakdown = &b
	}
	return out, nil
}
