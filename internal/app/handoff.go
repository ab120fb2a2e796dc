package app

import (
	"context"
	"net/url"

	"github.com/rs/zerolog/log"

	"asili_experiences/internal/booking"
)

// HandoffService moves a selection from the listing surface to checkout.
// Writes are best-effort: a broken store must never block the traveler, so
// failures are logged and the caller proceeds. Reads fall back to URL query
// parameters, which every deep link carries anyway.
type HandoffService struct {
	store booking.SelectionStore
}

func NewHandoffService(store booking.SelectionStore) *HandoffService {
	return &HandoffService{store: store}
}

// Save retains the selection for the session. Last write wins.
func (s *HandoffService) Save(ctx context.Context, sessionID string, sel booking.Selection) {
	if err := s.store.Save(ctx, sessionID, sel); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("selection save failed; continuing without hand-off")
	}
}

// Load returns the stored selection for the experience, or hydrates one from
// query parameters when the store is empty, holds a different experience, or
// errors. The second return reports whether the store supplied it.
func (s *HandoffService) Load(ctx context.Context, sessionID string, experienceID int64, q url.Values) (booking.Selection, bool) {
	sel, ok, err := s.store.Load(ctx, sessionID)
	if err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("selection load failed; falling back to query parameters")
	}
	if err == nil && ok && sel.ExperienceID == experienceID {
		return sel, true
	}
	return booking.ParseSelection(experienceID, q), false
}

// Clear drops the stored selection, e.g. once checkout completes.
func (s *HandoffService) Clear(ctx context.Context, sessionID string) {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("session", sessionID).Msg("selection clear failed")
	}
}
