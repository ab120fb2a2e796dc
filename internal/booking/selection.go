package booking

import (
	"net/url"
	"strconv"
)

// Selection is the traveler's editable draft for one experience. It lives in
// the hand-off store between the listing page and checkout and is discarded
// once a booking is created.
type Selection struct {
	ExperienceID int64  `json:"experience_id"`
	Date         string `json:"date"` // YYYY-MM-DD
	Adults       int    `json:"adults"`
	Children     int    `json:"children"`
	Option       Option `json:"option"`
}

// ParseSelection hydrates a selection from URL query parameters, the deep-link
// fallback when the hand-off store is empty. Unknown or malformed values fall
// back to the defaults (1 adult, 0 children, standard tier) rather than
// erroring; the validator decides what is actually bookable.
func ParseSelection(experienceID int64, q url.Values) Selection {
	sel := Selection{
		ExperienceID: experienceID,
		Date:         q.Get("date"),
		Adults:       1,
		Children:     0,
		Option:       OptionStandard,
	}
	if n, err := strconv.Atoi(q.Get("adults")); err == nil && n >= 0 {
		sel.Adults = n
	}
	if n, err := strconv.Atoi(q.Get("children")); err == nil && n >= 0 {
		sel.Children = n
	}
	if q.Get("option") == string(OptionPremium) {
		sel.Option = OptionPremium
	}
	return sel
}

// QueryValues encodes the selection back into query parameters for deep links.
// Symmetric with ParseSelection.
func (s Selection) QueryValues() url.Values {
	v := url.Values{}
	if s.Date != "" {
		v.Set("date", s.Date)
	}
	v.Set("adults", strconv.Itoa(s.Adults))
	v.Set("children", strconv.Itoa(s.Children))
	v.Set("option", string(s.Option))
	return v
}

// Participants is the combined head count checked against capacity.
func (s Selection) Participants() int { return s.Adults + s.Children }
