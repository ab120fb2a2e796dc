package booking

import (
	"fmt"
	"time"
)

// Error codes for field-scoped validation failures.
const (
	CodeMissingAdult        = "MissingAdult"
	CodeCapacityExceeded    = "CapacityExceeded"
	CodeMissingDate         = "MissingDate"
	CodePastDate            = "PastDate"
	CodeSameDayCutoffPassed = "SameDayCutoffPassed"
)

// Fields errors attach to. "participants" covers the combined adult+child
// count; "adults" and "date" map to their form controls.
const (
	FieldAdults       = "adults"
	FieldParticipants = "participants"
	FieldDate         = "date"
)

const dateLayout = "2006-01-02"

// Same-day bookings close at 11:00 East Africa Time regardless of where the
// traveler is browsing from.
const cutoffHour = 11

var eat = time.FixedZone("EAT", 3*60*60)

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result carries every failed rule; rules are evaluated independently so a
// form can light up all offending fields at once.
type Result struct {
	Errors []FieldError `json:"errors,omitempty"`
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

// Field returns the message for a field, or "" when the field is valid.
func (r Result) Field(name string) string {
	for _, e := range r.Errors {
		if e.Field == name {
			return e.Message
		}
	}
	return ""
}

func (r *Result) add(field, code, msg string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Code: code, Message: msg})
}

// Rules validates selections for one experience. Now is injected so the
// same-day cutoff is testable; nil Now means time.Now. The viewer's local
// calendar is taken from the location of the time Now returns.
type Rules struct {
	Capacity *int // nil = unlimited
	Now      func() time.Time
}

// Validate evaluates every rule and reports all failures. It is called on
// every mutation of the selection; there is no separate submit-time check.
func (ru Rules) Validate(sel Selection) Result {
	now := time.Now()
	if ru.Now != nil {
		now = ru.Now()
	}

	var res Result
	if sel.Adults < 1 {
		res.add(FieldAdults, CodeMissingAdult, "at least one adult is required")
	}
	if ru.Capacity != nil && sel.Adults+sel.Children > *ru.Capacity {
		res.add(FieldParticipants, CodeCapacityExceeded,
			fmt.Sprintf("this experience takes at most %d participants", *ru.Capacity))
	}

	if sel.Date == "" {
		res.add(FieldDate, CodeMissingDate, "choose a date for your visit")
		return res
	}
	d, err := time.ParseInLocation(dateLayout, sel.Date, now.Location())
	if err != nil {
		res.add(FieldDate, CodeMissingDate, "choose a valid date (YYYY-MM-DD)")
		return res
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case d.Before(today):
		res.add(FieldDate, CodePastDate, "that date has already passed")
	case d.Equal(today) && pastCutoff(now):
		res.add(FieldDate, CodeSameDayCutoffPassed,
			fmt.Sprintf("same-day bookings close at %d:00 EAT; pick a later date", cutoffHour))
	}
	return res
}

// pastCutoff reports whether the wall clock in East Africa Time has reached
// the same-day cutoff. 11:00:00 exactly is already closed.
func pastCutoff(now time.Time) bool {
	return now.In(eat).Hour() >= cutoffHour
}
