package domain

import "time"

// Booking is a confirmed reservation row. Partner and platform amounts are
// stored explicitly so payout reports never re-derive the split.
type Booking struct {
	ID             int64
	Reference      string // uuid handed to the traveler and the payment page
	ExperienceID   int64
	PartnerID      int64
	Date           string // YYYY-MM-DD
	Adults         int
	Children       int
	Option         string // standard|premium
	Subtotal       int64
	PartnerAmount  int64
	PlatformAmount int64
	Currency       string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  *string
	CreatedAt      time.Time
}

// PayoutSummary aggregates a partner's confirmed bookings.
type PayoutSummary struct {
	PartnerID      int64
	Bookings       int
	Gross          int64
	PartnerAmount  int64
	PlatformAmount int64
	Currency       string
}

// BookingCreated is the event published after a booking row is written.
// Downstream consumers (confirmation mailer, partner notifications) live
// outside this service.
type BookingCreated struct {
	Reference      string `json:"reference"`
	ExperienceID   int64  `json:"experience_id"`
	PartnerID      int64  `json:"partner_id"`
	Date           string `json:"date"`
	Participants   int    `json:"participants"`
	Subtotal       int64  `json:"subtotal"`
	PartnerAmount  int64  `json:"partner_amount"`
	PlatformAmount int64  `json:"platform_amount"`
	Currency       string `json:"currency"`
	CustomerEmail  string `json:"customer_email"`
}
