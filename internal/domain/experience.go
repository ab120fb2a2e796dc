package domain

// Experience is a bookable conservation offering as stored from the partner
// catalog. Prices are integer minor units of the listing currency.
type Experience struct {
	ID          int64
	PartnerID   int64
	BasePrice   int64
	ChildRule   bool // children pay 50% of the adult unit price
	PremiumOpt  bool // a 1.3x premium tier is offered
	Capacity    *int // nil = unlimited
	DurationMin *int
	Country     *string
	Region      *string
	Currency    string // ISO 4217, "KES" for the current catalog
	RawJSON     []byte // full catalog payload
}

type ExperienceI18n struct {
	ExperienceID int64
	Lang         string // en|fr|sw
	Title        *string
	Description  *string
	Itinerary    *string
	MeetingPoint *string
	ExtrasJSON   []byte // full localized payload for future fields
}
