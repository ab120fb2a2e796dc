package mysql

const upsertExperienceSQL = `
INSERT INTO experiences
  (id, partner_id, base_price, child_rule, premium_opt, capacity, duration_min, country, region, currency, raw)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  partner_id   = VALUES(partner_id),
  base_price   = VALUES(base_price),
  child_rule   = VALUES(child_rule),
  premium_opt  = VALUES(premium_opt),
  capacity     = VALUES(capacity),
  duration_min = VALUES(duration_min),
  country      = VALUES(country),
  region       = VALUES(region),
  currency     = VALUES(currency),
  raw          = VALUES(raw),
  updated_at   = CURRENT_TIMESTAMP
`

const upsertI18nSQL = `
INSERT INTO experience_i18n
  (experience_id, lang, title, description, itinerary, meeting_point, extras)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title         = VALUES(title),
  description   = VALUES(description),
  itinerary     = VALUES(itinerary),
  meeting_point = VALUES(meeting_point),
  extras        = VALUES(extras)
`

const insertMissSQL = `
INSERT INTO catalog_misses (experience_id, status, reason) VALUES (?, ?, ?)
`

// Localized fields come from experience_i18n for the requested language.
const getExperienceSQL = `
SELECT
  e.id, e.partner_id, e.base_price, e.child_rule, e.premium_opt,
  e.capacity, e.duration_min, e.country, e.region, e.currency,
  i.title, i.description, i.itinerary, i.meeting_point
FROM experiences e
LEFT JOIN experience_i18n i ON i.experience_id = e.id AND i.lang = ?
WHERE e.id = ?
`

const insertBookingSQL = `
INSERT INTO bookings
  (reference, experience_id, partner_id, booking_date, adults, children, option_id,
   subtotal, partner_amount, platform_amount, currency,
   customer_name, customer_email, customer_phone, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const getBookingSQL = `
SELECT id, reference, experience_id, partner_id, booking_date, adults, children, option_id,
       subtotal, partner_amount, platform_amount, currency,
       customer_name, customer_email, customer_phone, created_at
FROM bookings
WHERE reference = ?
`

// The split amounts are stored per-booking, so the payout report is a plain
// aggregate and never re-derives the 90/10 split.
const partnerPayoutsSQL = `
SELECT COUNT(*),
       COALESCE(SUM(subtotal), 0),
       COALESCE(SUM(partner_amount), 0),
       COALESCE(SUM(platform_amount), 0),
       COALESCE(MAX(currency), 'KES')
FROM bookings
WHERE partner_id = ?
`
