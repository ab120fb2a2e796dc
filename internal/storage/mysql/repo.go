package mysql

import (
	"context"
	"database/sql"
	"time"

	"asili_experiences/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
func valInt(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func valJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertExperience(ctx context.Context, e domain.Experience) error {
	_, err := r.db.ExecContext(ctx, upsertExperienceSQL,
		e.ID,
		e.PartnerID,
		e.BasePrice,
		e.ChildRule,
		e.PremiumOpt,
		valInt(e.Capacity),
		valInt(e.DurationMin),
		valStr(e.Country),
		valStr(e.Region),
		e.Currency,
		valJSON(e.RawJSON),
	)
	return err
}

func (r *Repo) UpsertI18n(ctx context.Context, i domain.ExperienceI18n) error {
	_, err := r.db.ExecContext(ctx, upsertI18nSQL,
		i.ExperienceID,
		i.Lang,
		valStr(i.Title),
		valStr(i.Description),
		valStr(i.Itinerary),
		valStr(i.MeetingPoint),
		valJSON(i.ExtrasJSON),
	)
	return err
}

func (r *Repo) LogMiss(ctx context.Context, id int64, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, id, status, reason)
	return err
}

func (r *Repo) GetExperience(ctx context.Context, id int64, lang string) (domain.ExperienceView, error) {
	row := r.db.QueryRowContext(ctx, getExperienceSQL, lang, id)

	var ev domain.ExperienceView
	var capacity, duration sql.NullInt64
	var country, region sql.NullString
	var title, desc, itin, meet sql.NullString

	if err := row.Scan(
		&ev.ID,
		&ev.PartnerID,
		&ev.BasePrice,
		&ev.ChildRule,
		&ev.PremiumOpt,
		&capacity,
		&duration,
		&country,
		&region,
		&ev.Currency,
		&title, &desc, &itin, &meet,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.ExperienceView{}, domain.ErrNotFound
		}
		return domain.ExperienceView{}, err
	}

	if capacity.Valid {
		c := int(capacity.Int64)
		ev.Capacity = &c
	}
	if duration.Valid {
		d := int(duration.Int64)
		ev.DurationMin = &d
	}
	ev.Country = nullStr(country)
	ev.Region = nullStr(region)
	ev.Title = nullStr(title)
	ev.Description = nullStr(desc)
	ev.Itinerary = nullStr(itin)
	ev.MeetingPoint = nullStr(meet)
	ev.Language = lang
	return ev, nil
}

func (r *Repo) ListExperiences(ctx context.Context, q domain.ExperiencesQuery) (domain.ExperiencesPage, error) {
	limit := q.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT e.id, e.partner_id, e.base_price, e.child_rule, e.premium_opt, e.capacity, e.country, e.currency, i.title
FROM experiences e
LEFT JOIN experience_i18n i ON i.experience_id = e.id AND i.lang = ?
WHERE (? IS NULL OR e.country = ?)
ORDER BY e.id
LIMIT ?`, q.Lang, valStr(q.Country), valStr(q.Country), limit)
	if err != nil {
		return domain.ExperiencesPage{}, err
	}
	defer rows.Close()

	var out []domain.ExperienceView
	for rows.Next() {
		var ev domain.ExperienceView
		var capacity sql.NullInt64
		var country, title sql.NullString
		if err := rows.Scan(&ev.ID, &ev.PartnerID, &ev.BasePrice, &ev.ChildRule, &ev.PremiumOpt,
			&capacity, &country, &ev.Currency, &title); err != nil {
			return domain.ExperiencesPage{}, err
		}
		if capacity.Valid {
			c := int(capacity.Int64)
			ev.Capacity = &c
		}
		ev.Country = nullStr(country)
		ev.Title = nullStr(title)
		ev.Language = q.Lang
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return domain.ExperiencesPage{}, err
	}
	return domain.ExperiencesPage{Items: out}, nil
}

func (r *Repo) InsertBooking(ctx context.Context, b domain.Booking) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.Reference,
		b.ExperienceID,
		b.PartnerID,
		b.Date,
		b.Adults,
		b.Children,
		b.Option,
		b.Subtotal,
		b.PartnerAmount,
		b.PlatformAmount,
		b.Currency,
		b.CustomerName,
		b.CustomerEmail,
		valStr(b.CustomerPhone),
		b.CreatedAt,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) GetBooking(ctx context.Context, reference string) (domain.Booking, error) {
	row := r.db.QueryRowContext(ctx, getBookingSQL, reference)

	var b domain.Booking
	var phone sql.NullString
	var bookingDate time.Time // DATE column; parseTime=true yields time.Time
	if err := row.Scan(
		&b.ID, &b.Reference, &b.ExperienceID, &b.PartnerID, &bookingDate,
		&b.Adults, &b.Children, &b.Option,
		&b.Subtotal, &b.PartnerAmount, &b.PlatformAmount, &b.Currency,
		&b.CustomerName, &b.CustomerEmail, &phone, &b.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return domain.Booking{}, domain.ErrNotFound
		}
		return domain.Booking{}, err
	}
	b.Date = bookingDate.Format("2006-01-02")
	b.CustomerPhone = nullStr(phone)
	return b, nil
}

func (r *Repo) PartnerPayouts(ctx context.Context, partnerID int64) (domain.PayoutSummary, error) {
	row := r.db.QueryRowContext(ctx, partnerPayoutsSQL, partnerID)

	out := domain.PayoutSummary{PartnerID: partnerID}
	if err := row.Scan(&out.Bookings, &out.Gross, &out.PartnerAmount, &out.PlatformAmount, &out.Currency); err != nil {
		return domain.PayoutSummary{}, err
	}
	return out, nil
}

func nullStr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
