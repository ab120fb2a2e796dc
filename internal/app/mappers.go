package app

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"asili_experiences/internal/domain"
)

/********** alias registries (single source of truth) **********/

// Partner catalogs are inconsistent about field names; each canonical field
// lists the payload paths seen in the wild, tried in order.
var experienceAliases = map[string][]string{
	"partner":    {"partner_id", "partner.id", "organization_id", "org_id"},
	"base_price": {"base_price", "price", "adult_price", "price_per_person"},
	"child_rule": {"child_rule", "child_discount", "child_discount_enabled", "children_half_price"},
	"premium":    {"premium", "premium_option", "has_premium"},
	"capacity":   {"capacity", "max_participants", "group_size", "max_group_size"},
	"duration":   {"duration_minutes", "duration", "length_minutes"},
	"country":    {"country", "location.country", "country_code"},
	"region":     {"region", "area", "county", "location.region"},
	"currency":   {"currency", "currency_code", "price_currency"},
}

var i18nAliases = map[string][]string{
	"title":         {"title", "name", "translations.title"},
	"description":   {"description", "summary", "translations.description", "description_long"},
	"itinerary":     {"itinerary", "what_we_do", "program", "translations.itinerary"},
	"meeting_point": {"meeting_point", "meetingPoint", "where_to_meet", "translations.meeting_point"},
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) *string {
	for _, p := range aliases[key] {
		if s := lookupStr(m, p); s != "" {
			return &s
		}
	}
	return nil
}

// firstInt64Alias: int64 from the alias paths (float64/int/string payloads).
func firstInt64Alias(m map[string]any, aliases map[string][]string, key string) *int64 {
	for _, k := range aliases[key] {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int64(v)
			return &x
		case int:
			x := int64(v)
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return &n
			}
		}
	}
	return nil
}

// firstBoolAlias: bool from the alias paths; accepts true/"true"/1.
func firstBoolAlias(m map[string]any, aliases map[string][]string, key string) bool {
	for _, k := range aliases[key] {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case float64:
			return v != 0
		case string:
			if strings.EqualFold(strings.TrimSpace(v), "true") || v == "1" {
				return true
			}
		}
	}
	return false
}

/********** experience mapper **********/

func mapExperience(p map[string]any) domain.Experience {
	id := int64(0)
	if v := firstInt64Alias(p, map[string][]string{"id": {"experience_id", "id"}}, "id"); v != nil {
		id = *v
	}

	raw, err := json.Marshal(p)
	if err != nil {
		log.Error().Err(err).Str("context", "mapExperience").Msg("failed to marshal catalog payload")
	}

	e := domain.Experience{
		ID:         id,
		ChildRule:  firstBoolAlias(p, experienceAliases, "child_rule"),
		PremiumOpt: firstBoolAlias(p, experienceAliases, "premium"),
		Country:    firstNonEmptyAlias(p, experienceAliases, "country"),
		Region:     firstNonEmptyAlias(p, experienceAliases, "region"),
		Currency:   "KES",
		RawJSON:    raw,
	}
	if v := firstInt64Alias(p, experienceAliases, "partner"); v != nil {
		e.PartnerID = *v
	}
	if v := firstInt64Alias(p, experienceAliases, "base_price"); v != nil {
		e.BasePrice = *v
	}
	if v := firstInt64Alias(p, experienceAliases, "capacity"); v != nil && *v > 0 {
		c := int(*v)
		e.Capacity = &c
	}
	if v := firstInt64Alias(p, experienceAliases, "duration"); v != nil && *v > 0 {
		d := int(*v)
		e.DurationMin = &d
	}
	if cur := firstNonEmptyAlias(p, experienceAliases, "currency"); cur != nil {
		e.Currency = strings.ToUpper(*cur)
	}
	return e
}

func mapI18n(id int64, lang string, tr map[string]any) domain.ExperienceI18n {
	raw, err := json.Marshal(tr)
	if err != nil {
		log.Error().Err(err).Str("context", "mapI18n").Msg("failed to marshal translation payload")
	}
	return domain.ExperienceI18n{
		ExperienceID: id,
		Lang:         strings.ToLower(lang),
		Title:        firstNonEmptyAlias(tr, i18nAliases, "title"),
		Description:  firstNonEmptyAlias(tr, i18nAliases, "description"),
		Itinerary:    firstNonEmptyAlias(tr, i18nAliases, "itinerary"),
		MeetingPoint: firstNonEmptyAlias(tr, i18nAliases, "meeting_point"),
		ExtrasJSON:   raw,
	}
}
