package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"asili_experiences/internal/domain"
)

var catalogLangs = []string{"en", "fr", "sw"}

type IngestionService struct {
	catalog domain.CatalogClient
	repo    domain.ExperienceRepository
	cache   domain.Cache
}

func NewIngestionService(c domain.CatalogClient, r domain.ExperienceRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{catalog: c, repo: r, cache: cache}
}

// IngestExperience pulls one experience and its translations from the
// partner catalog. 404 and 401/403 are recorded as misses and stop the run
// gracefully; anything else (network, 5xx, bad JSON) bubbles up so the
// worker can report it.
func (s *IngestionService) IngestExperience(ctx context.Context, id int64) error {
	p, err := s.catalog.GetExperience(ctx, id)
	if err != nil {
		low := strings.ToLower(err.Error())

		if errors.Is(err, domain.ErrNotFound) || strings.Contains(low, "not found") {
			_ = s.repo.LogMiss(ctx, id, 404, "not found")
			s.invalidateAllLangs(ctx, id)
			return nil
		}
		if strings.Contains(low, "forbidden") || strings.Contains(low, "unauthorized") {
			_ = s.repo.LogMiss(ctx, id, 403, "inactive")
			s.invalidateAllLangs(ctx, id)
			return nil
		}
		return err
	}

	if err := s.repo.UpsertExperience(ctx, mapExperience(p)); err != nil {
		return err
	}
	// A base-record change affects every language.
	s.invalidateAllLangs(ctx, id)

	for _, lang := range catalogLangs {
		tr, terr := s.catalog.GetTranslation(ctx, id, lang)
		if terr != nil {
			low := strings.ToLower(terr.Error())

			if errors.Is(terr, domain.ErrNotFound) || strings.Contains(low, "not found") {
				_ = s.repo.LogMiss(ctx, id, 404, "i18n:"+lang)
				s.invalidateLang(ctx, id, lang)
				continue
			}
			if strings.Contains(low, "forbidden") || strings.Contains(low, "unauthorized") {
				_ = s.repo.LogMiss(ctx, id, 403, "i18n:"+lang)
				s.invalidateLang(ctx, id, lang)
				continue
			}
			return terr
		}

		if err := s.repo.UpsertI18n(ctx, mapI18n(id, lang, tr)); err != nil {
			return err
		}
		s.invalidateLang(ctx, id, lang)
	}

	return nil
}

func (s *IngestionService) invalidateAllLangs(ctx context.Context, id int64) {
	for _, l := range catalogLangs {
		s.invalidateLang(ctx, id, l)
	}
}

func (s *IngestionService) invalidateLang(ctx context.Context, id int64, lang string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Del(ctx, fmt.Sprintf("experience:%d:%s", id, strings.ToLower(lang)))
}
