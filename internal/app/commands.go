package app

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"consumer_reviews/internal/domain"
)

// SeedService inserts companies directly; there is no public create path
// for them.
type SeedService struct {
	repo  domain.ReviewRepository
	cache domain.Cache
}

func NewSeedService(r domain.ReviewRepository, cache domain.Cache) *SeedService {
	return &SeedService{repo: r, cache: cache}
}

// SeedCompanies inserts one company per non-blank name and returns the
// created records in input order. Names are not deduplicated.
func (s *SeedService) SeedCompanies(ctx context.Context, names []string) ([]domain.Company, error) {
	out := make([]domain.Company, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if utf8.RuneCountInString(n) > domain.CompanyNameMaxLen {
			return out, domain.FieldError("name",
				fmt.Sprintf("Ensure this field has no more than %d characters.", domain.CompanyNameMaxLen))
		}
		c, err := s.repo.InsertCompany(ctx, n)
		if err != nil {
			return out, fmt.Errorf("insert company %q: %w", n, err)
		}
		// ids can be reused after the database is reset
		if s.cache != nil {
			_ = s.cache.Del(ctx, companyKey(c.ID))
		}
		out = append(out, c)
	}
	return out, nil
}
