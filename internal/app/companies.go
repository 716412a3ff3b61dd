package app

import (
	"context"
	"fmt"
	"time"

	"consumer_reviews/internal/domain"
)

// CompanyService reads companies through a cache. Companies are immutable
// once inserted, so cached entries are only dropped on expiry or seeding.
type CompanyService struct {
	repo     domain.ReviewRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCompanyService(r domain.ReviewRepository, c domain.Cache, ttl time.Duration) *CompanyService {
	return &CompanyService{repo: r, cache: c, cacheTTL: ttl}
}

func companyKey(id int64) string { return fmt.Sprintf("company:%d", id) }

func (s *CompanyService) GetCompany(ctx context.Context, id int64) (domain.Company, error) {
	key := companyKey(id)
	var c domain.Company
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &c); ok {
			return c, nil
		}
	}
	c, err := s.repo.GetCompany(ctx, id)
	if err != nil {
		return domain.Company{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, c, int(s.cacheTTL.Seconds()))
	}
	return c, nil
}

// ListCompanies returns every company ordered by name.
func (s *CompanyService) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	return s.repo.ListCompanies(ctx)
}
