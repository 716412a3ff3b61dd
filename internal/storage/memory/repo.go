// Package memory is a process-local ReviewRepository for development and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"consumer_reviews/internal/domain"
)

type Repo struct {
	mu        sync.RWMutex
	companies map[int64]domain.Company
	users     map[int64]domain.User
	reviews   map[int64]domain.Review
	nextCo    int64
	nextRv    int64
}

func New() *Repo {
	return &Repo{
		companies: map[int64]domain.Company{},
		users:     map[int64]domain.User{},
		reviews:   map[int64]domain.Review{},
	}
}

func (r *Repo) InsertCompany(ctx context.Context, name string) (domain.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextCo++
	c := domain.Company{ID: r.nextCo, Name: name}
	r.companies[c.ID] = c
	return c, nil
}

func (r *Repo) UpsertUser(ctx context.Context, u domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.companies[rv.CompanyID]; !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	if _, ok := r.users[rv.ReviewerID]; !ok {
		return domain.Review{}, domain.ErrNotFound
	}
	r.nextRv++
	rv.ID = r.nextRv
	r.reviews[rv.ID] = rv
	return rv, nil
}

func (r *Repo) GetCompany(ctx context.Context, id int64) (domain.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.companies[id]
	if !ok {
		return domain.Company{}, domain.ErrNotFound
	}
	return c, nil
}

func (r *Repo) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	r.mu.RLock()
	out := make([]domain.Company, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, c)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if c := strings.Compare(out[i].Name, out[j].Name); c != 0 {
			return c < 0
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *Repo) GetReview(ctx context.Context, id, owner int64) (domain.ReviewView, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rv, ok := r.reviews[id]
	if !ok || rv.ReviewerID != owner {
		return domain.ReviewView{}, domain.ErrNotFound
	}
	return r.view(rv), nil
}

func (r *Repo) ListReviews(ctx context.Context, q domain.ReviewQuery) ([]domain.ReviewView, error) {
	r.mu.RLock()
	all := make([]domain.ReviewView, 0, len(r.reviews))
	for _, rv := range r.reviews {
		all = append(all, r.view(rv))
	}
	r.mu.RUnlock()
	return domain.FilterReviews(all, q), nil
}

// view joins rv with its company and reviewer. Caller holds r.mu.
func (r *Repo) view(rv domain.Review) domain.ReviewView {
	return domain.ReviewView{
		Review:   rv,
		Company:  r.companies[rv.CompanyID],
		Reviewer: r.users[rv.ReviewerID],
	}
}
