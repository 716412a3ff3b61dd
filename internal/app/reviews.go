package app

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"consumer_reviews/internal/domain"
)

// ReviewService implements create/list/retrieve for reviews. Every read is
// scoped to the caller; there is no update or delete path.
type ReviewService struct {
	repo      domain.ReviewRepository
	companies *CompanyService
	now       func() time.Time
}

func NewReviewService(r domain.ReviewRepository, companies *CompanyService) *ReviewService {
	return &ReviewService{repo: r, companies: companies, now: time.Now}
}

// SetClock replaces the time source used for submission dates.
func (s *ReviewService) SetClock(now func() time.Time) { s.now = now }

// Create stores a review for caller. Reviewer, IP address and submission
// date are always taken from the request context, never from the payload.
func (s *ReviewService) Create(ctx context.Context, caller domain.Identity, in domain.NewReview, addr string) (domain.Review, error) {
	if caller.UserID <= 0 {
		return domain.Review{}, domain.ErrUnauthenticated
	}
	if err := ValidateNewReview(in); err != nil {
		return domain.Review{}, err
	}

	if _, err := s.companies.GetCompany(ctx, in.CompanyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Review{}, unknownCompany(in.CompanyID)
		}
		return domain.Review{}, fmt.Errorf("lookup company %d: %w", in.CompanyID, err)
	}

	if err := s.repo.UpsertUser(ctx, caller.User()); err != nil {
		return domain.Review{}, fmt.Errorf("upsert reviewer %d: %w", caller.UserID, err)
	}

	r, err := s.repo.InsertReview(ctx, domain.Review{
		Rating:      in.Rating,
		Title:       in.Title,
		Summary:     in.Summary,
		IPAddress:   clip(addr, domain.IPAddressMaxLen),
		SubmittedAt: s.now().UTC(),
		CompanyID:   in.CompanyID,
		ReviewerID:  caller.UserID,
	})
	if err != nil {
		// the company vanished between lookup and insert
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Review{}, unknownCompany(in.CompanyID)
		}
		return domain.Review{}, fmt.Errorf("insert review: %w", err)
	}

	log.Info().
		Int64("review_id", r.ID).
		Int64("reviewer", r.ReviewerID).
		Int64("company", r.CompanyID).
		Str("rating", string(r.Rating)).
		Msg("review created")
	return r, nil
}

// List returns the caller's reviews matching q. q.Owner is always replaced
// by the caller.
func (s *ReviewService) List(ctx context.Context, caller domain.Identity, q domain.ReviewQuery) ([]domain.ReviewView, error) {
	if caller.UserID <= 0 {
		return nil, domain.ErrUnauthenticated
	}
	q.Owner = caller.UserID
	rs, err := s.repo.ListReviews(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return rs, nil
}

// Retrieve returns one of the caller's reviews. A review owned by someone
// else is reported as domain.ErrNotFound, same as a missing one.
func (s *ReviewService) Retrieve(ctx context.Context, caller domain.Identity, id int64) (domain.ReviewView, error) {
	if caller.UserID <= 0 {
		return domain.ReviewView{}, domain.ErrUnauthenticated
	}
	rv, err := s.repo.GetReview(ctx, id, caller.UserID)
	if err != nil {
		return domain.ReviewView{}, err
	}
	return rv, nil
}

func unknownCompany(id int64) *domain.ValidationError {
	return domain.FieldError("company",
		fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(id)))
}

func clip(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
