package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"consumer_reviews/internal/domain"
	"consumer_reviews/internal/storage/memory"
)

func TestRepo_ListCompaniesAlphabetical(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	for _, n := range []string{"Zeta", "Acme", "Midway"} {
		if _, err := repo.InsertCompany(ctx, n); err != nil {
			t.Fatalf("InsertCompany: %v", err)
		}
	}
	cs, _ := repo.ListCompanies(ctx)
	if len(cs) != 3 || cs[0].Name != "Acme" || cs[1].Name != "Midway" || cs[2].Name != "Zeta" {
		t.Fatalf("unexpected order: %+v", cs)
	}
}

func TestRepo_ReviewsScopedToOwner(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	c, _ := repo.InsertCompany(ctx, "Company X")
	_ = repo.UpsertUser(ctx, domain.User{ID: 1, Username: "u1"})
	_ = repo.UpsertUser(ctx, domain.User{ID: 2, Username: "u2"})

	mine, err := repo.InsertReview(ctx, domain.Review{
		Rating: domain.Rating5, Title: "mine", CompanyID: c.ID, ReviewerID: 1, SubmittedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("InsertReview: %v", err)
	}
	theirs, _ := repo.InsertReview(ctx, domain.Review{
		Rating: domain.Rating1, Title: "theirs", CompanyID: c.ID, ReviewerID: 2, SubmittedAt: time.Now(),
	})

	got, _ := repo.ListReviews(ctx, domain.ReviewQuery{Owner: 1})
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("expected only own review, got %+v", got)
	}
	if got[0].Company.Name != "Company X" || got[0].Reviewer.Username != "u1" {
		t.Fatalf("view not joined: %+v", got[0])
	}

	if _, err := repo.GetReview(ctx, theirs.ID, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetReview(ctx, 404, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_InsertReviewRequiresReferences(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	_ = repo.UpsertUser(ctx, domain.User{ID: 1})
	if _, err := repo.InsertReview(ctx, domain.Review{CompanyID: 42, ReviewerID: 1}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown company, got %v", err)
	}
	c, _ := repo.InsertCompany(ctx, "C")
	if _, err := repo.InsertReview(ctx, domain.Review{CompanyID: c.ID, ReviewerID: 99}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown reviewer, got %v", err)
	}
}
