package domain

import "context"

type ReviewRepository interface {
	// Write paths
	InsertCompany(ctx context.Context, name string) (Company, error)
	UpsertUser(ctx context.Context, u User) error
	InsertReview(ctx context.Context, r Review) (Review, error)

	// Read paths
	GetCompany(ctx context.Context, id int64) (Company, error)
	ListCompanies(ctx context.Context) ([]Company, error)
	// GetReview returns ErrNotFound when the review does not exist or
	// belongs to someone other than owner.
	GetReview(ctx context.Context, id, owner int64) (ReviewView, error)
	ListReviews(ctx context.Context, q ReviewQuery) ([]ReviewView, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
