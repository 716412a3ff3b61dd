package mysql

import (
	"strings"
	"testing"

	"consumer_reviews/internal/domain"
)

func TestBuildListReviews_OwnerPredicateFirst(t *testing.T) {
	company := int64(3)
	reviewer := int64(9)
	rating := domain.Rating4
	sqlStr, args := buildListReviews(domain.ReviewQuery{
		Owner:      7,
		CompanyID:  &company,
		ReviewerID: &reviewer,
		Rating:     &rating,
	})

	where := sqlStr[strings.Index(sqlStr, "WHERE "):]
	if !strings.HasPrefix(where, "WHERE r.reviewer_id = ? AND r.company_id = ? AND r.reviewer_id = ? AND r.rating = ?") {
		t.Fatalf("unexpected where clause: %s", where)
	}
	if len(args) != 4 || args[0] != int64(7) || args[1] != int64(3) || args[2] != int64(9) || args[3] != "4" {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestBuildListReviews_DefaultOrderNewestFirst(t *testing.T) {
	sqlStr, args := buildListReviews(domain.ReviewQuery{Owner: 1})
	if !strings.HasSuffix(sqlStr, "ORDER BY r.submission_date DESC, r.id DESC") {
		t.Fatalf("unexpected order: %s", sqlStr)
	}
	if len(args) != 1 {
		t.Fatalf("expected only the owner arg, got %#v", args)
	}
}

func TestBuildListReviews_RequestedOrderGetsIDTieBreak(t *testing.T) {
	sqlStr, _ := buildListReviews(domain.ReviewQuery{
		Owner:    1,
		Ordering: domain.ParseOrdering("rating,-company,bogus"),
	})
	if !strings.HasSuffix(sqlStr, "ORDER BY r.rating ASC, r.company_id DESC, r.id ASC") {
		t.Fatalf("unexpected order: %s", sqlStr)
	}
}
