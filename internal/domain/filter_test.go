package domain_test

import (
	"reflect"
	"testing"
	"time"

	"pgregory.net/rapid"

	"consumer_reviews/internal/domain"
)

func TestParseOrdering(t *testing.T) {
	got := domain.ParseOrdering(" -rating , title,unknown,-rating,company")
	want := []domain.OrderField{
		{Field: "rating", Desc: true},
		{Field: "title"},
		{Field: "company"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v want %+v", got, want)
	}
	if got := domain.ParseOrdering(""); len(got) != 0 {
		t.Fatalf("expected no fields, got %+v", got)
	}
}

func view(id, owner, company int64, rating domain.Rating, at time.Time) domain.ReviewView {
	return domain.ReviewView{Review: domain.Review{
		ID: id, ReviewerID: owner, CompanyID: company, Rating: rating, SubmittedAt: at, Title: "t",
	}}
}

func TestFilterReviews_DefaultNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rs := []domain.ReviewView{
		view(1, 1, 1, domain.Rating5, base),
		view(2, 1, 1, domain.Rating4, base.Add(time.Hour)),
		view(3, 2, 1, domain.Rating3, base.Add(2*time.Hour)),
		view(4, 1, 2, domain.Rating4, base.Add(time.Hour)),
	}

	got := domain.FilterReviews(rs, domain.ReviewQuery{Owner: 1})
	ids := []int64{}
	for _, r := range got {
		ids = append(ids, r.ID)
	}
	// 2 and 4 share a timestamp; the id tie-break is descending by default
	if !reflect.DeepEqual(ids, []int64{4, 2, 1}) {
		t.Fatalf("unexpected order %v", ids)
	}

	four := domain.Rating4
	got = domain.FilterReviews(rs, domain.ReviewQuery{Owner: 1, Rating: &four, Ordering: domain.ParseOrdering("company")})
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 4 {
		t.Fatalf("unexpected filtered result %+v", got)
	}

	if rs[0].ID != 1 || rs[3].ID != 4 {
		t.Fatalf("input was reordered")
	}
}

// Every listed review belongs to the owner, whatever the filters say.
func TestFilterReviews_OnlyOwnerRows(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 40).Draw(t, "n")
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		rs := make([]domain.ReviewView, 0, n)
		for i := 0; i < n; i++ {
			rs = append(rs, view(
				int64(i+1),
				rapid.Int64Range(1, 4).Draw(t, "owner"),
				rapid.Int64Range(1, 3).Draw(t, "company"),
				rapid.SampledFrom(domain.Ratings).Draw(t, "rating"),
				base.Add(time.Duration(rapid.IntRange(0, 100).Draw(t, "minute"))*time.Minute),
			))
		}
		owner := rapid.Int64Range(1, 4).Draw(t, "caller")
		q := domain.ReviewQuery{Owner: owner}
		if rapid.Bool().Draw(t, "filterReviewer") {
			other := rapid.Int64Range(1, 4).Draw(t, "reviewer")
			q.ReviewerID = &other
		}
		if rapid.Bool().Draw(t, "filterCompany") {
			c := rapid.Int64Range(1, 3).Draw(t, "companyFilter")
			q.CompanyID = &c
		}
		q.Ordering = domain.ParseOrdering(rapid.SampledFrom([]string{"", "rating", "-id", "title,-submission_date"}).Draw(t, "ordering"))

		got := domain.FilterReviews(rs, q)

		owned := 0
		for _, r := range rs {
			if r.ReviewerID == owner {
				owned++
			}
		}
		if len(got) > owned {
			t.Fatalf("returned %d rows but caller owns %d", len(got), owned)
		}
		for _, r := range got {
			if r.ReviewerID != owner {
				t.Fatalf("review %d owned by %d leaked to %d", r.ID, r.ReviewerID, owner)
			}
			if q.CompanyID != nil && r.CompanyID != *q.CompanyID {
				t.Fatalf("company filter ignored")
			}
		}
		if q.ReviewerID != nil && *q.ReviewerID != owner && len(got) != 0 {
			t.Fatalf("filtering on another reviewer must return nothing")
		}
	})
}

func TestSortReviews_TitleIgnoresCaseAndAccents(t *testing.T) {
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	titled := func(id int64, title string) domain.ReviewView {
		v := view(id, 1, 1, domain.Rating5, at)
		v.Title = title
		return v
	}
	rs := []domain.ReviewView{
		titled(1, "banana"),
		titled(2, "Zebra"),
		titled(3, "apple"),
		titled(4, "Éclair"),
		titled(5, "Apple"),
	}
	domain.SortReviews(rs, domain.ParseOrdering("title"))

	var got []int64
	for _, r := range rs {
		got = append(got, r.ID)
	}
	// "apple" and "Apple" tie, so id decides
	want := []int64{3, 5, 1, 4, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}
