package httpserver

import (
	"strings"
	"time"

	"consumer_reviews/internal/domain"
)

// reviewFlat renders company and reviewer as bare ids.
type reviewFlat struct {
	ID             int64     `json:"id"`
	Rating         string    `json:"rating"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	IPAddress      string    `json:"ip_address"`
	SubmissionDate time.Time `json:"submission_date"`
	Company        int64     `json:"company"`
	Reviewer       int64     `json:"reviewer"`
}

type reviewerNested struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
}

type companyNested struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// reviewNested expands company and reviewer into full records.
type reviewNested struct {
	ID             int64          `json:"id"`
	Rating         string         `json:"rating"`
	Title          string         `json:"title"`
	Summary        string         `json:"summary"`
	IPAddress      string         `json:"ip_address"`
	SubmissionDate time.Time      `json:"submission_date"`
	Company        companyNested  `json:"company"`
	Reviewer       reviewerNested `json:"reviewer"`
}

func toFlat(r domain.Review) reviewFlat {
	return reviewFlat{
		ID:             r.ID,
		Rating:         string(r.Rating),
		Title:          r.Title,
		Summary:        r.Summary,
		IPAddress:      r.IPAddress,
		SubmissionDate: r.SubmittedAt.UTC(),
		Company:        r.CompanyID,
		Reviewer:       r.ReviewerID,
	}
}

func toNested(v domain.ReviewView) reviewNested {
	return reviewNested{
		ID:             v.ID,
		Rating:         string(v.Rating),
		Title:          v.Title,
		Summary:        v.Summary,
		IPAddress:      v.IPAddress,
		SubmissionDate: v.SubmittedAt.UTC(),
		Company:        companyNested{ID: v.CompanyID, Name: v.Company.Name},
		Reviewer: reviewerNested{
			ID:        v.ReviewerID,
			FirstName: v.Reviewer.FirstName,
			LastName:  v.Reviewer.LastName,
			Username:  v.Reviewer.Username,
			Email:     v.Reviewer.Email,
		},
	}
}

// renderReview picks the representation for one review.
func renderReview(v domain.ReviewView, nested bool) any {
	if nested {
		return toNested(v)
	}
	return toFlat(v.Review)
}

func renderReviews(vs []domain.ReviewView, nested bool) any {
	if nested {
		out := make([]reviewNested, 0, len(vs))
		for _, v := range vs {
			out = append(out, toNested(v))
		}
		return out
	}
	out := make([]reviewFlat, 0, len(vs))
	for _, v := range vs {
		out = append(out, toFlat(v.Review))
	}
	return out
}

// isTruthy interprets flag query values such as ?nested=True.
func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
