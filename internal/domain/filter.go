package domain

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// OwnedBy returns the reviews whose reviewer is owner.
func OwnedBy(rs []ReviewView, owner int64) []ReviewView {
	out := make([]ReviewView, 0, len(rs))
	for _, r := range rs {
		if r.ReviewerID == owner {
			out = append(out, r)
		}
	}
	return out
}

// FilterReviews applies q to rs in memory: ownership first, then the
// equality filters, then ordering. rs is not modified.
func FilterReviews(rs []ReviewView, q ReviewQuery) []ReviewView {
	owned := OwnedBy(rs, q.Owner)
	out := owned[:0]
	for _, r := range owned {
		if q.CompanyID != nil && r.CompanyID != *q.CompanyID {
			continue
		}
		if q.ReviewerID != nil && r.ReviewerID != *q.ReviewerID {
			continue
		}
		if q.Rating != nil && r.Rating != *q.Rating {
			continue
		}
		out = append(out, r)
	}
	SortReviews(out, q.EffectiveOrdering())
	return out
}

// SortReviews orders rs by the given fields. Text compares ignoring case
// and accents, like the MySQL utf8mb4_0900_ai_ci collation. A final id
// tie-break keeps the result deterministic.
func SortReviews(rs []ReviewView, order []OrderField) {
	// a Collator keeps internal buffers, one per call
	col := collate.New(language.Und, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(rs, func(i, j int) bool {
		for _, o := range order {
			c := compareField(col, rs[i], rs[j], o.Field)
			if c == 0 {
				continue
			}
			if o.Desc {
				return c > 0
			}
			return c < 0
		}
		return rs[i].ID < rs[j].ID
	})
}

func compareField(col *collate.Collator, a, b ReviewView, field string) int {
	switch field {
	case OrderID:
		return cmpInt(a.ID, b.ID)
	case OrderRating:
		return strings.Compare(string(a.Rating), string(b.Rating))
	case OrderTitle:
		return col.CompareString(a.Title, b.Title)
	case OrderSummary:
		return col.CompareString(a.Summary, b.Summary)
	case OrderIPAddress:
		return col.CompareString(a.IPAddress, b.IPAddress)
	case OrderSubmissionDate:
		return a.SubmittedAt.Compare(b.SubmittedAt)
	case OrderCompany:
		return cmpInt(a.CompanyID, b.CompanyID)
	case OrderReviewer:
		return cmpInt(a.ReviewerID, b.ReviewerID)
	}
	return 0
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
