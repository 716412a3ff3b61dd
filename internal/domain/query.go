package domain

import "strings"

// Fields a review listing may be ordered by.
const (
	OrderID             = "id"
	OrderRating         = "rating"
	OrderTitle          = "title"
	OrderSummary        = "summary"
	OrderIPAddress      = "ip_address"
	OrderSubmissionDate = "submission_date"
	OrderCompany        = "company"
	OrderReviewer       = "reviewer"
)

var orderableFields = map[string]struct{}{
	OrderID: {}, OrderRating: {}, OrderTitle: {}, OrderSummary: {},
	OrderIPAddress: {}, OrderSubmissionDate: {}, OrderCompany: {}, OrderReviewer: {},
}

type OrderField struct {
	Field string
	Desc  bool
}

// DefaultReviewOrdering is newest submission first.
var DefaultReviewOrdering = []OrderField{
	{Field: OrderSubmissionDate, Desc: true},
	{Field: OrderID, Desc: true},
}

// ParseOrdering reads a comma separated list such as "-rating,title".
// Unknown fields are dropped; duplicates keep their first position.
func ParseOrdering(raw string) []OrderField {
	var out []OrderField
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		desc := strings.HasPrefix(part, "-")
		name := strings.TrimPrefix(part, "-")
		if _, ok := orderableFields[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, OrderField{Field: name, Desc: desc})
	}
	return out
}

// ReviewQuery describes a review read. Owner is mandatory: every read is
// scoped to the requesting identity before anything else applies.
type ReviewQuery struct {
	Owner      int64
	CompanyID  *int64
	ReviewerID *int64
	Rating     *Rating
	Ordering   []OrderField
}

// EffectiveOrdering returns the requested ordering, or the default.
func (q ReviewQuery) EffectiveOrdering() []OrderField {
	if len(q.Ordering) == 0 {
		return DefaultReviewOrdering
	}
	return q.Ordering
}
