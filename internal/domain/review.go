package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

const (
	TitleMaxLen     = 64
	SummaryMaxLen   = 10000
	IPAddressMaxLen = 45
)

// Rating is one of five fixed labels, "1" through "5".
type Rating string

const (
	Rating1 Rating = "1"
	Rating2 Rating = "2"
	Rating3 Rating = "3"
	Rating4 Rating = "4"
	Rating5 Rating = "5"
)

var Ratings = []Rating{Rating1, Rating2, Rating3, Rating4, Rating5}

func (r Rating) Valid() bool {
	switch r {
	case Rating1, Rating2, Rating3, Rating4, Rating5:
		return true
	}
	return false
}

// ParseRating accepts the label with surrounding whitespace.
func ParseRating(s string) (Rating, bool) {
	r := Rating(strings.TrimSpace(s))
	return r, r.Valid()
}

// UnmarshalJSON accepts both 5 and "5". Anything else is kept verbatim so
// validation can report it.
func (r *Rating) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*r = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*r = Rating(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		// booleans, objects and arrays become invalid labels
		*r = Rating(b)
		return nil
	}
	if i, err := n.Int64(); err == nil {
		*r = Rating(strconv.FormatInt(i, 10))
		return nil
	}
	*r = Rating(n.String())
	return nil
}

// Review is a rated, titled submission about a Company owned by its reviewer.
type Review struct {
	ID          int64
	Rating      Rating
	Title       string
	Summary     string
	IPAddress   string
	SubmittedAt time.Time
	CompanyID   int64
	ReviewerID  int64
}

// ReviewView is a Review joined with its company and reviewer records.
type ReviewView struct {
	Review
	Company  Company
	Reviewer User
}

// NewReview is the client-controlled part of a review.
type NewReview struct {
	Rating    Rating `json:"rating" validate:"required,rating"`
	Title     string `json:"title" validate:"required,max=64"`
	Summary   string `json:"summary" validate:"required,max=10000"`
	CompanyID int64  `json:"company" validate:"required"`

	// companyKind names the JSON kind of a company value that is not a pk.
	companyKind string
}

// UnmarshalJSON reads company as either 7 or "7". Any other kind leaves
// CompanyID unset and is reported by CompanyTypeError.
func (n *NewReview) UnmarshalJSON(b []byte) error {
	type plain NewReview
	var aux struct {
		plain
		Company json.RawMessage `json:"company"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*n = NewReview(aux.plain)
	n.CompanyID, n.companyKind = parsePK(aux.Company)
	return nil
}

// CompanyTypeError returns the message for a company value of the wrong
// kind, or "".
func (n NewReview) CompanyTypeError() string {
	if n.companyKind == "" {
		return ""
	}
	return "Incorrect type. Expected pk value, received " + n.companyKind + "."
}

// parsePK accepts an integer or a string holding one. It returns the kind
// of anything else.
func parsePK(raw json.RawMessage) (int64, string) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, "str"
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, "str"
		}
		return id, ""
	case 't', 'f':
		return 0, "bool"
	case '{':
		return 0, "dict"
	case '[':
		return 0, "list"
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, "float"
	}
	return id, ""
}
