package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"consumer_reviews/internal/domain"
)

const testSecret = "test-secret-key-for-unit-tests-32chars"

func TestIssueThenVerify(t *testing.T) {
	iss := NewIssuer(testSecret, "reviews-test", time.Hour)
	want := domain.Identity{UserID: 7, Username: "superuser", Email: "superuser@example.com", FirstName: "Super", LastName: "User"}

	tok, exp, err := iss.Issue(want)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry not in the future: %v", exp)
	}

	got, err := NewVerifier(testSecret, "reviews-test").Verify(tok)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != want {
		t.Fatalf("identity mismatch: got %+v want %+v", got, want)
	}
}

func TestVerify_Rejects(t *testing.T) {
	id := domain.Identity{UserID: 1, Username: "u"}
	good := NewIssuer(testSecret, "reviews-test", time.Hour)

	expired := NewIssuer(testSecret, "reviews-test", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	cases := []struct {
		name   string
		token  func() string
		issuer string
		want   error
	}{
		{"wrong secret", func() string {
			s, _, _ := NewIssuer("another-secret-entirely-32-chars!!", "reviews-test", time.Hour).Issue(id)
			return s
		}, "reviews-test", ErrInvalidToken},
		{"expired", func() string { s, _, _ := expired.Issue(id); return s }, "reviews-test", ErrTokenExpired},
		{"wrong issuer", func() string { s, _, _ := good.Issue(id); return s }, "someone-else", ErrInvalidToken},
		{"garbage", func() string { return "not.a.token" }, "", ErrInvalidToken},
		{"missing user id", func() string {
			s, _, _ := good.Issue(domain.Identity{Username: "anon"})
			return s
		}, "", ErrInvalidToken},
		{"none alg", func() string {
			s, _ := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
				UserID:           1,
				RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			}).SignedString(jwt.UnsafeAllowNoneSignatureType)
			return s
		}, "", ErrInvalidToken},
		{"no expiry", func() string {
			s, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 1}).SignedString([]byte(testSecret))
			return s
		}, "", ErrInvalidToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewVerifier(testSecret, tc.issuer).Verify(tc.token())
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]struct {
		tok string
		ok  bool
	}{
		"Bearer abc":  {"abc", true},
		"bearer abc":  {"abc", true},
		"Bearer ":     {"", false},
		"Token abc":   {"", false},
		"":            {"", false},
		"Bearerabc":   {"", false},
		"Bearer  abc": {"abc", true},
	}
	for in, want := range cases {
		tok, ok := BearerToken(in)
		if tok != want.tok || ok != want.ok {
			t.Errorf("BearerToken(%q) = %q,%v; want %q,%v", in, tok, ok, want.tok, want.ok)
		}
	}
}
