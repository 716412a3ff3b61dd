// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"consumer_reviews/internal/adapters/observability"
	"consumer_reviews/internal/app"
	"consumer_reviews/internal/domain"
)

const maxBodyBytes = 1 << 20

type Handlers struct {
	Reviews   *app.ReviewService
	Companies *app.CompanyService
	Verifier  TokenVerifier
	Throttle  *Throttle
}

type problem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Detail string              `json:"detail,omitempty"`
	Errors map[string][]string `json:"errors,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Get("/v1/companies", h.listCompanies)
	s.mux.Get("/v1/companies/{id}", h.getCompany)

	s.mux.Route("/v1/reviews", func(r chi.Router) {
		// identity is checked before anything else, including the 405s
		r.Use(RequireIdentity(h.Verifier))

		r.With(h.Throttle.Middleware).Post("/", h.createReview)
		r.Get("/", h.listReviews)
		r.Get("/{id}", h.getReview)

		collection := methodNotAllowed("GET, POST")
		r.Put("/", collection)
		r.Patch("/", collection)
		r.Delete("/", collection)

		item := methodNotAllowed("GET")
		r.Post("/{id}", item)
		r.Put("/{id}", item)
		r.Patch("/{id}", item)
		r.Delete("/{id}", item)
	})
}

func methodNotAllowed(allow string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		writeProblem(w, http.StatusMethodNotAllowed, "Method Not Allowed",
			fmt.Sprintf("Method %q not allowed.", r.Method), nil)
	}
}

func writeProblem(w http.ResponseWriter, status int, title, detail string, fields map[string][]string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	p := problem{Type: "about:blank", Title: title, Status: status, Detail: detail, Errors: fields}
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeProblem(w, http.StatusBadRequest, "Bad Request", "invalid input", ve.Fields)
	case errors.Is(err, domain.ErrUnauthenticated):
		writeProblem(w, http.StatusForbidden, "Forbidden", "Authentication credentials were not provided.", nil)
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "Not found.", nil)
	case errors.Is(err, domain.ErrThrottled):
		writeProblem(w, http.StatusTooManyRequests, "Too Many Requests", "Request was throttled.", nil)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Str("method", r.Method).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "", nil)
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		// Log but don't fail the whole response; return empty ETag and best-effort body.
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

// writeCacheable writes v as JSON with an ETag, answering 304 when the
// client already holds this version.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "", nil)
		return
	}
	// Vary on the token: the same URL renders differently per caller.
	w.Header().Set("Vary", "Authorization")
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write JSON body")
	}
}

// ---- companies ----

func (h *Handlers) listCompanies(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Companies.ListCompanies(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, cs)
}

func (h *Handlers) getCompany(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	c, err := h.Companies.GetCompany(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, c)
}

// ---- reviews ----

func (h *Handlers) createReview(w http.ResponseWriter, r *http.Request) {
	caller, _ := domain.IdentityFrom(r.Context())

	in, err := decodeNewReview(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rv, err := h.Reviews.Create(r.Context(), caller, in, clientIP(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	observability.ObserveReviewCreated(string(rv.Rating))

	w.Header().Set("Location", fmt.Sprintf("/v1/reviews/%d", rv.ID))
	writeJSON(w, http.StatusCreated, toFlat(rv))
}

// decodeNewReview reads the client-controlled fields. Anything else in the
// body, such as reviewer or ip_address, is ignored.
func decodeNewReview(r *http.Request) (domain.NewReview, error) {
	var in domain.NewReview
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		var te *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			// empty body: let validation report the missing fields
			return in, nil
		case errors.As(err, &te) && te.Field != "":
			msg := "Incorrect type."
			if te.Type != nil && te.Type.Kind() == reflect.String {
				msg = "Not a valid string."
			}
			return in, domain.FieldError(te.Field, msg)
		default:
			return in, domain.FieldError("non_field_errors", "JSON parse error - "+err.Error())
		}
	}
	return in, nil
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	caller, _ := domain.IdentityFrom(r.Context())

	q, err := parseReviewQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	rs, err := h.Reviews.List(r.Context(), caller, q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, renderReviews(rs, isTruthy(r.URL.Query().Get("nested"))))
}

func (h *Handlers) getReview(w http.ResponseWriter, r *http.Request) {
	caller, _ := domain.IdentityFrom(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	rv, err := h.Reviews.Retrieve(r.Context(), caller, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, renderReview(rv, isTruthy(r.URL.Query().Get("nested"))))
}

// parseReviewQuery reads the equality filters and ordering. Empty values
// are treated as absent.
func parseReviewQuery(r *http.Request) (domain.ReviewQuery, error) {
	qs := r.URL.Query()
	var q domain.ReviewQuery
	ve := domain.NewValidationError()

	parseID := func(name string) *int64 {
		v := strings.TrimSpace(qs.Get(name))
		if v == "" {
			return nil
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			ve.Add(name, "Select a valid choice. That choice is not one of the available choices.")
			return nil
		}
		return &n
	}
	q.CompanyID = parseID("company")
	q.ReviewerID = parseID("reviewer")

	if v := strings.TrimSpace(qs.Get("rating")); v != "" {
		rating, ok := domain.ParseRating(v)
		if !ok {
			ve.Add("rating", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", v))
		} else {
			q.Rating = &rating
		}
	}
	q.Ordering = domain.ParseOrdering(qs.Get("ordering"))

	if !ve.Empty() {
		return domain.ReviewQuery{}, ve
	}
	return q, nil
}
