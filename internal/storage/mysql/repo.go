package mysql

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	gomysql "github.com/go-sql-driver/mysql"

	"consumer_reviews/internal/domain"
)

// MySQL error numbers the repo translates.
const (
	errNoReferencedRow = 1452
	errCheckViolated   = 3819
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) InsertCompany(ctx context.Context, name string) (domain.Company, error) {
	res, err := r.db.ExecContext(ctx, insertCompanySQL, name)
	if err != nil {
		return domain.Company{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Company{}, err
	}
	return domain.Company{ID: id, Name: name}, nil
}

func (r *Repo) UpsertUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, upsertUserSQL,
		u.ID,
		u.Username,
		u.Email,
		u.FirstName,
		u.LastName,
	)
	return err
}

func (r *Repo) InsertReview(ctx context.Context, rv domain.Review) (domain.Review, error) {
	res, err := r.db.ExecContext(ctx, insertReviewSQL,
		string(rv.Rating),
		rv.Title,
		rv.Summary,
		rv.IPAddress,
		rv.SubmittedAt.UTC(),
		rv.CompanyID,
		rv.ReviewerID,
	)
	if err != nil {
		var me *gomysql.MySQLError
		if errors.As(err, &me) {
			switch me.Number {
			case errNoReferencedRow:
				return domain.Review{}, domain.ErrNotFound
			case errCheckViolated:
				return domain.Review{}, domain.FieldError("rating", "\""+string(rv.Rating)+"\" is not a valid choice.")
			}
		}
		return domain.Review{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Review{}, err
	}
	rv.ID = id
	// DATETIME(6) keeps microseconds; match what a read would return
	rv.SubmittedAt = rv.SubmittedAt.UTC().Truncate(time.Microsecond)
	return rv, nil
}

func (r *Repo) GetCompany(ctx context.Context, id int64) (domain.Company, error) {
	var c domain.Company
	if err := r.db.QueryRowContext(ctx, getCompanySQL, id).Scan(&c.ID, &c.Name); err != nil {
		if err == sql.ErrNoRows {
			return domain.Company{}, domain.ErrNotFound
		}
		return domain.Company{}, err
	}
	return c, nil
}

func (r *Repo) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	rows, err := r.db.QueryContext(ctx, listCompaniesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Company{}
	for rows.Next() {
		var c domain.Company
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) GetReview(ctx context.Context, id, owner int64) (domain.ReviewView, error) {
	row := r.db.QueryRowContext(ctx,
		selectReviewViewSQL+"WHERE r.reviewer_id = ? AND r.id = ?", owner, id)
	rv, err := scanReviewView(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.ReviewView{}, domain.ErrNotFound
		}
		return domain.ReviewView{}, err
	}
	return rv, nil
}

func (r *Repo) ListReviews(ctx context.Context, q domain.ReviewQuery) ([]domain.ReviewView, error) {
	sqlStr, args := buildListReviews(q)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ReviewView{}
	for rows.Next() {
		rv, err := scanReviewView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// buildListReviews renders q as SQL. The owner predicate always comes first.
func buildListReviews(q domain.ReviewQuery) (string, []any) {
	where := []string{"r.reviewer_id = ?"}
	args := []any{q.Owner}
	if q.CompanyID != nil {
		where = append(where, "r.company_id = ?")
		args = append(args, *q.CompanyID)
	}
	if q.ReviewerID != nil {
		where = append(where, "r.reviewer_id = ?")
		args = append(args, *q.ReviewerID)
	}
	if q.Rating != nil {
		where = append(where, "r.rating = ?")
		args = append(args, string(*q.Rating))
	}

	order := make([]string, 0, len(q.EffectiveOrdering())+1)
	hasID := false
	for _, o := range q.EffectiveOrdering() {
		col, ok := orderColumns[o.Field]
		if !ok {
			continue
		}
		if o.Field == domain.OrderID {
			hasID = true
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		order = append(order, col+" "+dir)
	}
	if !hasID {
		order = append(order, "r.id ASC")
	}

	var b strings.Builder
	b.WriteString(selectReviewViewSQL)
	b.WriteString("WHERE ")
	b.WriteString(strings.Join(where, " AND "))
	b.WriteString("\nORDER BY ")
	b.WriteString(strings.Join(order, ", "))
	return b.String(), args
}

type scanner interface{ Scan(dest ...any) error }

func scanReviewView(s scanner) (domain.ReviewView, error) {
	var rv domain.ReviewView
	var rating string
	if err := s.Scan(
		&rv.ID,
		&rating,
		&rv.Title,
		&rv.Summary,
		&rv.IPAddress,
		&rv.SubmittedAt,
		&rv.CompanyID,
		&rv.ReviewerID,
		&rv.Company.Name,
		&rv.Reviewer.Username,
		&rv.Reviewer.Email,
		&rv.Reviewer.FirstName,
		&rv.Reviewer.LastName,
	); err != nil {
		return domain.ReviewView{}, err
	}
	rv.Rating = domain.Rating(rating)
	rv.SubmittedAt = rv.SubmittedAt.UTC()
	rv.Company.ID = rv.CompanyID
	rv.Reviewer.ID = rv.ReviewerID
	return rv, nil
}
