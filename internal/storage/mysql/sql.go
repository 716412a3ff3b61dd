package mysql

const insertCompanySQL = `INSERT INTO companies (name) VALUES (?)`

const upsertUserSQL = `
INSERT INTO users
  (id, username, email, first_name, last_name)
VALUES
  (?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  username   = VALUES(username),
  email      = VALUES(email),
  first_name = VALUES(first_name),
  last_name  = VALUES(last_name)
`

const insertReviewSQL = `
INSERT INTO reviews
  (rating, title, summary, ip_address, submission_date, company_id, reviewer_id)
VALUES
  (?, ?, ?, ?, ?, ?, ?)
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const getCompanySQL = `SELECT id, name FROM companies WHERE id = ?`

const listCompaniesSQL = `SELECT id, name FROM companies ORDER BY name, id`

// Reviews joined with company and reviewer. Every read appends a WHERE
// clause that starts with the owner predicate.
const selectReviewViewSQL = `
SELECT
  r.id,
  r.rating,
  r.title,
  r.summary,
  r.ip_address,
  r.submission_date,
  r.company_id,
  r.reviewer_id,
  c.name,
  u.username,
  u.email,
  u.first_name,
  u.last_name
FROM reviews r
JOIN companies c ON c.id = r.company_id
JOIN users u     ON u.id = r.reviewer_id
`

var orderColumns = map[string]string{
	"id":              "r.id",
	"rating":          "r.rating",
	"title":           "r.title",
	"summary":         "r.summary",
	"ip_address":      "r.ip_address",
	"submission_date": "r.submission_date",
	"company":         "r.company_id",
	"reviewer":        "r.reviewer_id",
}
