package domain

// Company is a named entity reviews are submitted against.
type Company struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// User mirrors the externally authenticated identity so reviews can
// reference it and nested renderings can expand it.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

const CompanyNameMaxLen = 100
