package domain

// User is the single configured administrator; it has no table.
type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
