package domain

type Customer struct {
	ID        int64   `db:"id" json:"id"`
	Code      *string `db:"code" json:"code,omitempty"`
	Name      string  `db:"name" json:"name"`
	Phone     string  `db:"phone" json:"phone"`
	Email     *string `db:"email" json:"email,omitempty"`
	Address   string  `db:"address" json:"address"`
	Notes     string  `db:"notes" json:"notes"`
	JoinDate  *string `db:"join_date" json:"join_date,omitempty"`
	CreatedAt string  `db:"created_at" json:"created_at"`
	UpdatedAt string  `db:"updated_at" json:"updated_at"`
}
