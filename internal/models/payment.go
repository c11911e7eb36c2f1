package models

import "time"

// Payment method names accepted on session creation.
const (
	PaymentCash   = "cash"
	PaymentOnline = "online"
)

// UserPayment records a user's latest payment-method preference. One row per
// user; exactly one of Cash/Online is true.
type UserPayment struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Cash      bool      `db:"cash" json:"cash"`
	Online    bool      `db:"online" json:"online"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
