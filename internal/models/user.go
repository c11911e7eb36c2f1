package models

import "time"

// User is an account in the charging network.
type User struct {
	ID          int64      `db:"id" json:"id"`
	Name        string     `db:"name" json:"name"`
	Email       string     `db:"email" json:"email"`
	Phone       string     `db:"phone" json:"phone"`
	Street      string     `db:"street" json:"street"`
	City        string     `db:"city" json:"city"`
	PinCode     string     `db:"pin_code" json:"pin_code"`
	DateOfBirth *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
