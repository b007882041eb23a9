package reservation

import "time"

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Tables are numbered 1 through maxTable and assigned at random. The
// assignment is not checked against other reservations for the same slot;
// double-booking a table is a documented limitation.
const maxTable = 20

type Reservation struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Date            string    `json:"date"` // YYYY-MM-DD
	Time            string    `json:"time"` // HH:MM
	Guests          int       `json:"guests"`
	TableNumber     int       `json:"table_number"`
	SpecialRequests string    `json:"special_requests,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

func validStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}
