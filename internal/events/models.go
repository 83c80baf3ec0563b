package events

import "time"

// Event is one calendar entry. Date is an ISO yyyy-mm-dd string and
// start/end are HH:MM strings; both sort correctly as text, which keeps
// the (date, start) ordering portable across postgres and sqlite.
type Event struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	OwnerEmail string    `gorm:"index;not null" json:"owner_email"`
	Title      string    `gorm:"not null" json:"title"`
	Date       string    `gorm:"not null" json:"date"`
	Start      *string   `json:"start"`
	End        *string   `json:"end"`
	Notes      *string   `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
