package models

import (
	"decor/src/types"
	"time"
)

// Booking is the lifecycle record for a single decoration request.
// LastNotifiedStatus holds the last status a mail was sent for and is
// only ever written through the CAS claim in common.ClaimNotification.
type Booking struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	EventType string `json:"event_type"`
	Date      string `json:"date"`
	Location  string `json:"location"`
	Message   string `json:"message,omitempty"`

	Amount        int `json:"amount"`
	AdvanceAmount int `json:"advance_amount"`

	Status             types.BookingStatus `gorm:"default:PENDING" json:"status"`
	AdminNote          string              `json:"admin_note,omitempty"`
	PaymentScreenshot  string              `json:"payment_screenshot,omitempty"`
	LastNotifiedStatus string              `gorm:"default:''" json:"last_notified_status,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
