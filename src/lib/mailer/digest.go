package mailer

import (
	"fmt"
	"strings"

	"decor/src/config"
	"decor/src/lib"
	"decor/src/models"
)

// PendingDigest builds the periodic owner summary of bookings still
// waiting for a decision. Returns nil when there is nothing to report.
func PendingDigest(cfg *config.Config, bookings []models.Booking) *lib.SendMailInput {
	if len(bookings) == 0 {
		return nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "You have %d booking request(s) waiting for a decision.\n\n", len(bookings))
	for _, b := range bookings {
		fmt.Fprintf(&sb, "- #%d %s | %s on %s at %s | budget ₹%d\n",
			b.ID, b.Name, b.EventType, b.Date, b.Location, b.Amount)
	}
	fmt.Fprintf(&sb, "\nAdmin Panel: %s", adminLink(cfg))
	return newMessage(cfg, []string{cfg.OwnerEmail},
		fmt.Sprintf("Pending Bookings Digest (%d waiting)", len(bookings)),
		sb.String())
}
