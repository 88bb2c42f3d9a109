package common

import (
	"decor/src/models"
	"decor/src/types"
	"log"

	"gorm.io/gorm"
)

// transitions is the whole workflow: a booking is approved or denied,
// an approved booking gets paid, a paid booking gets confirmed.
// DENIED and CONFIRMED are terminal.
var transitions = map[types.BookingStatus][]types.BookingStatus{
	types.BOOKING_PENDING:  {types.BOOKING_APPROVED, types.BOOKING_DENIED},
	types.BOOKING_APPROVED: {types.BOOKING_PAID},
	types.BOOKING_PAID:     {types.BOOKING_CONFIRMED},
}

func CanTransition(from, to types.BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ApplyAmount clamps the total to zero and computes the advance the
// first time a positive total is saved. Once set the advance is never
// recomputed, even if an admin edits the total later.
func ApplyAmount(b *models.Booking, percent int) {
	if b.Amount < 0 {
		b.Amount = 0
	}
	if b.Amount > 0 && b.AdvanceAmount == 0 {
		b.AdvanceAmount = b.Amount * percent / 100
	}
}

// ApplyTransition moves a booking to target if the workflow allows it.
// An unreachable target is a no-op and reports changed=false; callers
// surface that as "0 updated", not as an error. Notifications are not
// sent here: the caller decides after the write has succeeded.
func ApplyTransition(tx *gorm.DB, id uint, target types.BookingStatus, percent int) (*models.Booking, bool, error) {
	var booking models.Booking
	if err := tx.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: id}).
		First(&booking).
		Error; err != nil {
		return nil, false, err
	}
	if !CanTransition(booking.Status, target) {
		log.Printf("Booking [%d]: transition %s -> %s not allowed, skipping\n", id, booking.Status, target)
		return &booking, false, nil
	}
	booking.Status = target
	ApplyAmount(&booking, percent)
	if err := tx.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: id}).
		Updates(map[string]any{
			"status":         booking.Status,
			"amount":         booking.Amount,
			"advance_amount": booking.AdvanceAmount,
		}).
		Error; err != nil {
		return nil, false, err
	}
	return &booking, true, nil
}

// ClaimNotification atomically marks status as notified for a booking.
// Only the caller that wins the claim may dispatch mail, so two
// near-simultaneous saves of the same status cannot double-send.
func ClaimNotification(dbh *gorm.DB, id uint, status types.BookingStatus) (bool, error) {
	res := dbh.
		Model(&models.Booking{}).
		Where("id = ? AND last_notified_status <> ?", id, string(status)).
		Update("last_notified_status", string(status))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
