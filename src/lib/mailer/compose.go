package mailer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"decor/src/config"
	"decor/src/invoice"
	"decor/src/lib"
	"decor/src/models"
	"decor/src/types"
)

// Compose maps a (booking, status) pair to the outbound messages for
// that status change. Render or attachment problems degrade to sending
// without the attachment; composition itself never fails.
func Compose(cfg *config.Config, b *models.Booking, status types.BookingStatus) []*lib.SendMailInput {
	switch status {
	case types.BOOKING_PENDING:
		return []*lib.SendMailInput{
			newMessage(cfg, []string{cfg.OwnerEmail},
				"New Booking Request (PENDING)",
				fmt.Sprintf(
					"New booking received.\n\n"+
						"Name: %s\nPhone: %s\nEmail: %s\nEvent: %s\nDate: %s\nLocation: %s\nBudget: ₹%d\nMessage: %s\n\n"+
						"Status: PENDING\nAdmin Panel: %s",
					b.Name, b.Phone, b.Email, b.EventType, b.Date, b.Location, b.Amount, b.Message, adminLink(cfg))),
			newMessage(cfg, []string{b.Email},
				fmt.Sprintf("Booking Received - %s", cfg.BusinessName),
				fmt.Sprintf(
					"Hi %s,\n\nYour booking request has been received.\nCurrent Status: PENDING\n\n"+
						"We will review and approve it soon.\n\nThanks,\n%s",
					b.Name, cfg.BusinessName)),
		}
	case types.BOOKING_APPROVED:
		return []*lib.SendMailInput{
			newMessage(cfg, []string{b.Email},
				"Booking Approved - Advance Payment Required",
				fmt.Sprintf(
					"Hi %s,\n\nGood news! Your booking has been APPROVED.\n\n"+
						"Booking Details:\n- Event Type: %s\n- Date: %s\n- Location: %s\n- Total Budget: ₹%d\n- Advance Amount: ₹%d\n\n"+
						"Payment Method: UPI / PhonePe / GooglePay\nUPI ID: %s\n\n"+
						"Payment Link (upload your screenshot here):\n%s\n\n"+
						"After paying, please upload the payment screenshot from the link above.\n"+
						"Once we verify the payment, your booking will be CONFIRMED.\n\n"+
						"Thanks,\n%s\n%s",
					b.Name, b.EventType, b.Date, b.Location, b.Amount, b.AdvanceAmount,
					cfg.UPIID, paymentLink(cfg, b.ID), cfg.BusinessName, cfg.BusinessCity)),
		}
	case types.BOOKING_PAID:
		owner := newMessage(cfg, []string{cfg.OwnerEmail},
			fmt.Sprintf("Payment Screenshot Uploaded - Booking #%d", b.ID),
			fmt.Sprintf(
				"Client has uploaded a payment screenshot.\n\n"+
					"Booking Details:\nName: %s\nPhone: %s\nEmail: %s\nEvent: %s\nDate: %s\nLocation: %s\n\n"+
					"Total Amount: ₹%d\nAdvance Amount: ₹%d\n\n"+
					"Status: PAID (waiting for confirmation)\nAdmin Panel: %s",
				b.Name, b.Phone, b.Email, b.EventType, b.Date, b.Location,
				b.Amount, b.AdvanceAmount, adminLink(cfg)))
		if p := screenshotPath(cfg, b); p != "" {
			owner.Attachments = append(owner.Attachments, p)
		}
		customer := newMessage(cfg, []string{b.Email},
			"Payment Uploaded - Waiting for Confirmation",
			fmt.Sprintf(
				"Hi %s,\n\nYour payment screenshot has been received.\n"+
					"We will verify it and confirm your booking soon.\n\n"+
					"Booking ID: %d\n\nThanks,\n%s",
				b.Name, b.ID, cfg.BusinessName))
		return []*lib.SendMailInput{owner, customer}
	case types.BOOKING_CONFIRMED:
		var attachments []string
		pdfPath, err := invoice.Render(b, cfg)
		if err != nil {
			log.Printf("[mailer] invoice render failed for Booking [%d]: %s\n", b.ID, err.Error())
		} else {
			attachments = append(attachments, pdfPath)
		}
		customer := newMessage(cfg, []string{b.Email},
			"Booking Confirmed (Invoice Attached)",
			fmt.Sprintf(
				"Hi %s,\n\nCongratulations! Your booking is now CONFIRMED.\n\n"+
					"Booking Details:\n- Event Type: %s\n- Date: %s\n- Location: %s\n- Total Amount: ₹%d\n- Advance Paid: ₹%d\n\n"+
					"Your invoice is attached to this email.\n\nThanks for choosing %s!",
				b.Name, b.EventType, b.Date, b.Location, b.Amount, b.AdvanceAmount, cfg.BusinessName),
			attachments...)
		owner := newMessage(cfg, []string{cfg.OwnerEmail},
			fmt.Sprintf("Booking Confirmed - Booking #%d", b.ID),
			fmt.Sprintf(
				"Booking CONFIRMED.\n\n"+
					"Booking Details:\n- Booking ID: %d\n- Name: %s\n- Phone: %s\n- Email: %s\n- Event Type: %s\n- Date: %s\n- Location: %s\n- Total Amount: ₹%d\n- Advance Paid: ₹%d\n\n"+
					"Invoice and payment screenshot attached.\nAdmin Panel: %s",
				b.ID, b.Name, b.Phone, b.Email, b.EventType, b.Date, b.Location,
				b.Amount, b.AdvanceAmount, adminLink(cfg)),
			attachments...)
		if p := screenshotPath(cfg, b); p != "" {
			owner.Attachments = append(owner.Attachments, p)
		}
		return []*lib.SendMailInput{customer, owner}
	case types.BOOKING_DENIED:
		return []*lib.SendMailInput{
			newMessage(cfg, []string{b.Email},
				"Booking Request Denied",
				fmt.Sprintf(
					"Hi %s,\n\nSorry, your booking request has been denied.\n\n"+
						"Booking Details:\n- Event Type: %s\n- Date: %s\n- Location: %s\n\n"+
						"You can try booking again with another date.\n\nThanks,\n%s",
					b.Name, b.EventType, b.Date, b.Location, cfg.BusinessName)),
		}
	}
	return nil
}

func newMessage(cfg *config.Config, to []string, subject, body string, attachments ...string) *lib.SendMailInput {
	return &lib.SendMailInput{
		From:        cfg.FromEmail,
		FromName:    cfg.FromName,
		To:          to,
		Subject:     subject,
		Body:        body,
		Attachments: attachments,
	}
}

func paymentLink(cfg *config.Config, id uint) string {
	return fmt.Sprintf("%s/payment/%d", strings.TrimSuffix(cfg.PublicBaseURL, "/"), id)
}

func adminLink(cfg *config.Config) string {
	return strings.TrimSuffix(cfg.PublicBaseURL, "/") + "/admin/"
}

func screenshotPath(cfg *config.Config, b *models.Booking) string {
	if b.PaymentScreenshot == "" {
		return ""
	}
	p := filepath.Join(cfg.MediaRoot, b.PaymentScreenshot)
	if _, err := os.Stat(p); err != nil {
		log.Printf("[mailer] screenshot missing for Booking [%d]: %s\n", b.ID, err.Error())
		return ""
	}
	return p
}
