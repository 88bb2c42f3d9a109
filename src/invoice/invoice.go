package invoice

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"decor/src/config"
	"decor/src/models"
	"decor/src/types"
	"decor/src/utils"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Number formats the printed invoice number for a booking.
func Number(id uint) string {
	return fmt.Sprintf("INV-%05d", id)
}

// PayAmount is the amount encoded into the payment QR: the advance
// while payment is still due, the remaining balance afterwards, never
// negative.
func PayAmount(b *models.Booking) int {
	if b.Status == types.BOOKING_PENDING || b.Status == types.BOOKING_APPROVED {
		return b.AdvanceAmount
	}
	bal := b.Amount - b.AdvanceAmount
	if bal < 0 {
		bal = 0
	}
	return bal
}

func amountSummary(b *models.Booking) (advanceLabel string, advance int, balanceLabel string, balance int) {
	if b.Status == types.BOOKING_PENDING || b.Status == types.BOOKING_APPROVED {
		return "Advance Due:", b.AdvanceAmount, "Balance Due:", b.Amount
	}
	bal := b.Amount - b.AdvanceAmount
	if bal < 0 {
		bal = 0
	}
	return "Advance Paid:", b.AdvanceAmount, "Balance:", bal
}

// Render draws the one-page invoice PDF for a booking and writes it to
// <media>/invoices/invoice_<id>.pdf, overwriting any previous render
// so stale invoices never accumulate. Returns the file path.
func Render(b *models.Booking, cfg *config.Config) (string, error) {
	dir := filepath.Join(cfg.MediaRoot, "invoices")
	if err := utils.EnsureDir(dir); err != nil {
		return "", err
	}
	out := filepath.Join(dir, fmt.Sprintf("invoice_%d.pdf", b.ID))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	width, _ := pdf.GetPageSize()

	// Header bar
	pdf.SetFillColor(17, 24, 39)
	pdf.Rect(0, 0, width, 35, "F")
	if cfg.BusinessLogo != "" {
		if _, err := os.Stat(cfg.BusinessLogo); err == nil {
			pdf.RegisterImageOptions(cfg.BusinessLogo, gofpdf.ImageOptions{})
			pdf.ImageOptions(cfg.BusinessLogo, 14, 6, 22, 22, false, gofpdf.ImageOptions{}, 0, "")
		}
	}
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(40, 15, cfg.BusinessName)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(40, 22, cfg.BusinessCity)
	pdf.Text(40, 28, "Phone: "+cfg.BusinessPhone)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(width-14-pdf.GetStringWidth("INVOICE / BILL"), 18, "INVOICE / BILL")

	// Meta
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	meta1 := "Invoice No: " + Number(b.ID)
	meta2 := "Invoice Date: " + time.Now().Format("02-01-2006")
	pdf.Text(width-14-pdf.GetStringWidth(meta1), 43, meta1)
	pdf.Text(width-14-pdf.GetStringWidth(meta2), 49, meta2)

	pdf.SetDrawColor(211, 211, 211)
	pdf.Line(14, 53, width-14, 53)

	// Paid stamp only on a confirmed booking
	if b.Status == types.BOOKING_CONFIRMED {
		pdf.TransformBegin()
		pdf.TransformRotate(20, width-55, 80)
		pdf.SetTextColor(0, 128, 0)
		pdf.SetFont("Helvetica", "B", 26)
		pdf.Text(width-70, 82, "PAID")
		pdf.TransformEnd()
		pdf.SetTextColor(0, 0, 0)
	}

	// Customer box
	y := 62.0
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(14, y, "BILL TO (Customer Details)")
	y += 4
	pdf.Rect(14, y, width-28, 28, "D")
	labelValue(pdf, 18, y+8, "Name:", b.Name)
	labelValue(pdf, 18, y+15, "Phone:", b.Phone)
	labelValue(pdf, 18, y+22, "Email:", b.Email)

	// Event details table
	y += 38
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Text(14, y, "EVENT DETAILS")
	y += 3
	pdf.SetFillColor(229, 231, 235)
	pdf.Rect(14, y, width-28, 8, "F")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(18, y+5.5, "Description")
	amountHeader := "Amount (Rs.)"
	pdf.Text(width-18-pdf.GetStringWidth(amountHeader), y+5.5, amountHeader)
	y += 8
	pdf.Rect(14, y, width-28, 10, "D")
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(18, y+6.5, fmt.Sprintf("%s Decoration Service", b.EventType))
	amountCell := fmt.Sprintf("%d", b.Amount)
	pdf.Text(width-18-pdf.GetStringWidth(amountCell), y+6.5, amountCell)

	y += 18
	pdf.Text(14, y, "Location: "+b.Location)
	y += 6
	pdf.Text(14, y, "Event Date: "+b.Date)
	y += 6
	pdf.Text(14, y, "Status: "+string(b.Status))

	// Amount summary box
	y += 10
	advLabel, adv, balLabel, bal := amountSummary(b)
	boxX := width - 14 - 80
	pdf.Rect(boxX, y, 80, 26, "D")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(boxX+4, y+7, "Total Amount:")
	rightText(pdf, width-18, y+7, fmt.Sprintf("Rs. %d", b.Amount))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(boxX+4, y+14, advLabel)
	rightText(pdf, width-18, y+14, fmt.Sprintf("Rs. %d", adv))
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(boxX+4, y+21, balLabel)
	rightText(pdf, width-18, y+21, fmt.Sprintf("Rs. %d", bal))

	// UPI payment QR
	y += 38
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(14, y, "Scan to Pay (UPI QR)")
	pay := PayAmount(b)
	upiLink := utils.UPILink(cfg.UPIID, cfg.BusinessName, pay, "")
	png, err := qrcode.Encode(upiLink, qrcode.Medium, 256)
	if err != nil {
		// degrade to the raw id, a broken QR must not sink the invoice
		log.Printf("Could not generate payment QR for Booking [%d]: %s\n", b.ID, err.Error())
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(14, y+8, "UPI ID: "+cfg.UPIID)
		pdf.Text(14, y+14, fmt.Sprintf("Pay Amount: Rs. %d", pay))
	} else {
		opts := gofpdf.ImageOptions{ImageType: "png"}
		pdf.RegisterImageOptionsReader("upi-qr", opts, bytes.NewReader(png))
		pdf.ImageOptions("upi-qr", 14, y+3, 42, 42, false, opts, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.Text(60, y+14, "UPI ID: "+cfg.UPIID)
		pdf.Text(60, y+20, fmt.Sprintf("Pay Amount: Rs. %d", pay))
	}

	// Footer
	pdf.Line(14, 272, width-14, 272)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(14, 279, fmt.Sprintf("Thank you for choosing %s!", cfg.BusinessName))
	pdf.Text(14, 284, "Note: Advance payment is non-refundable. Balance must be cleared before event day.")
	pdf.SetFont("Helvetica", "B", 10)
	rightText(pdf, width-14, 284, "Authorized Signature")

	if err := pdf.OutputFileAndClose(out); err != nil {
		return "", err
	}
	return out, nil
}

func labelValue(pdf *gofpdf.Fpdf, x, y float64, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(x, y, label)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(x+25, y, value)
}

func rightText(pdf *gofpdf.Fpdf, right, y float64, s string) {
	pdf.Text(right-pdf.GetStringWidth(s), y, s)
}
