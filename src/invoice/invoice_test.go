package invoice

import (
	"os"
	"path/filepath"
	"testing"

	"decor/src/config"
	"decor/src/models"
	"decor/src/types"

	"github.com/stretchr/testify/assert"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		MediaRoot:      t.TempDir(),
		BusinessName:   "Friends Events Decorative",
		BusinessPhone:  "+911234567890",
		BusinessCity:   "Chopda",
		UPIID:          "payee@okaxis",
		AdvancePercent: 30,
	}
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "INV-00001", Number(1))
	assert.Equal(t, "INV-00042", Number(42))
	assert.Equal(t, "INV-123456", Number(123456))
}

func TestAmountSummaryBeforePayment(t *testing.T) {
	b := &models.Booking{Amount: 10000, AdvanceAmount: 3000, Status: types.BOOKING_APPROVED}
	advLabel, adv, balLabel, bal := amountSummary(b)
	assert.Equal(t, "Advance Due:", advLabel)
	assert.Equal(t, 3000, adv)
	assert.Equal(t, "Balance Due:", balLabel)
	assert.Equal(t, 10000, bal)

	b.Status = types.BOOKING_PENDING
	advLabel, adv, balLabel, bal = amountSummary(b)
	assert.Equal(t, "Advance Due:", advLabel)
	assert.Equal(t, 3000, adv)
	assert.Equal(t, "Balance Due:", balLabel)
	assert.Equal(t, 10000, bal)
}

func TestAmountSummaryAfterPayment(t *testing.T) {
	b := &models.Booking{Amount: 10000, AdvanceAmount: 3000, Status: types.BOOKING_CONFIRMED}
	advLabel, adv, balLabel, bal := amountSummary(b)
	assert.Equal(t, "Advance Paid:", advLabel)
	assert.Equal(t, 3000, adv)
	assert.Equal(t, "Balance:", balLabel)
	assert.Equal(t, 7000, bal)
}

func TestAmountSummaryNeverNegative(t *testing.T) {
	b := &models.Booking{Amount: 1000, AdvanceAmount: 3000, Status: types.BOOKING_PAID}
	_, _, _, bal := amountSummary(b)
	assert.Equal(t, 0, bal)
}

func TestPayAmount(t *testing.T) {
	b := &models.Booking{Amount: 5000, AdvanceAmount: 1500, Status: types.BOOKING_PENDING}
	assert.Equal(t, 1500, PayAmount(b))

	b.Status = types.BOOKING_APPROVED
	assert.Equal(t, 1500, PayAmount(b))

	b.Status = types.BOOKING_PAID
	assert.Equal(t, 3500, PayAmount(b))

	b.Status = types.BOOKING_CONFIRMED
	assert.Equal(t, 3500, PayAmount(b))

	// balance can never go below zero
	b = &models.Booking{Amount: 1000, AdvanceAmount: 3000, Status: types.BOOKING_CONFIRMED}
	assert.Equal(t, 0, PayAmount(b))
}

func TestRenderWritesInvoice(t *testing.T) {
	cfg := testConfig(t)
	b := &models.Booking{
		ID:            12,
		Name:          "Asha",
		Phone:         "+919876543210",
		Email:         "asha@example.com",
		EventType:     "Wedding",
		Date:          "2026-11-02",
		Location:      "Chopda",
		Amount:        5000,
		AdvanceAmount: 1500,
		Status:        types.BOOKING_CONFIRMED,
	}

	loc, err := Render(b, cfg)
	assert.Nil(t, err)
	assert.Equal(t, filepath.Join(cfg.MediaRoot, "invoices", "invoice_12.pdf"), loc)

	info, err := os.Stat(loc)
	assert.Nil(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderOverwritesPreviousInvoice(t *testing.T) {
	cfg := testConfig(t)
	b := &models.Booking{
		ID:            3,
		Name:          "Ravi",
		EventType:     "Birthday",
		Date:          "2026-10-10",
		Amount:        2000,
		AdvanceAmount: 600,
		Status:        types.BOOKING_APPROVED,
	}

	first, err := Render(b, cfg)
	assert.Nil(t, err)

	b.Status = types.BOOKING_CONFIRMED
	second, err := Render(b, cfg)
	assert.Nil(t, err)
	assert.Equal(t, first, second)

	entries, err := os.ReadDir(filepath.Join(cfg.MediaRoot, "invoices"))
	assert.Nil(t, err)
	assert.Len(t, entries, 1)
}
