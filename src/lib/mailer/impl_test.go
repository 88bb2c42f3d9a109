package mailer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"decor/src/config"
	"decor/src/lib"
	"decor/src/models"
	"decor/src/types"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu   sync.Mutex
	sent []*lib.SendMailInput
}

func (r *recorder) send(ctx context.Context, input *lib.SendMailInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, input)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		MediaRoot:     t.TempDir(),
		FromEmail:     "noreply@example.com",
		FromName:      "Friends Events Decorative",
		OwnerEmail:    "owner@example.com",
		BusinessName:  "Friends Events Decorative",
		BusinessCity:  "Chopda",
		UPIID:         "payee@okaxis",
		PublicBaseURL: "http://localhost:9090",
		MailQueueSize: 8,
		MailTimeout:   time.Second,
		MailWorkers:   1,
	}
}

func testBooking() models.Booking {
	return models.Booking{
		ID:            5,
		Name:          "Asha",
		Phone:         "+919876543210",
		Email:         "asha@example.com",
		EventType:     "Wedding",
		Date:          "2026-11-02",
		Location:      "Chopda",
		Amount:        5000,
		AdvanceAmount: 1500,
	}
}

func TestComposeApproved(t *testing.T) {
	cfg := testConfig(t)
	b := testBooking()
	b.Status = types.BOOKING_APPROVED

	msgs := Compose(cfg, &b, types.BOOKING_APPROVED)
	assert.Len(t, msgs, 1)
	assert.Equal(t, []string{"asha@example.com"}, msgs[0].To)
	assert.Empty(t, msgs[0].Attachments)
	assert.Contains(t, msgs[0].Body, "payee@okaxis")
	assert.Contains(t, msgs[0].Body, "http://localhost:9090/payment/5")
	assert.Contains(t, msgs[0].Body, "₹1500")
}

func TestComposeDenied(t *testing.T) {
	cfg := testConfig(t)
	b := testBooking()
	b.Status = types.BOOKING_DENIED

	msgs := Compose(cfg, &b, types.BOOKING_DENIED)
	assert.Len(t, msgs, 1)
	assert.Equal(t, []string{"asha@example.com"}, msgs[0].To)
	assert.Empty(t, msgs[0].Attachments)
}

func TestComposePending(t *testing.T) {
	cfg := testConfig(t)
	b := testBooking()
	b.Status = types.BOOKING_PENDING

	msgs := Compose(cfg, &b, types.BOOKING_PENDING)
	assert.Len(t, msgs, 2)
	assert.Equal(t, []string{"owner@example.com"}, msgs[0].To)
	assert.Equal(t, []string{"asha@example.com"}, msgs[1].To)
}

func TestComposePaidAttachesScreenshot(t *testing.T) {
	cfg := testConfig(t)
	shot := filepath.Join(cfg.MediaRoot, "payments")
	assert.Nil(t, os.MkdirAll(shot, 0o755))
	assert.Nil(t, os.WriteFile(filepath.Join(shot, "payment_5.png"), []byte("png"), 0o644))

	b := testBooking()
	b.Status = types.BOOKING_PAID
	b.PaymentScreenshot = "payments/payment_5.png"

	msgs := Compose(cfg, &b, types.BOOKING_PAID)
	assert.Len(t, msgs, 2)
	owner := msgs[0]
	assert.Equal(t, []string{"owner@example.com"}, owner.To)
	assert.Len(t, owner.Attachments, 1)
	assert.True(t, strings.HasSuffix(owner.Attachments[0], "payment_5.png"))
	customer := msgs[1]
	assert.Equal(t, []string{"asha@example.com"}, customer.To)
	assert.Empty(t, customer.Attachments)
}

func TestComposePaidWithMissingScreenshot(t *testing.T) {
	cfg := testConfig(t)
	b := testBooking()
	b.Status = types.BOOKING_PAID
	b.PaymentScreenshot = "payments/not-there.png"

	msgs := Compose(cfg, &b, types.BOOKING_PAID)
	assert.Len(t, msgs, 2)
	assert.Empty(t, msgs[0].Attachments)
}

func TestComposeConfirmedAttachesInvoice(t *testing.T) {
	cfg := testConfig(t)
	shot := filepath.Join(cfg.MediaRoot, "payments")
	assert.Nil(t, os.MkdirAll(shot, 0o755))
	assert.Nil(t, os.WriteFile(filepath.Join(shot, "payment_5.png"), []byte("png"), 0o644))

	b := testBooking()
	b.Status = types.BOOKING_CONFIRMED
	b.PaymentScreenshot = "payments/payment_5.png"

	msgs := Compose(cfg, &b, types.BOOKING_CONFIRMED)
	assert.Len(t, msgs, 2)

	customer := msgs[0]
	assert.Equal(t, []string{"asha@example.com"}, customer.To)
	assert.Len(t, customer.Attachments, 1)
	assert.True(t, strings.HasSuffix(customer.Attachments[0], "invoice_5.pdf"))

	owner := msgs[1]
	assert.Equal(t, []string{"owner@example.com"}, owner.To)
	assert.Len(t, owner.Attachments, 2)

	// the render must have actually produced the attached file
	_, err := os.Stat(customer.Attachments[0])
	assert.Nil(t, err)
}

func TestDispatcherDeliversQueuedJobs(t *testing.T) {
	cfg := testConfig(t)
	rec := &recorder{}
	d := New(cfg, rec.send)
	d.Start(2)

	b := testBooking()
	assert.True(t, d.Enqueue(b, types.BOOKING_APPROVED))
	assert.True(t, d.Enqueue(b, types.BOOKING_DENIED))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.Nil(t, d.Shutdown(ctx))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.sent, 2)
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	cfg := testConfig(t)
	cfg.MailQueueSize = 1
	rec := &recorder{}
	// never started: the queue holds one job, the rest must drop fast
	d := New(cfg, rec.send)

	b := testBooking()
	assert.True(t, d.Enqueue(b, types.BOOKING_APPROVED))
	assert.False(t, d.Enqueue(b, types.BOOKING_DENIED))
}

func TestDispatcherEnqueueInput(t *testing.T) {
	cfg := testConfig(t)
	rec := &recorder{}
	d := New(cfg, rec.send)
	d.Start(1)

	digest := PendingDigest(cfg, []models.Booking{testBooking()})
	assert.NotNil(t, digest)
	assert.True(t, d.EnqueueInput(digest))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.Nil(t, d.Shutdown(ctx))

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Len(t, rec.sent, 1)
	assert.Equal(t, []string{"owner@example.com"}, rec.sent[0].To)
	assert.Contains(t, rec.sent[0].Subject, "Pending Bookings Digest")
}

func TestPendingDigestEmpty(t *testing.T) {
	cfg := testConfig(t)
	assert.Nil(t, PendingDigest(cfg, nil))
}
