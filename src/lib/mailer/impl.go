package mailer

import (
	"context"
	"log"
	"sync"

	"decor/src/config"
	"decor/src/lib"
	"decor/src/models"
	"decor/src/types"

	"github.com/google/uuid"
)

// Sender delivers one composed message. Swapped for a recorder in
// tests; the default goes out through SMTP.
type Sender func(ctx context.Context, input *lib.SendMailInput) error

type Job struct {
	ID      string
	Booking models.Booking
	Status  types.BookingStatus

	// Input, when set, is a prebuilt message (owner digest) that skips
	// the per-status composition table.
	Input *lib.SendMailInput
}

// Dispatcher is the only background execution in the service: a fixed
// pool of workers draining a bounded queue. Failures never reach the
// request path; a booking's workflow state is authoritative whether or
// not its mail went out.
type Dispatcher struct {
	cfg  *config.Config
	send Sender
	jobs chan Job
	wg   sync.WaitGroup
}

func New(cfg *config.Config, send Sender) *Dispatcher {
	if send == nil {
		send = func(ctx context.Context, input *lib.SendMailInput) error {
			return lib.SendMail(ctx, cfg, input)
		}
	}
	size := cfg.MailQueueSize
	if size <= 0 {
		size = 64
	}
	return &Dispatcher{
		cfg:  cfg,
		send: send,
		jobs: make(chan Job, size),
	}
}

func (d *Dispatcher) Start(workers int) {
	if workers <= 0 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
}

// Enqueue never blocks the triggering request: when the queue is full
// the job is dropped with a log line (at-most-once, no retry).
func (d *Dispatcher) Enqueue(b models.Booking, status types.BookingStatus) bool {
	job := Job{ID: uuid.NewString(), Booking: b, Status: status}
	select {
	case d.jobs <- job:
		return true
	default:
		log.Printf("[mailer] queue full, dropping notification for Booking [%d] status=%s\n", b.ID, status)
		return false
	}
}

func (d *Dispatcher) EnqueueInput(input *lib.SendMailInput) bool {
	job := Job{ID: uuid.NewString(), Input: input}
	select {
	case d.jobs <- job:
		return true
	default:
		log.Printf("[mailer] queue full, dropping message %q\n", input.Subject)
		return false
	}
}

// Shutdown stops accepting work and waits for in-flight sends until
// ctx expires.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	close(d.jobs)
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		d.process(job)
	}
}

func (d *Dispatcher) process(job Job) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[mailer] job %s panicked: %v\n", job.ID, r)
		}
	}()
	ctx := context.Background()
	if d.cfg.MailTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.MailTimeout)
		defer cancel()
	}
	var inputs []*lib.SendMailInput
	if job.Input != nil {
		inputs = []*lib.SendMailInput{job.Input}
	} else {
		inputs = Compose(d.cfg, &job.Booking, job.Status)
	}
	for _, input := range inputs {
		if err := d.send(ctx, input); err != nil {
			log.Printf("[mailer] job %s: could not send %q to %v: %s\n", job.ID, input.Subject, input.To, err.Error())
			continue
		}
		log.Printf("[mailer] job %s: sent %q to %v\n", job.ID, input.Subject, input.To)
	}
}
