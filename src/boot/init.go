package boot

import (
	"log"
	"path/filepath"
	"time"

	"decor/src/config"
	"decor/src/db"
	"decor/src/lib"
	"decor/src/lib/mailer"
	"decor/src/models"
	"decor/src/types"
	"decor/src/utils"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	dbh := db.GetDb()

	err := dbh.AutoMigrate(
		&models.Booking{},
		&models.GalleryImage{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return dbh
}

func InitMedia(cfg *config.Config) {
	for _, sub := range []string{"invoices", "payments", "gallery", "qrcodes"} {
		if err := utils.EnsureDir(filepath.Join(cfg.MediaRoot, sub)); err != nil {
			log.Fatalf("error creating media directory %s: %s", sub, err.Error())
		}
	}
}

// InitScheduler registers the daily owner digest of bookings still
// PENDING and starts the shared scheduler.
func InitScheduler(cfg *config.Config, d *mailer.Dispatcher) error {
	sched, err := lib.GetScheduler()
	if err != nil {
		return err
	}
	_, err = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			var pending []models.Booking
			dbh := db.GetDb()
			if err := dbh.
				Model(&models.Booking{}).
				Where(&models.Booking{Status: types.BOOKING_PENDING}).
				Order("created_at ASC").
				Find(&pending).
				Error; err != nil {
				log.Printf("[digest] could not list pending bookings: %s\n", err.Error())
				return
			}
			if input := mailer.PendingDigest(cfg, pending); input != nil {
				d.EnqueueInput(input)
			}
		}),
	)
	if err != nil {
		return err
	}
	sched.Start()
	return nil
}
