package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"decor/src/boot"
	"decor/src/common"
	"decor/src/config"
	"decor/src/db"
	"decor/src/lib"
	"decor/src/lib/mailer"
	"decor/src/models"
	"decor/src/types"

	"github.com/covalenthq/lumberjack"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
)

var (
	cfg      *config.Config
	dispatch *mailer.Dispatcher
)

var bookingDateValidatorFunc validator.Func = func(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(config.DATE_PARSE_FORMAT, date)
	return err == nil
}

func setupRouter() *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("bookingdate", bookingDateValidatorFunc)
	}

	router.Static("/media", cfg.MediaRoot)

	bookingHandlers(router)
	galleryHandlers(router)
	paymentHandlers(router)
	invoiceHandlers(router)
	adminHandlers(router)
	return router
}

// notifyStatus claims the notification slot for status and, on a won
// claim, hands the booking to the dispatcher. Losing the claim means
// mail for this status already went out (or is on its way).
func notifyStatus(b *models.Booking, status types.BookingStatus) {
	ok, err := common.ClaimNotification(db.GetDb(), b.ID, status)
	if err != nil {
		log.Printf("Could not claim notification for Booking [%d] status=%s: %s\n", b.ID, status, err.Error())
		return
	}
	if !ok {
		return
	}
	dispatch.Enqueue(*b, status)
}

func main() {
	cfg = config.Load()

	if serverLogs := os.Getenv("SERVER_LOGS"); serverLogs != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   serverLogs,
			MaxSize:    500,
			MaxBackups: 3,
			MaxAge:     30,
			Compress:   true,
		})
	}

	boot.InitDb()
	boot.InitMedia(cfg)

	dispatch = mailer.New(cfg, nil)
	dispatch.Start(cfg.MailWorkers)

	if err := boot.InitScheduler(cfg, dispatch); err != nil {
		log.Printf("Could not start scheduler: %s\n", err.Error())
	}

	router := setupRouter()
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %s", err.Error())
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %s\n", err.Error())
	}
	if err := dispatch.Shutdown(shutdownCtx); err != nil {
		log.Printf("dispatcher shutdown: %s\n", err.Error())
	}
	lib.ShutdownScheduler()
}
