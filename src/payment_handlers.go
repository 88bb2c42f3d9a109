package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"decor/src/common"
	"decor/src/db"
	awslib "decor/src/lib/aws"
	"decor/src/models"
	"decor/src/types"
	"decor/src/utils"

	"github.com/gin-gonic/gin"
	qrcode "github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

var errNotPayable = errors.New("payment is not open for this booking")

// pagePayAmount is what the payment page asks for: the advance, or the
// full amount when no advance was ever computed (zero-budget intake).
func pagePayAmount(b *models.Booking) int {
	if b.AdvanceAmount > 0 {
		return b.AdvanceAmount
	}
	return b.Amount
}

func paymentNote(id uint) string {
	return fmt.Sprintf("Booking#%d Advance Payment", id)
}

func paymentHandlers(r *gin.Engine) {
	r.
		GET("/payment/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, ok := findBooking(ctx, params.ID)
			if !ok {
				return
			}
			resp := types.PaymentPageResponse{
				Status:    booking.Status,
				BookingID: booking.ID,
			}
			switch booking.Status {
			case types.BOOKING_PAID, types.BOOKING_CONFIRMED:
				resp.State = "done"
			case types.BOOKING_APPROVED:
				pay := pagePayAmount(booking)
				resp.State = "pay"
				resp.UPIID = cfg.UPIID
				resp.PayAmount = pay
				resp.BusinessName = cfg.BusinessName
				resp.UPILink = utils.UPILink(cfg.UPIID, cfg.BusinessName, pay, paymentNote(booking.ID))
			default:
				resp.State = "wait"
			}
			ctx.JSON(http.StatusOK, resp)
		}).
		GET("/payment/:id/qr", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, ok := findBooking(ctx, params.ID)
			if !ok {
				return
			}
			if booking.Status != types.BOOKING_APPROVED {
				ctx.JSON(http.StatusConflict, gin.H{"error": errNotPayable.Error()})
				return
			}
			pay := pagePayAmount(booking)
			upiLink := utils.UPILink(cfg.UPIID, cfg.BusinessName, pay, paymentNote(booking.ID))
			qrc, err := qrcode.New(upiLink)
			if err != nil {
				log.Printf("Could not generate payment QR for Booking [%d]: %s\n", booking.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			qrfile := filepath.Join(cfg.MediaRoot, "qrcodes", fmt.Sprintf("upi_%d.jpeg", booking.ID))
			if err := qrc.Save(qrfile); err != nil {
				log.Printf("Could not save qrcode to file [%s]: %s\n", qrfile, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.File(qrfile)
		}).
		POST("/payment/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, ok := findBooking(ctx, params.ID)
			if !ok {
				return
			}
			if booking.Status != types.BOOKING_APPROVED {
				ctx.JSON(http.StatusConflict, gin.H{"success": false, "error": errNotPayable.Error()})
				return
			}
			file, err := ctx.FormFile("payment_screenshot")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "payment screenshot is required"})
				return
			}
			ext := strings.ToLower(filepath.Ext(file.Filename))
			filename := fmt.Sprintf("payment_%d%s", params.ID, ext)
			dst := filepath.Join(cfg.MediaRoot, "payments", filename)
			if err := ctx.SaveUploadedFile(file, dst); err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
				return
			}
			rel := path.Join("payments", filename)
			if cfg.S3MediaBucket != "" {
				if err := awslib.S3UploadMedia(context.Background(), cfg.S3MediaBucket, rel, dst, file.Header.Get("Content-Type")); err != nil {
					log.Printf("Could not mirror screenshot for Booking [%d] to S3: %s\n", params.ID, err.Error())
				}
			}
			var updated *models.Booking
			dbh := db.GetDb()
			err = dbh.Transaction(func(tx *gorm.DB) error {
				if err := tx.
					Model(&models.Booking{}).
					Where(&models.Booking{ID: params.ID}).
					Update("payment_screenshot", rel).
					Error; err != nil {
					return err
				}
				b, changed, err := common.ApplyTransition(tx, params.ID, types.BOOKING_PAID, cfg.AdvancePercent)
				if err != nil {
					return err
				}
				if !changed {
					return errNotPayable
				}
				b.PaymentScreenshot = rel
				updated = b
				return nil
			})
			if err != nil {
				status := http.StatusInternalServerError
				if errors.Is(err, errNotPayable) {
					status = http.StatusConflict
				}
				ctx.JSON(status, gin.H{"success": false, "error": err.Error()})
				return
			}
			notifyStatus(updated, types.BOOKING_PAID)
			ctx.JSON(http.StatusOK, gin.H{"success": true, "status": updated.Status})
		})
}

// findBooking loads a booking or writes the not-found response.
func findBooking(ctx *gin.Context, id uint) (*models.Booking, bool) {
	var booking models.Booking
	dbh := db.GetDb()
	if err := dbh.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: id}).
		First(&booking).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return &booking, true
}
