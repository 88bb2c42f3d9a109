package main

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"decor/src/common"
	"decor/src/db"
	"decor/src/lib"
	awslib "decor/src/lib/aws"
	"decor/src/middlewares"
	"decor/src/models"
	"decor/src/types"
	"decor/src/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func adminHandlers(r *gin.Engine) {
	r.POST("/api/v1/admin/login", func(ctx *gin.Context) {
		var body types.AdminLoginRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		userOK := subtle.ConstantTimeCompare([]byte(body.Username), []byte(cfg.AdminUsername)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(body.Password), []byte(cfg.AdminPassword)) == 1
		if cfg.AdminUsername == "" || !userOK || !passOK {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		claims := types.Claims{
			Username: body.Username,
			Role:     "admin",
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "admin",
				IssuedAt:  jwt.NewNumericDate(time.Now()),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
			},
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"token": signed})
	})

	g := r.Group("/api/v1/admin")
	g.Use(middlewares.AdminAuth(cfg))
	g.
		GET("/bookings", func(ctx *gin.Context) {
			dbh := db.GetDb()
			q := dbh.Model(&models.Booking{}).Order("created_at DESC")
			if status := ctx.Query("status"); status != "" {
				q = q.Where("status = ?", status)
			}
			var bookings []models.Booking
			if err := q.Find(&bookings).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		PUT("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, ok := findBooking(ctx, params.ID)
			if !ok {
				return
			}
			if body.Amount != nil {
				booking.Amount = *body.Amount
			}
			if body.AdminNote != nil {
				booking.AdminNote = *body.AdminNote
			}
			common.ApplyAmount(booking, cfg.AdvancePercent)
			dbh := db.GetDb()
			if err := dbh.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: params.ID}).
				Updates(map[string]any{
					"amount":         booking.Amount,
					"advance_amount": booking.AdvanceAmount,
					"admin_note":     booking.AdminNote,
				}).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		DELETE("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			dbh := db.GetDb()
			if err := dbh.Delete(&models.Booking{}, params.ID).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		}).
		POST("/bookings/approve", func(ctx *gin.Context) {
			bulkTransition(ctx, types.BOOKING_APPROVED)
		}).
		POST("/bookings/deny", func(ctx *gin.Context) {
			bulkTransition(ctx, types.BOOKING_DENIED)
		}).
		POST("/bookings/confirm", func(ctx *gin.Context) {
			bulkTransition(ctx, types.BOOKING_CONFIRMED)
		}).
		POST("/gallery", func(ctx *gin.Context) {
			title := ctx.PostForm("title")
			file, err := ctx.FormFile("image")
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "image is required"})
				return
			}
			filename := utils.MediaFilename(title, file.Filename)
			dst := filepath.Join(cfg.MediaRoot, "gallery", filename)
			if err := ctx.SaveUploadedFile(file, dst); err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			rel := path.Join("gallery", filename)
			if cfg.S3MediaBucket != "" {
				if err := awslib.S3UploadMedia(context.Background(), cfg.S3MediaBucket, rel, dst, file.Header.Get("Content-Type")); err != nil {
					log.Printf("Could not mirror gallery image to S3: %s\n", err.Error())
				}
			}
			img := models.GalleryImage{Title: title, Image: rel}
			dbh := db.GetDb()
			if err := dbh.Create(&img).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			invalidateGalleryCache(ctx)
			ctx.JSON(http.StatusCreated, gin.H{"data": img})
		}).
		DELETE("/gallery/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var img models.GalleryImage
			dbh := db.GetDb()
			if err := dbh.First(&img, params.ID).Error; err != nil {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
				return
			}
			if err := dbh.Delete(&img).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if err := os.Remove(filepath.Join(cfg.MediaRoot, img.Image)); err != nil {
				log.Printf("Could not remove gallery file [%s]: %s\n", img.Image, err.Error())
			}
			invalidateGalleryCache(ctx)
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		})
}

// bulkTransition applies target to each selected booking. Unreachable
// transitions are skipped silently; the response reports how many rows
// actually moved.
func bulkTransition(ctx *gin.Context, target types.BookingStatus) {
	var body types.BulkActionRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated := 0
	dbh := db.GetDb()
	for _, id := range body.IDs {
		booking, changed, err := common.ApplyTransition(dbh, id, target, cfg.AdvancePercent)
		if err != nil {
			log.Printf("Could not transition Booking [%d] to %s: %s\n", id, target, err.Error())
			continue
		}
		if !changed {
			continue
		}
		if target == types.BOOKING_DENIED && body.AdminNote != "" {
			if err := dbh.
				Model(&models.Booking{}).
				Where(&models.Booking{ID: id}).
				Update("admin_note", body.AdminNote).
				Error; err != nil {
				log.Printf("Could not save admin note for Booking [%d]: %s\n", id, err.Error())
			} else {
				booking.AdminNote = body.AdminNote
			}
		}
		updated++
		notifyStatus(booking, target)
	}
	ctx.JSON(http.StatusOK, gin.H{"updated": updated})
}

func invalidateGalleryCache(ctx context.Context) {
	if rd := lib.GetRedisClient(cfg.RedisURL); rd != nil {
		rd.Del(ctx, galleryCacheKey)
	}
}
