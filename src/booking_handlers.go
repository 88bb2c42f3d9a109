package main

import (
	"net/http"

	"decor/src/common"
	"decor/src/db"
	"decor/src/models"
	"decor/src/types"

	"github.com/gin-gonic/gin"
)

func bookingHandlers(r *gin.Engine) {
	r.POST("/api/booking", func(ctx *gin.Context) {
		var body types.CreateBookingRequestBody
		if err := ctx.ShouldBindJSON(&body); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		booking := models.Booking{
			Name:      body.Name,
			Phone:     body.Phone,
			Email:     body.Email,
			EventType: body.EventType,
			Date:      body.Date,
			Location:  body.Location,
			Amount:    body.Amount,
			Message:   body.Message,
			Status:    types.BOOKING_PENDING,
		}
		common.ApplyAmount(&booking, cfg.AdvancePercent)
		dbh := db.GetDb()
		if err := dbh.Create(&booking).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		notifyStatus(&booking, types.BOOKING_PENDING)
		ctx.JSON(http.StatusCreated, gin.H{"success": true, "booking_id": booking.ID})
	})
}
