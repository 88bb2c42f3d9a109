package main

import (
	"fmt"
	"log"
	"net/http"

	"decor/src/invoice"
	"decor/src/types"

	"github.com/gin-gonic/gin"
)

func invoiceHandlers(r *gin.Engine) {
	r.GET("/invoice/:id", func(ctx *gin.Context) {
		var params types.SimpleRequestParams
		if err := ctx.ShouldBindUri(&params); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		booking, ok := findBooking(ctx, params.ID)
		if !ok {
			return
		}
		loc, err := invoice.Render(booking, cfg)
		if err != nil {
			log.Printf("Could not render invoice for Booking [%d]: %s\n", params.ID, err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate invoice"})
			return
		}
		ctx.FileAttachment(loc, fmt.Sprintf("invoice_%d.pdf", params.ID))
	})
}
