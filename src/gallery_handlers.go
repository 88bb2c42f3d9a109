package main

import (
	"encoding/json"
	"net/http"
	"time"

	"decor/src/db"
	"decor/src/lib"
	"decor/src/models"
	"decor/src/types"
	"decor/src/utils"

	"github.com/gin-gonic/gin"
)

const galleryCacheKey = "gallery:list"

func galleryHandlers(r *gin.Engine) {
	r.GET("/api/gallery", func(ctx *gin.Context) {
		rd := lib.GetRedisClient(cfg.RedisURL)
		if rd != nil {
			if cached, err := rd.Get(ctx, galleryCacheKey).Result(); err == nil {
				ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
				return
			}
		}
		var images []models.GalleryImage
		dbh := db.GetDb()
		if err := dbh.
			Model(&models.GalleryImage{}).
			Order("uploaded_at DESC").
			Find(&images).
			Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		items := make([]types.GalleryItem, 0, len(images))
		for _, img := range images {
			items = append(items, types.GalleryItem{
				ImageURL: utils.MediaURL(cfg, img.Image),
				Title:    img.Title,
			})
		}
		if rd != nil {
			if data, err := json.Marshal(items); err == nil {
				rd.SetEx(ctx, galleryCacheKey, string(data), 10*time.Minute)
			}
		}
		ctx.JSON(http.StatusOK, items)
	})
}
