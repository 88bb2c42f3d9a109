package models

import "time"

type GalleryImage struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Title      string    `json:"title"`
	Image      string    `json:"image"`
	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}
