package model

import "time"

type Thread struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Content     string    `gorm:"type:text" json:"content"`
	Author      string    `gorm:"size:64;index" json:"author"`
	ThreadLikes int       `gorm:"not null;default:0" json:"threadLikes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
