package repository

import (
	"fmt"

	"gorm.io/gorm"

	"sneakerhub/internal/model"
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

func (r *ActivityRepository) Create(activity *model.ThreadActivity) error {
	if err := r.db.Create(activity).Error; err != nil {
		return fmt.Errorf("create thread activity failed: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByThreadID(threadID uint, limit int) ([]model.ThreadActivity, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var activities []model.ThreadActivity
	if err := r.db.Where("thread_id = ?", threadID).Order("created_at DESC").Limit(limit).Find(&activities).Error; err != nil {
		return nil, fmt.Errorf("list thread activities failed: %w", err)
	}
	return activities, nil
}
