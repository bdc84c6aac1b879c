package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"sneakerhub/internal/model"
)

type ThreadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) *ThreadRepository {
	return &ThreadRepository{db: db}
}

func (r *ThreadRepository) Create(thread *model.Thread) error {
	if err := r.db.Create(thread).Error; err != nil {
		return fmt.Errorf("create thread failed: %w", err)
	}
	return nil
}

func (r *ThreadRepository) List() ([]model.Thread, error) {
	var threads []model.Thread
	if err := r.db.Order("created_at DESC").Find(&threads).Error; err != nil {
		return nil, fmt.Errorf("list threads failed: %w", err)
	}
	return threads, nil
}

func (r *ThreadRepository) GetByID(id uint) (*model.Thread, error) {
	var thread model.Thread
	if err := r.db.First(&thread, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query thread by id failed: %w", err)
	}
	return &thread, nil
}

func (r *ThreadRepository) Save(thread *model.Thread) error {
	if err := r.db.Save(thread).Error; err != nil {
		return fmt.Errorf("save thread failed: %w", err)
	}
	return nil
}

// AdjustLikes applies delta to the like counter in a single UPDATE so
// concurrent likes never lose increments. The counter is floored at zero.
// Returns the updated thread, or nil when no such thread exists.
// Existence is checked separately: MySQL reports changed rows, not matched
// rows, so a no-op update at the floor would be indistinguishable from a
// missing thread.
func (r *ThreadRepository) AdjustLikes(id uint, delta int) (*model.Thread, error) {
	existing, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	expr := gorm.Expr("thread_likes + ?", delta)
	if delta < 0 {
		expr = gorm.Expr("CASE WHEN thread_likes + ? < 0 THEN 0 ELSE thread_likes + ? END", delta, delta)
	}

	if err := r.db.Model(&model.Thread{}).Where("id = ?", id).Update("thread_likes", expr).Error; err != nil {
		return nil, fmt.Errorf("adjust thread likes failed: %w", err)
	}
	return r.GetByID(id)
}

// Delete reports whether a row was actually removed.
func (r *ThreadRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&model.Thread{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete thread failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
