package app

import (
	"context"
	"errors"
	"log"
	"strings"

	"sneakerhub/internal/model"
	"sneakerhub/internal/repository"
)

var ErrThreadNotFound = errors.New("thread not found")

// ActivityPublisher enqueues forum activity for asynchronous persistence.
type ActivityPublisher interface {
	Publish(ctx context.Context, activity model.ThreadActivity) error
}

type ForumService struct {
	threadRepo *repository.ThreadRepository
	publisher  ActivityPublisher
}

type CreateThreadInput struct {
	Title   string
	Content string
	Author  string
}

type UpdateThreadInput struct {
	Title   string
	Content string
	Author  string
}

func NewForumService(threadRepo *repository.ThreadRepository, publisher ActivityPublisher) *ForumService {
	return &ForumService{
		threadRepo: threadRepo,
		publisher:  publisher,
	}
}

func (s *ForumService) CreateThread(ctx context.Context, input CreateThreadInput) (*model.Thread, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	thread := &model.Thread{
		Title:   title,
		Content: input.Content,
		Author:  strings.TrimSpace(input.Author),
	}
	if err := s.threadRepo.Create(thread); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, thread.ID, model.ActivityThreadCreated, thread.Author)
	return thread, nil
}

func (s *ForumService) ListThreads() ([]model.Thread, error) {
	return s.threadRepo.List()
}

func (s *ForumService) GetThread(id uint) (*model.Thread, error) {
	thread, err := s.threadRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}
	return thread, nil
}

// UpdateThread merges the provided fields over the stored thread; fields the
// caller leaves empty keep their stored value.
func (s *ForumService) UpdateThread(ctx context.Context, id uint, input UpdateThreadInput) (*model.Thread, error) {
	thread, err := s.threadRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		thread.Title = title
	}
	if input.Content != "" {
		thread.Content = input.Content
	}
	if author := strings.TrimSpace(input.Author); author != "" {
		thread.Author = author
	}

	if err := s.threadRepo.Save(thread); err != nil {
		return nil, err
	}

	s.publishActivity(ctx, thread.ID, model.ActivityThreadUpdated, thread.Author)
	return thread, nil
}

func (s *ForumService) LikeThread(ctx context.Context, id uint) (*model.Thread, error) {
	thread, err := s.threadRepo.AdjustLikes(id, 1)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}

	s.publishActivity(ctx, id, model.ActivityThreadLiked, "")
	return thread, nil
}

func (s *ForumService) UnlikeThread(ctx context.Context, id uint) (*model.Thread, error) {
	thread, err := s.threadRepo.AdjustLikes(id, -1)
	if err != nil {
		return nil, err
	}
	if thread == nil {
		return nil, ErrThreadNotFound
	}

	s.publishActivity(ctx, id, model.ActivityThreadUnliked, "")
	return thread, nil
}

func (s *ForumService) DeleteThread(ctx context.Context, id uint) error {
	deleted, err := s.threadRepo.Delete(id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrThreadNotFound
	}

	s.publishActivity(ctx, id, model.ActivityThreadDeleted, "")
	return nil
}

// Activity is best-effort: a broker outage must not fail the forum write.
func (s *ForumService) publishActivity(ctx context.Context, threadID uint, action, actor string) {
	if s.publisher == nil {
		return
	}
	activity := model.ThreadActivity{
		ThreadID: threadID,
		Action:   action,
		Actor:    actor,
	}
	if err := s.publisher.Publish(ctx, activity); err != nil {
		log.Printf("publish thread activity failed: %v", err)
	}
}
