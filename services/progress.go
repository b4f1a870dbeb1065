package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/neuronstudy/backend/models"
	"github.com/neuronstudy/backend/store"
)

type ProgressService struct {
	Users *store.UserStore
	Store *store.ProgressStore
}

func NewProgressService(users *store.UserStore, progress *store.ProgressStore) *ProgressService {
	return &ProgressService{Users: users, Store: progress}
}

// MarkCompleted appends the section to the course's completion list if it
// is not already there. Completion order is preserved; duplicates never
// reach the store.
func (s *ProgressService) MarkCompleted(ctx context.Context, userID, courseID, sectionID string) (*models.CourseProgress, error) {
	if _, err := s.Users.Get(ctx, userID); err != nil {
		return nil, err
	}

	progress, err := s.Store.Get(ctx, userID, courseID)
	if errors.Is(err, models.ErrNotFound) {
		progress = &models.CourseProgress{
			ID:       uuid.NewString(),
			UserID:   userID,
			CourseID: courseID,
		}
		progress.SetCompleted([]string{sectionID})
		if err := s.Store.Create(ctx, progress); err != nil {
			return nil, err
		}
		return progress, nil
	}
	if err != nil {
		return nil, err
	}

	if progress.HasCompleted(sectionID) {
		return progress, nil
	}
	progress.SetCompleted(append(progress.Completed(), sectionID))
	if err := s.Store.SaveCompleted(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// SaveScrollPosition unconditionally overwrites the resume marker for the
// course. Last writer wins.
func (s *ProgressService) SaveScrollPosition(ctx context.Context, userID, courseID string, offset float64) error {
	if _, err := s.Users.Get(ctx, userID); err != nil {
		return err
	}
	return s.Store.SetScroll(ctx, userID, courseID, offset)
}

// Snapshot returns the user's progress for every course they have touched.
func (s *ProgressService) Snapshot(ctx context.Context, userID string) (map[string]models.CourseProgress, error) {
	return s.Store.ForUser(ctx, userID)
}
