package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/neuronstudy/backend/models"
)

type ProgressStore struct {
	DB *gorm.DB
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{DB: db}
}

func (s *ProgressStore) Get(ctx context.Context, userID, courseID string) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	err := s.DB.WithContext(ctx).
		First(&progress, "user_id = ? AND course_id = ?", userID, courseID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return &progress, nil
}

// ForUser returns the user's full progress mapping, keyed by course id.
func (s *ProgressStore) ForUser(ctx context.Context, userID string) (map[string]models.CourseProgress, error) {
	var rows []models.CourseProgress
	if err := s.DB.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	progress := make(map[string]models.CourseProgress, len(rows))
	for _, row := range rows {
		progress[row.CourseID] = row
	}
	return progress, nil
}

func (s *ProgressStore) Create(ctx context.Context, progress *models.CourseProgress) error {
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}
	if progress.CompletedSections == nil {
		progress.SetCompleted(nil)
	}
	if err := s.DB.WithContext(ctx).Create(progress).Error; err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

// SaveCompleted writes only the completed-sections column of the row. The
// scroll position and every other course's progress are untouched.
func (s *ProgressStore) SaveCompleted(ctx context.Context, progress *models.CourseProgress) error {
	err := s.DB.WithContext(ctx).Model(&models.CourseProgress{}).
		Where("user_id = ? AND course_id = ?", progress.UserID, progress.CourseID).
		Update("completed_sections", progress.CompletedSections).Error
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

// SetScroll upserts the scroll position for (user, course) as a single
// targeted column write. Last writer wins.
func (s *ProgressStore) SetScroll(ctx context.Context, userID, courseID string, offset float64) error {
	progress := models.CourseProgress{
		ID:             uuid.NewString(),
		UserID:         userID,
		CourseID:       courseID,
		ScrollPosition: &offset,
	}
	progress.SetCompleted(nil)

	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"scroll_position": offset}),
	}).Create(&progress).Error
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}
