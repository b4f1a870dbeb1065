package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/neuronstudy/backend/models"
)

type EnrollmentStore struct {
	DB *gorm.DB
}

func NewEnrollmentStore(db *gorm.DB) *EnrollmentStore {
	return &EnrollmentStore{DB: db}
}

// Add records the entitlement. Adding an already-held course is a no-op:
// the conflict on the (user, course) index is swallowed.
func (s *EnrollmentStore) Add(ctx context.Context, userID, courseID string) error {
	enrollment := models.Enrollment{
		ID:       uuid.NewString(),
		UserID:   userID,
		CourseID: courseID,
	}
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&enrollment).Error
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

// CourseIDs returns the user's entitlement set in purchase order.
func (s *EnrollmentStore) CourseIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := s.DB.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ?", userID).
		Order("created_at").
		Pluck("course_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return ids, nil
}

func (s *EnrollmentStore) Has(ctx context.Context, userID, courseID string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return count > 0, nil
}
