package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/neuronstudy/backend/models"
)

type CourseStore struct {
	DB *gorm.DB
}

func NewCourseStore(db *gorm.DB) *CourseStore {
	return &CourseStore{DB: db}
}

func withSections(db *gorm.DB) *gorm.DB {
	return db.Preload("Sections", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (s *CourseStore) Get(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	err := withSections(s.DB.WithContext(ctx)).First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return &course, nil
}

func (s *CourseStore) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	var course models.Course
	err := withSections(s.DB.WithContext(ctx)).First(&course, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return &course, nil
}

func (s *CourseStore) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	err := withSections(s.DB.WithContext(ctx)).Order("created_at").Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return courses, nil
}

func (s *CourseStore) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	if err := s.DB.WithContext(ctx).Create(course).Error; err != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return nil
}

// UpdateFields applies a partial merge-update to the course row. Only the
// given columns are touched.
func (s *CourseStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	result := s.DB.WithContext(ctx).Model(&models.Course{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// AddSection appends a new section to the end of the course's study order.
// The id is generated here and is unique for the lifetime of the course.
func (s *CourseStore) AddSection(ctx context.Context, courseID, title, content string) (*models.Section, error) {
	if _, err := s.Get(ctx, courseID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Section{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	section := &models.Section{
		ID:       uuid.NewString(),
		CourseID: courseID,
		Title:    title,
		Content:  content,
		Position: int(count),
	}
	if err := s.DB.WithContext(ctx).Create(section).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return section, nil
}

func (s *CourseStore) UpdateSection(ctx context.Context, courseID, sectionID string, fields map[string]interface{}) error {
	result := s.DB.WithContext(ctx).Model(&models.Section{}).
		Where("course_id = ? AND id = ?", courseID, sectionID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteSection removes the section row and nothing else. User progress
// referring to the deleted id is left in place; readers skip unknown ids.
func (s *CourseStore) DeleteSection(ctx context.Context, courseID, sectionID string) error {
	result := s.DB.WithContext(ctx).
		Where("course_id = ? AND id = ?", courseID, sectionID).
		Delete(&models.Section{})
	if result.Error != nil {
		return fmt.Errorf("%w: %v", models.ErrPersistence, result.Error)
	}
	if result.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
