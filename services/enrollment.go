package services

import (
	"context"

	"github.com/neuronstudy/backend/models"
	"github.com/neuronstudy/backend/store"
)

type EnrollmentService struct {
	Enrollments *store.EnrollmentStore
	Payments    PaymentProvider
}

func NewEnrollmentService(enrollments *store.EnrollmentStore, payments PaymentProvider) *EnrollmentService {
	return &EnrollmentService{Enrollments: enrollments, Payments: payments}
}

// Enroll grants the user access to the course and returns the refreshed
// entitlement set. Enrolling in an already-held course is a no-op that
// returns the set unchanged. Paid courses are charged first; a declined
// charge leaves the set untouched.
func (s *EnrollmentService) Enroll(ctx context.Context, user *models.User, course *models.Course) ([]string, error) {
	if user == nil {
		return nil, models.ErrAuthRequired
	}

	owned, err := s.Enrollments.CourseIDs(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for _, id := range owned {
		if id == course.ID {
			return owned, nil
		}
	}

	if !course.IsFree() {
		if err := s.Payments.Charge(ctx, user.ID, course.ID, course.Price); err != nil {
			return nil, err
		}
	}

	if err := s.Enrollments.Add(ctx, user.ID, course.ID); err != nil {
		return nil, err
	}
	return append(owned, course.ID), nil
}

// AutoEnrollFree records the entitlement the first time a signed-in user
// opens a free course. Paid courses are never auto-enrolled.
func (s *EnrollmentService) AutoEnrollFree(ctx context.Context, user *models.User, course *models.Course) error {
	if user == nil || !course.IsFree() {
		return nil
	}
	return s.Enrollments.Add(ctx, user.ID, course.ID)
}
