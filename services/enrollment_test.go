package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronstudy/backend/models"
	"github.com/neuronstudy/backend/store"
)

func TestEnrollFreeCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(store.NewEnrollmentStore(db), SimulatedPayments{Approve: true})

	user := seedUser(t, db, &models.User{ID: "u1", Email: "u1@example.com"})
	course := seedCourse(t, db, &models.Course{ID: "c1", Slug: "intro", Title: "Intro", Price: 0})

	purchased, err := svc.Enroll(context.Background(), user, course)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, purchased)
}

func TestEnrollIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(store.NewEnrollmentStore(db), SimulatedPayments{Approve: true})

	user := seedUser(t, db, &models.User{ID: "u1", Email: "u1@example.com"})
	course := seedCourse(t, db, &models.Course{ID: "c1", Slug: "intro", Title: "Intro", Price: 0})

	first, err := svc.Enroll(context.Background(), user, course)
	require.NoError(t, err)
	second, err := svc.Enroll(context.Background(), user, course)
	require.NoError(t, err)

	assert.Equal(t, first, second, "second enroll must not change the set")
	assert.Equal(t, []string{"c1"}, second, "no duplicate ids")
}

func TestEnrollPaidCourseCharges(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, &models.User{ID: "u1", Email: "u1@example.com"})
	course := seedCourse(t, db, &models.Course{ID: "c1", Slug: "pro", Title: "Pro", Price: 49})

	declined := NewEnrollmentService(store.NewEnrollmentStore(db), SimulatedPayments{Approve: false})
	_, err := declined.Enroll(context.Background(), user, course)
	assert.ErrorIs(t, err, models.ErrPaymentDeclined)

	owned, err := declined.Enrollments.CourseIDs(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, owned, "declined charge must not grant the course")

	approved := NewEnrollmentService(store.NewEnrollmentStore(db), SimulatedPayments{Approve: true})
	purchased, err := approved.Enroll(context.Background(), user, course)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, purchased)
}

func TestEnrollRequiresAuth(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(store.NewEnrollmentStore(db), SimulatedPayments{Approve: true})
	course := seedCourse(t, db, &models.Course{ID: "c1", Slug: "intro", Title: "Intro"})

	_, err := svc.Enroll(context.Background(), nil, course)
	assert.ErrorIs(t, err, models.ErrAuthRequired)
}

func TestAutoEnrollFree(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(store.NewEnrollmentStore(db), SimulatedPayments{Approve: true})

	user := seedUser(t, db, &models.User{ID: "u1", Email: "u1@example.com"})
	free := seedCourse(t, db, &models.Course{ID: "c1", Slug: "intro", Title: "Intro", Price: 0})
	paid := seedCourse(t, db, &models.Course{ID: "c2", Slug: "pro", Title: "Pro", Price: 10})

	require.NoError(t, svc.AutoEnrollFree(context.Background(), user, free))
	require.NoError(t, svc.AutoEnrollFree(context.Background(), user, free), "repeat is a no-op")
	require.NoError(t, svc.AutoEnrollFree(context.Background(), user, paid), "paid is skipped, not an error")
	require.NoError(t, svc.AutoEnrollFree(context.Background(), nil, free), "anonymous is skipped")

	owned, err := svc.Enrollments.CourseIDs(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, owned)
}
