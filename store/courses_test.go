package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronstudy/backend/models"
)

func TestAddSectionAppendsInOrder(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseStore(db)
	ctx := context.Background()

	course := &models.Course{Slug: "go-basics", Title: "Go Basics"}
	require.NoError(t, courses.Create(ctx, course))

	first, err := courses.AddSection(ctx, course.ID, "Intro", "...")
	require.NoError(t, err)
	second, err := courses.AddSection(ctx, course.ID, "Types", "...")
	require.NoError(t, err)

	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
	assert.NotEqual(t, first.ID, second.ID)

	loaded, err := courses.Get(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Sections, 2)
	assert.Equal(t, "Intro", loaded.Sections[0].Title)
	assert.Equal(t, "Types", loaded.Sections[1].Title)
}

func TestAddSectionUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseStore(db)

	_, err := courses.AddSection(context.Background(), "missing", "Intro", "...")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateFieldsTouchesOnlyGivenColumns(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseStore(db)
	ctx := context.Background()

	course := &models.Course{Slug: "go-basics", Title: "Go Basics", Description: "Original", Price: 49}
	require.NoError(t, courses.Create(ctx, course))

	err := courses.UpdateFields(ctx, course.ID, map[string]interface{}{"title": "Go, but better"})
	require.NoError(t, err)

	loaded, err := courses.Get(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Go, but better", loaded.Title)
	assert.Equal(t, "Original", loaded.Description)
	assert.Equal(t, 49.0, loaded.Price)
}

func TestUpdateFieldsUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseStore(db)

	err := courses.UpdateFields(context.Background(), "missing", map[string]interface{}{"title": "x"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetBySlug(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseStore(db)
	ctx := context.Background()

	course := &models.Course{Slug: "go-basics", Title: "Go Basics"}
	require.NoError(t, courses.Create(ctx, course))

	loaded, err := courses.GetBySlug(ctx, "go-basics")
	require.NoError(t, err)
	assert.Equal(t, course.ID, loaded.ID)

	_, err = courses.GetBySlug(ctx, "nope")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteSectionLeavesOthersAlone(t *testing.T) {
	db := newTestDB(t)
	courses := NewCourseStore(db)
	ctx := context.Background()

	course := &models.Course{Slug: "go-basics", Title: "Go Basics"}
	require.NoError(t, courses.Create(ctx, course))
	first, err := courses.AddSection(ctx, course.ID, "Intro", "...")
	require.NoError(t, err)
	second, err := courses.AddSection(ctx, course.ID, "Types", "...")
	require.NoError(t, err)

	require.NoError(t, courses.DeleteSection(ctx, course.ID, first.ID))

	loaded, err := courses.Get(ctx, course.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Sections, 1)
	assert.Equal(t, second.ID, loaded.Sections[0].ID)

	err = courses.DeleteSection(ctx, course.ID, first.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
