package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/neuronstudy/backend/config"
	"github.com/neuronstudy/backend/models"
	"github.com/neuronstudy/backend/store"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret"}
}

func seedUser(t *testing.T, db *gorm.DB, user *models.User) *models.User {
	t.Helper()
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, course *models.Course) *models.Course {
	t.Helper()
	require.NoError(t, db.Create(course).Error)
	return course
}
