package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/neuronstudy/backend/config"
	"github.com/neuronstudy/backend/models"
	"github.com/neuronstudy/backend/routes"
	"github.com/neuronstudy/backend/store"
)

// fakeUploader stands in for the GCS collaborator.
type fakeUploader struct {
	fail bool
}

func (f *fakeUploader) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if f.fail {
		return "", fmt.Errorf("%w: remote said no", models.ErrUploadFailed)
	}
	return "https://img.example.com/" + uuid.NewString(), nil
}

const (
	testWaitTimeout = 2 * time.Second
	testWaitTick    = 20 * time.Millisecond
)

type testEnv struct {
	app      *fiber.App
	db       *gorm.DB
	cfg      *config.Config
	uploader *fakeUploader
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))

	cfg := &config.Config{
		JWTSecret:          "test-secret",
		PaymentApproveAll:  true,
		ScrollSaveInterval: 100 * time.Millisecond,
	}

	app := fiber.New()
	uploader := &fakeUploader{}
	saver := routes.SetupRoutes(app, db, cfg, uploader, log.New(io.Discard, "", 0))
	t.Cleanup(saver.Close)

	return &testEnv{app: app, db: db, cfg: cfg, uploader: uploader}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var result map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 && json.Valid(raw) {
		_ = json.Unmarshal(raw, &result)
	}
	return resp, result
}

func (e *testEnv) requestList(t *testing.T, method, path, token string) (*http.Response, []map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	var result []map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &result)
	return resp, result
}

// registerUser signs up a fresh account through the API and returns its
// token and id.
func (e *testEnv) registerUser(t *testing.T, email string) (token, id string) {
	t.Helper()

	resp, result := e.request(t, "POST", "/api/auth/register", "", map[string]interface{}{
		"email":    email,
		"password": "hunter22",
		"name":     "Test User",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), user["id"].(string)
}

// registerAdmin creates an account and flips its admin flag in the store.
func (e *testEnv) registerAdmin(t *testing.T, email string) string {
	t.Helper()

	token, id := e.registerUser(t, email)
	require.NoError(t, e.db.Model(&models.User{}).Where("id = ?", id).Update("is_admin", true).Error)
	return token
}

// createCourse makes a course with sections through the admin API and
// returns the course id and section ids.
func (e *testEnv) createCourse(t *testing.T, adminToken, slug string, price float64, sections ...string) (string, []string) {
	t.Helper()

	resp, result := e.request(t, "POST", "/api/admin/courses", adminToken, map[string]interface{}{
		"slug":        slug,
		"title":       "Course " + slug,
		"description": "About " + slug,
		"body":        "Welcome",
		"price":       price,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	courseID := result["course"].(map[string]interface{})["id"].(string)

	sectionIDs := make([]string, 0, len(sections))
	for _, title := range sections {
		resp, result := e.request(t, "POST", "/api/admin/courses/"+courseID+"/sections", adminToken, map[string]interface{}{
			"title":   title,
			"content": "Content of " + title,
		})
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		sectionIDs = append(sectionIDs, result["section"].(map[string]interface{})["section_id"].(string))
	}
	return courseID, sectionIDs
}
