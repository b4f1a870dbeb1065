package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/neuronstudy/backend/config"
	"github.com/neuronstudy/backend/middleware"
	"github.com/neuronstudy/backend/models"
	"github.com/neuronstudy/backend/services"
	"github.com/neuronstudy/backend/store"
	"github.com/neuronstudy/backend/utils"
)

type ProgressController struct {
	Courses     *store.CourseStore
	Enrollments *store.EnrollmentStore
	Progress    *services.ProgressService
	Saver       *services.ScrollSaver
	Cfg         *config.Config
}

func NewProgressController(courses *store.CourseStore, enrollments *store.EnrollmentStore, progress *services.ProgressService, saver *services.ScrollSaver, cfg *config.Config) *ProgressController {
	return &ProgressController{
		Courses:     courses,
		Enrollments: enrollments,
		Progress:    progress,
		Saver:       saver,
		Cfg:         cfg,
	}
}

// studiableCourse loads the course and checks that the signed-in user may
// study it.
func (pc *ProgressController) studiableCourse(c *fiber.Ctx, user *models.User) (*models.Course, error) {
	course, err := pc.Courses.Get(c.Context(), c.Params("id"))
	if err != nil {
		return nil, err
	}
	owned, err := pc.Enrollments.CourseIDs(c.Context(), user.ID)
	if err != nil {
		return nil, err
	}
	if !services.CanStudy(course, user, owned) {
		return nil, fiber.NewError(fiber.StatusForbidden, "Course is not unlocked")
	}
	return course, nil
}

// GetProgress godoc
// @Summary Get user progress
// @Description Returns the user's progress for every course they have touched
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	snapshot, err := pc.Progress.Snapshot(c.Context(), user.ID)
	if err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"progress": snapshot,
	})
}

// Resume godoc
// @Summary Resume position for a course
// @Description Returns where to reopen the course and the completion percentage
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /courses/{id}/resume [get]
func (pc *ProgressController) Resume(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	course, err := pc.studiableCourse(c, user)
	if err != nil {
		return utils.Fail(c, err)
	}

	progress, err := pc.Progress.Store.Get(c.Context(), user.ID, course.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"resume":             services.ResumeTargetFor(course, progress),
		"completion_percent": services.CompletionPercent(course, progress),
	})
}

// CompleteSection marks a section of the course as completed. Completing a
// section twice is a no-op.
func (pc *ProgressController) CompleteSection(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	course, err := pc.studiableCourse(c, user)
	if err != nil {
		return utils.Fail(c, err)
	}

	sectionID := c.Params("sectionId")
	found := false
	for _, section := range course.Sections {
		if section.ID == sectionID {
			found = true
			break
		}
	}
	if !found {
		return utils.Fail(c, models.ErrNotFound)
	}

	progress, err := pc.Progress.MarkCompleted(c.Context(), user.ID, course.ID, sectionID)
	if err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message":            "Section completed",
		"completed_sections": progress.Completed(),
		"completion_percent": services.CompletionPercent(course, progress),
	})
}

// SaveScroll feeds the debounced saver; the write lands after the quiet
// window with the latest offset.
func (pc *ProgressController) SaveScroll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	course, err := pc.studiableCourse(c, user)
	if err != nil {
		return utils.Fail(c, err)
	}

	var input struct {
		Position float64 `json:"position"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	pc.Saver.Save(user.ID, course.ID, input.Position)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Scroll position queued",
	})
}

// DetachScroll drops any queued scroll write for the course. Called when
// the reader view is torn down.
func (pc *ProgressController) DetachScroll(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	pc.Saver.Detach(user.ID, c.Params("id"))

	return c.JSON(fiber.Map{
		"message": "Scroll listener detached",
	})
}
