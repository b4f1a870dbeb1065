package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/neuronstudy/backend/config"
	"github.com/neuronstudy/backend/middleware"
	"github.com/neuronstudy/backend/models"
	"github.com/neuronstudy/backend/services"
	"github.com/neuronstudy/backend/store"
	"github.com/neuronstudy/backend/utils"
)

type CoursesController struct {
	Courses     *store.CourseStore
	Enrollments *store.EnrollmentStore
	Enrollment  *services.EnrollmentService
	Cfg         *config.Config
}

func NewCoursesController(courses *store.CourseStore, enrollments *store.EnrollmentStore, enrollment *services.EnrollmentService, cfg *config.Config) *CoursesController {
	return &CoursesController{
		Courses:     courses,
		Enrollments: enrollments,
		Enrollment:  enrollment,
		Cfg:         cfg,
	}
}

// entitlements loads the current user's purchased set; anonymous users
// have none.
func (cc *CoursesController) entitlements(c *fiber.Ctx) ([]string, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, nil
	}
	return cc.Enrollments.CourseIDs(c.Context(), user.ID)
}

func (cc *CoursesController) ListCourses(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	owned, err := cc.entitlements(c)
	if err != nil {
		return utils.Fail(c, err)
	}

	courses, err := cc.Courses.List(c.Context())
	if err != nil {
		return utils.Fail(c, err)
	}

	result := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		course := &courses[i]
		result = append(result, fiber.Map{
			"id":          course.ID,
			"slug":        course.Slug,
			"title":       course.Title,
			"description": course.Description,
			"price":       course.Price,
			"cover_url":   course.CoverURL,
			"sections":    len(course.Sections),
			"can_study":   services.CanStudy(course, user, owned),
		})
	}

	return c.JSON(result)
}

// GetCourse returns the course for its slug. Metadata is always visible;
// section content only when the caller may study the course. Signed-in
// users opening a free course are auto-enrolled on first view.
func (cc *CoursesController) GetCourse(c *fiber.Ctx) error {
	course, err := cc.Courses.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		return utils.Fail(c, err)
	}

	user := middleware.CurrentUser(c)
	owned, err := cc.entitlements(c)
	if err != nil {
		return utils.Fail(c, err)
	}
	canStudy := services.CanStudy(course, user, owned)

	if canStudy && user != nil {
		if err := cc.Enrollment.AutoEnrollFree(c.Context(), user, course); err != nil {
			return utils.Fail(c, err)
		}
	}

	response := fiber.Map{
		"id":          course.ID,
		"slug":        course.Slug,
		"title":       course.Title,
		"description": course.Description,
		"price":       course.Price,
		"cover_url":   course.CoverURL,
		"can_study":   canStudy,
	}
	if canStudy {
		response["body"] = course.Body
		response["sections"] = course.Sections
	}

	return c.JSON(response)
}

// EnrollCourse unlocks the course for the signed-in user. Paid courses
// need the payment-confirmed signal from the checkout step.
func (cc *CoursesController) EnrollCourse(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	course, err := cc.Courses.Get(c.Context(), c.Params("id"))
	if err != nil {
		return utils.Fail(c, err)
	}

	var input struct {
		PaymentConfirmed bool `json:"payment_confirmed"`
	}
	if err := c.BodyParser(&input); err != nil && len(c.Body()) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	if !course.IsFree() && !input.PaymentConfirmed {
		return utils.Fail(c, models.ErrPaymentDeclined)
	}

	purchased, err := cc.Enrollment.Enroll(c.Context(), user, course)
	if err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message":           "Enrolled",
		"purchased_courses": purchased,
	})
}
