package controllers

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/neuronstudy/backend/config"
	"github.com/neuronstudy/backend/models"
	"github.com/neuronstudy/backend/services"
	"github.com/neuronstudy/backend/store"
	"github.com/neuronstudy/backend/utils"
)

type AdminController struct {
	Courses  *store.CourseStore
	Users    *store.UserStore
	Uploader services.ImageUploader
	Cfg      *config.Config
}

func NewAdminController(courses *store.CourseStore, users *store.UserStore, uploader services.ImageUploader, cfg *config.Config) *AdminController {
	return &AdminController{Courses: courses, Users: users, Uploader: uploader, Cfg: cfg}
}

func (ac *AdminController) CreateCourse(c *fiber.Ctx) error {
	var input struct {
		Slug        string  `json:"slug"`
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Body        string  `json:"body"`
		Price       float64 `json:"price"`
		CoverURL    string  `json:"cover_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Slug == "" || input.Title == "" {
		return utils.Fail(c, models.ErrInvalidInput)
	}
	if input.Price < 0 {
		return utils.Fail(c, models.ErrInvalidInput)
	}

	course := models.Course{
		Slug:        input.Slug,
		Title:       input.Title,
		Description: input.Description,
		Body:        input.Body,
		Price:       input.Price,
		CoverURL:    input.CoverURL,
	}
	if err := ac.Courses.Create(c.Context(), &course); err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Course created",
		"course":  course,
	})
}

func (ac *AdminController) UpdateCourse(c *fiber.Ctx) error {
	var input struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Body        string   `json:"body"`
		Price       *float64 `json:"price"`
		CoverURL    string   `json:"cover_url"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	fields := map[string]interface{}{}
	if input.Title != "" {
		fields["title"] = input.Title
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.Body != "" {
		fields["body"] = input.Body
	}
	if input.CoverURL != "" {
		fields["cover_url"] = input.CoverURL
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return utils.Fail(c, models.ErrInvalidInput)
		}
		fields["price"] = *input.Price
	}
	if len(fields) == 0 {
		return utils.Fail(c, models.ErrInvalidInput)
	}

	if err := ac.Courses.UpdateFields(c.Context(), c.Params("id"), fields); err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Course updated",
	})
}

func (ac *AdminController) AddSection(c *fiber.Ctx) error {
	var input struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Title == "" {
		return utils.Fail(c, models.ErrInvalidInput)
	}

	section, err := ac.Courses.AddSection(c.Context(), c.Params("id"), input.Title, input.Content)
	if err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Section added",
		"section": section,
	})
}

func (ac *AdminController) UpdateSection(c *fiber.Ctx) error {
	var input struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	fields := map[string]interface{}{}
	if input.Title != "" {
		fields["title"] = input.Title
	}
	if input.Content != "" {
		fields["content"] = input.Content
	}
	if len(fields) == 0 {
		return utils.Fail(c, models.ErrInvalidInput)
	}

	if err := ac.Courses.UpdateSection(c.Context(), c.Params("id"), c.Params("sectionId"), fields); err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Section updated",
	})
}

// DeleteSection removes the section from the course. Completed-section
// references in user progress are left as-is; readers skip unknown ids.
func (ac *AdminController) DeleteSection(c *fiber.Ctx) error {
	if err := ac.Courses.DeleteSection(c.Context(), c.Params("id"), c.Params("sectionId")); err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Section deleted",
	})
}

func (ac *AdminController) ListUsers(c *fiber.Ctx) error {
	users, err := ac.Users.List(c.Context())
	if err != nil {
		return utils.Fail(c, err)
	}

	result := make([]fiber.Map, 0, len(users))
	for _, user := range users {
		result = append(result, fiber.Map{
			"id":       user.ID,
			"email":    user.Email,
			"name":     user.Name,
			"is_admin": user.IsAdmin,
		})
	}

	return c.JSON(result)
}

// UploadImage stores a multipart image and returns its public URL.
func (ac *AdminController) UploadImage(c *fiber.Ctx) error {
	if ac.Uploader == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Image storage is not configured",
		})
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return utils.Fail(c, models.ErrInvalidInput)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.Fail(c, models.ErrInvalidInput)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.Fail(c, models.ErrInvalidInput)
	}

	url, err := ac.Uploader.UploadImage(c.Context(), data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"url": url,
	})
}
