package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/neuronstudy/backend/config"
	"github.com/neuronstudy/backend/middleware"
	"github.com/neuronstudy/backend/services"
	"github.com/neuronstudy/backend/store"
	"github.com/neuronstudy/backend/utils"
)

type AuthController struct {
	Auth        *services.AuthService
	Enrollments *store.EnrollmentStore
	Cfg         *config.Config
}

func NewAuthController(auth *services.AuthService, enrollments *store.EnrollmentStore, cfg *config.Config) *AuthController {
	return &AuthController{Auth: auth, Enrollments: enrollments, Cfg: cfg}
}

// Register godoc
// @Summary Register a new user
// @Description Creates a new user account and signs it in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	user, token, err := ac.Auth.Register(c.Context(), input.Email, input.Password, input.Name)
	if err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate with email and password, returns a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	user, token, err := ac.Auth.SignIn(c.Context(), input.Email, input.Password)
	if err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// GoogleLogin godoc
// @Summary Sign in with Google
// @Description Verifies a Google ID token; creates the account on first sign-in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Router /auth/google [post]
func (ac *AuthController) GoogleLogin(c *fiber.Ctx) error {
	var input struct {
		IDToken string `json:"id_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	user, token, err := ac.Auth.SignInWithGoogle(c.Context(), input.IDToken)
	if err != nil {
		return utils.Fail(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// Me returns the signed-in user's profile with their entitlement set.
func (ac *AuthController) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	purchased, err := ac.Enrollments.CourseIDs(c.Context(), user.ID)
	if err != nil {
		return utils.Fail(c, err)
	}
	if purchased == nil {
		purchased = []string{}
	}

	return c.JSON(fiber.Map{
		"id":                user.ID,
		"email":             user.Email,
		"name":              user.Name,
		"is_admin":          user.IsAdmin,
		"purchased_courses": purchased,
	})
}
