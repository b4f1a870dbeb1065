package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/neuronstudy/backend/config"
	"github.com/neuronstudy/backend/controllers"
	"github.com/neuronstudy/backend/middleware"
	"github.com/neuronstudy/backend/services"
	"github.com/neuronstudy/backend/store"
)

// SetupRoutes wires stores, services and controllers onto the app. The
// returned ScrollSaver must be closed on shutdown so pending scroll writes
// are flushed.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config, uploader services.ImageUploader, logger *log.Logger) *services.ScrollSaver {
	users := store.NewUserStore(db)
	courses := store.NewCourseStore(db)
	enrollments := store.NewEnrollmentStore(db)
	progressStore := store.NewProgressStore(db)

	authService := services.NewAuthService(users, cfg)
	enrollmentService := services.NewEnrollmentService(enrollments, services.SimulatedPayments{Approve: cfg.PaymentApproveAll})
	progressService := services.NewProgressService(users, progressStore)
	saver := services.NewScrollSaver(progressService, cfg.ScrollSaveInterval, logger)

	// Middleware
	authRequired := middleware.AuthMiddleware(db, cfg)
	authOptional := middleware.OptionalAuthMiddleware(db, cfg)
	adminOnly := middleware.AdminMiddleware()

	// Auth routes
	authController := controllers.NewAuthController(authService, enrollments, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)
	app.Post("/api/auth/google", authController.GoogleLogin)
	app.Get("/api/auth/me", authRequired, authController.Me)

	// Courses routes
	coursesController := controllers.NewCoursesController(courses, enrollments, enrollmentService, cfg)
	app.Get("/api/courses", authOptional, coursesController.ListCourses)
	app.Get("/api/courses/:slug", authOptional, coursesController.GetCourse)
	app.Post("/api/courses/:id/enroll", authRequired, coursesController.EnrollCourse)

	// Progress routes
	progressController := controllers.NewProgressController(courses, enrollments, progressService, saver, cfg)
	app.Get("/api/progress", authRequired, progressController.GetProgress)
	app.Get("/api/courses/:id/resume", authRequired, progressController.Resume)
	app.Post("/api/courses/:id/sections/:sectionId/complete", authRequired, progressController.CompleteSection)
	app.Put("/api/courses/:id/scroll", authRequired, progressController.SaveScroll)
	app.Delete("/api/courses/:id/scroll", authRequired, progressController.DetachScroll)

	// Admin routes
	adminController := controllers.NewAdminController(courses, users, uploader, cfg)
	admin := app.Group("/api/admin", authRequired, adminOnly)
	admin.Post("/courses", adminController.CreateCourse)
	admin.Put("/courses/:id", adminController.UpdateCourse)
	admin.Post("/courses/:id/sections", adminController.AddSection)
	admin.Put("/courses/:id/sections/:sectionId", adminController.UpdateSection)
	admin.Delete("/courses/:id/sections/:sectionId", adminController.DeleteSection)
	admin.Get("/users", adminController.ListUsers)
	admin.Post("/upload", adminController.UploadImage)

	return saver
}
