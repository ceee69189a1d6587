package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin session and course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/session", middleware.JWTMiddleware, middleware.AdminOnly)

	// Session CRUD
	adminGroup.Post("/create", validators.CreateSessionAdmin(), controllers.AdminCreateSession)
	adminGroup.Put("/:session_id", validators.UpdateSessionAdmin(), controllers.AdminUpdateSession)
	adminGroup.Post("/:session_id/publish", validators.SessionID(), controllers.AdminPublishSession)
	adminGroup.Get("/list", controllers.AdminGetAllSessions)
	adminGroup.Get("/:session_id/report", validators.SessionID(), controllers.AdminGetSessionReport)

	// Course Management
	adminGroup.Post("/:session_id/course", validators.CreateCourseAdmin(), controllers.AdminCreateCourse)

	courseGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.AdminOnly)
	courseGroup.Put("/:course_id", validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	courseGroup.Delete("/:course_id", validators.CourseID(), controllers.AdminDeleteCourse)
	courseGroup.Post("/:course_id/publish", validators.CourseID(), controllers.AdminPublishCourse)

	// Content authoring
	courseGroup.Put("/:course_id/blocks", validators.SetCourseBlocks(), controllers.AdminSetCourseBlocks)
}
