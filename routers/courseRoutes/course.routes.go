package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing session and course routes
func SetupCourseRoutes(app *fiber.App) {
	sessionGroup := app.Group("/session")

	// Session listing and details (published sessions)
	sessionGroup.Get("/list", middleware.JWTMiddleware, validators.SessionList(), controllers.GetAllSessions)
	sessionGroup.Get("/:session_id", middleware.JWTMiddleware, validators.SessionID(), controllers.GetSessionDetails)

	// Enrollment
	sessionGroup.Post("/:session_id/enroll", middleware.JWTMiddleware, validators.SessionID(), controllers.EnrollInSession)

	// Session score and certificate
	sessionGroup.Get("/:session_id/score", middleware.JWTMiddleware, validators.SessionID(), controllers.GetSessionScore)
	sessionGroup.Get("/:session_id/certificate/eligibility", middleware.JWTMiddleware, validators.SessionID(), controllers.GetCertificateEligibility)
	sessionGroup.Post("/:session_id/certificate", middleware.JWTMiddleware, validators.SessionID(), controllers.GenerateCertificate)

	courseGroup := app.Group("/course")

	// Content viewing (for enrolled users)
	courseGroup.Get("/:course_id/content", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseContent)

	// Answer submission and block completion
	courseGroup.Post("/:course_id/answer", middleware.JWTMiddleware, validators.SubmitAnswer(), controllers.SubmitAnswer)
	courseGroup.Post("/:course_id/complete", middleware.JWTMiddleware, validators.MarkBlockComplete(), controllers.MarkBlockComplete)

	// Progress and score tracking
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, validators.CourseID(), controllers.GetUserProgress)
	courseGroup.Get("/:course_id/score", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseScore)

	// User enrollments, badges, and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollments)
	userGroup.Get("/badges", middleware.JWTMiddleware, controllers.GetUserBadges)
	userGroup.Get("/certificates", middleware.JWTMiddleware, controllers.GetUserCertificates)
}
