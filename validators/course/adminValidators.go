package courseValidator

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// CreateSessionAdmin validates the session create/update payload
func CreateSessionAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.SessionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Description
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}

		// Validate date ordering when both dates are given
		if reqData.StartDate != nil && reqData.EndDate != nil && reqData.EndDate.Before(*reqData.StartDate) {
			errors["end_date"] = "End date must be after start date!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSession", reqData)
		return c.Next()
	}
}

// UpdateSessionAdmin validates the :session_id parameter plus the payload
func UpdateSessionAdmin() fiber.Handler {
	create := CreateSessionAdmin()
	return func(c *fiber.Ctx) error {
		ok, err := paramInt(c, "session_id", "sessionID")
		if !ok {
			return err
		}
		return create(c)
	}
}

// CreateCourseAdmin validates the course create/update payload
func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := paramInt(c, "session_id", "sessionID")
		if !ok {
			return err
		}

		reqData := new(controllers.CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if strings.TrimSpace(reqData.Description) == "" {
			errors["description"] = "Description is required!"
		}
		if reqData.OrderIndex < 0 {
			errors["order_index"] = "Order index must be 0 or greater!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourseAdmin validates the :course_id parameter plus the payload
func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := paramInt(c, "course_id", "courseID")
		if !ok {
			return err
		}

		reqData := new(controllers.CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// SetCourseBlocks validates the block-authoring payload. The nested
// questionnaire shape is checked with struct tags; the cross-block
// invariants are enforced in the controller against the decoded form.
func SetCourseBlocks() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := paramInt(c, "course_id", "courseID")
		if !ok {
			return err
		}

		reqData := new(controllers.BlocksRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			if validationErrors, ok := err.(validator.ValidationErrors); ok {
				for _, fieldErr := range validationErrors {
					errors[fieldErr.Namespace()] = "Failed on rule: " + fieldErr.Tag()
				}
			} else {
				errors["blocks"] = "Invalid block payload!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBlocks", reqData)
		return c.Next()
	}
}
