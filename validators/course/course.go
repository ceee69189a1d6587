package courseValidator

import (
	"lms/middleware"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramInt parses a positive integer route parameter into Locals
func paramInt(c *fiber.Ctx, name, localKey string) (bool, error) {
	value, err := strconv.Atoi(c.Params(name))
	if err != nil || value < 1 {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid "+name+" parameter!", nil)
	}
	c.Locals(localKey, value)
	return true, nil
}

// SessionList validates pagination for the session listing
func SessionList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `query:"page"`
			Limit *int `query:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		// Validate Page
		page := 1
		if reqData.Page != nil {
			if *reqData.Page < 1 {
				errors["page"] = "Page must be greater than 0!"
			} else {
				page = *reqData.Page
			}
		}

		// Validate Limit
		limit := 20
		if reqData.Limit != nil {
			if *reqData.Limit < 1 || *reqData.Limit > 100 {
				errors["limit"] = "Limit must be between 1 and 100!"
			} else {
				limit = *reqData.Limit
			}
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}

// SessionID validates the :session_id route parameter
func SessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := paramInt(c, "session_id", "sessionID")
		if !ok {
			return err
		}
		return c.Next()
	}
}

// CourseID validates the :course_id route parameter
func CourseID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := paramInt(c, "course_id", "courseID")
		if !ok {
			return err
		}
		return c.Next()
	}
}
