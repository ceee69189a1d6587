package courseValidator

import (
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SubmitAnswer validates the answer submission route and body
func SubmitAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, p := range []struct{ param, local string }{
			{"course_id", "courseID"},
		} {
			ok, err := paramInt(c, p.param, p.local)
			if !ok {
				return err
			}
		}

		reqData := new(struct {
			BlockIndex      *int  `json:"block_index"`
			QuestionIndex   *int  `json:"question_index"`
			SelectedOptions []int `json:"selected_options"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.BlockIndex == nil || *reqData.BlockIndex < 0 {
			errors["block_index"] = "Block index is required and must be 0 or greater!"
		}
		if reqData.QuestionIndex == nil || *reqData.QuestionIndex < 0 {
			errors["question_index"] = "Question index is required and must be 0 or greater!"
		}
		if len(reqData.SelectedOptions) == 0 {
			errors["selected_options"] = "Please select at least one option!"
		}
		for _, idx := range reqData.SelectedOptions {
			if idx < 0 {
				errors["selected_options"] = "Option indexes must be 0 or greater!"
				break
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("blockIndex", *reqData.BlockIndex)
		c.Locals("questionIndex", *reqData.QuestionIndex)
		c.Locals("selectedOptions", reqData.SelectedOptions)
		return c.Next()
	}
}

// MarkBlockComplete validates the block completion route
func MarkBlockComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := paramInt(c, "course_id", "courseID")
		if !ok {
			return err
		}

		reqData := new(struct {
			BlockIndex *int `json:"block_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.BlockIndex == nil || *reqData.BlockIndex < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"block_index": "Block index is required and must be 0 or greater!",
			})
		}

		c.Locals("blockIndex", *reqData.BlockIndex)
		return c.Next()
	}
}
