package controllers

import (
	"errors"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseService "lms/services/course"

	"github.com/gofiber/fiber/v2"
)

// SubmitAnswer evaluates and records one question answer
func SubmitAnswer(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	blockIndex := c.Locals("blockIndex").(int)
	questionIndex := c.Locals("questionIndex").(int)
	selectedOptions := c.Locals("selectedOptions").([]int)

	if crs := requireEnrollment(c, userID, courseID); crs == nil {
		return nil
	}

	record, err := newProgressStore().SubmitAnswer(userID, uint(courseID), blockIndex, questionIndex, selectedOptions)
	if err != nil {
		switch {
		case errors.Is(err, courseService.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, courseService.ErrNotQuestionnaire),
			errors.Is(err, courseService.ErrInvalidQuestion),
			errors.Is(err, courseService.ErrNoOptionChosen):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit answer!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer submitted!", fiber.Map{
		"is_correct": record.Correct,
		"score":      record.ScoreResult.FinalScore,
		"max_score":  courseService.PointsPerQuestion(),
	})
}

// MarkBlockComplete marks one content block as completed; completing the
// last block completes the course and triggers badge and certificate
// evaluation
func MarkBlockComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	blockIndex := c.Locals("blockIndex").(int)

	if crs := requireEnrollment(c, userID, courseID); crs == nil {
		return nil
	}

	progress, err := newProgressStore().MarkBlockComplete(userID, uint(courseID), blockIndex)
	if err != nil {
		switch {
		case errors.Is(err, courseService.ErrCourseNotFound):
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		case errors.Is(err, courseService.ErrInvalidBlock):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
		default:
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark block complete!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Block marked complete!", fiber.Map{
		"is_completed": progress.IsCompleted,
	})
}
