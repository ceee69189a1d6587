package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetCourseScore returns the user's score for one course, served from the
// score cache when fresh
func GetCourseScore(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	if crs := requireEnrollment(c, userID, courseID); crs == nil {
		return nil
	}

	cache := getScoreCache()
	result, hit := cache.GetCourseScore(userID, uint(courseID))
	if !hit {
		result = newScoreService().CalculateCourseScore(uint(courseID), userID)
		cache.SetCourseScore(userID, uint(courseID), result)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course score fetched successfully!", result)
}

// GetSessionScore returns the user's combined percentage across all
// published courses of a session
func GetSessionScore(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	sessionID := c.Locals("sessionID").(int)

	var session courseModels.Session
	if err := database.Database.Db.Where("id = ? AND is_published = ? AND is_deleted = ?", sessionID, true, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	cache := getScoreCache()
	percentage, hit := cache.GetSessionScore(userID, uint(sessionID))
	if !hit {
		percentage = newScoreService().CalculateSessionScorePercentage(userID, uint(sessionID))
		cache.SetSessionScore(userID, uint(sessionID), percentage)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session score fetched successfully!", fiber.Map{
		"session_id":       sessionID,
		"score_percentage": percentage,
	})
}

// GetUserBadges lists the badges the current user has earned
func GetUserBadges(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	badges, err := listUserBadges(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", fiber.Map{
		"badges": badges,
		"total":  len(badges),
	})
}

func listUserBadges(userID uint) ([]courseModels.CourseBadge, error) {
	var badges []courseModels.CourseBadge
	err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("earned_date desc").
		Find(&badges).Error
	return badges, err
}
