package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateSession creates a new (unpublished) session
func AdminCreateSession(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSession").(*SessionRequest)

	session := courseModels.Session{
		Title:       reqData.Title,
		Description: reqData.Description,
		StartDate:   reqData.StartDate,
		EndDate:     reqData.EndDate,
	}

	if err := database.Database.Db.Create(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Session created successfully!", session)
}

// AdminUpdateSession updates a session's details
func AdminUpdateSession(c *fiber.Ctx) error {
	sessionID := c.Locals("sessionID").(int)
	reqData := c.Locals("validatedSession").(*SessionRequest)

	var session courseModels.Session
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	session.Title = reqData.Title
	session.Description = reqData.Description
	session.StartDate = reqData.StartDate
	session.EndDate = reqData.EndDate

	if err := database.Database.Db.Save(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session updated successfully!", session)
}

// AdminPublishSession publishes a session, making it visible for enrollment
func AdminPublishSession(c *fiber.Ctx) error {
	sessionID := c.Locals("sessionID").(int)

	var session courseModels.Session
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	session.IsPublished = true
	if err := database.Database.Db.Save(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session published successfully!", session)
}

// AdminGetAllSessions lists all sessions including unpublished ones
func AdminGetAllSessions(c *fiber.Ctx) error {
	var sessions []courseModels.Session
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("created_at desc").Find(&sessions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sessions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sessions fetched successfully!", fiber.Map{
		"sessions": sessions,
		"total":    len(sessions),
	})
}

// AdminGetSessionReport summarizes enrollment, completion, and
// certification for one session
func AdminGetSessionReport(c *fiber.Ctx) error {
	sessionID := c.Locals("sessionID").(int)

	var session courseModels.Session
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	db := database.Database.Db

	var enrolled int64
	db.Model(&courseModels.Enrollment{}).Where("session_id = ? AND is_deleted = ?", sessionID, false).Count(&enrolled)

	var courseIDs []uint
	db.Model(&courseModels.Course{}).
		Where("session_id = ? AND is_published = ? AND is_deleted = ?", sessionID, true, false).
		Pluck("id", &courseIDs)

	var completions int64
	if len(courseIDs) > 0 {
		db.Model(&courseModels.CourseProgress{}).
			Where("course_id IN ? AND is_completed = ? AND is_deleted = ?", courseIDs, true, false).
			Count(&completions)
	}

	var certificates int64
	db.Model(&courseModels.Certificate{}).Where("session_id = ? AND is_deleted = ?", sessionID, false).Count(&certificates)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session report fetched successfully!", fiber.Map{
		"session":            session,
		"enrolled":           enrolled,
		"published_courses":  len(courseIDs),
		"course_completions": completions,
		"certificates":       certificates,
	})
}
