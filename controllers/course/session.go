package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"time"

	"github.com/gofiber/fiber/v2"
)

// GetAllSessions lists published sessions with pagination
func GetAllSessions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	var sessions []courseModels.Session
	var total int64

	db := database.Database.Db.Model(&courseModels.Session{}).Where("is_published = ? AND is_deleted = ?", true, false)
	db.Count(&total)
	if err := db.Order("start_date asc").Offset(offset).Limit(limit).Find(&sessions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sessions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sessions fetched successfully!", fiber.Map{
		"sessions": sessions,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// GetSessionDetails returns one published session with its published courses
func GetSessionDetails(c *fiber.Ctx) error {
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

	var courses []courseModels.Course
	database.Database.Db.
		Where("session_id = ? AND is_published = ? AND is_deleted = ?", sessionID, true, false).
		Order("order_index asc").
		Find(&courses)

	// Block payloads are not part of the session overview
	type courseSummary struct {
		ID          uint   `json:"id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Author      string `json:"author"`
		OrderIndex  int    `json:"order_index"`
	}
	summaries := make([]courseSummary, len(courses))
	for i, crs := range courses {
		summaries[i] = courseSummary{
			ID:          crs.ID,
			Title:       crs.Title,
			Description: crs.Description,
			Author:      crs.Author,
			OrderIndex:  crs.OrderIndex,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Session fetched successfully!", fiber.Map{
		"session": session,
		"courses": summaries,
	})
}

// EnrollInSession enrolls the current user into a published session
func EnrollInSession(c *fiber.Ctx) error {
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
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found or not open!", nil)
	}

	var existing courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND session_id = ? AND is_deleted = ?", userID, sessionID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this session!", nil)
	}

	enrollment := courseModels.Enrollment{
		UserID:     userID,
		SessionID:  uint(sessionID),
		Status:     "ENROLLED",
		EnrolledAt: time.Now(),
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in session successfully!", enrollment)
}

// GetUserEnrollments lists the current user's session enrollments
func GetUserEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("created_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	type enrollmentWithSession struct {
		courseModels.Enrollment
		SessionTitle string `json:"session_title"`
	}

	result := make([]enrollmentWithSession, len(enrollments))
	for i, e := range enrollments {
		var session courseModels.Session
		database.Database.Db.Where("id = ?", e.SessionID).First(&session)
		result[i] = enrollmentWithSession{
			Enrollment:   e,
			SessionTitle: session.Title,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": result,
		"total":       len(result),
	})
}
