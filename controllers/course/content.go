package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"
)

// requireEnrollment loads the course and verifies the user is enrolled in
// its owning session. Returns nil and writes the response when the check
// fails.
func requireEnrollment(c *fiber.Ctx, userID uint, courseID int) *courseModels.Course {
	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_published = ? AND is_deleted = ?", courseID, true, false).First(&crs).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		return nil
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND session_id = ? AND is_deleted = ?", userID, crs.SessionID, false).First(&enrollment).Error; err != nil {
		middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this session!", nil)
		return nil
	}
	return &crs
}

// GetCourseContent returns a course's block list for learners. Option
// correctness flags are stripped from the questionnaire before it leaves
// the server.
func GetCourseContent(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	crs := requireEnrollment(c, userID, courseID)
	if crs == nil {
		return nil
	}

	blocks, err := courseModels.DecodeBlocks(crs.Blocks)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read course content!", nil)
	}

	type blockView struct {
		Index         int                         `json:"index"`
		Type          string                      `json:"type"`
		Title         string                      `json:"title"`
		Text          string                      `json:"text,omitempty"`
		MediaURL      string                      `json:"media_url,omitempty"`
		Questionnaire *courseModels.Questionnaire `json:"questionnaire,omitempty"`
	}

	views := make([]blockView, len(blocks))
	for i, b := range blocks {
		views[i] = blockView{
			Index:    i,
			Type:     b.Type,
			Title:    b.Title,
			Text:     b.Text,
			MediaURL: b.MediaURL,
		}
		if b.Type == courseModels.BlockQuestionnaire && b.Questionnaire != nil {
			views[i].Questionnaire = b.Questionnaire.StripAnswers()
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content fetched successfully!", fiber.Map{
		"course_id": crs.ID,
		"title":     crs.Title,
		"blocks":    views,
	})
}

// GetUserProgress returns the user's progress in a course
func GetUserProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	crs := requireEnrollment(c, userID, courseID)
	if crs == nil {
		return nil
	}

	progress, err := newProgressStore().GetProgress(userID, uint(courseID))
	if err != nil {
		// No row yet: the user simply has not started
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
			"is_completed":     false,
			"completed_blocks": []int{},
			"answered":         0,
		})
	}

	completed, err := courseModels.DecodeCompletedBlocks(progress.CompletedBlocks)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to read progress!", nil)
	}
	completedList := make([]int, 0, len(completed))
	for idx := range completed {
		completedList = append(completedList, idx)
	}
	sort.Ints(completedList)

	interactions, err := courseModels.DecodeInteractions(progress.Interactions)
	answered := 0
	if err != nil {
		log.Printf("Unparsable interactions for user %d course %d: %v", userID, courseID, err)
	} else {
		answered = len(interactions.Answers)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"is_completed":        progress.IsCompleted,
		"completed_blocks":    completedList,
		"answered":            answered,
		"last_accessed_block": progress.LastAccessedBlock,
		"last_accessed":       progress.LastAccessed,
	})
}
