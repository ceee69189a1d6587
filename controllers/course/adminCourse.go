package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateCourse creates a new (unpublished) course within a session
func AdminCreateCourse(c *fiber.Ctx) error {
	sessionID := c.Locals("sessionID").(int)
	reqData := c.Locals("validatedCourse").(*CourseRequest)

	var session courseModels.Session
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Session not found!", nil)
	}

	course := courseModels.Course{
		SessionID:   uint(sessionID),
		Title:       reqData.Title,
		Description: reqData.Description,
		Author:      reqData.Author,
		OrderIndex:  reqData.OrderIndex,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates a course's details
func AdminUpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	reqData := c.Locals("validatedCourse").(*CourseRequest)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Author = reqData.Author
	course.OrderIndex = reqData.OrderIndex

	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminSetCourseBlocks replaces a course's content block list. The
// authoring invariants (exactly one questionnaire, well-formed questions)
// are enforced before anything is written.
func AdminSetCourseBlocks(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	reqData := c.Locals("validatedBlocks").(*BlocksRequest)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	blocks := reqData.ToBlocks()
	if err := courseModels.ValidateBlocks(blocks); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	encoded, err := courseModels.EncodeBlocks(blocks)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to encode blocks!", nil)
	}

	course.Blocks = encoded
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course content saved successfully!", fiber.Map{
		"course_id": course.ID,
		"blocks":    len(blocks),
	})
}

// AdminPublishCourse publishes a course after checking its content is
// complete enough to grade
func AdminPublishCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	blocks, err := courseModels.DecodeBlocks(course.Blocks)
	if err != nil || len(blocks) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course has no content to publish!", nil)
	}
	if err := courseModels.ValidateBlocks(blocks); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	}

	course.IsPublished = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to publish course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// AdminDeleteCourse soft-deletes a course
func AdminDeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
