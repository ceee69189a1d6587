package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// GetCertificateEligibility reports the user's certificate standing for a
// session without creating anything
func GetCertificateEligibility(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	sessionID := c.Locals("sessionID").(int)

	eligibility, err := newCertificateService().CheckEligibility(userID, uint(sessionID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check eligibility!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Eligibility checked successfully!", eligibility)
}

// GenerateCertificate issues the session certificate if the user is
// eligible; calling it again returns the already-issued certificate
func GenerateCertificate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	sessionID := c.Locals("sessionID").(int)

	cert, created, err := newCertificateService().EnsureCertificateExists(userID, uint(sessionID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate certificate!", nil)
	}
	if cert == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Not eligible for a certificate yet!", nil)
	}

	status := fiber.StatusOK
	message := "Certificate already issued!"
	if created {
		status = fiber.StatusCreated
		message = "Certificate issued successfully!"
	}
	return middleware.JsonResponse(c, status, true, message, cert)
}

// GetUserCertificates lists the current user's certificates
func GetUserCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []courseModels.Certificate
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).Order("date_generated desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"certificates": certificates,
		"total":        len(certificates),
	})
}
