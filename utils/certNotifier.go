package utils

import (
	"lms/config"
	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// CertNotifier delivers certificate-issued notifications by email and
// webhook. Delivery is best effort: every failure is logged and dropped,
// never surfaced to the issuing path.
type CertNotifier struct{}

// CertificateIssued notifies the learner and the configured webhook
func (n *CertNotifier) CertificateIssued(userID uint, cert courseModels.Certificate) {
	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		log.Printf("[CERT-NOTIFY] User %d not found: %v", userID, err)
		return
	}

	if err := SendCertificateIssuedEmail(user.Email, user.Name, cert); err != nil {
		log.Printf("[CERT-NOTIFY] Email to %s failed: %v", user.Email, err)
	}

	notifyCertificateWebhook(user, cert)
}

// notifyCertificateWebhook posts the issued certificate to the configured
// endpoint, if any
func notifyCertificateWebhook(user models.User, cert courseModels.Certificate) {
	url := config.AppConfig.CertWebhookURL
	if url == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"event":              "certificate.issued",
			"user_id":            user.ID,
			"user_email":         user.Email,
			"certificate_number": cert.CertificateNumber,
			"session_title":      cert.ArchivedSessionTitle,
			"score_percentage":   cert.ArchivedScorePercentage,
			"date_generated":     cert.DateGenerated,
		}).
		Post(url)
	if err != nil {
		log.Printf("[CERT-NOTIFY] Webhook call failed: %v", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("[CERT-NOTIFY] Webhook returned status %d", resp.StatusCode())
	}
}
