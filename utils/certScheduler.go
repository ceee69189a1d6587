package utils

import (
	"lms/database"
	courseModels "lms/models/course"
	courseService "lms/services/course"
	"log"

	"github.com/robfig/cron/v3"
)

// InitializeCertificateScheduler sets up the nightly eligibility sweep
func InitializeCertificateScheduler() {
	log.Println("[CERT-SWEEP] Initializing certificate scheduler...")

	c := cron.New()

	// Run daily at 2 AM to pick up eligibility that appeared without a
	// fresh completion event (e.g. course content edited)
	c.AddFunc("0 2 * * *", func() {
		log.Println("[CERT-SWEEP] Running daily certificate sweep...")
		SweepCertificates()
	})

	c.Start()
	log.Println("[CERT-SWEEP] Certificate scheduler started - runs daily at 2 AM")
}

// SweepCertificates re-checks certificate eligibility for every enrollment
// of every published session. EnsureCertificateExists is idempotent, so
// running this repeatedly can only fill gaps, never duplicate.
func SweepCertificates() {
	db := database.Database.Db

	certs := courseService.NewCertificateService(db)
	certs.Notifier = &CertNotifier{}

	var sessions []courseModels.Session
	if err := db.Where("is_published = ? AND is_deleted = ?", true, false).Find(&sessions).Error; err != nil {
		log.Printf("[CERT-SWEEP] Error fetching sessions: %v", err)
		return
	}

	issued := 0
	for _, session := range sessions {
		var enrollments []courseModels.Enrollment
		if err := db.Where("session_id = ? AND is_deleted = ?", session.ID, false).Find(&enrollments).Error; err != nil {
			log.Printf("[CERT-SWEEP] Error fetching enrollments for session %d: %v", session.ID, err)
			continue
		}

		for _, enrollment := range enrollments {
			_, created, err := certs.EnsureCertificateExists(enrollment.UserID, session.ID)
			if err != nil {
				log.Printf("[CERT-SWEEP] Certificate check failed for user %d session %d: %v", enrollment.UserID, session.ID, err)
				continue
			}
			if created {
				issued++
			}
		}
	}

	log.Printf("[CERT-SWEEP] Sweep complete, %d certificates issued", issued)
}
