package courseService

import (
	"lms/models/course"
	"log"

	"gorm.io/gorm"
)

// CompletionHook runs after every progress save. On the false→true
// completion edge it evaluates the course badge and then certificate
// eligibility for the owning session; when the course was already
// completed it still re-checks the certificate, covering eligibility that
// became true without a fresh completion event. Failures here are logged
// and swallowed — they must never fail the progress save that triggered
// them.
type CompletionHook struct {
	db     *gorm.DB
	badges *BadgeService
	certs  *CertificateService
}

func NewCompletionHook(db *gorm.DB, badges *BadgeService, certs *CertificateService) *CompletionHook {
	return &CompletionHook{db: db, badges: badges, certs: certs}
}

// OnProgressSaved reacts to a persisted progress update given the
// completion flag before and after the save
func (h *CompletionHook) OnProgressSaved(userID, courseID uint, wasCompleted, isCompleted bool) {
	if !isCompleted {
		return
	}

	if !wasCompleted {
		if _, err := h.badges.EvaluateAndAwardBadge(userID, courseID); err != nil {
			log.Printf("Badge evaluation failed for user %d course %d: %v", userID, courseID, err)
		}
	}

	var crs course.Course
	if err := h.db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		log.Printf("Could not resolve session for course %d: %v", courseID, err)
		return
	}

	if _, _, err := h.certs.EnsureCertificateExists(userID, crs.SessionID); err != nil {
		log.Printf("Certificate check failed for user %d session %d: %v", userID, crs.SessionID, err)
	}
}
