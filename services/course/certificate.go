package courseService

import (
	"errors"
	"fmt"
	"lms/config"
	"lms/models/course"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertificateNotifier is told about freshly issued certificates. Delivery
// is fire-and-forget: a failing notifier never undoes a certificate.
type CertificateNotifier interface {
	CertificateIssued(userID uint, cert course.Certificate)
}

// EligibilityResult is the certificate decision for one user and session
type EligibilityResult struct {
	IsSessionCompleted     bool    `json:"is_session_completed"`
	SessionScorePercentage float64 `json:"session_score_percentage"`
	HasMinimumScore        bool    `json:"has_minimum_score"`
	IsEligible             bool    `json:"is_eligible"`
	HasExistingCertificate bool    `json:"has_existing_certificate"`
}

// CertificateService decides certificate eligibility and issues at most
// one certificate per (user, session)
type CertificateService struct {
	db     *gorm.DB
	scores *ScoreService

	// Notifier is optional; nil means no notifications are sent
	Notifier CertificateNotifier
}

func NewCertificateService(db *gorm.DB) *CertificateService {
	return &CertificateService{db: db, scores: NewScoreService(db)}
}

func minCertificateScore() float64 {
	if config.AppConfig == nil {
		return 70
	}
	return config.AppConfig.MinCertificateScore
}

// CheckEligibility combines session completion with session score. A
// session with no published courses is never completed.
func (s *CertificateService) CheckEligibility(userID, sessionID uint) (EligibilityResult, error) {
	var res EligibilityResult

	completed, err := s.isSessionCompleted(userID, sessionID)
	if err != nil {
		return res, err
	}
	res.IsSessionCompleted = completed
	res.SessionScorePercentage = s.scores.CalculateSessionScorePercentage(userID, sessionID)
	res.HasMinimumScore = res.SessionScorePercentage >= minCertificateScore()
	res.IsEligible = res.IsSessionCompleted && res.HasMinimumScore

	var existing course.Certificate
	err = s.db.Where("user_id = ? AND session_id = ? AND is_deleted = ?", userID, sessionID, false).First(&existing).Error
	if err == nil {
		res.HasExistingCertificate = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return res, err
	}
	return res, nil
}

// isSessionCompleted reports whether every published course of the session
// has a completed progress row for the user
func (s *CertificateService) isSessionCompleted(userID, sessionID uint) (bool, error) {
	courses, err := s.scores.publishedCourses(sessionID)
	if err != nil {
		return false, err
	}
	if len(courses) == 0 {
		return false, nil
	}
	courseIDs := make([]uint, len(courses))
	for i, crs := range courses {
		courseIDs[i] = crs.ID
	}
	var completed int64
	err = s.db.Model(&course.CourseProgress{}).
		Where("user_id = ? AND course_id IN ? AND is_completed = ? AND is_deleted = ?", userID, courseIDs, true, false).
		Count(&completed).Error
	if err != nil {
		return false, err
	}
	return completed == int64(len(courses)), nil
}

// EnsureCertificateExists issues a certificate if the user is eligible and
// none exists yet. The second return value reports whether this call
// created it. Repeated invocation can never create a second certificate:
// the existence check is re-run inside the issuing transaction and the
// unique index backs it up.
func (s *CertificateService) EnsureCertificateExists(userID, sessionID uint) (*course.Certificate, bool, error) {
	var existing course.Certificate
	err := s.db.Where("user_id = ? AND session_id = ? AND is_deleted = ?", userID, sessionID, false).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	eligibility, err := s.CheckEligibility(userID, sessionID)
	if err != nil {
		return nil, false, err
	}
	if !eligibility.IsEligible {
		return nil, false, nil
	}

	var session course.Session
	if err := s.db.Where("id = ? AND is_deleted = ?", sessionID, false).First(&session).Error; err != nil {
		return nil, false, err
	}

	var cert course.Certificate
	created := false
	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Fresh lookup inside the unit of work: a concurrent issuer may
		// have won since the check above
		var race course.Certificate
		err := tx.Where("user_id = ? AND session_id = ? AND is_deleted = ?", userID, sessionID, false).First(&race).Error
		if err == nil {
			cert = race
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		number, err := s.uniqueCertificateNumber(tx)
		if err != nil {
			return err
		}
		cert = course.Certificate{
			UserID:                     userID,
			SessionID:                  &session.ID,
			CertificateNumber:          number,
			DateGenerated:              time.Now(),
			Status:                     course.CertificateGenerated,
			ArchivedSessionTitle:       session.Title,
			ArchivedSessionDescription: session.Description,
			ArchivedScorePercentage:    eligibility.SessionScorePercentage,
		}
		if err := tx.Create(&cert).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		// A concurrent issuer may have beaten the transaction to the
		// unique index; their certificate is the one that counts
		var winner course.Certificate
		if ferr := s.db.Where("user_id = ? AND session_id = ? AND is_deleted = ?", userID, sessionID, false).First(&winner).Error; ferr == nil {
			log.Printf("Certificate for user %d session %d already created concurrently", userID, sessionID)
			return &winner, false, nil
		}
		return nil, false, err
	}

	if created && s.Notifier != nil {
		go s.Notifier.CertificateIssued(userID, cert)
	}
	return &cert, created, nil
}

// uniqueCertificateNumber generates a certificate number and retries until
// it does not collide with a persisted one
func (s *CertificateService) uniqueCertificateNumber(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		number := fmt.Sprintf("CERT-%d-%s", time.Now().Year(), strings.ToUpper(uuid.NewString()[:8]))
		var count int64
		if err := tx.Model(&course.Certificate{}).Where("certificate_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", errors.New("could not generate a unique certificate number")
}
