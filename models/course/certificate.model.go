package course

import (
	"time"

	"gorm.io/gorm"
)

// Certificate statuses
const (
	CertificateGenerated = "GENERATED"
	CertificateDelivered = "DELIVERED"
	CertificateRevoked   = "REVOKED"
)

// Certificate is issued at most once per (user, session). SessionID is
// nullable so the certificate survives deletion of its session; the
// Archived* fields are snapshotted at issue time for the same reason.
type Certificate struct {
	gorm.Model
	UserID                     uint       `json:"user_id" gorm:"uniqueIndex:idx_certificates_user_session;not null"`
	SessionID                  *uint      `json:"session_id" gorm:"uniqueIndex:idx_certificates_user_session"`
	CertificateNumber          string     `json:"certificate_number" gorm:"unique;not null"`
	DateGenerated              time.Time  `json:"date_generated"`
	DateDelivered              *time.Time `json:"date_delivered"`
	Status                     string     `json:"status" gorm:"default:'GENERATED'"`
	ArchivedSessionTitle       string     `json:"archived_session_title"`
	ArchivedSessionDescription string     `json:"archived_session_description"`
	ArchivedScorePercentage    float64    `json:"archived_score_percentage"`
	IsDeleted                  bool       `gorm:"default:false"`
}
