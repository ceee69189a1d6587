package courseService

import (
	"lms/models/course"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestEligibilityExactThreshold(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)

	// 10 questions across the session; 7 correct is exactly 70%
	courseA := seedCourse(t, db, session.ID, 4)
	courseB := seedCourse(t, db, session.ID, 3)
	courseC := seedCourse(t, db, session.ID, 3)
	answerQuestions(t, db, user.ID, courseA.ID, 4, 4)
	answerQuestions(t, db, user.ID, courseB.ID, 3, 3)
	answerQuestions(t, db, user.ID, courseC.ID, 3, 0)

	store := NewProgressStore(db, nil, nil)
	completeCourse(t, store, db, user.ID, courseA.ID)
	completeCourse(t, store, db, user.ID, courseB.ID)
	completeCourse(t, store, db, user.ID, courseC.ID)

	res, err := NewCertificateService(db).CheckEligibility(user.ID, session.ID)

	require.NoError(t, err)
	assert.True(t, res.IsSessionCompleted)
	assert.InDelta(t, 70.0, res.SessionScorePercentage, 0.001)
	assert.True(t, res.HasMinimumScore, "threshold is inclusive")
	assert.True(t, res.IsEligible)
	assert.False(t, res.HasExistingCertificate)
}

func TestNotEligibleWhenIncomplete(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)
	courseA := seedCourse(t, db, session.ID, 2)
	courseB := seedCourse(t, db, session.ID, 2)

	answerQuestions(t, db, user.ID, courseA.ID, 2, 2)
	answerQuestions(t, db, user.ID, courseB.ID, 2, 2)

	// Perfect score, but only one of two courses completed
	store := NewProgressStore(db, nil, nil)
	completeCourse(t, store, db, user.ID, courseA.ID)

	res, err := NewCertificateService(db).CheckEligibility(user.ID, session.ID)

	require.NoError(t, err)
	assert.False(t, res.IsSessionCompleted)
	assert.InDelta(t, 100.0, res.SessionScorePercentage, 0.001)
	assert.False(t, res.IsEligible)
}

func TestEmptySessionNeverCompleted(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)

	res, err := NewCertificateService(db).CheckEligibility(user.ID, session.ID)

	require.NoError(t, err)
	assert.False(t, res.IsSessionCompleted)
	assert.False(t, res.IsEligible)
}

func TestEnsureCertificateExistsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)
	crs := seedCourse(t, db, session.ID, 4)
	answerQuestions(t, db, user.ID, crs.ID, 4, 4)

	store := NewProgressStore(db, nil, nil)
	completeCourse(t, store, db, user.ID, crs.ID)

	svc := NewCertificateService(db)

	cert, created, err := svc.EnsureCertificateExists(user.ID, session.ID)
	require.NoError(t, err)
	require.NotNil(t, cert)
	assert.True(t, created)
	assert.NotEmpty(t, cert.CertificateNumber)
	assert.Equal(t, course.CertificateGenerated, cert.Status)
	assert.Equal(t, session.Title, cert.ArchivedSessionTitle)
	assert.InDelta(t, 100.0, cert.ArchivedScorePercentage, 0.001)

	again, created, err := svc.EnsureCertificateExists(user.ID, session.ID)
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.False(t, created)
	assert.Equal(t, cert.ID, again.ID)
	assert.Equal(t, cert.CertificateNumber, again.CertificateNumber)

	var count int64
	require.NoError(t, db.Model(&course.Certificate{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureCertificateNotEligible(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)
	crs := seedCourse(t, db, session.ID, 2)
	answerQuestions(t, db, user.ID, crs.ID, 2, 1) // 50%

	store := NewProgressStore(db, nil, nil)
	completeCourse(t, store, db, user.ID, crs.ID)

	cert, created, err := NewCertificateService(db).EnsureCertificateExists(user.ID, session.ID)

	require.NoError(t, err)
	assert.Nil(t, cert)
	assert.False(t, created)
}

type recordingNotifier struct {
	issued chan course.Certificate
}

func (n *recordingNotifier) CertificateIssued(userID uint, cert course.Certificate) {
	n.issued <- cert
}

func TestNotifierFiresOnceOnCreation(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)
	crs := seedCourse(t, db, session.ID, 2)
	answerQuestions(t, db, user.ID, crs.ID, 2, 2)

	store := NewProgressStore(db, nil, nil)
	completeCourse(t, store, db, user.ID, crs.ID)

	notifier := &recordingNotifier{issued: make(chan course.Certificate, 2)}
	svc := NewCertificateService(db)
	svc.Notifier = notifier

	cert, created, err := svc.EnsureCertificateExists(user.ID, session.ID)
	require.NoError(t, err)
	require.True(t, created)

	notified := <-notifier.issued
	assert.Equal(t, cert.CertificateNumber, notified.CertificateNumber)

	_, created, err = svc.EnsureCertificateExists(user.ID, session.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, notifier.issued, "no notification for an existing certificate")
}

func TestCertificateIssueRaceReturnsWinner(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db)
	session := seedSession(t, db)
	crs := seedCourse(t, db, session.ID, 2)
	answerQuestions(t, db, user.ID, crs.ID, 2, 2)

	store := NewProgressStore(db, nil, nil)
	completeCourse(t, store, db, user.ID, crs.ID)

	// Sneak a competing certificate in after the eligibility check, the
	// way a concurrent issuer would. The session load is the last read
	// before the issuing transaction opens; the fresh lookup inside that
	// transaction must then adopt the winner's row instead of inserting.
	injected := false
	var competitor course.Certificate
	err := db.Callback().Query().After("gorm:query").Register("competing_issue", func(tx *gorm.DB) {
		if injected {
			return
		}
		if _, ok := tx.Statement.Dest.(*course.Session); !ok {
			return
		}
		injected = true
		competitor = course.Certificate{
			UserID:                  user.ID,
			SessionID:               &session.ID,
			CertificateNumber:       "CERT-2026-RACE0001",
			DateGenerated:           time.Now(),
			Status:                  course.CertificateGenerated,
			ArchivedSessionTitle:    session.Title,
			ArchivedScorePercentage: 100,
		}
		require.NoError(t, db.Create(&competitor).Error)
	})
	require.NoError(t, err)

	cert, created, err := NewCertificateService(db).EnsureCertificateExists(user.ID, session.ID)

	require.NoError(t, err)
	require.NotNil(t, cert)
	require.True(t, injected)
	assert.False(t, created, "the concurrent issuer's certificate wins")
	assert.Equal(t, competitor.ID, cert.ID)
	assert.Equal(t, "CERT-2026-RACE0001", cert.CertificateNumber)

	var count int64
	require.NoError(t, db.Model(&course.Certificate{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
