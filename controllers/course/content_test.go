package controllers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestGetUserProgressUnparsableInteractionsLogged(t *testing.T) {
	db := setupHandlerDB(t)
	user := seedHandlerUser(t, db)

	session := courseModels.Session{Title: "Cohort", IsPublished: true}
	require.NoError(t, db.Create(&session).Error)
	crs := courseModels.Course{SessionID: session.ID, Title: "Course", IsPublished: true}
	require.NoError(t, db.Create(&crs).Error)
	enrollment := courseModels.Enrollment{UserID: user.ID, SessionID: session.ID, Status: "ENROLLED", EnrolledAt: time.Now()}
	require.NoError(t, db.Create(&enrollment).Error)

	// An array is not a valid interaction object; the whole map fails to
	// decode
	progress := courseModels.CourseProgress{
		UserID:       user.ID,
		CourseID:     crs.ID,
		Interactions: datatypes.JSON(`[1,2,3]`),
	}
	require.NoError(t, db.Create(&progress).Error)

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	app := fiber.New()
	app.Get("/course/:course_id/progress", func(c *fiber.Ctx) error {
		c.Locals("userId", user.ID)
		id, _ := strconv.Atoi(c.Params("course_id"))
		c.Locals("courseID", id)
		return c.Next()
	}, GetUserProgress)

	resp, err := app.Test(httptest.NewRequest("GET", "/course/"+strconv.Itoa(int(crs.ID))+"/progress", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status bool `json:"status"`
		Data   struct {
			Answered int `json:"answered"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Status)
	assert.Zero(t, body.Data.Answered)

	assert.Contains(t, logs.String(), "Unparsable interactions")
}
