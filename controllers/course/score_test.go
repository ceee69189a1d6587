package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"testing"

	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionScoreApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Get("/session/:session_id/score", func(c *fiber.Ctx) error {
		c.Locals("userId", userID)
		id, _ := strconv.Atoi(c.Params("session_id"))
		c.Locals("sessionID", id)
		return c.Next()
	}, GetSessionScore)
	return app
}

func TestGetSessionScoreUnknownSession(t *testing.T) {
	db := setupHandlerDB(t)
	user := seedHandlerUser(t, db)

	app := sessionScoreApp(user.ID)
	resp, err := app.Test(httptest.NewRequest("GET", "/session/9999/score", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetSessionScoreUnpublishedSession(t *testing.T) {
	db := setupHandlerDB(t)
	user := seedHandlerUser(t, db)

	session := courseModels.Session{Title: "Draft Cohort", Description: "Not open yet"}
	require.NoError(t, db.Create(&session).Error)

	app := sessionScoreApp(user.ID)
	resp, err := app.Test(httptest.NewRequest("GET", "/session/"+strconv.Itoa(int(session.ID))+"/score", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetSessionScorePublishedSession(t *testing.T) {
	db := setupHandlerDB(t)
	user := seedHandlerUser(t, db)

	session := courseModels.Session{Title: "Open Cohort", Description: "Open", IsPublished: true}
	require.NoError(t, db.Create(&session).Error)

	app := sessionScoreApp(user.ID)
	resp, err := app.Test(httptest.NewRequest("GET", "/session/"+strconv.Itoa(int(session.ID))+"/score", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Status bool `json:"status"`
		Data   struct {
			ScorePercentage float64 `json:"score_percentage"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Status)
	assert.Zero(t, body.Data.ScorePercentage)
}
