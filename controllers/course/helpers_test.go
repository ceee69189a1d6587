package controllers

import (
	"fmt"
	"lms/database"
	"lms/models"
	"lms/models/course"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupHandlerDB opens a fresh in-memory database, migrates it, and points
// the global handle at it for the duration of the test
func setupHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&course.Session{},
		&course.Course{},
		&course.Enrollment{},
		&course.CourseProgress{},
		&course.CourseBadge{},
		&course.Certificate{},
	))

	prev := database.Database
	database.Database = database.DbInstance{Db: db}
	t.Cleanup(func() { database.Database = prev })
	return db
}

func seedHandlerUser(t *testing.T, db *gorm.DB) models.User {
	t.Helper()
	user := models.User{Name: "Handler Student", Email: fmt.Sprintf("%s@example.com", t.Name()), Role: "STUDENT"}
	require.NoError(t, db.Create(&user).Error)
	return user
}
