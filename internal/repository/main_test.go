package repository

import (
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Tag{},
		&models.Post{},
		&models.Comment{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "pw"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, author *models.User, title, status string, publish time.Time, tags ...*models.Tag) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		Body:     "body of " + title,
		AuthorID: author.ID,
		Status:   status,
		Publish:  publish,
	}
	for _, tag := range tags {
		post.Tags = append(post.Tags, *tag)
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func createTestTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name}
	require.NoError(t, db.Create(tag).Error)
	return tag
}
