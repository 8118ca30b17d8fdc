// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var tagNames = []string{
	"Go", "Python", "Databases", "Web", "DevOps", "Testing",
	"Design", "Career", "Open Source", "Performance",
}

// Seed populates the database with demo blog data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	tags, err := createTags(db)
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}

	posts, err := createPosts(db, users, tags, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := createComments(db, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	if err := createLikes(db, users, posts); err != nil {
		return fmt.Errorf("failed to create likes: %w", err)
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	// Join tables first, then children, then parents.
	for _, stmt := range []string{
		"DELETE FROM post_likes",
		"DELETE FROM post_tags",
		"DELETE FROM comments",
		"DELETE FROM posts",
		"DELETE FROM profiles",
		"DELETE FROM tags",
		"DELETE FROM users",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, n int) ([]*models.User, error) {
	// Every seeded account shares one password so demos can log in as anyone.
	hashed, err := bcrypt.GenerateFromPassword([]byte("Passw0rdDemo123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		username := strings.ToLower(gofakeit.Username())
		user := &models.User{
			Username: fmt.Sprintf("%s%d", username, i),
			Email:    fmt.Sprintf("%s%d@%s", username, i, gofakeit.DomainName()),
			Password: string(hashed),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		profile := &models.Profile{UserID: user.ID}
		if gofakeit.Bool() {
			dob := gofakeit.DateRange(
				time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC))
			profile.DateOfBirth = &dob
		}
		if err := db.Create(profile).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createTags(db *gorm.DB) ([]*models.Tag, error) {
	tags := make([]*models.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		tag := &models.Tag{Name: name}
		if err := db.Where(models.Tag{Name: name}).FirstOrCreate(tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func createPosts(db *gorm.DB, users []*models.User, tags []*models.Tag, n int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		status := models.PostStatusPublished
		if rand.Intn(10) == 0 {
			status = models.PostStatusDraft
		}

		post := &models.Post{
			Title:    gofakeit.Sentence(gofakeit.Number(3, 7)),
			Body:     gofakeit.Paragraph(2, 4, 8, "\n\n"),
			AuthorID: author.ID,
			Status:   status,
			Publish:  time.Now().UTC().AddDate(0, 0, -rand.Intn(90)),
		}
		if err := db.Create(post).Error; err != nil {
			return nil, err
		}

		// one to three tags per post
		picked := rand.Perm(len(tags))[:gofakeit.Number(1, 3)]
		for _, idx := range picked {
			if err := db.Model(post).Association("Tags").Append(tags[idx]); err != nil {
				return nil, err
			}
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for i := 0; i < rand.Intn(6); i++ {
			comment := &models.Comment{
				PostID: post.ID,
				Body:   gofakeit.Sentence(gofakeit.Number(5, 20)),
			}
			// a quarter of comments are anonymous and held
			if rand.Intn(4) > 0 {
				user := users[rand.Intn(len(users))]
				comment.UserID = &user.ID
				comment.Active = true
			}
			if err := db.Create(comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func createLikes(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for _, idx := range rand.Perm(len(users))[:rand.Intn(len(users))/2] {
			err := db.Exec(
				"INSERT INTO post_likes (user_id, post_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
				users[idx].ID, post.ID).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}
