package server

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostComment(t *testing.T) {
	app, srv, db := setupTestApp(t)
	author := createUser(t, db, "author")
	reader := createUser(t, db, "reader")

	post := createPublishedPost(t, db, author, "Commentable", time.Now().UTC())
	commentPath := fmt.Sprintf("/%d/comment", post.ID)

	t.Run("non-POST methods get a plain rejection", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, commentPath, nil)
		resp, err := app.Test(req, 5000)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "Only POST method is allowed", string(body))
	})

	t.Run("authenticated comment is attributed and live", func(t *testing.T) {
		resp, body := doPostForm(t, app, commentPath, sessionCookie(t, srv, reader), url.Values{
			"body": {"great read"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "Comment added")
		assert.NotContains(t, body, "awaiting moderation")

		var comment models.Comment
		require.NoError(t, db.Where("body = ?", "great read").First(&comment).Error)
		assert.True(t, comment.Active)
		require.NotNil(t, comment.UserID)
		assert.Equal(t, reader.ID, *comment.UserID)

		_, detail := doGet(t, app, detailPath(post), "")
		assert.Contains(t, detail, "great read")
	})

	t.Run("anonymous comment is held for moderation", func(t *testing.T) {
		resp, body := doPostForm(t, app, commentPath, "", url.Values{
			"body": {"drive-by remark"},
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, body, "awaiting moderation")

		var comment models.Comment
		require.NoError(t, db.Where("body = ?", "drive-by remark").First(&comment).Error)
		assert.False(t, comment.Active)
		assert.Nil(t, comment.UserID)

		_, detail := doGet(t, app, detailPath(post), "")
		assert.NotContains(t, detail, "drive-by remark")
	})

	t.Run("empty body re-renders with the error", func(t *testing.T) {
		resp, body := doPostForm(t, app, commentPath, "", url.Values{"body": {""}})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, body, "Body is required")
	})

	t.Run("unknown post is a 404", func(t *testing.T) {
		resp, _ := doPostForm(t, app, "/99999/comment", "", url.Values{"body": {"x"}})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
