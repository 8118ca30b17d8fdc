package server

import (
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PostComment handles /:post_id/comment. The route is registered for every
// method so non-POST requests get an explicit plain-text rejection instead of
// a generic 405 page.
func (s *Server) PostComment(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return c.Status(fiber.StatusMethodNotAllowed).
			SendString("Only POST method is allowed")
	}

	ctx := c.Context()
	postID, _ := c.ParamsInt("post_id")

	in := service.SubmitCommentInput{
		PostID: uint(postID),
		Body:   c.FormValue("body"),
	}
	if userID := currentUserID(c); userID != 0 {
		in.UserID = &userID
	}

	comment, err := s.commentService.Submit(ctx, in)
	if err != nil {
		if fields := fieldErrors(err); fields != nil {
			return c.Status(fiber.StatusBadRequest).Render("posts/comment", fiber.Map{
				"Errors":        fields,
				"Body":          in.Body,
				"CurrentUserID": currentUserID(c),
			}, "layouts/base")
		}
		return s.handlePageError(c, err)
	}

	// The confirmation page shows the comment as submitted; held comments
	// additionally carry the moderation notice.
	return s.render(c, "posts/comment", fiber.Map{
		"Comment": comment,
		"Held":    !comment.Active,
	})
}
