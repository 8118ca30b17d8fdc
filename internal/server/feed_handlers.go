package server

import (
	"github.com/gofiber/fiber/v2"
)

// PostList handles GET / and GET /tag/:slug. The page query parameter is
// lenient: non-integer values fall back to page 1 and out-of-range numbers
// to the last page.
func (s *Server) PostList(c *fiber.Ctx) error {
	ctx := c.Context()

	page, tag, err := s.feedService.List(ctx, c.Params("slug"), c.Query("page"))
	if err != nil {
		return s.handlePageError(c, err)
	}

	return s.render(c, "posts/list", fiber.Map{
		"Page": page,
		"Tag":  tag,
	})
}
