package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PostDetail handles GET /:year/:month/:day/:slug. Route constraints
// guarantee the date parameters are integers.
func (s *Server) PostDetail(c *fiber.Ctx) error {
	ctx := c.Context()
	year, _ := c.ParamsInt("year")
	month, _ := c.ParamsInt("month")
	day, _ := c.ParamsInt("day")

	detail, err := s.postService.Detail(ctx, year, month, day, c.Params("slug"), currentUserID(c))
	if err != nil {
		return s.handlePageError(c, err)
	}

	return s.render(c, "posts/detail", fiber.Map{
		"Post":          detail.Post,
		"Comments":      detail.Comments,
		"Similar":       detail.Similar,
		"LikesCount":    detail.LikesCount,
		"LikedByCaller": detail.LikedByCaller,
	})
}

// CreatePostPage handles GET /create_post. The form can be pre-filled from
// query parameters, which bookmarklets use to share a page as a draft.
func (s *Server) CreatePostPage(c *fiber.Ctx) error {
	return s.render(c, "posts/create", fiber.Map{
		"Form": fiber.Map{
			"Title": c.Query("title"),
			"Body":  c.Query("body"),
		},
		"Errors": map[string]string{},
	})
}

// CreatePost handles POST /create_post.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	in := service.CreatePostInput{
		Title:  c.FormValue("title"),
		Body:   c.FormValue("body"),
		Status: c.FormValue("status", models.PostStatusDraft),
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		path, err := s.saveUpload(c, file, "images")
		if err != nil {
			if fields := fieldErrors(err); fields != nil {
				return c.Status(fiber.StatusBadRequest).Render("posts/create", fiber.Map{
					"Form":          in,
					"Errors":        fields,
					"CurrentUserID": userID,
				}, "layouts/base")
			}
			return s.handlePageError(c, err)
		}
		in.Image = path
	}

	if _, err := s.postService.Create(ctx, userID, in); err != nil {
		if fields := fieldErrors(err); fields != nil {
			return c.Status(fiber.StatusBadRequest).Render("posts/create", fiber.Map{
				"Form":          in,
				"Errors":        fields,
				"CurrentUserID": userID,
			}, "layouts/base")
		}
		return s.handlePageError(c, err)
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// PostLike handles POST /post_like. It reads form fields id and action and
// always answers JSON: {"status":"ok"} on success and {"status":"error"}
// otherwise, with no further detail.
func (s *Server) PostLike(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	postID, err := parseFormID(c.FormValue("id"))
	if err != nil {
		return c.JSON(fiber.Map{"status": "error"})
	}

	action := c.FormValue("action")
	if action == "" {
		return c.JSON(fiber.Map{"status": "error"})
	}

	if err := s.postService.ToggleLike(ctx, userID, postID, action); err != nil {
		return c.JSON(fiber.Map{"status": "error"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
