package server

import (
	"time"

	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// EditAccountPage handles GET /account/edit
func (s *Server) EditAccountPage(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return s.handlePageError(c, err)
	}
	profile, err := s.profileService.Get(ctx, userID)
	if err != nil {
		return s.handlePageError(c, err)
	}

	return s.render(c, "account/edit", fiber.Map{
		"User":    user,
		"Profile": profile,
		"Errors":  map[string]string{},
	})
}

// EditAccount handles POST /account/edit. Username and email live on the
// user record; date of birth and photo on the profile.
func (s *Server) EditAccount(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return s.handlePageError(c, err)
	}

	if username := c.FormValue("username"); username != "" {
		user.Username = username
	}
	if email := c.FormValue("email"); email != "" {
		user.Email = email
	}
	if err := s.userService.UpdateAccount(ctx, user); err != nil {
		return s.handlePageError(c, err)
	}

	in := service.UpdateProfileInput{}
	if dob := c.FormValue("date_of_birth"); dob != "" {
		parsed, err := time.Parse("2006-01-02", dob)
		if err != nil {
			profile, _ := s.profileService.Get(ctx, userID)
			return c.Status(fiber.StatusBadRequest).Render("account/edit", fiber.Map{
				"User":          user,
				"Profile":       profile,
				"Errors":        map[string]string{"date_of_birth": "Enter a valid date (YYYY-MM-DD)"},
				"CurrentUserID": userID,
			}, "layouts/base")
		}
		in.DateOfBirth = &parsed
	}

	if file, err := c.FormFile("photo"); err == nil && file != nil {
		path, err := s.saveUpload(c, file, "users")
		if err != nil {
			return s.handlePageError(c, err)
		}
		in.Photo = path
	}

	if _, err := s.profileService.Update(ctx, userID, in); err != nil {
		return s.handlePageError(c, err)
	}

	return c.Redirect("/account/edit", fiber.StatusSeeOther)
}
