package server

import (
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SignupPage handles GET /signup
func (s *Server) SignupPage(c *fiber.Ctx) error {
	return s.render(c, "auth/signup", fiber.Map{
		"Errors": map[string]string{},
		"Form":   fiber.Map{"Username": "", "Email": ""},
	})
}

// Signup handles POST /signup. A successful signup provisions the user's
// profile, logs the new user in, and redirects to the feed.
func (s *Server) Signup(c *fiber.Ctx) error {
	ctx := c.Context()

	in := service.SignupInput{
		Username: c.FormValue("username"),
		Email:    c.FormValue("email"),
		Password: c.FormValue("password"),
	}

	user, err := s.userService.Signup(ctx, in)
	if err != nil {
		if fields := fieldErrors(err); fields != nil {
			return c.Status(fiber.StatusBadRequest).Render("auth/signup", fiber.Map{
				"Errors": fields,
				"Form":   fiber.Map{"Username": in.Username, "Email": in.Email},
			}, "layouts/base")
		}
		return s.handlePageError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return s.handlePageError(c, models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)

	return c.Redirect("/", fiber.StatusSeeOther)
}

// LoginPage handles GET /login
func (s *Server) LoginPage(c *fiber.Ctx) error {
	return s.render(c, "auth/login", fiber.Map{
		"Form": fiber.Map{"Email": ""},
	})
}

// Login handles POST /login
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.Context()
	email := c.FormValue("email")
	password := c.FormValue("password")

	user, err := s.userService.Authenticate(ctx, email, password)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "UNAUTHORIZED" {
			return c.Status(fiber.StatusUnauthorized).Render("auth/login", fiber.Map{
				"Error": appErr.Message,
				"Form":  fiber.Map{"Email": email},
			}, "layouts/base")
		}
		return s.handlePageError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return s.handlePageError(c, models.NewInternalError(err))
	}
	s.setSessionCookie(c, token)

	return c.Redirect("/", fiber.StatusSeeOther)
}

// Logout handles POST /logout
func (s *Server) Logout(c *fiber.Ctx) error {
	s.clearSessionCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}
