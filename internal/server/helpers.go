package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// parseFormID parses a form field carrying a positive record ID.
func parseFormID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("Invalid ID")
	}
	return uint(id), nil
}

// currentUserID returns the authenticated caller's ID, or 0 for anonymous
// requests. AuthRequired routes always have a non-zero ID.
func currentUserID(c *fiber.Ctx) uint {
	if userID, ok := c.Locals("userID").(uint); ok {
		return userID
	}
	return 0
}

// render renders a view inside the base layout with the caller identity
// available to the navigation bar.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	data["CurrentUserID"] = currentUserID(c)
	return c.Render(name, data, "layouts/base")
}

// renderError renders the error page with the given status.
func (s *Server) renderError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).Render("errors/error", fiber.Map{
		"Status":        status,
		"Message":       message,
		"CurrentUserID": currentUserID(c),
	}, "layouts/base")
}

// handlePageError maps a service error onto an HTML error page.
func (s *Server) handlePageError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return s.renderError(c, fiber.StatusNotFound, appErr.Message)
		case "UNAUTHORIZED":
			return s.renderError(c, fiber.StatusUnauthorized, appErr.Message)
		case "VALIDATION_ERROR":
			return s.renderError(c, fiber.StatusBadRequest, appErr.Message)
		}
	}
	return s.renderError(c, fiber.StatusInternalServerError, "Something went wrong")
}

// fieldErrors extracts per-field validation messages from a service error, or
// nil when the error is not a field validation failure.
func fieldErrors(err error) map[string]string {
	var appErr *models.AppError
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		return appErr.Fields
	}
	return nil
}

// allowedImageExts are the upload extensions accepted for post and profile images.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// saveUpload stores an uploaded image under
// <MediaRoot>/<subdir>/YYYY/MM/DD/<uuid><ext> and returns the path relative
// to the media root, which is what gets persisted and served under /media.
func (s *Server) saveUpload(c *fiber.Ctx, file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", models.NewFieldValidationError(map[string]string{
			"image": "Unsupported image type",
		})
	}

	now := time.Now().UTC()
	relDir := filepath.Join(subdir, now.Format("2006"), now.Format("01"), now.Format("02"))
	absDir := filepath.Join(s.config.MediaRoot, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", models.NewInternalError(err)
	}

	name := uuid.New().String() + ext
	if err := c.SaveFile(file, filepath.Join(absDir, name)); err != nil {
		return "", models.NewInternalError(err)
	}
	return filepath.ToSlash(filepath.Join(relDir, name)), nil
}

// generateToken creates a JWT session token for the given user.
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      "inkwell",
		"exp":      now.Add(time.Hour * 24 * 7).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// setSessionCookie writes the session token cookie browsers carry on every
// page request.
func (s *Server) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    token,
		Expires:  time.Now().Add(time.Hour * 24 * 7),
		HTTPOnly: true,
		SameSite: "Lax",
		Secure:   s.config.IsProduction(),
		Path:     "/",
	})
}

// clearSessionCookie expires the session cookie.
func (s *Server) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.TokenCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}
