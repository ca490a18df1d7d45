package server

import (
	"storyhub/internal/middleware"
	"storyhub/internal/models"
	"storyhub/internal/presenter"
	"storyhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register creates an account and returns a token for it.
// @Summary Register a user
// @Tags auth
// @Accept json
// @Param request body object{username=string,email=string,password=string} true "Registration request"
// @Produce json
// @Success 201 {object} presenter.Token
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	token, err := s.authService.Register(c.UserContext(), service.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(presenter.NewToken(token))
}

// Login exchanges credentials for a token. Both JSON and form bodies are accepted.
// @Summary Log in
// @Tags auth
// @Accept json,x-www-form-urlencoded
// @Param request body object{username=string,password=string} true "Login credentials"
// @Produce json
// @Success 200 {object} presenter.Token
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" form:"username"`
		Password string `json:"password" form:"password"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	token, err := s.authService.Login(c.UserContext(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(presenter.NewToken(token))
}

// Logout revokes the presented token (protected)
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} presenter.Message
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return respondError(c, models.NewUnauthenticatedError("Not authenticated"))
	}

	if err := s.authService.Logout(c.UserContext(), claims); err != nil {
		return respondError(c, err)
	}

	return c.JSON(presenter.NewMessage("Successfully logged out"))
}
