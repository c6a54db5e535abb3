package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/freshcodes/identity-gateway/internal/core/domain"
	"github.com/freshcodes/identity-gateway/internal/core/ports"
)

type UserHandler struct {
	verifier ports.UserVerifier
}

func NewUserHandler(verifier ports.UserVerifier) *UserHandler {
	return &UserHandler{verifier: verifier}
}

// Me returns the user resolved from the request's identity headers.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Create provisions a user explicitly. The write is an upsert: repeating the
// call with the same email replaces the stored record.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "User fields"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.verifier.CreateUser(c.Request().Context(), domain.NewUserParams{
		Email:       req.Email,
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Agents:      req.Agents,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// Get looks up a user by email.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        email  path      string  true  "User email"
// @Success      200    {object}  userResponse
// @Failure      404    {object}  map[string]string
// @Router       /users/{email} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.verifier.GetUser(c.Request().Context(), c.Param("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// UpdateRole patches the role of an existing user.
//
// @Summary      Update a user's role
// @Tags         users
// @Accept       json
// @Param        email  path  string             true  "User email"
// @Param        body   body  updateRoleRequest  true  "New role"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{email}/role [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.verifier.UpdateRole(c.Request().Context(), c.Param("email"), req.Role); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
