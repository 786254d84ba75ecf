package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/adrianguereque/accounts-api/internal/api/metrics"
	"github.com/adrianguereque/accounts-api/internal/api/middleware"
	"github.com/adrianguereque/accounts-api/internal/auth"
	"github.com/adrianguereque/accounts-api/internal/core/domain"
	"github.com/adrianguereque/accounts-api/internal/core/ports"
)

type UserHandler struct {
	users   ports.UserService
	cookies *auth.CookieManager
}

func NewUserHandler(users ports.UserService, cookies *auth.CookieManager) *UserHandler {
	return &UserHandler{users: users, cookies: cookies}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=admin owner user"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// updateRequest uses pointers so an absent field is distinguishable from an
// empty one. The id field is accepted but deliberately ignored on the "me"
// routes.
type updateRequest struct {
	ID       *int64  `json:"id,omitempty"`
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin owner user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role,omitempty"`
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := h.users.Register(c.Request().Context(), req.Email, req.Name, req.Password, req.Role); err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, messageResponse{Message: "User registered successfully"})
}

// Login checks the credentials and starts a session by setting the Auth and
// UserData cookies.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, acct, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	if err := h.cookies.Issue(c, token, acct); err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Login successful"})
}

// GetUsers lists every registered account.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   userResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /users/getUsers [get]
func (h *UserHandler) GetUsers(c echo.Context) error {
	accounts, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, userResponse{ID: a.ID, Email: a.Email, Name: a.Name, Role: a.Role})
	}
	return c.JSON(http.StatusOK, out)
}

// GetSession echoes the caller's session token. The Auth middleware has
// already verified it.
//
// @Summary      Current session token
// @Tags         users
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /users/getSession [get]
func (h *UserHandler) GetSession(c echo.Context) error {
	token, err := h.cookies.Token(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

// Logout clears both session cookies. Always succeeds, even without a
// session.
//
// @Summary      Logout
// @Tags         users
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /users/logoutUser [post]
func (h *UserHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Session closed"})
}

// UpdateUser applies a partial update to the account in the path.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Account id"
// @Param        body  body      updateRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/updateUser/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return h.updateByID(c, id)
}

// UpdateMe applies a partial update to the caller's own account. The target
// is always resolved from the session claims; an id in the body is ignored.
//
// @Summary      Update the authenticated user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateRequest  true  "Fields to change"
// @Success      200   {object}  messageResponse
// @Failure      401   {object}  map[string]string
// @Router       /users/updateUserMe [put]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	id, err := h.subjectID(c)
	if err != nil {
		return err
	}
	return h.updateByID(c, id)
}

// DeleteUser removes the account in the path.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "Account id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /users/deleteUser/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return h.deleteByID(c, id)
}

// DeleteMe removes the caller's own account, resolved from the session
// claims.
//
// @Summary      Delete the authenticated user
// @Tags         users
// @Produce      json
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Router       /users/deleteUserMe [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	id, err := h.subjectID(c)
	if err != nil {
		return err
	}
	return h.deleteByID(c, id)
}

func (h *UserHandler) updateByID(c echo.Context, id int64) error {
	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	upd := domain.AccountUpdate{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	}
	if _, err := h.users.Update(c.Request().Context(), id, upd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User updated successfully"})
}

func (h *UserHandler) deleteByID(c echo.Context, id int64) error {
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// subjectID resolves the caller's account id from the claims injected by the
// Auth middleware.
func (h *UserHandler) subjectID(c echo.Context) (int64, error) {
	claims := middleware.ClaimsFrom(c)
	if claims == nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	id, err := claims.AccountID()
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "not authenticated")
	}
	return id, nil
}
