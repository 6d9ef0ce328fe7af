package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebook/care-services/internal/core/ports"
)

// AccountHandler serves the admin CRUD endpoints for staff, carers and clients.
type AccountHandler struct {
	users   ports.UserService
	carers  ports.CarerService
	clients ports.ClientService
}

func NewAccountHandler(users ports.UserService, carers ports.CarerService, clients ports.ClientService) *AccountHandler {
	return &AccountHandler{users: users, carers: carers, clients: clients}
}

// ListUsers handles GET /v1/admin/users.
//
// @Summary      List admin users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Name or email contains"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.User]
// @Router       /v1/admin/users [get]
func (h *AccountHandler) ListUsers(c echo.Context) error {
	page, err := h.users.List(c.Request().Context(), listFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(page))
}

// CreateUser handles POST /v1/admin/users.
//
// @Summary      Create an admin user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userRequest  true  "User"
// @Success      201   {object}  domain.User
// @Failure      409   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Router       /v1/admin/users [post]
func (h *AccountHandler) CreateUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req userRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "password is required")
	}

	u, err := h.users.Create(c.Request().Context(), actor, ports.CreateUserInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, u)
}

// GetUser handles GET /v1/admin/users/:id.
//
// @Summary      Get an admin user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  errorBody
// @Router       /v1/admin/users/{id} [get]
func (h *AccountHandler) GetUser(c echo.Context) error {
	u, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// UpdateUser handles PUT /v1/admin/users/:id. An empty password keeps the current one.
//
// @Summary      Update an admin user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "User ID"
// @Param        body  body      userRequest  true  "User"
// @Success      200   {object}  domain.User
// @Failure      409   {object}  errorBody
// @Router       /v1/admin/users/{id} [put]
func (h *AccountHandler) UpdateUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req userRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	u, err := h.users.Update(c.Request().Context(), actor, ports.UpdateUserInput{
		ID: c.Param("id"), Name: req.Name, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

// DeleteUser handles DELETE /v1/admin/users/:id.
//
// @Summary      Delete an admin user
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "User ID"
// @Success      204
// @Failure      403  {object}  errorBody
// @Router       /v1/admin/users/{id} [delete]
func (h *AccountHandler) DeleteUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListCarers handles GET /v1/admin/carers.
//
// @Summary      List carers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Name, email or postcode contains"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Carer]
// @Router       /v1/admin/carers [get]
func (h *AccountHandler) ListCarers(c echo.Context) error {
	page, err := h.carers.List(c.Request().Context(), listFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(page))
}

// CreateCarer handles POST /v1/admin/carers.
//
// @Summary      Create a carer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      carerRequest  true  "Carer"
// @Success      201   {object}  domain.Carer
// @Failure      409   {object}  errorBody
// @Router       /v1/admin/carers [post]
func (h *AccountHandler) CreateCarer(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req carerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "password is required")
	}

	carer, err := h.carers.Create(c.Request().Context(), actor, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, carer)
}

// @Summary      Get a carer
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Carer ID"
// @Success      200  {object}  domain.Carer
// @Failure      404  {object}  errorBody
// @Router       /v1/admin/carers/{id} [get]
func (h *AccountHandler) GetCarer(c echo.Context) error {
	carer, err := h.carers.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, carer)
}

// @Summary      Update a carer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Carer ID"
// @Param        body  body      carerRequest  true  "Carer"
// @Success      200   {object}  domain.Carer
// @Failure      409   {object}  errorBody
// @Router       /v1/admin/carers/{id} [put]
func (h *AccountHandler) UpdateCarer(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req carerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	carer, err := h.carers.Update(c.Request().Context(), actor, c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, carer)
}

// DeleteCarer handles DELETE /v1/admin/carers/:id. Open bookings go back to pending.
//
// @Summary      Delete a carer
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Carer ID"
// @Success      204
// @Failure      404  {object}  errorBody
// @Router       /v1/admin/carers/{id} [delete]
func (h *AccountHandler) DeleteCarer(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.carers.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListClients handles GET /v1/admin/clients.
//
// @Summary      List clients
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Name, email or postcode contains"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Client]
// @Router       /v1/admin/clients [get]
func (h *AccountHandler) ListClients(c echo.Context) error {
	page, err := h.clients.List(c.Request().Context(), listFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(page))
}

// @Summary      Create a client
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clientRequest  true  "Client"
// @Success      201   {object}  domain.Client
// @Failure      409   {object}  errorBody
// @Router       /v1/admin/clients [post]
func (h *AccountHandler) CreateClient(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req clientRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	if req.Password == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "password is required")
	}

	client, err := h.clients.Create(c.Request().Context(), actor, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// @Summary      Get a client
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  domain.Client
// @Failure      404  {object}  errorBody
// @Router       /v1/admin/clients/{id} [get]
func (h *AccountHandler) GetClient(c echo.Context) error {
	client, err := h.clients.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// @Summary      Update a client
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Client ID"
// @Param        body  body      clientRequest  true  "Client"
// @Success      200   {object}  domain.Client
// @Failure      409   {object}  errorBody
// @Router       /v1/admin/clients/{id} [put]
func (h *AccountHandler) UpdateClient(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req clientRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	client, err := h.clients.Update(c.Request().Context(), actor, c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// DeleteClient handles DELETE /v1/admin/clients/:id. Open bookings are cancelled.
//
// @Summary      Delete a client
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Client ID"
// @Success      204
// @Failure      404  {object}  errorBody
// @Router       /v1/admin/clients/{id} [delete]
func (h *AccountHandler) DeleteClient(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.clients.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
