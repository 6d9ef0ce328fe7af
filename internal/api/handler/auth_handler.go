package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebook/care-services/internal/api/metrics"
	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

type AuthHandler struct {
	authService   ports.AuthService
	clientService ports.ClientService
}

func NewAuthHandler(authService ports.AuthService, clientService ports.ClientService) *AuthHandler {
	return &AuthHandler{authService: authService, clientService: clientService}
}

// AdminLogin authenticates a member of staff.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Router       /auth/admin/login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	return h.login(c, domain.RoleAdmin)
}

// CarerLogin authenticates a carer.
//
// @Summary      Carer login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorBody
// @Router       /auth/carer/login [post]
func (h *AuthHandler) CarerLogin(c echo.Context) error {
	return h.login(c, domain.RoleCarer)
}

// ClientLogin authenticates a client.
//
// @Summary      Client login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorBody
// @Router       /auth/client/login [post]
func (h *AuthHandler) ClientLogin(c echo.Context) error {
	return h.login(c, domain.RoleClient)
}

func (h *AuthHandler) login(c echo.Context, role string) error {
	var req loginRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	token, principal, err := h.authService.Login(c.Request().Context(), role, req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(role, "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues(role, "success").Inc()

	return c.JSON(http.StatusOK, loginResponse{
		Token:   token,
		Session: domain.SessionFor(role),
		User:    principal,
	})
}

// Register creates a client account.
//
// @Summary      Client self-registration
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      409   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Router       /auth/client/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	client, err := h.clientService.Register(c.Request().Context(), ports.ClientInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Postcode: req.Postcode,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}
