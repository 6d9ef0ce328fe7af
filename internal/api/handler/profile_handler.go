package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebook/care-services/internal/core/ports"
)

// ProfileHandler serves the /me endpoints of the carer and client portals.
type ProfileHandler struct {
	carers  ports.CarerService
	clients ports.ClientService
}

func NewProfileHandler(carers ports.CarerService, clients ports.ClientService) *ProfileHandler {
	return &ProfileHandler{carers: carers, clients: clients}
}

// CarerMe handles GET /v1/carer/me.
//
// @Summary      The signed-in carer
// @Tags         carer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Carer
// @Router       /v1/carer/me [get]
func (h *ProfileHandler) CarerMe(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	carer, err := h.carers.Get(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, carer)
}

// ClientMe handles GET /v1/client/me.
//
// @Summary      The signed-in client
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Client
// @Router       /v1/client/me [get]
func (h *ProfileHandler) ClientMe(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	client, err := h.clients.Get(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// UpdateClientMe handles PUT /v1/client/me.
//
// @Summary      Update the signed-in client
// @Tags         client
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile"
// @Success      200   {object}  domain.Client
// @Failure      409   {object}  errorBody
// @Router       /v1/client/me [put]
func (h *ProfileHandler) UpdateClientMe(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	current, err := h.clients.Get(ctx, actor.ID)
	if err != nil {
		return err
	}
	client, err := h.clients.Update(ctx, actor, actor.ID, req.input(current.Notes))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}
