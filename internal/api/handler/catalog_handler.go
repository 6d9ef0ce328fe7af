package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebook/care-services/internal/core/ports"
)

type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// PublicList handles GET /v1/services.
//
// @Summary      List bookable services
// @Tags         services
// @Produce      json
// @Param        search  query     string  false  "Name or description contains"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Service]
// @Router       /v1/services [get]
func (h *CatalogHandler) PublicList(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), ports.ServiceFilter{ListFilter: listFilter(c), ActiveOnly: true})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(page))
}

// List handles GET /v1/admin/services; retired services are included.
//
// @Summary      List every service
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        search  query     string  false  "Name or description contains"
// @Param        page    query     int     false  "Page (1-based)"
// @Param        limit   query     int     false  "Page size (max 100)"
// @Success      200     {object}  listResponse[domain.Service]
// @Router       /v1/admin/services [get]
func (h *CatalogHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), ports.ServiceFilter{ListFilter: listFilter(c)})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(page))
}

// Create handles POST /v1/admin/services.
//
// @Summary      Create a service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      serviceRequest  true  "Service"
// @Success      201   {object}  domain.Service
// @Failure      409   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Router       /v1/admin/services [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req serviceRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	svc, err := h.service.Create(c.Request().Context(), actor, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, svc)
}

// @Summary      Get a service
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Service ID"
// @Success      200  {object}  domain.Service
// @Failure      404  {object}  errorBody
// @Router       /v1/admin/services/{id} [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	svc, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

// @Summary      Update a service
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Service ID"
// @Param        body  body      serviceRequest  true  "Service"
// @Success      200   {object}  domain.Service
// @Failure      409   {object}  errorBody
// @Router       /v1/admin/services/{id} [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req serviceRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	svc, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, svc)
}

// @Summary      Delete a service
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Service ID"
// @Success      204
// @Failure      404  {object}  errorBody
// @Router       /v1/admin/services/{id} [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
