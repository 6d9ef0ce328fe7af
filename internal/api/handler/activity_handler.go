package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebook/care-services/internal/core/ports"
)

type ActivityHandler struct {
	service ports.ActivityService
}

func NewActivityHandler(service ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// List handles GET /v1/admin/activity-logs.
//
// @Summary      Audit trail
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        actor_id   query     string  false  "Actor ID"
// @Param        entity     query     string  false  "user, carer, client, service, booking or account_delete_request"
// @Param        date_from  query     string  false  "YYYY-MM-DD"
// @Param        date_to    query     string  false  "YYYY-MM-DD"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {object}  listResponse[domain.ActivityLog]
// @Router       /v1/admin/activity-logs [get]
func (h *ActivityHandler) List(c echo.Context) error {
	from, to, err := dayRange(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), ports.ActivityFilter{
		ActorID:  c.QueryParam("actor_id"),
		Entity:   c.QueryParam("entity"),
		DateFrom: from,
		DateTo:   to,
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(page))
}
