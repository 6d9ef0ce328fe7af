package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebook/care-services/internal/core/ports"
)

type DeletionHandler struct {
	service ports.DeletionService
}

func NewDeletionHandler(service ports.DeletionService) *DeletionHandler {
	return &DeletionHandler{service: service}
}

// Request handles POST /v1/{carer,client}/account-delete-request.
//
// @Summary      Ask for the signed-in account to be deleted
// @Tags         carer, client
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteRequestRequest  true  "Reason"
// @Success      201   {object}  domain.AccountDeleteRequest
// @Failure      409   {object}  errorBody  "A request is already pending"
// @Router       /v1/client/account-delete-request [post]
// @Router       /v1/carer/account-delete-request [post]
func (h *DeletionHandler) Request(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req deleteRequestRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	r, err := h.service.Request(c.Request().Context(), actor, req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, r)
}

// List handles GET /v1/admin/account-delete-requests.
//
// @Summary      Account delete requests
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status        query     string  false  "pending, approved or rejected"
// @Param        account_role  query     string  false  "carer or client"
// @Success      200           {object}  listResponse[domain.AccountDeleteRequest]
// @Router       /v1/admin/account-delete-requests [get]
func (h *DeletionHandler) List(c echo.Context) error {
	page, err := h.service.List(c.Request().Context(), ports.DeleteRequestFilter{
		Status:      c.QueryParam("status"),
		AccountRole: c.QueryParam("account_role"),
		Page:        queryInt(c, "page"),
		Limit:       queryInt(c, "limit"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(page))
}

// Approve handles POST /v1/admin/account-delete-requests/:id/approve.
//
// @Summary      Approve and delete the account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  domain.AccountDeleteRequest
// @Failure      422  {object}  errorBody  "Already resolved"
// @Router       /v1/admin/account-delete-requests/{id}/approve [post]
func (h *DeletionHandler) Approve(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	r, err := h.service.Approve(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}

// Reject handles POST /v1/admin/account-delete-requests/:id/reject.
//
// @Summary      Reject a deletion request
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  domain.AccountDeleteRequest
// @Failure      422  {object}  errorBody  "Already resolved"
// @Router       /v1/admin/account-delete-requests/{id}/reject [post]
func (h *DeletionHandler) Reject(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	r, err := h.service.Reject(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, r)
}
