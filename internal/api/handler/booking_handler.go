package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/carebook/care-services/internal/api/metrics"
	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// BookingHandler serves bookings to admins, carers and clients. Each portal
// only reaches its own methods through the router's role groups.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func bookingFilter(c echo.Context) (ports.BookingFilter, error) {
	from, to, err := dayRange(c)
	if err != nil {
		return ports.BookingFilter{}, err
	}
	return ports.BookingFilter{
		ClientID:  c.QueryParam("client_id"),
		CarerID:   c.QueryParam("carer_id"),
		ServiceID: c.QueryParam("service_id"),
		Status:    c.QueryParam("status"),
		DateFrom:  from,
		DateTo:    to,
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
	}, nil
}

// --- Admin ---

// List handles GET /v1/admin/bookings.
//
// @Summary      List bookings
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status      query     string  false  "pending, confirmed, completed, not_completed or cancelled"
// @Param        carer_id    query     string  false  "Carer ID"
// @Param        client_id   query     string  false  "Client ID"
// @Param        service_id  query     string  false  "Service ID"
// @Param        date_from   query     string  false  "YYYY-MM-DD"
// @Param        date_to     query     string  false  "YYYY-MM-DD"
// @Param        page        query     int     false  "Page (1-based)"
// @Param        limit       query     int     false  "Page size (max 100)"
// @Success      200         {object}  listResponse[domain.Booking]
// @Router       /v1/admin/bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	filter, err := bookingFilter(c)
	if err != nil {
		return err
	}
	page, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toList(page))
}

// Grouped handles GET /v1/admin/bookings/grouped.
//
// @Summary      Bookings grouped by week
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  groupedResponse
// @Router       /v1/admin/bookings/grouped [get]
func (h *BookingHandler) Grouped(c echo.Context) error {
	filter, err := bookingFilter(c)
	if err != nil {
		return err
	}
	groups, err := h.service.Grouped(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGrouped(groups))
}

// Create handles POST /v1/admin/bookings.
//
// @Summary      Create a booking for a client
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookingRequest  true  "Booking"
// @Success      201   {object}  domain.Booking
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /v1/admin/bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createBookingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	date, err := parseDay(req.Date)
	if err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), actor, ports.CreateBookingInput{
		ClientID:  req.ClientID,
		ServiceID: req.ServiceID,
		CarerID:   req.CarerID,
		Date:      date,
		StartTime: req.StartTime,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	metrics.BookingsCreatedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, res.Booking)
}

// @Summary      Get a booking
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  domain.Booking
// @Failure      404  {object}  errorBody
// @Router       /v1/admin/bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	b, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// Update handles PUT /v1/admin/bookings/:id.
//
// @Summary      Edit a booking
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Booking ID"
// @Param        body  body      updateBookingRequest  true  "Booking"
// @Success      200   {object}  domain.Booking
// @Failure      422   {object}  errorBody
// @Router       /v1/admin/bookings/{id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updateBookingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	date, err := parseDay(req.Date)
	if err != nil {
		return err
	}

	b, err := h.service.Update(c.Request().Context(), actor, c.Param("id"), ports.UpdateBookingInput{
		ServiceID: req.ServiceID,
		Date:      date,
		StartTime: req.StartTime,
		Notes:     req.Notes,
		Status:    req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// Assign handles POST /v1/admin/bookings/:id/assign.
//
// @Summary      Assign or unassign a carer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string         true  "Booking ID"
// @Param        body  body      assignRequest  true  "Empty carer_id unassigns"
// @Success      200   {object}  domain.Booking
// @Failure      422   {object}  errorBody
// @Router       /v1/admin/bookings/{id}/assign [post]
func (h *BookingHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req assignRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	b, err := h.service.Assign(c.Request().Context(), actor, c.Param("id"), req.CarerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// @Summary      Delete a booking
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "Booking ID"
// @Success      204
// @Failure      404  {object}  errorBody
// @Router       /v1/admin/bookings/{id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Carer portal ---

// Roster handles GET /v1/carer/roster.
//
// @Summary      The carer's bookings grouped by week
// @Tags         carer
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  groupedResponse
// @Router       /v1/carer/roster [get]
func (h *BookingHandler) Roster(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	groups, err := h.service.Roster(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGrouped(groups))
}

// MarkCompletion handles PATCH /v1/carer/bookings/:id/status.
//
// @Summary      Record the outcome of a visit
// @Tags         carer
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Booking ID"
// @Param        body  body      completionRequest  true  "Outcome"
// @Success      200   {object}  domain.Booking
// @Failure      404   {object}  errorBody
// @Failure      422   {object}  errorBody
// @Router       /v1/carer/bookings/{id}/status [patch]
func (h *BookingHandler) MarkCompletion(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req completionRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}

	b, err := h.service.MarkCompletion(c.Request().Context(), actor, c.Param("id"), domain.BookingStatus(req.Status), req.Note)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// --- Client portal ---

// ClientBookings handles GET /v1/client/bookings.
//
// @Summary      The client's bookings grouped by week
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  groupedResponse
// @Router       /v1/client/bookings [get]
func (h *BookingHandler) ClientBookings(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	groups, err := h.service.ClientBookings(c.Request().Context(), actor.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toGrouped(groups))
}

// ClientCreate handles POST /v1/client/bookings. A repeated Idempotency-Key
// returns the original booking with 200.
//
// @Summary      Book a service
// @Tags         client
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                false  "Client-chosen retry key"
// @Param        body             body      clientBookingRequest  true   "Booking"
// @Success      200              {object}  domain.Booking  "Replayed"
// @Success      201              {object}  domain.Booking
// @Failure      400              {object}  errorBody
// @Router       /v1/client/bookings [post]
func (h *BookingHandler) ClientCreate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req clientBookingRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	date, err := parseDay(req.Date)
	if err != nil {
		return err
	}

	res, err := h.service.Create(c.Request().Context(), actor, ports.CreateBookingInput{
		ClientID:       actor.ID,
		ServiceID:      req.ServiceID,
		Date:           date,
		StartTime:      req.StartTime,
		Notes:          req.Notes,
		IdempotencyKey: c.Request().Header.Get(headerIdempotencyKey),
	})
	if err != nil {
		return err
	}

	if res.AlreadyExisted {
		metrics.BookingsCreatedTotal.WithLabelValues("replayed").Inc()
		return c.JSON(http.StatusOK, res.Booking)
	}
	metrics.BookingsCreatedTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusCreated, res.Booking)
}

// Reschedule handles PUT /v1/client/bookings/:id.
//
// @Summary      Move an open booking
// @Tags         client
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Booking ID"
// @Param        body  body      rescheduleRequest  true  "New date and time"
// @Success      200   {object}  domain.Booking
// @Failure      422   {object}  errorBody
// @Router       /v1/client/bookings/{id} [put]
func (h *BookingHandler) Reschedule(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req rescheduleRequest
	if err := bindValid(c, &req); err != nil {
		return err
	}
	date, err := parseDay(req.Date)
	if err != nil {
		return err
	}

	b, err := h.service.Reschedule(c.Request().Context(), actor, c.Param("id"), ports.RescheduleInput{
		Date:      date,
		StartTime: req.StartTime,
		Notes:     req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}

// Cancel handles POST /v1/client/bookings/:id/cancel.
//
// @Summary      Cancel an open booking
// @Tags         client
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  domain.Booking
// @Failure      422  {object}  errorBody
// @Router       /v1/client/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	b, err := h.service.Cancel(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, b)
}
