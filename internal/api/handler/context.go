package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/carebook/care-services/internal/api/middleware"
	"github.com/carebook/care-services/internal/core/ports"
)

const dateLayout = "2006-01-02"

// ctxActor returns the authenticated caller set by the Auth middleware.
// Missing claims mean the route was mounted without Auth; reject with 401.
func ctxActor(c echo.Context) (ports.Actor, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	role, _ := c.Get(middleware.CtxRole).(string)
	if id == "" || role == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ports.Actor{ID: id, Role: role}, nil
}

// bindValid binds the request into req and runs the registered validator.
func bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}

func queryInt(c echo.Context, name string) int {
	n, _ := strconv.Atoi(c.QueryParam(name))
	return n
}

func listFilter(c echo.Context) ports.ListFilter {
	return ports.ListFilter{
		Search: c.QueryParam("search"),
		Page:   queryInt(c, "page"),
		Limit:  queryInt(c, "limit"),
	}
}

// parseDay parses a YYYY-MM-DD value; empty yields nil.
func parseDay(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "dates must be YYYY-MM-DD")
	}
	return &t, nil
}

// dayRange parses the date_from/date_to query pair. date_to covers its
// whole day.
func dayRange(c echo.Context) (from, to time.Time, err error) {
	f, err := parseDay(c.QueryParam("date_from"))
	if err != nil {
		return from, to, err
	}
	t, err := parseDay(c.QueryParam("date_to"))
	if err != nil {
		return from, to, err
	}
	if f != nil {
		from = *f
	}
	if t != nil {
		to = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return from, to, nil
}
