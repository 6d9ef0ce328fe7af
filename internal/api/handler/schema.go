package handler

import (
	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
	"github.com/carebook/care-services/internal/core/roster"
)

// errorBody documents the error shape rendered by the central error handler.
type errorBody struct {
	StatusCode int    `json:"statusCode" example:"404"`
	Message    string `json:"message" example:"booking not found"`
	Error      string `json:"error" example:"Not Found"`
}

// --- Shared response types ---

type pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listResponse[T any] struct {
	Data       []T        `json:"data"`
	Pagination pagination `json:"pagination"`
}

func toList[T any](p *ports.Page[T]) listResponse[T] {
	items := p.Items
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{
		Data: items,
		Pagination: pagination{
			Total:      p.Total,
			Page:       p.Page,
			Limit:      p.Limit,
			TotalPages: p.TotalPages,
		},
	}
}

type groupedResponse struct {
	Groups []roster.Group `json:"groups"`
}

func toGrouped(groups []roster.Group) groupedResponse {
	if groups == nil {
		groups = []roster.Group{}
	}
	return groupedResponse{Groups: groups}
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token   string            `json:"token"`
	Session domain.Session    `json:"session" example:"1"`
	User    *domain.Principal `json:"user"`
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"max=40"`
	Address  string `json:"address" validate:"max=250"`
	Postcode string `json:"postcode" validate:"max=12"`
}

// --- Accounts ---

type userRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
}

type carerRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Phone    string `json:"phone" validate:"max=40"`
	Address  string `json:"address" validate:"max=250"`
	Postcode string `json:"postcode" validate:"max=12"`
	Active   *bool  `json:"active"`
}

func (r carerRequest) input() ports.CarerInput {
	active := r.Active == nil || *r.Active
	return ports.CarerInput{
		Name: r.Name, Email: r.Email, Password: r.Password,
		Phone: r.Phone, Address: r.Address, Postcode: r.Postcode, Active: active,
	}
}

type clientRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Phone    string `json:"phone" validate:"max=40"`
	Address  string `json:"address" validate:"max=250"`
	Postcode string `json:"postcode" validate:"max=12"`
	Notes    string `json:"notes" validate:"max=2000"`
}

func (r clientRequest) input() ports.ClientInput {
	return ports.ClientInput{
		Name: r.Name, Email: r.Email, Password: r.Password,
		Phone: r.Phone, Address: r.Address, Postcode: r.Postcode, Notes: r.Notes,
	}
}

// profileRequest is the client's own edit of their profile. Notes are staff
// owned and absent here.
type profileRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Phone    string `json:"phone" validate:"max=40"`
	Address  string `json:"address" validate:"max=250"`
	Postcode string `json:"postcode" validate:"max=12"`
}

func (r profileRequest) input(notes string) ports.ClientInput {
	return ports.ClientInput{
		Name: r.Name, Email: r.Email, Password: r.Password,
		Phone: r.Phone, Address: r.Address, Postcode: r.Postcode, Notes: notes,
	}
}

// --- Catalogue ---

type serviceRequest struct {
	Name            string `json:"name" validate:"required,max=120"`
	Description     string `json:"description" validate:"max=2000"`
	DurationMinutes int    `json:"duration_minutes" validate:"required,gt=0"`
	PricePence      int64  `json:"price_pence" validate:"gte=0"`
	Active          *bool  `json:"active"`
}

func (r serviceRequest) input() ports.ServiceInput {
	active := r.Active == nil || *r.Active
	return ports.ServiceInput{
		Name: r.Name, Description: r.Description,
		DurationMinutes: r.DurationMinutes, PricePence: r.PricePence, Active: active,
	}
}

// --- Bookings ---

type createBookingRequest struct {
	ClientID  string `json:"client_id" validate:"required"`
	ServiceID string `json:"service_id" validate:"required"`
	CarerID   string `json:"carer_id"`
	Date      string `json:"date" validate:"day"`
	StartTime string `json:"start_time" validate:"clock"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type updateBookingRequest struct {
	ServiceID string `json:"service_id"`
	Date      string `json:"date" validate:"day"`
	StartTime string `json:"start_time" validate:"clock"`
	Notes     string `json:"notes" validate:"max=2000"`
	Status    string `json:"status" validate:"omitempty,oneof=pending confirmed completed not_completed cancelled"`
}

type assignRequest struct {
	CarerID string `json:"carer_id"`
}

type clientBookingRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
	Date      string `json:"date" validate:"day"`
	StartTime string `json:"start_time" validate:"clock"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type rescheduleRequest struct {
	Date      string `json:"date" validate:"day"`
	StartTime string `json:"start_time" validate:"clock"`
	Notes     string `json:"notes" validate:"max=2000"`
}

type completionRequest struct {
	Status string `json:"status" validate:"required,oneof=completed not_completed"`
	Note   string `json:"note" validate:"max=2000"`
}

// --- Account deletion ---

type deleteRequestRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}
