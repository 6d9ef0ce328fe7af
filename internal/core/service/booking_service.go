package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
	"github.com/carebook/care-services/internal/core/roster"
)

// IdempotencyStore remembers which booking an idempotency key produced.
type IdempotencyStore interface {
	// Lookup returns the booking ID stored under key, if any.
	Lookup(ctx context.Context, key string) (string, bool, error)
	// Remember stores key unless it is taken; stored reports which happened.
	Remember(ctx context.Context, key, bookingID string) (stored bool, err error)
}

// BookingDeps groups the collaborators of BookingService.
type BookingDeps struct {
	Bookings    ports.BookingRepository
	Services    ports.ServiceRepository
	Clients     ports.ClientRepository
	Carers      ports.CarerRepository
	Idempotency IdempotencyStore // optional
	Activity    ports.ActivityRecorder
	Location    *time.Location // bucketing location; nil means UTC
	Now         func() time.Time

	// OnTransition is called after every status change, e.g. to count it.
	OnTransition func(status domain.BookingStatus)
}

// BookingService implements the booking lifecycle for admins, carers and clients.
type BookingService struct {
	bookings ports.BookingRepository
	services ports.ServiceRepository
	clients  ports.ClientRepository
	carers   ports.CarerRepository
	idem     IdempotencyStore
	activity ports.ActivityRecorder
	loc      *time.Location
	now      func() time.Time
	logger   zerolog.Logger

	onTransition func(domain.BookingStatus)
}

func NewBookingService(deps BookingDeps, logger zerolog.Logger) *BookingService {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &BookingService{
		bookings: deps.Bookings,
		services: deps.Services,
		clients:  deps.Clients,
		carers:   deps.Carers,
		idem:     deps.Idempotency,
		activity: deps.Activity,
		loc:      loc,
		now:      now,
		logger:   logger,

		onTransition: deps.OnTransition,
	}
}

// Create books a service for a client. With an idempotency key, a repeated
// request from the same client returns the booking created the first time.
func (s *BookingService) Create(ctx context.Context, actor ports.Actor, in ports.CreateBookingInput) (*ports.BookingResult, error) {
	if in.ClientID == "" || in.ServiceID == "" {
		return nil, fmt.Errorf("create booking: %w", domain.ErrInvalidInput)
	}
	if err := validateStartTime(in.StartTime); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	scopedKey := ""
	if in.IdempotencyKey != "" && s.idem != nil {
		scopedKey = in.ClientID + ":" + in.IdempotencyKey
		if existing := s.replay(ctx, scopedKey, in.ClientID); existing != nil {
			return &ports.BookingResult{Booking: existing, AlreadyExisted: true}, nil
		}
	}

	if _, err := s.clients.FindByID(ctx, in.ClientID); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	svc, err := s.services.FindByID(ctx, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	if !svc.Active {
		return nil, fmt.Errorf("create booking: service %q is not bookable: %w", svc.Name, domain.ErrInvalidInput)
	}

	status := domain.BookingPending
	if in.CarerID != "" {
		if err := s.requireActiveCarer(ctx, in.CarerID); err != nil {
			return nil, fmt.Errorf("create booking: %w", err)
		}
		status = domain.BookingConfirmed
	}

	now := s.now().UTC()
	b := &domain.Booking{
		ClientID:        in.ClientID,
		CarerID:         in.CarerID,
		ServiceID:       svc.ID,
		Date:            calendarDay(in.Date),
		StartTime:       in.StartTime,
		DurationMinutes: svc.DurationMinutes,
		Status:          status,
		Notes:           strings.TrimSpace(in.Notes),
		IdempotencyKey:  in.IdempotencyKey,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	if scopedKey != "" {
		if winner := s.claim(ctx, scopedKey, b); winner != nil {
			return &ports.BookingResult{Booking: winner, AlreadyExisted: true}, nil
		}
	}

	s.logger.Info().
		Str("booking_id", b.ID).
		Str("client_id", b.ClientID).
		Str("status", string(b.Status)).
		Msg("booking created")
	record(s.activity, actor, domain.ActionCreate, domain.EntityBooking, b.ID, svc.Name)
	return &ports.BookingResult{Booking: b}, nil
}

// claim stores key for b. When an overlapping request stored the key first,
// b is removed and that request's booking is returned instead.
func (s *BookingService) claim(ctx context.Context, key string, b *domain.Booking) *domain.Booking {
	stored, err := s.idem.Remember(ctx, key, b.ID)
	if err != nil {
		s.logger.Warn().Err(err).Str("booking_id", b.ID).Msg("idempotency key not stored")
		return nil
	}
	if stored {
		return nil
	}

	winner := s.replay(ctx, key, b.ClientID)
	if winner == nil || winner.ID == b.ID {
		return nil
	}
	if err := s.bookings.Delete(ctx, b.ID); err != nil {
		s.logger.Error().Err(err).Str("booking_id", b.ID).Str("kept_id", winner.ID).Msg("duplicate booking not removed")
		return nil
	}
	s.logger.Info().Str("booking_id", winner.ID).Str("dropped_id", b.ID).Msg("concurrent retry folded into earlier booking")
	return winner
}

// replay returns the booking an earlier request stored under key. Store
// failures are logged and treated as a miss.
func (s *BookingService) replay(ctx context.Context, key, clientID string) *domain.Booking {
	id, found, err := s.idem.Lookup(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Msg("idempotency lookup failed, proceeding without it")
		return nil
	}
	if !found {
		return nil
	}
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil || b.ClientID != clientID {
		return nil
	}
	return b
}

func (s *BookingService) Get(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.FindByID(ctx, id)
}

func (s *BookingService) List(ctx context.Context, filter ports.BookingFilter) (*ports.Page[*domain.Booking], error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	items, total, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return newPage(items, total, filter.Page, filter.Limit), nil
}

func (s *BookingService) Grouped(ctx context.Context, filter ports.BookingFilter) ([]roster.Group, error) {
	filter.Page, filter.Limit = 0, 0
	items, _, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("group bookings: %w", err)
	}
	return roster.GroupBookings(items, roster.NewWindow(s.now(), s.loc)), nil
}

// Update is the admin edit. Setting the status to pending clears the carer;
// confirming requires one.
func (s *BookingService) Update(ctx context.Context, actor ports.Actor, id string, in ports.UpdateBookingInput) (*domain.Booking, error) {
	if err := validateStartTime(in.StartTime); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	date := calendarDay(in.Date)
	serviceChanged := in.ServiceID != "" && in.ServiceID != b.ServiceID
	if b.Status.IsTerminal() && (serviceChanged || !sameDay(date, b.Date) || in.StartTime != b.StartTime) {
		return nil, fmt.Errorf("update booking: booking is %s: %w", b.Status, domain.ErrInvalidTransition)
	}

	if serviceChanged {
		svc, err := s.services.FindByID(ctx, in.ServiceID)
		if err != nil {
			return nil, fmt.Errorf("update booking: %w", err)
		}
		b.ServiceID = svc.ID
		b.DurationMinutes = svc.DurationMinutes
	}
	b.Date = date
	b.StartTime = in.StartTime
	b.Notes = strings.TrimSpace(in.Notes)

	details := ""
	if next := domain.BookingStatus(in.Status); next != "" && next != b.Status {
		if !next.Valid() {
			return nil, fmt.Errorf("update booking: unknown status %q: %w", in.Status, domain.ErrInvalidInput)
		}
		if next == domain.BookingConfirmed && b.CarerID == "" {
			return nil, fmt.Errorf("update booking: assign a carer first: %w", domain.ErrInvalidTransition)
		}
		if err := b.TransitionTo(next); err != nil {
			return nil, fmt.Errorf("update booking: %w", err)
		}
		if next == domain.BookingPending {
			b.CarerID = ""
		}
		details = "status " + string(next)
		s.observe(next)
	}

	if err := s.save(ctx, b); err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}
	record(s.activity, actor, domain.ActionUpdate, domain.EntityBooking, b.ID, details)
	return b, nil
}

func (s *BookingService) Assign(ctx context.Context, actor ports.Actor, id, carerID string) (*domain.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status.IsTerminal() {
		return nil, fmt.Errorf("assign booking: booking is %s: %w", b.Status, domain.ErrInvalidTransition)
	}

	if carerID == "" {
		b.CarerID = ""
		if b.Status == domain.BookingConfirmed {
			if err := b.TransitionTo(domain.BookingPending); err != nil {
				return nil, fmt.Errorf("assign booking: %w", err)
			}
			s.observe(domain.BookingPending)
		}
	} else {
		if err := s.requireActiveCarer(ctx, carerID); err != nil {
			return nil, fmt.Errorf("assign booking: %w", err)
		}
		b.CarerID = carerID
		if b.Status == domain.BookingPending {
			if err := b.TransitionTo(domain.BookingConfirmed); err != nil {
				return nil, fmt.Errorf("assign booking: %w", err)
			}
			s.observe(domain.BookingConfirmed)
		}
	}

	if err := s.save(ctx, b); err != nil {
		return nil, fmt.Errorf("assign booking: %w", err)
	}
	s.logger.Info().Str("booking_id", b.ID).Str("carer_id", carerID).Msg("booking assignment changed")
	record(s.activity, actor, domain.ActionAssign, domain.EntityBooking, b.ID, carerID)
	return b, nil
}

func (s *BookingService) Delete(ctx context.Context, actor ports.Actor, id string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	record(s.activity, actor, domain.ActionDelete, domain.EntityBooking, id, "")
	return nil
}

func (s *BookingService) Roster(ctx context.Context, carerID string) ([]roster.Group, error) {
	if carerID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.Grouped(ctx, ports.BookingFilter{CarerID: carerID})
}

// MarkCompletion lets the assigned carer close a confirmed booking. A booking
// assigned to someone else is reported as not found.
func (s *BookingService) MarkCompletion(ctx context.Context, actor ports.Actor, id string, status domain.BookingStatus, note string) (*domain.Booking, error) {
	if status != domain.BookingCompleted && status != domain.BookingNotCompleted {
		return nil, fmt.Errorf("mark completion: status must be completed or not_completed: %w", domain.ErrInvalidInput)
	}
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.CarerID == "" || b.CarerID != actor.ID {
		return nil, domain.ErrBookingNotFound
	}
	if err := b.TransitionTo(status); err != nil {
		return nil, fmt.Errorf("mark completion: %w", err)
	}
	b.CompletionNote = strings.TrimSpace(note)

	if err := s.save(ctx, b); err != nil {
		return nil, fmt.Errorf("mark completion: %w", err)
	}
	s.observe(status)
	record(s.activity, actor, domain.ActionStatusChange, domain.EntityBooking, b.ID, string(status))
	return b, nil
}

func (s *BookingService) ClientBookings(ctx context.Context, clientID string) ([]roster.Group, error) {
	if clientID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.Grouped(ctx, ports.BookingFilter{ClientID: clientID})
}

// Reschedule lets a client move its own booking while it is still open.
func (s *BookingService) Reschedule(ctx context.Context, actor ports.Actor, id string, in ports.RescheduleInput) (*domain.Booking, error) {
	if err := validateStartTime(in.StartTime); err != nil {
		return nil, fmt.Errorf("reschedule booking: %w", err)
	}
	b, err := s.ownBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPending && b.Status != domain.BookingConfirmed {
		return nil, fmt.Errorf("reschedule booking: booking is %s: %w", b.Status, domain.ErrInvalidTransition)
	}

	b.Date = calendarDay(in.Date)
	b.StartTime = in.StartTime
	b.Notes = strings.TrimSpace(in.Notes)
	if err := s.save(ctx, b); err != nil {
		return nil, fmt.Errorf("reschedule booking: %w", err)
	}
	record(s.activity, actor, domain.ActionUpdate, domain.EntityBooking, b.ID, "rescheduled")
	return b, nil
}

func (s *BookingService) Cancel(ctx context.Context, actor ports.Actor, id string) (*domain.Booking, error) {
	b, err := s.ownBooking(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := b.TransitionTo(domain.BookingCancelled); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if err := s.save(ctx, b); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	s.observe(domain.BookingCancelled)
	record(s.activity, actor, domain.ActionCancel, domain.EntityBooking, b.ID, "")
	return b, nil
}

// ownBooking loads the booking if the client actor owns it.
func (s *BookingService) ownBooking(ctx context.Context, actor ports.Actor, id string) (*domain.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == domain.RoleClient && b.ClientID != actor.ID {
		return nil, domain.ErrBookingNotFound
	}
	return b, nil
}

func (s *BookingService) requireActiveCarer(ctx context.Context, carerID string) error {
	c, err := s.carers.FindByID(ctx, carerID)
	if err != nil {
		return err
	}
	if !c.Active {
		return fmt.Errorf("carer %s is inactive: %w", carerID, domain.ErrInvalidInput)
	}
	return nil
}

// ReleaseAccount implements ports.BookingReleaser.
func (s *BookingService) ReleaseAccount(ctx context.Context, actor ports.Actor, role, accountID string) error {
	filter := ports.BookingFilter{}
	next := domain.BookingCancelled
	switch role {
	case domain.RoleCarer:
		filter.CarerID = accountID
		next = domain.BookingPending
	case domain.RoleClient:
		filter.ClientID = accountID
	default:
		return fmt.Errorf("release bookings: role %q: %w", role, domain.ErrInvalidInput)
	}
	if accountID == "" {
		return fmt.Errorf("release bookings: %w", domain.ErrInvalidInput)
	}

	bookings, _, err := s.bookings.List(ctx, filter)
	if err != nil {
		return fmt.Errorf("release bookings: %w", err)
	}
	for _, b := range bookings {
		if b.Status.IsTerminal() {
			continue
		}
		if role == domain.RoleCarer {
			b.CarerID = ""
		}
		changed := b.Status != next
		b.Status = next
		if err := s.save(ctx, b); err != nil {
			return fmt.Errorf("release bookings: %w", err)
		}
		if changed {
			s.observe(next)
		}
		record(s.activity, actor, domain.ActionUpdate, domain.EntityBooking, b.ID, "released: "+role+" removed")
	}
	return nil
}

func (s *BookingService) save(ctx context.Context, b *domain.Booking) error {
	b.UpdatedAt = s.now().UTC()
	return s.bookings.Update(ctx, b)
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func calendarDay(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	d := domain.CalendarDate(*t)
	return &d
}

func validateStartTime(v string) error {
	if v == "" {
		return nil
	}
	if _, err := time.Parse("15:04", v); err != nil {
		return fmt.Errorf("start time %q: %w", v, domain.ErrInvalidInput)
	}
	return nil
}

func (s *BookingService) observe(status domain.BookingStatus) {
	if s.onTransition != nil {
		s.onTransition(status)
	}
}
