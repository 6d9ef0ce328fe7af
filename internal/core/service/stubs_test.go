package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

func init() {
	passwordCost = bcrypt.MinCost
}

var seq int

func nextID(prefix string) string {
	seq++
	return fmt.Sprintf("%s_%d", prefix, seq)
}

type stubUserRepo struct{ users map[string]*domain.User }

func newStubUserRepo() *stubUserRepo { return &stubUserRepo{users: map[string]*domain.User{}} }

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
	}
	if u.ID == "" {
		u.ID = nextID("usr")
	}
	c := *u
	r.users[u.ID] = &c
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context, f ports.ListFilter) ([]*domain.User, int64, error) {
	var out []*domain.User
	for _, u := range r.users {
		if f.Search == "" || strings.Contains(strings.ToLower(u.Name+u.Email), strings.ToLower(f.Search)) {
			out = append(out, u)
		}
	}
	return out, int64(len(out)), nil
}

func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	c := *u
	r.users[u.ID] = &c
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubCarerRepo struct{ carers map[string]*domain.Carer }

func newStubCarerRepo() *stubCarerRepo { return &stubCarerRepo{carers: map[string]*domain.Carer{}} }

func (r *stubCarerRepo) Create(_ context.Context, c *domain.Carer) error {
	for _, existing := range r.carers {
		if existing.Email == c.Email {
			return domain.ErrEmailTaken
		}
	}
	if c.ID == "" {
		c.ID = nextID("car")
	}
	cp := *c
	r.carers[c.ID] = &cp
	return nil
}

func (r *stubCarerRepo) FindByID(_ context.Context, id string) (*domain.Carer, error) {
	c, ok := r.carers[id]
	if !ok {
		return nil, domain.ErrCarerNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCarerRepo) FindByEmail(_ context.Context, email string) (*domain.Carer, error) {
	for _, c := range r.carers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrCarerNotFound
}

func (r *stubCarerRepo) List(_ context.Context, _ ports.ListFilter) ([]*domain.Carer, int64, error) {
	var out []*domain.Carer
	for _, c := range r.carers {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *stubCarerRepo) Update(_ context.Context, c *domain.Carer) error {
	if _, ok := r.carers[c.ID]; !ok {
		return domain.ErrCarerNotFound
	}
	cp := *c
	r.carers[c.ID] = &cp
	return nil
}

func (r *stubCarerRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.carers[id]; !ok {
		return domain.ErrCarerNotFound
	}
	delete(r.carers, id)
	return nil
}

type stubClientRepo struct{ clients map[string]*domain.Client }

func newStubClientRepo() *stubClientRepo { return &stubClientRepo{clients: map[string]*domain.Client{}} }

func (r *stubClientRepo) Create(_ context.Context, c *domain.Client) error {
	for _, existing := range r.clients {
		if existing.Email == c.Email {
			return domain.ErrEmailTaken
		}
	}
	if c.ID == "" {
		c.ID = nextID("cli")
	}
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubClientRepo) FindByEmail(_ context.Context, email string) (*domain.Client, error) {
	for _, c := range r.clients {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) List(_ context.Context, _ ports.ListFilter) ([]*domain.Client, int64, error) {
	var out []*domain.Client
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (r *stubClientRepo) Update(_ context.Context, c *domain.Client) error {
	if _, ok := r.clients[c.ID]; !ok {
		return domain.ErrClientNotFound
	}
	cp := *c
	r.clients[c.ID] = &cp
	return nil
}

func (r *stubClientRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}

type stubServiceRepo struct{ services map[string]*domain.Service }

func newStubServiceRepo() *stubServiceRepo {
	return &stubServiceRepo{services: map[string]*domain.Service{}}
}

func (r *stubServiceRepo) Create(_ context.Context, s *domain.Service) error {
	for _, existing := range r.services {
		if existing.Name == s.Name {
			return domain.ErrDuplicate
		}
	}
	if s.ID == "" {
		s.ID = nextID("svc")
	}
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *stubServiceRepo) FindByID(_ context.Context, id string) (*domain.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *stubServiceRepo) FindByName(_ context.Context, name string) (*domain.Service, error) {
	for _, s := range r.services {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrServiceNotFound
}

func (r *stubServiceRepo) List(_ context.Context, f ports.ServiceFilter) ([]*domain.Service, int64, error) {
	var out []*domain.Service
	for _, s := range r.services {
		if f.ActiveOnly && !s.Active {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (r *stubServiceRepo) Update(_ context.Context, s *domain.Service) error {
	if _, ok := r.services[s.ID]; !ok {
		return domain.ErrServiceNotFound
	}
	cp := *s
	r.services[s.ID] = &cp
	return nil
}

func (r *stubServiceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.services[id]; !ok {
		return domain.ErrServiceNotFound
	}
	delete(r.services, id)
	return nil
}

type stubBookingRepo struct{ bookings map[string]*domain.Booking }

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{bookings: map[string]*domain.Booking{}}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	if b.ID == "" {
		b.ID = nextID("bkg")
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBookingRepo) List(_ context.Context, f ports.BookingFilter) ([]*domain.Booking, int64, error) {
	var out []*domain.Booking
	for _, b := range r.bookings {
		if f.ClientID != "" && b.ClientID != f.ClientID {
			continue
		}
		if f.CarerID != "" && b.CarerID != f.CarerID {
			continue
		}
		if f.Status != "" && string(b.Status) != f.Status {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (r *stubBookingRepo) Update(_ context.Context, b *domain.Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return domain.ErrBookingNotFound
	}
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.bookings[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.bookings, id)
	return nil
}

type stubDeleteRequestRepo struct {
	requests map[string]*domain.AccountDeleteRequest
}

func newStubDeleteRequestRepo() *stubDeleteRequestRepo {
	return &stubDeleteRequestRepo{requests: map[string]*domain.AccountDeleteRequest{}}
}

// Create enforces one pending request per account, as the unique partial
// index does in Mongo.
func (r *stubDeleteRequestRepo) Create(_ context.Context, req *domain.AccountDeleteRequest) error {
	if req.Status == domain.DeleteRequestPending {
		for _, other := range r.requests {
			if other.AccountID == req.AccountID && other.Status == domain.DeleteRequestPending {
				return domain.ErrDuplicate
			}
		}
	}
	if req.ID == "" {
		req.ID = nextID("adr")
	}
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

func (r *stubDeleteRequestRepo) FindByID(_ context.Context, id string) (*domain.AccountDeleteRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.ErrDeleteRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *stubDeleteRequestRepo) FindPending(_ context.Context, accountID string) (*domain.AccountDeleteRequest, error) {
	for _, req := range r.requests {
		if req.AccountID == accountID && req.Status == domain.DeleteRequestPending {
			cp := *req
			return &cp, nil
		}
	}
	return nil, domain.ErrDeleteRequestNotFound
}

func (r *stubDeleteRequestRepo) List(_ context.Context, _ ports.DeleteRequestFilter) ([]*domain.AccountDeleteRequest, int64, error) {
	var out []*domain.AccountDeleteRequest
	for _, req := range r.requests {
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

func (r *stubDeleteRequestRepo) Update(_ context.Context, req *domain.AccountDeleteRequest) error {
	cp := *req
	r.requests[req.ID] = &cp
	return nil
}

type stubRecorder struct {
	mu      sync.Mutex
	entries []domain.ActivityLog
}

func (r *stubRecorder) Record(entry domain.ActivityLog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *stubRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type stubIdempotency struct {
	keys map[string]string
	err  error
}

func (s *stubIdempotency) Lookup(_ context.Context, key string) (string, bool, error) {
	if s.err != nil {
		return "", false, s.err
	}
	id, ok := s.keys[key]
	return id, ok, nil
}

// Remember is first-writer-wins, like SETNX.
func (s *stubIdempotency) Remember(_ context.Context, key, id string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if _, taken := s.keys[key]; taken {
		return false, nil
	}
	s.keys[key] = id
	return true, nil
}
