package service

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// passwordCost is the bcrypt cost; tests lower it.
var passwordCost = bcrypt.DefaultCost

// normalizePage applies the paging defaults shared by every list endpoint.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

func newPage[T any](items []T, total int64, page, limit int) *ports.Page[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &ports.Page[T]{Items: items, Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// record hands an audit entry to rec; a nil recorder drops it.
func record(rec ports.ActivityRecorder, actor ports.Actor, action, entity, entityID, details string) {
	if rec == nil {
		return
	}
	rec.Record(domain.ActivityLog{
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		Timestamp: time.Now().UTC(),
	})
}
