package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleClient = "client"
	RoleCarer  = "carer"
	RoleSystem = "system"
)

// Session is the discriminator stored by the browser to pick which token
// accompanies a request.
type Session int

const (
	SessionAdmin  Session = 1
	SessionClient Session = 2
	SessionCarer  Session = 3
)

// SessionFor returns the discriminator for role, or 0 when role has no session.
func SessionFor(role string) Session {
	switch role {
	case RoleAdmin:
		return SessionAdmin
	case RoleClient:
		return SessionClient
	case RoleCarer:
		return SessionCarer
	}
	return 0
}

// User is a member of the administrative staff.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Carer delivers bookings and sees them through the carer portal.
type Carer struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Address      string    `json:"address" bson:"address"`
	Postcode     string    `json:"postcode" bson:"postcode"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Client receives care and books appointments.
type Client struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	Phone        string    `json:"phone" bson:"phone"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Address      string    `json:"address" bson:"address"`
	Postcode     string    `json:"postcode" bson:"postcode"`
	Notes        string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Principal is the authenticated identity behind a token, whatever its role.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
