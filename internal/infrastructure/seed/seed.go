// Package seed loads the bootstrap data applied at startup: admin accounts
// and the service catalogue.
package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/carebook/care-services/internal/core/domain"
	"github.com/carebook/care-services/internal/core/ports"
)

type Admin struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type Service struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	DurationMinutes int    `yaml:"duration_minutes"`
	PricePence      int64  `yaml:"price_pence"`
	Active          *bool  `yaml:"active"` // omitted means active
}

// File is the seed document.
type File struct {
	Admins   []Admin   `yaml:"admins"`
	Services []Service `yaml:"services"`
}

// Result counts what Apply changed.
type Result struct {
	AdminsCreated  int
	AdminsSkipped  int
	ServicesSynced int
}

var systemActor = ports.Actor{ID: "seed", Role: domain.RoleSystem}

// Parse decodes a seed document. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("seed: parse: %w", err)
	}
	return &f, nil
}

// Load reads and parses the seed file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: read %s: %w", path, err)
	}
	return Parse(data)
}

// Apply creates missing admins and upserts every catalogue entry by name.
// Admins whose email already exists are left untouched.
func Apply(ctx context.Context, f *File, users ports.UserService, catalog ports.CatalogService, log zerolog.Logger) (Result, error) {
	var res Result

	for _, a := range f.Admins {
		_, err := users.Create(ctx, systemActor, ports.CreateUserInput{Name: a.Name, Email: a.Email, Password: a.Password})
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			res.AdminsSkipped++
		case err != nil:
			return res, fmt.Errorf("seed: admin %s: %w", a.Email, err)
		default:
			res.AdminsCreated++
		}
	}

	for _, s := range f.Services {
		active := s.Active == nil || *s.Active
		if _, err := catalog.UpsertByName(ctx, systemActor, ports.ServiceInput{
			Name:            s.Name,
			Description:     s.Description,
			DurationMinutes: s.DurationMinutes,
			PricePence:      s.PricePence,
			Active:          active,
		}); err != nil {
			return res, fmt.Errorf("seed: service %q: %w", s.Name, err)
		}
		res.ServicesSynced++
	}

	log.Info().
		Int("admins_created", res.AdminsCreated).
		Int("admins_skipped", res.AdminsSkipped).
		Int("services", res.ServicesSynced).
		Msg("seed applied")
	return res, nil
}
