// Package identity provides traveler and clerk identities. Lookups simulate a
// remote source: they block for a short latency and always return copies so
// callers can never alias the shared tables.
package identity

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"time"

	"gopkg.in/yaml.v3"

	"chosenoffset.com/dutyfree/internal/actor"
)

// Provider is the identity data source consumed by the crowd and store scenes
type Provider interface {
	Travelers(ctx context.Context) ([]actor.Identity, error)
	Clerk(ctx context.Context, storeID string) (actor.Identity, error)
}

//go:embed data/travelers.yaml
var embeddedTravelers []byte

type tables struct {
	Travelers []actor.Identity          `yaml:"travelers"`
	Clerks    map[string]actor.Identity `yaml:"clerks"`
}

// Directory is an in-memory Provider
type Directory struct {
	travelers []actor.Identity
	clerks    map[string]actor.Identity

	// Simulated lookup latency
	TravelerLatency time.Duration
	ClerkLatency    time.Duration
}

// LoadEmbedded loads the identity tables shipped with the binary
func LoadEmbedded() (*Directory, error) {
	return Parse(embeddedTravelers)
}

// Parse builds a Directory from YAML table data
func Parse(data []byte) (*Directory, error) {
	var t tables
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse identity tables: %w", err)
	}

	d := &Directory{
		travelers:       make([]actor.Identity, 0, len(t.Travelers)),
		clerks:          make(map[string]actor.Identity, len(t.Clerks)),
		TravelerLatency: 60 * time.Millisecond,
		ClerkLatency:    40 * time.Millisecond,
	}
	for i, id := range t.Travelers {
		if id.ID == "" {
			return nil, fmt.Errorf("traveler %d: id is required", i)
		}
		if id.Role == "" {
			id.Role = actor.RoleTraveler
		}
		d.travelers = append(d.travelers, normalize(id))
	}
	for storeID, c := range t.Clerks {
		c.Role = actor.RoleClerk
		if c.StoreID == "" {
			c.StoreID = storeID
		}
		d.clerks[storeID] = normalize(c)
	}
	return d, nil
}

// normalize maps genders the renderer has no visual for onto GenderOther
func normalize(id actor.Identity) actor.Identity {
	switch id.Gender {
	case actor.GenderMale, actor.GenderFemale, actor.GenderOther:
	default:
		log.Printf("Identity %s has unknown gender %q, using %q", id.ID, id.Gender, actor.GenderOther)
		id.Gender = actor.GenderOther
	}
	return id
}

// Travelers returns a copy of the traveler list
func (d *Directory) Travelers(ctx context.Context) ([]actor.Identity, error) {
	if err := wait(ctx, d.TravelerLatency); err != nil {
		return nil, err
	}
	out := make([]actor.Identity, len(d.travelers))
	copy(out, d.travelers)
	return out, nil
}

// Clerk returns the clerk for a store. Stores without a configured clerk get a
// generic one.
func (d *Directory) Clerk(ctx context.Context, storeID string) (actor.Identity, error) {
	if err := wait(ctx, d.ClerkLatency); err != nil {
		return actor.Identity{}, err
	}
	if c, ok := d.clerks[storeID]; ok {
		return c, nil
	}
	return actor.Identity{
		ID:      "c_" + storeID,
		Name:    "Clerk",
		Gender:  actor.GenderOther,
		Role:    actor.RoleClerk,
		StoreID: storeID,
	}, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
