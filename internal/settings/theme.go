// Package settings persists UI preferences next to the expense collection.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"expensetracker/internal/kv"
)

// Preferences reads and writes the theme flag. Writes are serialized so a
// toggle is a single read-modify-write.
type Preferences struct {
	mu sync.Mutex
	kv kv.Store
}

func New(medium kv.Store) *Preferences {
	return &Preferences{kv: medium}
}

// DarkMode reports the saved theme. Only the exact text "true" means dark.
func (p *Preferences) DarkMode(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.darkMode(ctx)
}

func (p *Preferences) darkMode(ctx context.Context) (bool, error) {
	v, ok, err := p.kv.Get(ctx, kv.KeyDarkMode)
	if err != nil {
		return false, fmt.Errorf("read theme: %w", err)
	}
	return ok && v == "true", nil
}

func (p *Preferences) SetDarkMode(ctx context.Context, dark bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.setDarkMode(ctx, dark)
}

func (p *Preferences) setDarkMode(ctx context.Context, dark bool) error {
	if err := p.kv.Set(ctx, kv.KeyDarkMode, strconv.FormatBool(dark)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// ToggleDarkMode flips the theme and returns the new state.
func (p *Preferences) ToggleDarkMode(ctx context.Context) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	dark, err := p.darkMode(ctx)
	if err != nil {
		return false, err
	}
	dark = !dark
	if err := p.setDarkMode(ctx, dark); err != nil {
		return false, err
	}
	return dark, nil
}
