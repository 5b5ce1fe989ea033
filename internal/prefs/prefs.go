// Package prefs keeps the user's last searched city and favorite cities.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/i474232898/weather-cache/internal/common"
	"github.com/i474232898/weather-cache/internal/store"
)

// DefaultCity is used until a city has been searched.
const DefaultCity = "Warsaw"

// FileName is the preferences file inside the data directory.
const FileName = "prefs.json"

var ErrEmptyCity = errors.New("city name is empty")

type state struct {
	LastCity  string   `json:"lastSearchedCity,omitempty"`
	Favorites []string `json:"favorites,omitempty"`
}

// Prefs is a small JSON document persisted on every change.
type Prefs struct {
	path        string
	defaultCity string

	mu    sync.RWMutex
	state state
}

// Open loads preferences from dir. A missing or unreadable file starts empty.
func Open(dir, defaultCity string) (*Prefs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create prefs dir: %w", err)
	}
	if defaultCity = common.NormalizePlace(defaultCity); defaultCity == "" {
		defaultCity = DefaultCity
	}

	p := &Prefs{path: filepath.Join(dir, FileName), defaultCity: defaultCity}

	raw, err := os.ReadFile(p.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read prefs: %w", err)
	default:
		if err := json.Unmarshal(raw, &p.state); err != nil {
			log.Printf("ERROR: prefs: ignoring corrupt %s: %v", p.path, err)
			p.state = state{}
		}
	}
	return p, nil
}

// LastCity returns the last searched city or the default.
func (p *Prefs) LastCity() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.state.LastCity == "" {
		return p.defaultCity
	}
	return p.state.LastCity
}

func (p *Prefs) SetLastCity(city string) error {
	city = common.NormalizePlace(city)
	if city == "" {
		return ErrEmptyCity
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state.LastCity == city {
		return nil
	}
	p.state.LastCity = city
	return p.saveLocked()
}

// Favorites returns the favorite cities sorted case-insensitively.
func (p *Prefs) Favorites() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := append([]string(nil), p.state.Favorites...)
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

// IsFavorite reports whether city is among the favorites, ignoring case.
func (p *Prefs) IsFavorite(city string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.indexLocked(common.NormalizePlace(city)) >= 0
}

// ToggleFavorite adds city if absent and removes it otherwise. It reports
// whether the city is a favorite afterwards.
func (p *Prefs) ToggleFavorite(city string) (bool, error) {
	city = common.NormalizePlace(city)
	if city == "" {
		return false, ErrEmptyCity
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	added := false
	if i := p.indexLocked(city); i >= 0 {
		p.state.Favorites = append(p.state.Favorites[:i], p.state.Favorites[i+1:]...)
	} else {
		p.state.Favorites = append(p.state.Favorites, city)
		added = true
	}
	return added, p.saveLocked()
}

func (p *Prefs) indexLocked(city string) int {
	for i, f := range p.state.Favorites {
		if strings.EqualFold(f, city) {
			return i
		}
	}
	return -1
}

func (p *Prefs) saveLocked() error {
	raw, err := json.Marshal(p.state)
	if err != nil {
		return err
	}
	if err := store.WriteFileAtomic(p.path, raw); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}
