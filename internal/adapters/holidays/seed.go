package holidays

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/namorima/notion-todo/internal/domain/entities"
	"github.com/namorima/notion-todo/internal/ports"
)

// ReadSeedFile loads a season document written by WriteSeedFile.
func ReadSeedFile(path string) (*ports.HolidaySeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	var seed ports.HolidaySeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	if seed.State == "" || seed.Year == 0 {
		return nil, fmt.Errorf("seed file %s: state and year are required", path)
	}
	return &seed, nil
}

// WriteSeedFile stores a season as an indented JSON document.
func WriteSeedFile(path string, seed *ports.HolidaySeed) error {
	if seed.LastUpdated.IsZero() {
		seed.LastUpdated = time.Now().UTC()
	}
	if seed.Holidays == nil {
		seed.Holidays = []ports.HolidaySeedItem{}
	}

	data, err := json.MarshalIndent(seed, "", "  ")
	if err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create seed dir: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// SeedFromHolidays builds the document for one scraped season.
func SeedFromHolidays(state string, year int, list []*entities.Holiday) *ports.HolidaySeed {
	seed := &ports.HolidaySeed{
		State:    state,
		Year:     year,
		Holidays: make([]ports.HolidaySeedItem, 0, len(list)),
	}
	for _, h := range list {
		seed.Holidays = append(seed.Holidays, ports.HolidaySeedItem{Date: h.Date.String(), Name: h.Name})
	}
	return seed
}
