// Package scenario reads modeling scenarios (a cap table, optional
// convertible instruments and round, preference tiers, and a list of exit
// valuations) from YAML.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	apperrors "equitylens/internal/errors"
	"equitylens/internal/models"
)

// Scenario is one financing-then-exit model.
type Scenario struct {
	Name        string                  `json:"name" yaml:"name"`
	CapTable    models.CapTable         `json:"cap_table" yaml:"cap_table" binding:"required"`
	Instruments []InstrumentSpec        `json:"instruments,omitempty" yaml:"instruments,omitempty" binding:"omitempty,dive"`
	Round       *models.PricedRound     `json:"round,omitempty" yaml:"round,omitempty"`
	Tiers       []models.PreferenceTier `json:"tiers,omitempty" yaml:"tiers,omitempty" binding:"omitempty,dive"`
	Valuations  []decimal.Decimal       `json:"exit_valuations" yaml:"exit_valuations"`
}

// Load reads a scenario file.
func Load(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Errorf("open scenario: %w", err))
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a single YAML document. Unknown keys are rejected. When
// total_shares is omitted it defaults to the issued share count, and cached
// ownership percentages are always recomputed.
func Parse(r io.Reader) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "scenario file is empty")
		}
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("YAML parsing error: %v", err))
	}

	s.Normalize()
	return &s, nil
}

// Normalize fills defaults the file format allows to be omitted.
func (s *Scenario) Normalize() {
	s.CapTable.Normalize()
	if s.Round != nil && s.Round.Name == "" {
		s.Round.Name = "Priced round"
	}
}

// TypedInstruments builds the typed instruments of the scenario.
func (s *Scenario) TypedInstruments() ([]models.Instrument, error) {
	return Instruments(s.Instruments)
}
