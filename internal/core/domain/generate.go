package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// LargeGenerationThreshold is the combination count above which generated
// options must be explicitly confirmed.
const LargeGenerationThreshold = 50

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type GenerateOptionsInput struct {
	Turfs      []string
	Slots      []TimeSlot
	MinPlayers int
	MaxPlayers int
	Confirm    bool
}

// GenerateOptions builds one option for every turf and time slot pair, turf
// by turf. Blank turfs and half-filled slots are skipped.
func GenerateOptions(input GenerateOptionsInput) ([]Option, error) {
	var turfs []string
	for _, t := range input.Turfs {
		if t = strings.TrimSpace(t); t != "" {
			turfs = append(turfs, t)
		}
	}
	var slots []TimeSlot
	for _, s := range input.Slots {
		if s.Start != "" && s.End != "" {
			slots = append(slots, s)
		}
	}
	if len(turfs) == 0 || len(slots) == 0 {
		return nil, fmt.Errorf("%w: at least one turf and one time slot are required", ErrInvalidInput)
	}

	n := len(turfs) * len(slots)
	if n > MaxGeneratedOptions {
		return nil, fmt.Errorf("%w: %d options exceeds the limit of %d", ErrInvalidInput, n, MaxGeneratedOptions)
	}
	if n > LargeGenerationThreshold && !input.Confirm {
		return nil, fmt.Errorf("%w: this will create %d options", ErrConfirmationRequired, n)
	}

	options := make([]Option, 0, n)
	for _, turf := range turfs {
		for _, slot := range slots {
			opt := Option{
				ID:         uuid.New(),
				TurfName:   turf,
				StartTime:  slot.Start,
				EndTime:    slot.End,
				MinPlayers: input.MinPlayers,
				MaxPlayers: input.MaxPlayers,
			}
			if err := opt.Validate(); err != nil {
				return nil, err
			}
			options = append(options, opt)
		}
	}
	return options, nil
}
