// Package scenario maintains access to the demo scenario file that
// scripts a run of the blockchain demo.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
)

// Transfer describes one movement of value between two participants.
type Transfer struct {
	From  string `json:"from" validate:"required"`
	To    string `json:"to" validate:"required"`
	Value int64  `json:"value"`
}

// Round groups the transfers that get sealed into a single block.
type Round struct {
	Transfers []Transfer `json:"transfers" validate:"required,min=1,dive"`
}

// Scenario represents the scenario file.
type Scenario struct {
	Participants []string `json:"participants" validate:"required,min=1,unique,dive,required"`
	Difficulty   int      `json:"difficulty" validate:"gte=0"`
	Rounds       []Round  `json:"rounds" validate:"required,min=1,dive"`
}

// =============================================================================

// Load opens and consumes the scenario file.
func Load(path string) (Scenario, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}

	var scn Scenario
	if err := json.Unmarshal(content, &scn); err != nil {
		return Scenario{}, fmt.Errorf("parsing scenario file: %w", err)
	}

	if err := scn.Validate(); err != nil {
		return Scenario{}, err
	}

	return scn, nil
}

// Default returns the built-in six participant, two round scenario.
func Default() Scenario {
	return Scenario{
		Participants: []string{"arad", "alon", "daniel", "tyom", "roey", "omer"},
		Difficulty:   2,
		Rounds: []Round{
			{
				Transfers: []Transfer{
					{From: "arad", To: "alon", Value: 10},
					{From: "daniel", To: "tyom", Value: 7},
					{From: "tyom", To: "alon", Value: 11},
				},
			},
			{
				Transfers: []Transfer{
					{From: "roey", To: "omer", Value: 3},
					{From: "daniel", To: "omer", Value: 20},
					{From: "arad", To: "roey", Value: 6},
					{From: "alon", To: "tyom", Value: 6},
				},
			},
		},
	}
}

// Validate checks the scenario is structurally sound and every transfer
// references a declared participant.
func (s Scenario) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid scenario: %w", err)
	}

	known := make(map[string]bool, len(s.Participants))
	for _, label := range s.Participants {
		known[label] = true
	}

	for i, round := range s.Rounds {
		for _, transfer := range round.Transfers {
			if !known[transfer.From] {
				return fmt.Errorf("invalid scenario: round %d: unknown sender %q", i, transfer.From)
			}
			if !known[transfer.To] {
				return fmt.Errorf("invalid scenario: round %d: unknown receiver %q", i, transfer.To)
			}
		}
	}

	return nil
}
