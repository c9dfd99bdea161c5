package scenario_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/minichain/minichain/foundation/blockchain/scenario"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_DefaultScenario(t *testing.T) {
	t.Log("Given the need to validate the built-in scenario.")
	{
		t.Logf("\tTest 0:\tWhen validating the default scenario.")
		{
			scn := scenario.Default()

			if err := scn.Validate(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould have a valid default scenario: %s", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould have a valid default scenario.", success)

			if len(scn.Participants) != 6 || len(scn.Rounds) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould have six participants across two rounds.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould have six participants across two rounds.", success)
		}
	}
}

func Test_ScenarioValidation(t *testing.T) {
	type table struct {
		name string
		scn  scenario.Scenario
	}

	tt := []table{
		{
			name: "unknown participant",
			scn: scenario.Scenario{
				Participants: []string{"alice"},
				Difficulty:   1,
				Rounds: []scenario.Round{
					{Transfers: []scenario.Transfer{{From: "alice", To: "bob", Value: 10}}},
				},
			},
		},
		{
			name: "negative difficulty",
			scn: scenario.Scenario{
				Participants: []string{"alice", "bob"},
				Difficulty:   -1,
				Rounds: []scenario.Round{
					{Transfers: []scenario.Transfer{{From: "alice", To: "bob", Value: 10}}},
				},
			},
		},
		{
			name: "duplicate participants",
			scn: scenario.Scenario{
				Participants: []string{"alice", "alice"},
				Difficulty:   1,
				Rounds: []scenario.Round{
					{Transfers: []scenario.Transfer{{From: "alice", To: "alice", Value: 10}}},
				},
			},
		},
		{
			name: "no rounds",
			scn: scenario.Scenario{
				Participants: []string{"alice", "bob"},
				Difficulty:   1,
			},
		},
	}

	t.Log("Given the need to reject broken scenarios.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen validating a scenario with %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					if err := tst.scn.Validate(); err == nil {
						t.Fatalf("\t%s\tTest %d:\tShould reject the scenario.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould reject the scenario.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_LoadScenario(t *testing.T) {
	t.Log("Given the need to load a scenario from disk.")
	{
		t.Logf("\tTest 0:\tWhen loading a well formed scenario file.")
		{
			scn := scenario.Default()

			data, err := json.Marshal(scn)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to marshal the scenario: %s", failed, err)
			}

			path := filepath.Join(t.TempDir(), "scenario.json")
			if err := os.WriteFile(path, data, 0644); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write the scenario file: %s", failed, err)
			}

			loaded, err := scenario.Load(path)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load the scenario file: %s", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to load the scenario file.", success)

			if loaded.Difficulty != scn.Difficulty || len(loaded.Rounds) != len(scn.Rounds) {
				t.Fatalf("\t%s\tTest 0:\tShould get the same scenario back.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get the same scenario back.", success)
		}

		t.Logf("\tTest 1:\tWhen loading a missing file.")
		{
			if _, err := scenario.Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
				t.Fatalf("\t%s\tTest 1:\tShould fail for a missing file.", failed)
			}
			t.Logf("\t%s\tTest 1:\tShould fail for a missing file.", success)
		}
	}
}
