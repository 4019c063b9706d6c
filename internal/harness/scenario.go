package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a playback scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Text is passed to Init before the first step.
	Text string `yaml:"text"`

	// Rate is the initial words-per-minute rate. Zero means engine.DefaultRate.
	Rate float64 `yaml:"rate,omitempty"`

	// Steps are executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final trace and state.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one scripted action.
type Step struct {
	// Action is one of the Action* constants.
	Action string `yaml:"action"`

	// Index is the seek target (seek).
	Index int `yaml:"index,omitempty"`

	// Rate is the new rate (rate).
	Rate float64 `yaml:"rate,omitempty"`

	// Ms is the virtual time to move (advance, stall).
	Ms int `yaml:"ms,omitempty"`

	// Text is the new text (init).
	Text string `yaml:"text,omitempty"`
}

// Step action constants.
const (
	ActionPlay    = "play"
	ActionPause   = "pause"
	ActionStop    = "stop"
	ActionRestart = "restart"
	ActionEnd     = "end"
	ActionSeek    = "seek"
	ActionRate    = "rate"
	ActionAdvance = "advance"
	ActionStall   = "stall"
	ActionInit    = "init"
)

// Assertion validates trace or final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "word_order": Check words appear in order
	// - "word_count": Check exactly Count words were emitted
	// - "complete_count": Check OnComplete fired exactly Count times
	// - "final_state": Check the engine's final mode and index
	Type string `yaml:"type"`

	// Words is the expected word order (used by word_order).
	// Words are compared in cleaned form, without punctuation.
	Words []string `yaml:"words,omitempty"`

	// Count is the expected number of occurrences (word_count, complete_count).
	Count int `yaml:"count,omitempty"`

	// Mode is the expected final mode (final_state).
	Mode string `yaml:"mode,omitempty"`

	// Index is the expected final index (final_state).
	Index int `yaml:"index,omitempty"`
}

// Assertion type constants.
const (
	AssertWordOrder     = "word_order"
	AssertWordCount     = "word_count"
	AssertCompleteCount = "complete_count"
	AssertFinalState    = "final_state"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Rate < 0 {
		return fmt.Errorf("rate must not be negative")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, s Step) error {
	switch s.Action {
	case ActionPlay, ActionPause, ActionStop, ActionRestart, ActionEnd, ActionSeek, ActionInit:
	case ActionRate:
		if s.Rate <= 0 {
			return fmt.Errorf("steps[%d]: rate must be positive", index)
		}
	case ActionAdvance, ActionStall:
		if s.Ms < 0 {
			return fmt.Errorf("steps[%d]: ms must not be negative", index)
		}
	case "":
		return fmt.Errorf("steps[%d]: action is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown action %q", index, s.Action)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertWordOrder:
		if len(a.Words) == 0 {
			return fmt.Errorf("assertions[%d]: words list is required for word_order", index)
		}
	case AssertWordCount, AssertCompleteCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must not be negative", index)
		}
	case AssertFinalState:
		switch a.Mode {
		case "stopped", "playing", "paused":
		default:
			return fmt.Errorf("assertions[%d]: mode must be stopped, playing or paused", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
