package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ScenarioFiles(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_EndToEndTiming(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/end_to_end.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	var at []int64
	for _, ev := range result.Trace {
		at = append(at, ev.AtMs)
	}
	assert.Equal(t, []int64{0, 150, 350, 450, 550, 650, 750}, at)
	assert.Equal(t, EventComplete, result.Trace[len(result.Trace)-1].Type)
}

func TestRun_ProgressAttachedToWords(t *testing.T) {
	s := &Scenario{
		Name:        "progress",
		Description: "progress rides on word events",
		Text:        "one two",
		Steps:       []Step{{Action: ActionPlay}, {Action: ActionAdvance, Ms: 1000}},
		Assertions:  []Assertion{{Type: AssertWordCount, Count: 2}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	require.True(t, result.Pass)

	for _, ev := range result.Trace {
		if ev.Type == EventWord {
			require.NotNil(t, ev.Progress)
			assert.Equal(t, 2, ev.Progress.Total)
		} else {
			assert.Nil(t, ev.Progress)
		}
	}
}

func TestRun_ReinitMidPlayback(t *testing.T) {
	s := &Scenario{
		Name:        "reinit",
		Description: "init cancels the pending step",
		Text:        "old words here",
		Steps: []Step{
			{Action: ActionPlay},
			{Action: ActionAdvance, Ms: 100},
			{Action: ActionInit, Text: "new text"},
			{Action: ActionAdvance, Ms: 5000},
		},
		Assertions: []Assertion{
			{Type: AssertWordOrder, Words: []string{"old"}},
			{Type: AssertWordCount, Count: 1},
			{Type: AssertCompleteCount, Count: 0},
			{Type: AssertFinalState, Mode: "stopped", Index: 0},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_FailingAssertionsReported(t *testing.T) {
	s := &Scenario{
		Name:        "failing",
		Description: "every assertion is wrong",
		Text:        "one two",
		Steps:       []Step{{Action: ActionPlay}},
		Assertions: []Assertion{
			{Type: AssertWordOrder, Words: []string{"two", "one"}},
			{Type: AssertWordCount, Count: 3},
			{Type: AssertCompleteCount, Count: 1},
			{Type: AssertFinalState, Mode: "paused", Index: 1},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	assert.Len(t, result.Errors, 4)
	assert.Equal(t, FinalState{Mode: "playing", Index: 0}, result.Final)
}

func TestRun_UnknownActionErrors(t *testing.T) {
	s := &Scenario{
		Name:        "bad",
		Description: "built without validation",
		Text:        "one",
		Steps:       []Step{{Action: "teleport"}},
		Assertions:  []Assertion{{Type: AssertWordCount}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steps[0]")
}
