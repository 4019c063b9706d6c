// Package harness runs scripted playback scenarios against the RSVP engine.
//
// Scenarios drive a real engine.Engine on a testutil.FakeClock, so every
// run of a scenario produces the same trace down to the millisecond.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	text: "Hello, world. This is a test"
//	rate: 600
//	steps:
//	  - action: play
//	  - action: advance
//	    ms: 300
//	  - action: seek
//	    index: 4
//	assertions:
//	  - type: word_order
//	    words: [Hello, world, a]
//	  - type: final_state
//	    mode: stopped
//	    index: 6
//
// # Step Actions
//
//   - play, pause, stop, restart, end: the engine operation of the same name
//   - seek: SeekTo(index)
//   - rate: change the rate the engine pulls on its next step
//   - advance: move virtual time forward by ms, firing due steps
//   - stall: move virtual time forward by ms without firing, making the
//     next step late
//   - init: re-initialise with text
//
// # Assertion Types
//
//   - word_order: the listed words appear in the trace in this order
//   - word_count: exactly count words were emitted
//   - complete_count: OnComplete fired exactly count times
//   - final_state: the engine ended in mode at index
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/end_to_end.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
package harness
