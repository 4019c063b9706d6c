package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// commandKind is a keyboard command accepted while reading.
type commandKind int

const (
	cmdToggle commandKind = iota
	cmdStop
	cmdRestart
	cmdEnd
	cmdFaster
	cmdSlower
	cmdSeek
	cmdQuit
	cmdHelp
)

// command is one parsed input line. Arg is the 1-based word number for
// cmdSeek.
type command struct {
	Kind commandKind
	Arg  int
}

const commandHelp = `commands:
  <enter>, p   play / pause
  s            stop and rewind
  r            restart from the first word
  e            jump to the last word
  +, -         faster / slower by 25 wpm
  g N          go to word N
  q            quit
  h, ?         this help`

// parseCommand parses one input line.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{Kind: cmdToggle}, nil
	}

	name := strings.ToLower(fields[0])
	if name == "g" || name == "go" {
		if len(fields) != 2 {
			return command{}, fmt.Errorf("usage: g N")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return command{}, fmt.Errorf("invalid word number %q", fields[1])
		}
		return command{Kind: cmdSeek, Arg: n}, nil
	}

	if len(fields) > 1 {
		return command{}, fmt.Errorf("unexpected arguments to %q", name)
	}

	switch name {
	case "p", "play", "pause":
		return command{Kind: cmdToggle}, nil
	case "s", "stop":
		return command{Kind: cmdStop}, nil
	case "r", "restart":
		return command{Kind: cmdRestart}, nil
	case "e", "end":
		return command{Kind: cmdEnd}, nil
	case "+", "=", "faster":
		return command{Kind: cmdFaster}, nil
	case "-", "_", "slower":
		return command{Kind: cmdSlower}, nil
	case "q", "quit", "exit":
		return command{Kind: cmdQuit}, nil
	case "h", "?", "help":
		return command{Kind: cmdHelp}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q (h for help)", name)
	}
}
