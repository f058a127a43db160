package console

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidSyntax  = errors.New("invalid syntax")
	ErrUnknownCommand = errors.New("unknown command")
)

// CommandID - console command kind.
type CommandID int

const (
	UnknownCommandID CommandID = iota
	AcquireCommandID
	ReleaseCommandID
	StatsCommandID
	WaitersCommandID
	HelpCommandID
	ExitCommandID
)

var commandNames = map[string]CommandID{
	"acquire": AcquireCommandID,
	"release": ReleaseCommandID,
	"stats":   StatsCommandID,
	"waiters": WaitersCommandID,
	"help":    HelpCommandID,
	"exit":    ExitCommandID,
	"quit":    ExitCommandID,
}

var commandArgsNumber = map[CommandID]int{
	AcquireCommandID: 1,
	ReleaseCommandID: 0,
	StatsCommandID:   0,
	WaitersCommandID: 0,
	HelpCommandID:    0,
	ExitCommandID:    0,
}

const helpText = `acquire <label>  request a permit; queued requests print "granted <label>" when admitted
release          return a permit, handing it to the oldest queued request if any
stats            show held permits, capacity and queue length
waiters          list queued labels in grant order
exit             leave the console`

// Command - parsed console input.
type Command struct {
	ID   CommandID
	Args []string
}

// Parse - converts an input line into a Command.
func Parse(line string) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", ErrInvalidSyntax)
	}

	id, ok := commandNames[strings.ToLower(tokens[0])]
	if !ok {
		return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, tokens[0])
	}

	args := tokens[1:]
	if expected := commandArgsNumber[id]; len(args) != expected {
		return Command{}, fmt.Errorf("%w: %s expects %d argument(s), got %d",
			ErrInvalidSyntax, tokens[0], expected, len(args))
	}

	return Command{ID: id, Args: args}, nil
}
