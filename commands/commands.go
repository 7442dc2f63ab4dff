package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

var ErrUnknownCommand = errors.New("unknown command")

type Cmd func(args []string) error

type Commands struct {
	log      zerolog.Logger
	commands map[string]Cmd
}

func NewCommands(log zerolog.Logger) *Commands {
	return &Commands{log: log, commands: make(map[string]Cmd)}
}

// Exec runs the command named by the first word of line. Any prefix of a
// registered name selects it; an exact name always wins.
func (c *Commands) Exec(line string) error {
	fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if len(fields) == 0 {
		return nil
	}

	name, cmd := c.findCommandByLongestPrefix(fields[0])
	if cmd == nil {
		c.log.Warn().Str("command", fields[0]).Msg("command not found")
		return fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
	}

	c.log.Debug().Str("command", name).Strs("args", fields[1:]).Msg("exec")
	if err := cmd(fields[1:]); err != nil {
		c.log.Error().Err(err).Str("command", name).Msg("command failed")
		return err
	}
	return nil
}

func (c *Commands) findCommandByLongestPrefix(commandPrefix string) (string, Cmd) {
	if cmd, ok := c.commands[commandPrefix]; ok {
		return commandPrefix, cmd
	}

	longest := -1
	var longestName string
	var longestCmd Cmd
	for name, cmd := range c.commands {
		if strings.HasPrefix(name, commandPrefix) && len(name) > longest {
			longest = len(name)
			longestName = name
			longestCmd = cmd
		}
	}
	return longestName, longestCmd
}

func (c *Commands) Register(name string, command Cmd) {
	c.commands[name] = command
}

// Names returns the registered command names in order.
func (c *Commands) Names() []string {
	names := make([]string, 0, len(c.commands))
	for name := range c.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
