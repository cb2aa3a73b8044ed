// Package input parses the command prompt of the calendar.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Usage       string
	Description string
}

// PromptMatchingCommands returns commands that match the current input prefix.
// Suggestions stop once the command name is followed by a space.
func PromptMatchingCommands(input string, commands []PromptCommand) []PromptCommand {
	if !strings.HasPrefix(strings.TrimSpace(input), "/") {
		return nil
	}
	if strings.Contains(input, " ") {
		return nil
	}

	prefix := strings.ToLower(strings.TrimSpace(input))
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(strings.ToLower(cmd.Name), prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// PromptAutocomplete returns the first matching command and whether it exists.
func PromptAutocomplete(input string, commands []PromptCommand) (string, bool) {
	matches := PromptMatchingCommands(input, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}

// Parsed is a submitted prompt line split into a command and its arguments.
type Parsed struct {
	Command string   // lower-cased, including the leading slash; empty for free text
	Args    []string // whitespace-separated, double quotes group words
	Rest    string   // everything after the command, trimmed
}

// Parse splits a prompt line. Text that does not start with a slash is
// returned whole in Rest with no command.
func Parse(line string) Parsed {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return Parsed{Rest: line, Args: splitArgs(line)}
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	return Parsed{
		Command: strings.ToLower(name),
		Args:    splitArgs(rest),
		Rest:    rest,
	}
}

func splitArgs(s string) []string {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range s {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case r == ' ' && !quoted:
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, current.String())
	}
	return args
}
