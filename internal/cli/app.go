// pattern: Functional Core
package cli

import (
	"fmt"
	"io"
	"os"
)

// Command represents a single CLI command with its metadata and handler.
type Command struct {
	Name    string
	Summary string
	Usage   string
	Run     func(args []string) error
}

// App represents the top-level CLI application.
type App struct {
	commands map[string]*Command
	order    []string
	version  string
}

// NewApp creates a new CLI application with the given version.
func NewApp(version string) *App {
	return &App{
		commands: make(map[string]*Command),
		version:  version,
	}
}

// AddCommand registers a command. Registration order is help order.
func (a *App) AddCommand(cmd *Command) {
	if _, ok := a.commands[cmd.Name]; !ok {
		a.order = append(a.order, cmd.Name)
	}
	a.commands[cmd.Name] = cmd
}

// Execute dispatches the CLI arguments to the appropriate command.
func (a *App) Execute(args []string) {
	if len(args) == 0 {
		a.PrintHelp(os.Stderr)
		return
	}

	cmdName := args[0]
	cmd, ok := a.commands[cmdName]
	if !ok {
		a.PrintHelp(os.Stderr)
		os.Exit(1)
	}

	for _, arg := range args[1:] {
		if arg == "--help" || arg == "-h" {
			fmt.Fprintf(os.Stderr, "%s\n", cmd.Usage)
			return
		}
	}

	// Commands handle their own error reporting and exit codes.
	// Any errors are printed to stderr and os.Exit is called as needed.
	_ = cmd.Run(args[1:])
}

// PrintHelp prints the top-level help text.
func (a *App) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: fsprobe [options] <command>\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, name := range a.order {
		cmd := a.commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintf(w, "\nUse \"fsprobe <command> --help\" for command details.\n\n")
	fmt.Fprintf(w, "Options:\n")
}
