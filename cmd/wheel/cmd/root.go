// Package cmd implements the wheel CLI commands.
//
// The root command dispatches to subcommands (demo, snapshot, follow,
// version). Every command reads the optional wheel.yaml from the working
// directory, or the file named by --config.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-drift/wheel/pkg/config"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

var rootCmd = &Command{
	Name:  "wheel",
	Short: "Wheel - a kinetic ruler picker",
	Long: `Wheel is a horizontally scrolling ruler picker with fling physics,
rubber-band edges and tick haptics.

Use "wheel <command> --help" for more information about a command.`,
	Usage: "wheel [--config FILE] <command> [flags]",
}

// Commands registered with the CLI, in registration order.
var (
	commands = make(map[string]*Command)
	ordered  []*Command
)

// configPath is set by --config. Empty means wheel.yaml in the working
// directory, if present.
var configPath string

// stdout is where commands print; tests replace it.
var stdout io.Writer = os.Stdout

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	ordered = append(ordered, cmd)
}

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	if len(args) == 0 {
		printHelp()
		return nil
	}

	// Handle global flags before the command name.
	var filtered []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(filtered) > 0 {
			filtered = append(filtered, arg)
			continue
		}
		switch {
		case arg == "-h" || arg == "--help" || arg == "help":
			printHelp()
			return nil
		case arg == "-v" || arg == "--version":
			printVersion()
			return nil
		case arg == "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			configPath = args[i+1]
			i++
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		default:
			filtered = append(filtered, arg)
		}
	}
	if len(filtered) == 0 {
		printHelp()
		return nil
	}

	name := filtered[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", name)
		printHelp()
		return fmt.Errorf("unknown command: %s", name)
	}
	cmdArgs := filtered[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}
	return cmd.Run(cmdArgs)
}

// loadConfig reads --config, or wheel.yaml from the working directory.
func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	dir, err := os.Getwd()
	if err != nil {
		return config.Config{}, err
	}
	return config.LoadOptional(dir)
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func printVersion() {
	fmt.Fprintf(stdout, "wheel version %s (built %s)\n", Version, BuildTime)
}

func printHelp() {
	fmt.Fprintln(stdout, rootCmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", rootCmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range ordered {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --config FILE        Read settings from FILE (default: ./wheel.yaml)")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  wheel demo                       Scroll a wheel with the mouse")
	fmt.Fprintln(stdout, "  wheel demo --mirror :8080        Also serve events on ws://localhost:8080/wheel")
	fmt.Fprintln(stdout, "  wheel follow ws://host:8080/wheel")
	fmt.Fprintln(stdout, "  wheel snapshot --value 0.5 -o wheel.png")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
