// Command boondh runs the boondh utilities from the shell.
//
//	boondh square --n 1000000 --chunk auto
//	boondh arrange --dir ~/Downloads --clean
//	boondh dummy --min-freq 3 --column category
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/utkarsh5026/boondh/internal/config"
	"github.com/utkarsh5026/boondh/internal/logging"
)

var (
	bold  = color.New(color.Bold)
	red   = color.New(color.FgRed)
	green = color.New(color.FgGreen)
)

var errUsage = errors.New("usage: boondh <square|arrange|dummy> [flags]")

type command struct {
	name  string
	short string
	run   func(env *env, args []string) error
}

var commands = []command{
	{"square", "square 0..n in parallel and report the run", runSquare},
	{"arrange", "move files into per-type sub directories", runArrange},
	{"dummy", "print a dummy frame, optionally filtered by value frequency", runDummy},
}

// env carries what every subcommand needs.
type env struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		red.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}
	name, rest := args[0], args[1:]
	if name == "help" || name == "-h" || name == "--help" {
		usage(stdout)
		return nil
	}

	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		err := cmd.run(&env{stdout: stdout, stderr: stderr}, rest)
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	usage(stderr)
	return fmt.Errorf("unknown command %q", name)
}

func usage(w io.Writer) {
	bold.Fprintln(w, "boondh - a swiss knife of small utilities")
	fmt.Fprintln(w, "\nCommands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.name, cmd.short)
	}
	fmt.Fprintln(w, "\nRun 'boondh <command> --help' for the flags of a command.")
}

// newFlagSet returns a flag set carrying the flags shared by every command.
func newFlagSet(name string, e *env) (*pflag.FlagSet, *string, *string) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)
	cfgPath := fs.String("config", config.DefaultPath, "path of the JSON config file")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error (overrides config)")
	return fs, cfgPath, logLevel
}

// setup parses args and loads the config and logger into e.
func (e *env) setup(fs *pflag.FlagSet, args []string, cfgPath, logLevel *string) error {
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.logger = logger
	logger.Debug("config loaded", zap.Stringer("config", cfg))
	return nil
}
