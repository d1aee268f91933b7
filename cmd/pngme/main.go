// SPDX-FileCopyrightText: 2026 pngme-go contributors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// errUsage is returned by a command called with wrong arguments.
var errUsage = errors.New("invalid usage")

// command is the signature of each CLI command.
type command func(conf tomlConfig, args []string, out io.Writer) error

var commands = map[string]command{
	"encode": encodeCommand,
	"decode": decodeCommand,
	"remove": removeCommand,
	"print":  printCommand,
	"find":   findCommand,
	"watch":  watchCommand,
}

// printUsage of pngme.
func printUsage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "Usage of %s [--config file.toml] encode|decode|remove|print|find|watch:\n\n", os.Args[0])

	_, _ = fmt.Fprintf(w, "%s encode [--key key] [--output file] file chunk-type message\n", os.Args[0])
	_, _ = fmt.Fprintf(w, "  Hides the message in a new chunk of the given type, in front of the IEND\n")
	_, _ = fmt.Fprintf(w, "  chunk. A chunk-type of - selects the configured default type.\n\n")

	_, _ = fmt.Fprintf(w, "%s decode [--key key] file chunk-type\n", os.Args[0])
	_, _ = fmt.Fprintf(w, "  Prints the message of the first chunk of the given type.\n\n")

	_, _ = fmt.Fprintf(w, "%s remove file chunk-type\n", os.Args[0])
	_, _ = fmt.Fprintf(w, "  Removes the first chunk of the given type.\n\n")

	_, _ = fmt.Fprintf(w, "%s print [--format text|json|cbor] file\n", os.Args[0])
	_, _ = fmt.Fprintf(w, "  Lists all chunks of the file.\n\n")

	_, _ = fmt.Fprintf(w, "%s find file\n", os.Args[0])
	_, _ = fmt.Fprintf(w, "  Lists all chunks which might contain a hidden message.\n\n")

	_, _ = fmt.Fprintf(w, "%s watch directory\n", os.Args[0])
	_, _ = fmt.Fprintf(w, "  Lists the chunks of each PNG file created in the directory until interrupted.\n\n")
}

// newFlagSet creates a FlagSet for a command which reports errors to the caller.
func newFlagSet(name string) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	return flagSet
}

// parseFlags parses args and returns the remaining positional arguments,
// which must be exactly n.
func parseFlags(flagSet *pflag.FlagSet, args []string, n int) ([]string, error) {
	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil, errUsage
		}
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}

	if rest := flagSet.Args(); len(rest) != n {
		return nil, fmt.Errorf("%w: %s expects %d arguments, got %d", errUsage, flagSet.Name(), n, len(rest))
	} else {
		return rest, nil
	}
}

// run parses the global flags and executes the selected command.
func run(args []string, out io.Writer) error {
	var configFile string

	flagSet := newFlagSet("pngme")
	flagSet.SetInterspersed(false)
	flagSet.StringVarP(&configFile, "config", "c", "", "TOML configuration file")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return errUsage
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	rest := flagSet.Args()
	if len(rest) < 1 {
		return errUsage
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", errUsage, rest[0])
	}

	conf, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	configureLogging(conf.Logging)

	log.WithField("command", rest[0]).Debug("Executing command")
	return cmd(conf, rest[1:], out)
}

// printFatal logs an error with a message and exits with an error code.
func printFatal(err error, msg string) {
	log.WithError(err).Error(msg)
	os.Exit(1)
}

func main() {
	if err := run(os.Args[1:], os.Stdout); errors.Is(err, errUsage) {
		if err != errUsage {
			_, _ = fmt.Fprintf(os.Stderr, "%v\n\n", err)
		}
		printUsage(os.Stderr)
		os.Exit(1)
	} else if err != nil {
		printFatal(err, "Command errored")
	}
}
