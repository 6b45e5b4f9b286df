// Command median prints the median of whitespace-separated numbers.
//
// Usage:
//
//	median              # prompts for a line on stdin
//	median -n "4 1 3 2" # Median: 2.5
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/couchcryptid/wxtools/internal/domain"
	"github.com/couchcryptid/wxtools/internal/observability"
)

const (
	promptText   = "Enter numbers separated by spaces (e.g. 1 2 3 4 5):"
	invalidInput = "Invalid input, use spaces between numbers only."
)

func main() {
	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApp builds the command. Only LOG_LEVEL and LOG_FORMAT are read from the
// environment; weather settings do not affect it.
func newApp(stdin io.Reader, stdout io.Writer) *cli.App {
	return &cli.App{
		Name:  "median",
		Usage: "print the median of a list of numbers",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "numbers",
				Aliases: []string{"n"},
				Usage:   "numbers to use instead of prompting, e.g. \"1 2 3\"",
			},
		},
		Action: func(c *cli.Context) error {
			logger := observability.NewLoggerFromEnv()

			in := stdin
			if c.IsSet("numbers") {
				in = nil
			}
			return run(in, c.String("numbers"), stdout, logger)
		},
	}
}

// run computes the median of numbers, or of one line read from in when in is
// non-nil, and prints it to out.
func run(in io.Reader, numbers string, out io.Writer, logger *slog.Logger) error {
	line := numbers
	if in != nil {
		fmt.Fprintln(out, promptText)
		fmt.Fprint(out, "> ")

		var err error
		line, err = bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
	}

	nums, err := domain.ParseNumbers(line)
	if err != nil {
		logger.Debug("rejected input", "error", err)
		return cli.Exit(invalidInput, 1)
	}

	median, err := domain.Median(nums)
	if err != nil {
		return cli.Exit(invalidInput, 1)
	}
	logger.Debug("median computed", "count", len(nums), "median", median)

	fmt.Fprintf(out, "Median: %s\n", domain.FormatNumber(median))
	return nil
}
