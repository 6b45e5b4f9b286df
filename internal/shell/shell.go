// Package shell implements the interactive weather prompt: a line-oriented
// loop that dispatches search, add, list, remove and update commands against
// a weather provider and the favourites store.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/couchcryptid/wxtools/internal/domain"
	"github.com/couchcryptid/wxtools/internal/favourites"
	"github.com/couchcryptid/wxtools/internal/observability"
)

const (
	prompt  = "> "
	banner  = `Call Current City Weather - type "help" for commands.`
	goodbye = "Exiting Weather app..."
)

// Publisher receives every observation the shell fetches successfully.
type Publisher interface {
	Publish(ctx context.Context, obs domain.Observation) error
}

// Options configures a Shell. Zero values select defaults.
type Options struct {
	Out         io.Writer
	Err         io.Writer
	Publisher   Publisher
	Concurrency int
}

// Shell reads commands line by line and writes human-readable results.
type Shell struct {
	provider    domain.WeatherProvider
	store       *favourites.Store
	publisher   Publisher
	metrics     *observability.Metrics
	logger      *slog.Logger
	out         io.Writer
	errOut      io.Writer
	concurrency int
}

// New creates a Shell backed by provider and store.
func New(provider domain.WeatherProvider, store *favourites.Store, metrics *observability.Metrics, logger *slog.Logger, opts Options) *Shell {
	s := &Shell{
		provider:    provider,
		store:       store,
		publisher:   opts.Publisher,
		metrics:     metrics,
		logger:      logger,
		out:         opts.Out,
		errOut:      opts.Err,
		concurrency: opts.Concurrency,
	}
	if s.out == nil {
		s.out = io.Discard
	}
	if s.errOut == nil {
		s.errOut = s.out
	}
	if s.concurrency <= 0 {
		s.concurrency = 4
	}
	s.metrics.FavouritesCount.Set(float64(store.Len()))
	return s
}

// Run prints the banner and processes lines from in until exit/quit, end of
// input, or ctx cancellation. It returns only input read errors.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines, readErr := scanLines(ctx, in)

	fmt.Fprintln(s.out, banner)
	for {
		fmt.Fprint(s.out, prompt)

		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			fmt.Fprintln(s.out, goodbye)
			return nil
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				fmt.Fprintln(s.out, goodbye)
				return <-readErr
			}
			if quit := s.Execute(ctx, line); quit {
				fmt.Fprintln(s.out, goodbye)
				return nil
			}
		}
	}
}

// Execute runs a single command line and reports whether the shell should stop.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd := fields[0]
	rest := strings.TrimSpace(strings.TrimPrefix(line, cmd))

	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprintln(s.out, helpText(s.store.Max()))
	case "search":
		s.search(ctx, cityArg(rest))
	case "add":
		s.add(ctx, cityArg(rest))
	case "list":
		s.list(ctx)
	case "remove":
		s.remove(cityArg(rest))
	case "update":
		args, err := shellquote.Split(rest)
		if err != nil {
			fmt.Fprintf(s.errOut, "Could not parse arguments: %v\n", err)
			return false
		}
		s.update(ctx, args)
	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type \"help\" for a list.\n", cmd)
	}
	return false
}

// cityArg collapses internal whitespace so "New   York" and "New York" name
// the same city, and strips one pair of surrounding quotes.
func cityArg(rest string) string {
	city := strings.Join(strings.Fields(rest), " ")
	if len(city) >= 2 {
		if q := city[0]; (q == '"' || q == '\'') && city[len(city)-1] == q {
			city = strings.TrimSpace(city[1 : len(city)-1])
		}
	}
	return city
}

func helpText(limit int) string {
	return fmt.Sprintf(`Commands
search <city>       - show weather for <city>
add    <city>       - add <city> to favourites (max %d)
list                - list favourites with current weather
remove <city>       - remove <city> from favourites
update <old> <new>  - replace <old> with <new>
exit | quit         - close the app

Quote multi-word cities in update: update "New York" Boston`, limit)
}

// scanLines feeds lines from in to a channel until EOF or ctx is done. The
// error channel receives the scanner's final error after lines is closed.
func scanLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- sc.Err()
	}()

	return lines, errc
}
