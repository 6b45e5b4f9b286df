package shell

import (
	"context"
	"errors"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/wxtools/internal/domain"
	"github.com/couchcryptid/wxtools/internal/favourites"
)

func (s *Shell) search(ctx context.Context, city string) {
	if city == "" {
		fmt.Fprintln(s.out, "Usage: search <city>")
		return
	}
	obs, err := s.lookup(ctx, city)
	if err != nil {
		fmt.Fprintln(s.errOut, err)
		return
	}
	fmt.Fprintln(s.out, domain.FormatObservation(obs))
}

func (s *Shell) add(ctx context.Context, city string) {
	if city == "" {
		fmt.Fprintln(s.out, "Usage: add <city>")
		return
	}
	if err := s.store.CanAdd(city); err != nil {
		s.printStoreError(err, city)
		return
	}
	// The city must resolve before it is stored.
	if _, err := s.lookup(ctx, city); err != nil {
		fmt.Fprintln(s.errOut, err)
		return
	}
	if err := s.store.Add(city); err != nil {
		s.printStoreError(err, city)
		return
	}
	s.metrics.FavouritesCount.Set(float64(s.store.Len()))
	fmt.Fprintf(s.out, "Added %q\n", city)
}

// listResult is one favourite's lookup outcome, kept in favourites order.
type listResult struct {
	city string
	obs  domain.Observation
	err  error
}

func (s *Shell) list(ctx context.Context) {
	cities := s.store.List()
	if len(cities) == 0 {
		fmt.Fprintln(s.out, `No favourites yet. Use "add <city>" to add one.`)
		return
	}

	results := make([]listResult, len(cities))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, city := range cities {
		g.Go(func() error {
			obs, err := s.lookup(gctx, city)
			results[i] = listResult{city: city, obs: obs, err: err}
			// A failed city never cancels the others.
			return nil
		})
	}
	_ = g.Wait()

	fmt.Fprintln(s.out, "Favourites")

	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"City", "Temp (°C)", "Conditions", "Humidity (%)", "Wind (m/s)"})
	table.SetAutoFormatHeaders(false)
	rows := 0
	for _, r := range results {
		if r.err != nil {
			continue
		}
		table.Append([]string{
			r.obs.City,
			domain.FormatNumber(r.obs.Temp),
			r.obs.Description,
			fmt.Sprintf("%d", r.obs.Humidity),
			domain.FormatNumber(r.obs.Wind),
		})
		rows++
	}
	if rows > 0 {
		table.Render()
	}

	for _, r := range results {
		if r.err != nil {
			s.logger.Warn("favourite lookup failed", "city", r.city, "error", r.err)
			fmt.Fprintf(s.out, "Error with %s: unable to fetch weather right now\n", r.city)
		}
	}
}

func (s *Shell) remove(city string) {
	if city == "" {
		fmt.Fprintln(s.out, "Usage: remove <city>")
		return
	}
	if err := s.store.Remove(city); err != nil {
		s.printStoreError(err, city)
		return
	}
	s.metrics.FavouritesCount.Set(float64(s.store.Len()))
	fmt.Fprintf(s.out, "Removed %q\n", city)
}

func (s *Shell) update(ctx context.Context, args []string) {
	if len(args) < 2 || args[0] == "" || args[1] == "" {
		fmt.Fprintln(s.out, "Usage: update <oldCity> <newCity>")
		return
	}
	oldCity, newCity := args[0], args[1]

	if err := s.store.CanReplace(oldCity, newCity); err != nil {
		if errors.Is(err, favourites.ErrNotFound) {
			s.printStoreError(err, oldCity)
		} else {
			s.printStoreError(err, newCity)
		}
		return
	}
	if _, err := s.lookup(ctx, newCity); err != nil {
		fmt.Fprintln(s.errOut, err)
		return
	}
	if err := s.store.Replace(oldCity, newCity); err != nil {
		s.printStoreError(err, newCity)
		return
	}
	fmt.Fprintf(s.out, "Replaced %q with %q\n", oldCity, newCity)
}

// lookup fetches the current weather and hands successful results to the
// publisher. Publish failures are logged, never returned.
func (s *Shell) lookup(ctx context.Context, city string) (domain.Observation, error) {
	obs, err := s.provider.Current(ctx, city)
	if err != nil {
		return domain.Observation{}, err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, obs); err != nil {
			s.logger.Warn("publish observation failed", "city", obs.City, "error", err)
		}
	}
	return obs, nil
}

func (s *Shell) printStoreError(err error, city string) {
	switch {
	case errors.Is(err, favourites.ErrAlreadyExists):
		fmt.Fprintf(s.out, "%q is already in favourites.\n", city)
	case errors.Is(err, favourites.ErrNotFound):
		fmt.Fprintf(s.out, "%q is not in favourites.\n", city)
	case errors.Is(err, favourites.ErrFull):
		fmt.Fprintf(s.out, "Max favourites of %d reached. Remove one first or update\n", s.store.Max())
	default:
		s.logger.Error("favourites update failed", "city", city, "error", err)
		fmt.Fprintf(s.errOut, "Could not save favourites: %v\n", err)
	}
}
