package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrCityNotFound is wrapped by providers when the requested city is unknown.
var ErrCityNotFound = errors.New("city not found")

// Observation is the current weather for one city.
type Observation struct {
	City        string    `json:"city"`
	Temp        float64   `json:"temp"`     // °C
	Description string    `json:"description"`
	Humidity    int       `json:"humidity"` // percent
	Wind        float64   `json:"wind"`     // m/s
	FetchedAt   time.Time `json:"fetched_at"`
}

// WeatherProvider looks up current conditions by city name.
type WeatherProvider interface {
	Current(ctx context.Context, city string) (Observation, error)
}

// NewObservation stamps an observation with the package clock.
func NewObservation(city string, temp float64, description string, humidity int, wind float64) Observation {
	return Observation{
		City:        city,
		Temp:        temp,
		Description: description,
		Humidity:    humidity,
		Wind:        wind,
		FetchedAt:   clock.Now().UTC(),
	}
}

// FormatObservation renders the one-line summary printed by the weather shell.
func FormatObservation(o Observation) string {
	return fmt.Sprintf("%s: %s°C, %s | Humidity %d%% | Wind %s m/s",
		o.City, FormatNumber(o.Temp), o.Description, o.Humidity, FormatNumber(o.Wind))
}

// FormatNumber prints v with the fewest digits that round-trip, so 15
// renders as "15" and 2.5 as "2.5".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
