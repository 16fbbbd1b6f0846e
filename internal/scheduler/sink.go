package scheduler

import "context"

//go:generate mockgen -source=sink.go -destination=sink_mock.go -package=scheduler

// Notifier delivers a text message to a user.
// telegram.Sender implements it.
type Notifier interface {
	Send(ctx context.Context, userID int64, text string) error
}

// WeatherLookup returns the current temperature of a city; ok is false on any failure.
type WeatherLookup interface {
	CurrentTemperature(ctx context.Context, city string) (tempC float64, ok bool)
}
