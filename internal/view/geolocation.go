package view

import (
	"context"
	"errors"

	"mapty/workout-tracker/internal/domain"
)

// ErrPositionUnavailable is returned when no position can be determined.
var ErrPositionUnavailable = errors.New("position unavailable")

// FixedLocator reports a position supplied by the client.
type FixedLocator struct {
	Coords domain.Coordinates
}

func (l FixedLocator) Locate(ctx context.Context) (domain.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return domain.Coordinates{}, err
	}
	if !l.Coords.IsFinite() {
		return domain.Coordinates{}, ErrPositionUnavailable
	}
	return l.Coords, nil
}

// UnavailableLocator always fails, like a browser without geolocation.
type UnavailableLocator struct{}

func (UnavailableLocator) Locate(context.Context) (domain.Coordinates, error) {
	return domain.Coordinates{}, ErrPositionUnavailable
}
