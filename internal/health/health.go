// Package health provides access to health data readings used to prefill the zone form.
package health

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Reading holds the values the form needs from the health store
type Reading struct {
	Age       int
	RestingHR int
}

// Grant is the outcome of an access request
type Grant struct {
	Granted bool
	Reading Reading
}

// Provider requests permission to read health data
type Provider interface {
	RequestAccess(ctx context.Context) (Grant, error)
}

// DefaultReading is supplied when no real health store is connected
var DefaultReading = Reading{Age: 30, RestingHR: 70}

// PlaceholderProvider grants access and returns a fixed reading.
// It stands in for a real health store integration.
type PlaceholderProvider struct {
	enabled bool
	reading Reading
}

// NewPlaceholderProvider creates a provider returning reading when enabled,
// and denying access otherwise
func NewPlaceholderProvider(enabled bool, reading Reading) *PlaceholderProvider {
	return &PlaceholderProvider{
		enabled: enabled,
		reading: reading,
	}
}

// RequestAccess implements Provider
func (p *PlaceholderProvider) RequestAccess(ctx context.Context) (Grant, error) {
	if err := ctx.Err(); err != nil {
		return Grant{}, fmt.Errorf("requesting health access: %w", err)
	}

	if !p.enabled {
		logrus.Debug("health access denied")
		return Grant{Granted: false}, nil
	}

	logrus.WithFields(logrus.Fields{
		"age":        p.reading.Age,
		"resting_hr": p.reading.RestingHR,
	}).Debug("health access granted with placeholder reading")

	return Grant{Granted: true, Reading: p.reading}, nil
}
