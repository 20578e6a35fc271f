package sensor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Registry holds independently configured sensors in registration order.
type Registry struct {
	sensors []*Sensor
	logger  *logrus.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *logrus.Logger) *Registry {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Registry{
		sensors: make([]*Sensor, 0),
		logger:  logger,
	}
}

// Register adds a sensor. Names must be unique.
func (r *Registry) Register(s *Sensor) error {
	if r.GetByName(s.Name()) != nil {
		return fmt.Errorf("sensor %q already registered", s.Name())
	}
	r.sensors = append(r.sensors, s)
	r.logger.WithFields(logrus.Fields{
		"sensor": s.Name(),
		"path":   s.Sampler().Config().Path,
	}).Debug("Registered sensor")
	return nil
}

// Sensors returns all registered sensors.
func (r *Registry) Sensors() []*Sensor {
	return r.sensors
}

// GetByName returns a sensor by name, or nil if not found.
func (r *Registry) GetByName(name string) *Sensor {
	for _, s := range r.sensors {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// UpdateAll updates every sensor concurrently. Readings keep registration
// order. A stalled probe on one path does not delay readings past ctx.
func (r *Registry) UpdateAll(ctx context.Context, now time.Time) []Reading {
	readings := make([]Reading, len(r.sensors))

	var wg sync.WaitGroup
	for i, s := range r.sensors {
		wg.Add(1)
		go func(i int, s *Sensor) {
			defer wg.Done()
			r.logger.WithField("sensor", s.Name()).Debug("Updating sensor")
			readings[i] = s.UpdateContext(ctx, now)
		}(i, s)
	}

	wg.Wait()
	return readings
}
