package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultCatalogTime is used when the configured time of day is invalid.
	DefaultCatalogTime = "02:00"
	// DefaultInventoryInterval is used when the configured interval is invalid.
	DefaultInventoryInterval = time.Hour
	// MinInterval is the shortest accepted interval.
	MinInterval = time.Minute
)

var timeOfDay = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// Trigger computes fire times.
type Trigger interface {
	// Next returns the first fire time strictly after the given instant.
	Next(after time.Time) time.Time
	String() string
}

// Daily fires once a day at a wall-clock time.
type Daily struct {
	Hour     int
	Minute   int
	Location *time.Location
}

// Next returns the next occurrence of the time of day after the given instant.
func (d Daily) Next(after time.Time) time.Time {
	loc := d.Location
	if loc == nil {
		loc = time.Local
	}
	t := after.In(loc)
	next := time.Date(t.Year(), t.Month(), t.Day(), d.Hour, d.Minute, 0, 0, loc)
	if !next.After(t) {
		next = time.Date(t.Year(), t.Month(), t.Day()+1, d.Hour, d.Minute, 0, 0, loc)
	}
	return next
}

func (d Daily) String() string {
	return fmt.Sprintf("daily at %02d:%02d", d.Hour, d.Minute)
}

// Interval fires at a fixed period.
type Interval struct {
	Every time.Duration
}

// Next returns after plus the period.
func (i Interval) Next(after time.Time) time.Time {
	return after.Add(i.Every)
}

func (i Interval) String() string {
	return "every " + i.Every.String()
}

// ParseDaily parses a strict HH:MM time of day.
func ParseDaily(value string, loc *time.Location) (Daily, error) {
	m := timeOfDay.FindStringSubmatch(value)
	if m == nil {
		return Daily{}, fmt.Errorf("invalid time of day %q: expected HH:MM", value)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	return Daily{Hour: hour, Minute: minute, Location: loc}, nil
}

// ParseInterval parses a Go duration of at least MinInterval.
func ParseInterval(value string) (Interval, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid interval %q: %w", value, err)
	}
	if d < MinInterval {
		return Interval{}, fmt.Errorf("interval %s is shorter than %s", d, MinInterval)
	}
	return Interval{Every: d}, nil
}

// Triggers is the resolved cadence of both jobs.
type Triggers struct {
	Catalog   Daily
	Inventory Interval
}

// Resolve turns the config into triggers. Invalid values fall back to the defaults and are logged.
func Resolve(cfg Config, logger *zap.Logger) Triggers {
	loc := time.Local
	if cfg.Timezone != "" && cfg.Timezone != "Local" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			logger.Warn("Invalid timezone, using Local", zap.String("timezone", cfg.Timezone), zap.Error(err))
		} else {
			loc = l
		}
	}

	catalog, err := ParseDaily(cfg.CatalogTime, loc)
	if err != nil {
		logger.Warn("Invalid catalog time, using default", zap.String("default", DefaultCatalogTime), zap.Error(err))
		catalog, _ = ParseDaily(DefaultCatalogTime, loc)
	}

	inventory, err := ParseInterval(cfg.InventoryInterval)
	if err != nil {
		logger.Warn("Invalid inventory interval, using default", zap.Duration("default", DefaultInventoryInterval), zap.Error(err))
		inventory = Interval{Every: DefaultInventoryInterval}
	}

	return Triggers{Catalog: catalog, Inventory: inventory}
}
