package geofence

import (
	"fmt"
	"math"
)

// earthRadius in meters, for the haversine great-circle distance.
const earthRadius = 6371000.0

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Config is the admin-managed geofencing zone. When Enabled is false the
// checker is bypassed and every position counts as in-zone.
type Config struct {
	Enabled     bool        `json:"enabled"`
	Center      Coordinates `json:"center"`
	Radius      float64     `json:"radius"`
	Description string      `json:"description"`
}

// DefaultConfig matches the behavior of an unconfigured install:
// geofencing off, a 100m radius placeholder.
func DefaultConfig() Config {
	return Config{
		Enabled:     false,
		Center:      Coordinates{},
		Radius:      100,
		Description: "Zone not configured",
	}
}

// Result is the in/out decision for one candidate position. Distance is
// rounded to whole meters for user-facing messages.
type Result struct {
	InZone      bool    `json:"inZone"`
	Distance    int     `json:"distance"`
	MaxDistance float64 `json:"maxDistance,omitempty"`
	Message     string  `json:"message"`
}

// Distance returns the great-circle distance in meters between two
// points given in degrees (haversine formula).
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// Check decides whether the candidate position lies within the zone.
// Pure; never fails.
func (cfg Config) Check(lat, lon float64) Result {
	if !cfg.Enabled {
		return Result{
			InZone:  true,
			Message: "Geofencing disabled",
		}
	}

	distance := Distance(cfg.Center.Latitude, cfg.Center.Longitude, lat, lon)
	rounded := int(math.Round(distance))
	inZone := distance <= cfg.Radius

	message := fmt.Sprintf("Position validated (%dm from center)", rounded)
	if !inZone {
		message = fmt.Sprintf("Out of zone (%dm > %.0fm)", rounded, cfg.Radius)
	}

	return Result{
		InZone:      inZone,
		Distance:    rounded,
		MaxDistance: cfg.Radius,
		Message:     message,
	}
}
