package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Coordinates is an immutable (latitude, longitude) pair.
// It is encoded as [lat, lng], the order the map widget expects.
type Coordinates struct {
	Lat float64
	Lng float64
}

// IsFinite reports whether both components are finite numbers.
func (c Coordinates) IsFinite() bool {
	return isFinite(c.Lat) && isFinite(c.Lng)
}

func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Lat, c.Lng})
}

func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinates: want [lat, lng], got %d values", len(pair))
	}
	c.Lat, c.Lng = pair[0], pair[1]
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
