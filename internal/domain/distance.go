package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// NoSuchRouteLabel is the wire and display form of a missing route.
const NoSuchRouteLabel = "NO SUCH ROUTE"

// Distance is the result of a distance query: either a total edge weight or
// the NoSuchRoute marker. The zero value is NoSuchRoute.
type Distance struct {
	value  int
	exists bool
}

// NoSuchRoute reports a well-formed query that has no satisfying walk.
var NoSuchRoute = Distance{}

// Found wraps a computed total distance.
func Found(total int) Distance {
	return Distance{value: total, exists: true}
}

// Value returns the total distance and whether a route exists.
func (d Distance) Value() (int, bool) {
	return d.value, d.exists
}

// Exists reports whether d carries a computed distance.
func (d Distance) Exists() bool {
	return d.exists
}

// Less orders distances with NoSuchRoute after every existing route.
func (d Distance) Less(other Distance) bool {
	switch {
	case !d.exists:
		return false
	case !other.exists:
		return true
	default:
		return d.value < other.value
	}
}

func (d Distance) String() string {
	if !d.exists {
		return NoSuchRouteLabel
	}
	return strconv.Itoa(d.value)
}

// MarshalJSON encodes a number, or the NoSuchRoute label as a string.
func (d Distance) MarshalJSON() ([]byte, error) {
	if !d.exists {
		return json.Marshal(NoSuchRouteLabel)
	}
	return []byte(strconv.Itoa(d.value)), nil
}

// UnmarshalJSON accepts the forms produced by MarshalJSON.
func (d *Distance) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		if label != NoSuchRouteLabel {
			return fmt.Errorf("unexpected distance label %q", label)
		}
		*d = NoSuchRoute
		return nil
	}
	var total int
	if err := json.Unmarshal(data, &total); err != nil {
		return fmt.Errorf("decode distance: %w", err)
	}
	*d = Found(total)
	return nil
}
