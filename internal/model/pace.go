package model

import (
	"bytes"
	"encoding/json"
	"math"
)

// Pace is minutes per kilometre. A zero-distance activity has an infinite
// pace; JSON has no representation for that so it is written as null.
type Pace float64

func (p Pace) Finite() bool {
	f := float64(p)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func (p Pace) MarshalJSON() ([]byte, error) {
	if !p.Finite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(p))
}

func (p *Pace) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*p = Pace(math.Inf(1))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*p = Pace(f)
	return nil
}
