package critical

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned by ParseKind for unrecognized names.
var ErrUnknownKind = errors.New("critical: unknown point kind")

// Kind is the classification of a critical point.
type Kind int

const (
	// LocalMinimum is strictly below all eight neighbours.
	LocalMinimum Kind = iota + 1
	// LocalMaximum is strictly above all eight neighbours.
	LocalMaximum
	// Saddle has four or more sign changes around its neighbour ring.
	Saddle
)

// Kinds lists every kind in report order.
var Kinds = []Kind{LocalMinimum, LocalMaximum, Saddle}

// String returns "local_minimum", "local_maximum" or "saddle_point".
func (k Kind) String() string {
	switch k {
	case LocalMinimum:
		return "local_minimum"
	case LocalMaximum:
		return "local_maximum"
	case Saddle:
		return "saddle_point"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case LocalMinimum, LocalMaximum, Saddle:
		return []byte(k.String()), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
}

// UnmarshalText decodes a name accepted by ParseKind.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind accepts the String names and the short forms "minimum", "min",
// "minima", "maximum", "max", "maxima" and "saddle", case-insensitively.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "local_minimum", "minimum", "min", "minima":
		return LocalMinimum, nil
	case "local_maximum", "maximum", "max", "maxima":
		return LocalMaximum, nil
	case "saddle_point", "saddle":
		return Saddle, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Point is a classified grid vertex.
type Point struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
	Kind  Kind    `json:"kind"`

	// Row and Col locate the vertex in the grid it was found in.
	Row int `json:"row"`
	Col int `json:"col"`
}
