package scm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CheckoutStrategy selects how a pull request is materialized.
type CheckoutStrategy int

const (
	// StrategyMerge builds the pull request tip merged onto the target's base commit
	StrategyMerge CheckoutStrategy = iota
	// StrategyHead builds the pull request tip as-is
	StrategyHead
)

// String returns the string representation of the strategy
func (s CheckoutStrategy) String() string {
	switch s {
	case StrategyMerge:
		return "MERGE"
	case StrategyHead:
		return "HEAD"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON implements json.Marshaler
func (s CheckoutStrategy) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (s *CheckoutStrategy) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseCheckoutStrategy(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseCheckoutStrategy parses a string into a CheckoutStrategy
func ParseCheckoutStrategy(s string) (CheckoutStrategy, error) {
	switch strings.ToUpper(s) {
	case "MERGE":
		return StrategyMerge, nil
	case "HEAD":
		return StrategyHead, nil
	default:
		return StrategyMerge, fmt.Errorf("unknown checkout strategy: %s", s)
	}
}

// Origin records where the changes of a pull request come from.
// The zero value is the default origin: the canonical repository itself.
type Origin struct {
	// Fork is the full name (owner/repo) of the forked repository, empty for
	// the default origin.
	Fork string
}

// DefaultOrigin is the origin of heads living in the canonical repository.
var DefaultOrigin = Origin{}

// ForkOrigin returns the origin of a pull request opened from fullName.
func ForkOrigin(fullName string) Origin {
	return Origin{Fork: fullName}
}

// IsDefault reports whether the origin is the canonical repository.
func (o Origin) IsDefault() bool {
	return o.Fork == ""
}

func (o Origin) String() string {
	if o.IsDefault() {
		return "default"
	}
	return "fork:" + o.Fork
}

// MarshalJSON implements json.Marshaler
func (o Origin) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}
