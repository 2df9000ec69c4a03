package issue

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Priority orders issues by urgency. The numeric order is meaningful:
// Trivial < Low < Medium < High < Critical < Blocker.
type Priority uint8

const (
	PriorityTrivial Priority = iota
	PriorityLow
	PriorityMedium
	PriorityHigh
	PriorityCritical
	PriorityBlocker
)

var priorityNames = [...]string{
	PriorityTrivial:  "Trivial",
	PriorityLow:      "Low",
	PriorityMedium:   "Medium",
	PriorityHigh:     "High",
	PriorityCritical: "Critical",
	PriorityBlocker:  "Blocker",
}

// String returns the canonical name used on the wire.
func (p Priority) String() string {
	if int(p) < len(priorityNames) {
		return priorityNames[p]
	}
	return fmt.Sprintf("Priority(%d)", uint8(p))
}

// Raise returns the next priority up, saturating at Blocker.
func (p Priority) Raise() Priority {
	if p >= PriorityBlocker {
		return PriorityBlocker
	}
	return p + 1
}

// Lower returns the next priority down, saturating at Trivial.
func (p Priority) Lower() Priority {
	if p == PriorityTrivial {
		return PriorityTrivial
	}
	return p - 1
}

// ParsePriority accepts the canonical names plus single-letter aliases,
// case-insensitive.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trivial", "t", "typo":
		return PriorityTrivial, nil
	case "low", "l":
		return PriorityLow, nil
	case "medium", "m":
		return PriorityMedium, nil
	case "high", "h":
		return PriorityHigh, nil
	case "critical", "c":
		return PriorityCritical, nil
	case "blocker", "b":
		return PriorityBlocker, nil
	}
	return PriorityTrivial, fmt.Errorf("cannot parse %q into a priority; expected trivial/low/medium/high/critical/blocker", s)
}

func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParsePriority(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func (p *Priority) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParsePriority(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
