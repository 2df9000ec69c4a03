package issue

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Status is an issue's lifecycle state.
type Status uint8

const (
	StatusOpen Status = iota
	StatusClosed
)

// String returns the canonical name used on the wire.
func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "Open"
	case StatusClosed:
		return "Closed"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusOpen {
		return StatusClosed
	}
	return StatusOpen
}

// ParseStatus accepts the canonical names plus common aliases,
// case-insensitive.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open", "active", "pending":
		return StatusOpen, nil
	case "closed", "done", "finished":
		return StatusClosed, nil
	}
	return StatusOpen, fmt.Errorf("cannot parse %q into a status; expected open/active/pending or closed/done/finished", s)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalYAML lets templates spell the status the same way the log does.
func (s *Status) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
