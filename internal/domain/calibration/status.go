package calibration

import "strings"

type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// ParseStatus normalizes a caller-supplied status string.
func ParseStatus(value string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusPlanning:
		return StatusPlanning, nil
	case StatusActive:
		return StatusActive, nil
	case StatusCompleted:
		return StatusCompleted, nil
	}
	return "", ErrInvalidStatus
}

var transitions = map[Status][]Status{
	StatusPlanning:  {StatusActive, StatusCompleted},
	StatusActive:    {StatusCompleted},
	StatusCompleted: {},
}

// CanTransitionTo reports whether next is a legal successor of s. Every status
// mutation goes through this table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
