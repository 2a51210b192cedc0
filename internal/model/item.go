package model

import (
	"errors"
	"fmt"
	"strings"
)

// Kind says whether a report describes a missing object or a recovered one.
type Kind int

const (
	KindLost Kind = iota + 1
	KindFound
)

func (k Kind) String() string {
	switch k {
	case KindLost:
		return "lost"
	case KindFound:
		return "found"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts "lost" or "found" (any case).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lost":
		return KindLost, nil
	case "found":
		return KindFound, nil
	}
	return 0, fmt.Errorf("unknown kind %q", s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if k != KindLost && k != KindFound {
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// Status is the lifecycle of a report. Only open reports are matched.
type Status int

const (
	StatusOpen Status = iota + 1
	StatusClaimed
	StatusReturned
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusClaimed:
		return "claimed"
	case StatusReturned:
		return "returned"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return StatusOpen, nil
	case "claimed":
		return StatusClaimed, nil
	case "returned":
		return StatusReturned, nil
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

// Next cycles open -> claimed -> returned -> open.
func (s Status) Next() Status {
	switch s {
	case StatusOpen:
		return StatusClaimed
	case StatusClaimed:
		return StatusReturned
	}
	return StatusOpen
}

func (s Status) MarshalText() ([]byte, error) {
	if s < StatusOpen || s > StatusReturned {
		return nil, fmt.Errorf("invalid status %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Item is one lost or found report on a transit route.
// The matcher treats items as read-only values.
type Item struct {
	ID           string `json:"id"`
	RouteID      string `json:"routeId"`
	Kind         Kind   `json:"type"`
	Category     string `json:"category"`
	Description  string `json:"description"`
	Location     string `json:"location"`
	Date         Date   `json:"date"`
	Status       Status `json:"status"`
	ReportedBy   string `json:"reportedBy"`
	ContactEmail string `json:"contactEmail"`
	ImageURL     string `json:"imageUrl,omitempty"`
}

// IsOpen reports whether the item is still waiting to be claimed.
func (it Item) IsOpen() bool { return it.Status == StatusOpen }

// Categories offered by the report form.
var Categories = []string{
	"Electronics",
	"Personal Items",
	"Clothing",
	"Accessories",
	"Documents",
	"Other",
}

// ErrInvalidItem wraps every validation failure from Item.Validate.
var ErrInvalidItem = errors.New("invalid item")

// Validate checks a new report against the route catalog before it is stored.
func (it Item) Validate(routes []Route) error {
	var problems []string
	if it.Kind != KindLost && it.Kind != KindFound {
		problems = append(problems, "type must be lost or found")
	}
	route, ok := FindRoute(routes, it.RouteID)
	switch {
	case strings.TrimSpace(it.RouteID) == "":
		problems = append(problems, "route is required")
	case !ok:
		problems = append(problems, fmt.Sprintf("unknown route %q", it.RouteID))
	case !route.HasStop(it.Location):
		problems = append(problems, fmt.Sprintf("%q is not a stop on %s", it.Location, route.Name))
	}
	if strings.TrimSpace(it.Description) == "" {
		problems = append(problems, "description is required")
	}
	if !it.Date.Known() {
		problems = append(problems, "date must be YYYY-MM-DD")
	}
	if strings.TrimSpace(it.ReportedBy) == "" {
		problems = append(problems, "reporter name is required")
	}
	if !strings.Contains(it.ContactEmail, "@") {
		problems = append(problems, "contact email is required")
	}
	if it.Kind == KindFound && strings.TrimSpace(it.ImageURL) == "" {
		problems = append(problems, "found items need an image")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidItem, strings.Join(problems, "; "))
	}
	return nil
}
