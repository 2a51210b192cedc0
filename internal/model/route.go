package model

// Route is a transit line with its ordered stops.
type Route struct {
	ID    string   `json:"id" yaml:"id"`
	Name  string   `json:"name" yaml:"name"`
	Color string   `json:"color" yaml:"color"`
	Stops []string `json:"stops" yaml:"stops"`
}

// HasStop reports whether name is one of the route's stops (exact match).
func (r Route) HasStop(name string) bool {
	for _, s := range r.Stops {
		if s == name {
			return true
		}
	}
	return false
}

func FindRoute(routes []Route, id string) (Route, bool) {
	for _, r := range routes {
		if r.ID == id {
			return r, true
		}
	}
	return Route{}, false
}
