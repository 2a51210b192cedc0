// Package routes loads the transit route catalog.
package routes

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/lostfound/internal/model"
)

//go:embed default.yaml
var defaultCatalog []byte

type catalogFile struct {
	Routes []model.Route `yaml:"routes"`
}

// Default returns the built-in catalog.
func Default() []model.Route {
	rs, err := parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("routes: embedded catalog: %v", err))
	}
	return rs
}

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string) ([]model.Route, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

func LoadFile(path string) ([]model.Route, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routes: %w", err)
	}
	rs, err := parse(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rs, nil
}

func parse(b []byte) ([]model.Route, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(f.Routes))
	for _, r := range f.Routes {
		if strings.TrimSpace(r.ID) == "" {
			return nil, errors.New("route without id")
		}
		if _, dup := seen[r.ID]; dup {
			return nil, fmt.Errorf("duplicate route id %q", r.ID)
		}
		seen[r.ID] = struct{}{}
		if len(r.Stops) == 0 {
			return nil, fmt.Errorf("route %q has no stops", r.ID)
		}
	}
	return f.Routes, nil
}
