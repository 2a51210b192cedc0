package routes

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	rs := Default()
	if len(rs) != 4 {
		t.Fatalf("expected 4 routes, got %d", len(rs))
	}
	if rs[0].ID != "1" || rs[0].Name != "Ratnapark - Koteshwor" {
		t.Errorf("unexpected first route %+v", rs[0])
	}
	if !rs[1].HasStop("Maharajgunj") {
		t.Error("route 2 should stop at Maharajgunj")
	}
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	t.Parallel()

	rs, err := Load("  ")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rs) != len(Default()) {
		t.Errorf("expected default catalog, got %d routes", len(rs))
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr string
		want    int
	}{
		{
			name: "valid",
			body: "routes:\n  - id: a\n    name: A line\n    stops: [One, Two]\n",
			want: 1,
		},
		{
			name:    "duplicate id",
			body:    "routes:\n  - id: a\n    stops: [One]\n  - id: a\n    stops: [Two]\n",
			wantErr: "duplicate route id",
		},
		{
			name:    "no stops",
			body:    "routes:\n  - id: a\n",
			wantErr: "no stops",
		},
		{
			name:    "missing id",
			body:    "routes:\n  - name: nameless\n    stops: [One]\n",
			wantErr: "without id",
		},
		{
			name:    "bad yaml",
			body:    "routes: [",
			wantErr: "parse",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := filepath.Join(t.TempDir(), "routes.yaml")
			if err := os.WriteFile(p, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			rs, err := LoadFile(p)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFile: %v", err)
			}
			if len(rs) != tt.want {
				t.Errorf("got %d routes, want %d", len(rs), tt.want)
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
