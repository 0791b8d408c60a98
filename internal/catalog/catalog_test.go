package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/raphaelgruber/imagegrid/internal/grid"
)

func TestDefault(t *testing.T) {
	f := Default()

	if len(f.Pairs) != 9 {
		t.Fatalf("Default() has %d pairs, want 9", len(f.Pairs))
	}
	if f.Columns != 3 || f.Rows() != 3 {
		t.Errorf("Default() layout = %dx%d, want 3x3", f.Rows(), f.Columns)
	}
	if f.Title != DefaultTitle {
		t.Errorf("Default() title = %q, want %q", f.Title, DefaultTitle)
	}
	for i, p := range f.Pairs {
		want := string(rune('1' + i))
		if p.ID != want {
			t.Errorf("pair[%d].ID = %q, want %q", i, p.ID, want)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		wantErr     bool
		wantPairs   int
		wantColumns int
	}{
		{
			name: "minimal",
			doc: `pairs:
  - {id: a, primary: p1, alternate: a1}
  - {id: b, primary: p2, alternate: a2}`,
			wantPairs:   2,
			wantColumns: 3,
		},
		{
			name: "explicit columns",
			doc: `columns: 2
pairs:
  - {id: a, primary: p1, alternate: a1}`,
			wantPairs:   1,
			wantColumns: 2,
		},
		{
			name:    "no pairs",
			doc:     `title: empty`,
			wantErr: true,
		},
		{
			name: "duplicate ids",
			doc: `pairs:
  - {id: a, primary: p1, alternate: a1}
  - {id: " a ", primary: p2, alternate: a2}`,
			wantErr: true,
		},
		{
			name: "missing alternate",
			doc: `pairs:
  - {id: a, primary: p1}`,
			wantErr: true,
		},
		{
			name: "negative columns",
			doc: `columns: -1
pairs:
  - {id: a, primary: p1, alternate: a1}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse([]byte(tt.doc))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse() error = nil, want error")
				}
				if !errors.Is(err, grid.ErrInvalidCatalog) {
					t.Errorf("Parse() error = %v, want ErrInvalidCatalog", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if len(f.Pairs) != tt.wantPairs {
				t.Errorf("Parse() pairs = %d, want %d", len(f.Pairs), tt.wantPairs)
			}
			if f.Columns != tt.wantColumns {
				t.Errorf("Parse() columns = %d, want %d", f.Columns, tt.wantColumns)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("pairs: [unclosed"))
	if err == nil {
		t.Fatal("Parse() error = nil, want YAML error")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grid.yaml")
	doc := "title: Food\ncolumns: 1\npairs:\n  - {id: x, primary: p, alternate: a}\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Title != "Food" || f.Rows() != 1 {
		t.Errorf("Load() = %+v", f)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load(missing) error = nil")
	}

	f, err = Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if len(f.Pairs) != 9 {
		t.Errorf("Load(\"\") = %d pairs, want default catalog", len(f.Pairs))
	}
}
