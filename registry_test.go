package detstream

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// fakeModel is a Model with fixed responses, for tests.
type fakeModel struct {
	dim     int
	support int
	value   float64

	// fn, when set, overrides value.
	fn func(point []float64) float64

	closed   bool
	closeErr error
}

func (m *fakeModel) ComputeValue(point []float64) float64 {
	if m.fn != nil {
		return m.fn(point)
	}
	return m.value
}

func (m *fakeModel) SupportCount() int { return m.support }
func (m *fakeModel) MaxDimension() int { return m.dim }

func (m *fakeModel) Close() error {
	m.closed = true
	return m.closeErr
}

// fakeLoader returns models from a path-keyed map, failing for
// unlisted paths.
func fakeLoader(models map[string]*fakeModel) Loader {
	return func(path string) (Model, error) {
		m, ok := models[path]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrModelLoad, path)
		}
		return m, nil
	}
}

// loadFakeRegistry loads a registry over the given models, in map-free
// deterministic path order.
func loadFakeRegistry(t *testing.T, models ...*fakeModel) *Registry {
	t.Helper()

	byPath := make(map[string]*fakeModel, len(models))
	paths := make([]string, len(models))
	for i, m := range models {
		paths[i] = fmt.Sprintf("model-%d.json", i)
		byPath[paths[i]] = m
	}

	reg, err := LoadRegistry(paths, WithLoader(fakeLoader(byPath)))
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	return reg
}

func TestLoadRegistry(t *testing.T) {
	t.Run("partial failures are skipped", func(t *testing.T) {
		byPath := map[string]*fakeModel{
			"a.json": {dim: 2, support: 10},
			"c.json": {dim: 5, support: 20},
			"d.json": {dim: 3, support: 30},
		}
		paths := []string{"a.json", "b.json", "c.json", "d.json"}

		reg, err := LoadRegistry(paths, WithLoader(fakeLoader(byPath)))
		if err != nil {
			t.Fatalf("LoadRegistry() error = %v", err)
		}
		defer reg.Close()

		if got := reg.Len(); got != 3 {
			t.Errorf("Len() = %d, want 3", got)
		}
		if got := reg.QueryDimension(); got != 5 {
			t.Errorf("QueryDimension() = %d, want 5", got)
		}

		// Load order is preserved for diagnostics
		infos := reg.Infos()
		wantPaths := []string{"a.json", "c.json", "d.json"}
		for i, want := range wantPaths {
			if infos[i].Path != want {
				t.Errorf("Infos()[%d].Path = %q, want %q", i, infos[i].Path, want)
			}
		}
		if infos[1].Dimension != 5 || infos[1].Support != 20 {
			t.Errorf("Infos()[1] = %+v, want dimension 5 support 20", infos[1])
		}
	})

	t.Run("zero models is fatal", func(t *testing.T) {
		_, err := LoadRegistry([]string{"x.json", "y.json"}, WithLoader(fakeLoader(nil)))
		if err == nil {
			t.Fatal("expected error")
		}
		if !errors.Is(err, ErrNoModels) {
			t.Errorf("expected ErrNoModels, got %v", err)
		}
	})

	t.Run("no paths is fatal", func(t *testing.T) {
		_, err := LoadRegistry(nil, WithLoader(fakeLoader(nil)))
		if !errors.Is(err, ErrNoModels) {
			t.Errorf("expected ErrNoModels, got %v", err)
		}
	})
}

func TestRegistryClose(t *testing.T) {
	a := &fakeModel{dim: 1, support: 1}
	b := &fakeModel{dim: 1, support: 1, closeErr: errors.New("release failed")}
	c := &fakeModel{dim: 1, support: 1}
	reg := loadFakeRegistry(t, a, b, c)

	err := reg.Close()
	if err == nil {
		t.Fatal("expected close error to propagate")
	}

	// All models are released even when one fails
	for i, m := range []*fakeModel{a, b, c} {
		if !m.closed {
			t.Errorf("model %d not closed", i)
		}
	}

	// Idempotent
	if err := reg.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

// TestDefaultLoader exercises LoadRegistry end to end over real tree
// files.
func TestDefaultLoader(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	bad := filepath.Join(dir, "bad.json")

	model := `{
		"min_vals": [0, 0, 0],
		"max_vals": [10, 10, 10],
		"start": 0,
		"end": 42,
		"root": {"density": 0.5}
	}`
	if err := os.WriteFile(good, []byte(model), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`{broken`), 0644); err != nil {
		t.Fatal(err)
	}

	reg, err := LoadRegistry([]string{bad, good})
	if err != nil {
		t.Fatalf("LoadRegistry() error = %v", err)
	}
	defer reg.Close()

	if got := reg.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	if got := reg.QueryDimension(); got != 3 {
		t.Errorf("QueryDimension() = %d, want 3", got)
	}

	infos := reg.Infos()
	if infos[0].Support != 42 {
		t.Errorf("Infos()[0].Support = %d, want 42", infos[0].Support)
	}
	if infos[0].Leaves != 1 {
		t.Errorf("Infos()[0].Leaves = %d, want 1", infos[0].Leaves)
	}
}
