package factory

import "testing"

type sample struct{ Path string }

type sampleConf struct {
	Path string `json:"path"`
}

// Test registry registration and instantiation using Decode.
func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	if err := reg.Register("file", func(conf map[string]any) (*sample, error) {
		var c sampleConf
		if err := Decode(conf, &c); err != nil {
			return nil, err
		}
		return &sample{Path: c.Path}, nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	inst, err := reg.Create(ModuleConfig{Type: "file", Conf: map[string]any{"path": "a.csv"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.Path != "a.csv" {
		t.Fatalf("expected a.csv got %s", inst.Path)
	}
}

// Test duplicate registration and unknown type errors.
func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("x", func(map[string]any) (int, error) { return 1, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatal("expected duplicate error")
	}
	if _, err := reg.Create(ModuleConfig{Type: "y"}); err == nil {
		t.Fatal("expected unknown type error")
	}
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry[int]()
	if err := reg.Register("a", func(map[string]any) (int, error) { return 0, nil }); err != nil {
		t.Fatalf("register: %v", err)
	}
	names := reg.Names()
	if len(names) != 1 || names[0] != "a" {
		t.Fatalf("unexpected names %v", names)
	}
}
