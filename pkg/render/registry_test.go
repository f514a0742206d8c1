package render

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type namedRenderer string

func (n namedRenderer) Name() string        { return string(n) }
func (n namedRenderer) ContentType() string { return "text/plain" }
func (n namedRenderer) Render(context.Context, View) ([]byte, error) {
	return []byte(n), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"text", "html"} {
		if err := reg.Register(namedRenderer(name)); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}
	if err := reg.Register(namedRenderer("html")); err == nil {
		t.Fatalf("expected duplicate error")
	}
	if err := reg.Register(namedRenderer("")); err == nil {
		t.Fatalf("expected empty name error")
	}

	if diff := cmp.Diff([]string{"html", "text"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if _, err := reg.Get("pdf"); !errors.Is(err, ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
	if !reg.Has("text") {
		t.Fatalf("expected text renderer")
	}
}

func TestRegistry_RegisterMany(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(namedRenderer("html"), namedRenderer("tui")); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(namedRenderer("json"), nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if diff := cmp.Diff([]string{"html", "json", "tui"}, reg.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(namedRenderer("html"), namedRenderer("tui")); err != nil {
		t.Fatalf("register: %v", err)
	}

	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{name: "first match", names: []string{"tui", "html"}, want: "tui"},
		{name: "skips blank", names: []string{"", "html"}, want: "html"},
		{name: "skips unknown", names: []string{"pdf", " tui "}, want: "tui"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reg.Resolve(tt.names...)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if got.Name() != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got.Name())
			}
		})
	}

	if _, err := reg.Resolve("pdf", ""); !errors.Is(err, ErrUnknownRenderer) {
		t.Fatalf("expected ErrUnknownRenderer, got %v", err)
	}
}
