package render

import (
	"context"
	"testing"

	"github.com/goliatone/go-forms/pkg/forms"
)

type noopRenderer struct{ name string }

func (r noopRenderer) Name() string { return r.name }

func (r noopRenderer) Render(ctx context.Context, form *forms.Form, opts Options) (Outcome, error) {
	return Outcome{Status: StatusSubmitted, Form: form}, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(noopRenderer{name: "tui"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if !reg.Has("tui") {
		t.Fatal("expected registered renderer")
	}
	renderer, err := reg.Get("tui")
	if err != nil || renderer == nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := reg.Get("web"); err == nil {
		t.Fatal("expected error for unknown renderer")
	}
}

func TestRegistry_RejectsDuplicatesAndInvalid(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(nil); err == nil {
		t.Fatal("expected error for nil renderer")
	}
	if err := reg.Register(noopRenderer{}); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := reg.Register(noopRenderer{name: "tui"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register(noopRenderer{name: "tui"}); err == nil {
		t.Fatal("expected duplicate registration error")
	}
}

func TestRegistry_ListIsSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"web", "tui"} {
		if err := reg.Register(noopRenderer{name: name}); err != nil {
			t.Fatalf("register %q: %v", name, err)
		}
	}

	names := reg.List()
	if len(names) != 2 || names[0] != "tui" || names[1] != "web" {
		t.Fatalf("unexpected list %v", names)
	}
}
