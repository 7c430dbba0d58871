package registry

import "testing"

func testRegistry() *Static[string] {
	r := NewStatic[string]()
	r.Register("todo-list", Default[string]{W: 2, H: 2, Props: "todo"})
	r.Register("clock", Default[string]{W: 1, H: 1})
	r.Register("calendar", Default[string]{W: 4, H: 3})
	return r
}

func TestResolveDefault(t *testing.T) {
	r := testRegistry()

	d, ok := r.ResolveDefault("todo-list")
	if !ok {
		t.Fatal("todo-list not found")
	}
	if d.W != 2 || d.H != 2 || d.Props != "todo" {
		t.Errorf("todo-list = %+v, want 2x2 with props", d)
	}

	if _, ok := r.ResolveDefault("missing"); ok {
		t.Error("expected miss for unknown type")
	}
}

func TestRegisterClampsSize(t *testing.T) {
	r := NewStatic[string]()
	r.Register("bad", Default[string]{W: 0, H: -2})
	d, _ := r.ResolveDefault("bad")
	if d.W != 1 || d.H != 1 {
		t.Errorf("size = %dx%d, want 1x1", d.W, d.H)
	}
}

func TestTypesOrder(t *testing.T) {
	r := testRegistry()
	r.Register("clock", Default[string]{W: 2, H: 1})

	got := r.Types()
	want := []string{"todo-list", "clock", "calendar"}
	if len(got) != len(want) {
		t.Fatalf("Types() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Types()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
	if d, _ := r.ResolveDefault("clock"); d.W != 2 {
		t.Errorf("re-registered clock width = %d, want 2", d.W)
	}
}

func TestSuggest(t *testing.T) {
	r := testRegistry()
	tests := []struct {
		in   string
		want string
	}{
		{"todo-lsit", "todo-list"},
		{"clok", "clock"},
		{"CALENDAR", "calendar"},
		{"todo", "todo-list"},
		{"weather", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := r.Suggest(tt.in); got != tt.want {
			t.Errorf("Suggest(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
