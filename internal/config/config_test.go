package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/wcatz/gridboard/internal/grid"
)

func writeTestConfig(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

const fullYAML = `
# board settings
board:
  name: home
  cols: 6
  min_rows: 3
  drag_margin: 2
throttle:
  pointer: 20ms
  touch: 80ms
store:
  backend: redis
  redis:
    addr: "redis:6379"
    db: 2
server:
  addr: ":9090"
widgets:
  todo-list:
    w: 2
    h: 2
    props:
      title: todo
  clock:
    w: 1
    h: 1
  calendar:
    w: 4
    h: 3
default_layout:
  - type: clock
  - type: todo-list
    props:
      title: groceries
  - type: calendar
`

func TestLoadConfig(t *testing.T) {
	path := writeTestConfig(t, "gridboard.yaml", fullYAML)
	c, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if c.Board.Name != "home" || c.Board.Cols != 6 || c.Board.MinRows != 3 || c.Board.DragMargin != 2 {
		t.Errorf("board = %+v", c.Board)
	}
	if c.Throttle.Pointer != 20*time.Millisecond {
		t.Errorf("throttle.pointer = %v, want 20ms", c.Throttle.Pointer)
	}
	if c.Throttle.Touch != 80*time.Millisecond {
		t.Errorf("throttle.touch = %v, want 80ms", c.Throttle.Touch)
	}
	if c.Store.Backend != BackendRedis || c.Store.Redis.Addr != "redis:6379" || c.Store.Redis.DB != 2 {
		t.Errorf("store = %+v", c.Store)
	}
	// defaults still apply to unset fields
	if c.Store.Redis.Prefix != "gridboard:" {
		t.Errorf("redis prefix = %q, want default", c.Store.Redis.Prefix)
	}
	if c.Server.Addr != ":9090" {
		t.Errorf("server.addr = %s, want :9090", c.Server.Addr)
	}

	order := c.WidgetOrder()
	want := []string{"todo-list", "clock", "calendar"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Errorf("WidgetOrder() = %v, want %v", order, want)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeTestConfig(t, "empty.yaml", "widgets: {}\n")
	c, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Board.Cols != 4 || c.Board.MinRows != 1 || c.Board.DragMargin != 4 {
		t.Errorf("board defaults = %+v", c.Board)
	}
	if c.Throttle.Pointer != 16*time.Millisecond || c.Throttle.Touch != 60*time.Millisecond {
		t.Errorf("throttle defaults = %+v", c.Throttle)
	}
	if c.Store.Backend != BackendFile || c.Store.Dir != "./boards" {
		t.Errorf("store defaults = %+v", c.Store)
	}
	if c.Board.Name != "default" || c.Server.Addr != ":8080" {
		t.Errorf("name/addr defaults = %s %s", c.Board.Name, c.Server.Addr)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeTestConfig(t, "gridboard.yaml", fullYAML)
	c, err := Load(path, map[string]string{"board": "work", "addr": ":7000", "store": "memory", "dir": "/tmp/x"})
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Board.Name != "work" || c.Server.Addr != ":7000" || c.Store.Backend != BackendMemory || c.Store.Dir != "/tmp/x" {
		t.Errorf("overrides not applied: %+v %+v %+v", c.Board, c.Server, c.Store)
	}
}

func TestLoadTOML(t *testing.T) {
	content := `
[board]
name = "home"
cols = 4

[throttle]
touch = "75ms"

[widgets.clock]
w = 1
h = 1

[widgets.todo-list]
w = 2
h = 2
props = { title = "todo" }

[widgets.banner]
w = 4
h = 1

[[default_layout]]
type = "banner"
`
	path := writeTestConfig(t, "gridboard.toml", content)
	c, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if c.Throttle.Touch != 75*time.Millisecond {
		t.Errorf("throttle.touch = %v, want 75ms", c.Throttle.Touch)
	}
	if got := strings.Join(c.WidgetOrder(), ","); got != "clock,todo-list,banner" {
		t.Errorf("WidgetOrder() = %s", got)
	}
	if c.Widgets["todo-list"].Props["title"] != "todo" {
		t.Errorf("todo-list props = %v", c.Widgets["todo-list"].Props)
	}
	if len(c.DefaultLayout) != 1 || c.DefaultLayout[0].Type != "banner" {
		t.Errorf("default_layout = %+v", c.DefaultLayout)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad yaml", "board: [", "parsing config"},
		{"bad backend", "store:\n  backend: etcd\n", "unknown store backend"},
		{"bad size", "widgets:\n  x: {w: 0, h: 1}\n", "size must be at least"},
		{"unknown default type", "widgets: {}\ndefault_layout:\n  - type: ghost\n", "not defined"},
	}
	for _, tt := range tests {
		_, err := LoadFromBytes([]byte(tt.content), FormatYAML)
		if err == nil || !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: error = %v, want containing %q", tt.name, err, tt.want)
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatFor(t *testing.T) {
	if FormatFor("a/b.TOML") != FormatTOML || FormatFor("x.yaml") != FormatYAML || FormatFor("x") != FormatYAML {
		t.Error("FormatFor mapping wrong")
	}
}

func TestRegistry(t *testing.T) {
	c, err := LoadFromBytes([]byte(fullYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	r := c.Registry()
	d, ok := r.ResolveDefault("todo-list")
	if !ok || d.W != 2 || d.H != 2 || d.Props["title"] != "todo" {
		t.Errorf("todo-list default = %+v, %v", d, ok)
	}
	if strings.Join(r.Types(), ",") != "todo-list,clock,calendar" {
		t.Errorf("Types() = %v", r.Types())
	}
}

func TestDefaultBoard(t *testing.T) {
	c, err := LoadFromBytes([]byte(fullYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	widgets := c.DefaultBoard(grid.NewSequenceGenerator("d-"))
	if len(widgets) != 3 {
		t.Fatalf("DefaultBoard() = %d widgets, want 3", len(widgets))
	}
	want := []grid.Rect{
		{X: 1, Y: 1, W: 1, H: 1},
		{X: 2, Y: 1, W: 2, H: 2},
		{X: 1, Y: 3, W: 4, H: 3},
	}
	for i, r := range want {
		if widgets[i].Layout != r {
			t.Errorf("widget %d = %+v, want %+v", i, widgets[i].Layout, r)
		}
	}
	if widgets[1].Props["title"] != "groceries" {
		t.Errorf("entry props not merged: %v", widgets[1].Props)
	}
	if c.Widgets["todo-list"].Props["title"] != "todo" {
		t.Error("DefaultBoard mutated the registry props")
	}
	if widgets[0].ID != "d-1" {
		t.Errorf("id = %s, want d-1", widgets[0].ID)
	}
	if err := grid.Validate(widgets, c.Board.Cols); err != nil {
		t.Errorf("default board invalid: %v", err)
	}
}

func TestControllerOptions(t *testing.T) {
	c, err := LoadFromBytes([]byte(fullYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	o := c.ControllerOptions()
	if o.Cols != 6 || o.MinRows != 3 || o.DragMargin != 2 || o.TouchInterval != 80*time.Millisecond {
		t.Errorf("options = %+v", o)
	}
	if _, ok := o.Registry.ResolveDefault("clock"); !ok {
		t.Error("registry missing clock")
	}
}
