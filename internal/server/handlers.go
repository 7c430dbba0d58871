package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wcatz/gridboard/internal/board"
	"github.com/wcatz/gridboard/internal/grid"
	"github.com/wcatz/gridboard/internal/layout"
)

const maxBodyBytes = 1 << 20

// boardResponse is the board as clients see it. Grid is the render size,
// which includes the drag margin while a drag is active.
type boardResponse struct {
	Widgets  []board.Widget `json:"widgets"`
	Preview  []board.Widget `json:"preview,omitempty"`
	Grid     grid.Size      `json:"grid"`
	Editing  bool           `json:"editing"`
	Dragging string         `json:"dragging,omitempty"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Suggestion string `json:"suggestion,omitempty"`
}

type typeInfo struct {
	Type  string      `json:"type"`
	W     int         `json:"w"`
	H     int         `json:"h"`
	Props board.Props `json:"props,omitempty"`
}

type addRequest struct {
	Type string `json:"type"`
}

type posRequest struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

type layoutRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type dragStartRequest struct {
	ID     string `json:"id"`
	Device string `json:"device"`
}

// snapshot builds the response body. Callers hold s.mu.
func (s *Server) snapshot() boardResponse {
	resp := boardResponse{
		Widgets: s.ctrl.Widgets(),
		Preview: s.ctrl.Preview(),
		Grid:    s.ctrl.Size(),
		Editing: s.ctrl.Editing(),
	}
	if resp.Widgets == nil {
		resp.Widgets = []board.Widget{}
	}
	if id, ok := s.ctrl.Dragging(); ok {
		resp.Dragging = id
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// withController runs fn under the server lock and writes the resulting board.
func (s *Server) withController(w http.ResponseWriter, status int, fn func(c *layout.Controller[board.Props]) (int, string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, msg := fn(s.ctrl); code != 0 {
		writeError(w, code, msg)
		return
	}
	writeJSON(w, status, s.snapshot())
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	s.withController(w, http.StatusOK, func(*layout.Controller[board.Props]) (int, string) {
		return 0, ""
	})
}

func (s *Server) handleNarrow(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	widgets := s.ctrl.Narrow()
	s.mu.Unlock()
	if widgets == nil {
		widgets = []board.Widget{}
	}
	writeJSON(w, http.StatusOK, board.Board{
		Widgets: widgets,
		Grid:    grid.Size{Cols: grid.NarrowCols, Rows: grid.RequiredRows(widgets, 1)},
	})
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	var b board.Board
	if !decodeBody(w, r, &b) {
		return
	}
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		if err := c.Replace(b.Widgets); err != nil {
			return http.StatusBadRequest, err.Error()
		}
		s.logger.Info("board replaced", "widgets", len(b.Widgets))
		return 0, ""
	})
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if !decodeBody(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.ctrl.Add(req.Type)
	if !ok {
		resp := errorResponse{Error: fmt.Sprintf("unknown widget type '%s'", req.Type)}
		if hint := s.reg.Suggest(req.Type); hint != "" {
			resp.Suggestion = hint
		}
		s.logger.Warn("unknown widget type", "type", req.Type, "suggestion", resp.Suggestion)
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	w.Header().Set("Location", "/api/widgets/"+id)
	writeJSON(w, http.StatusCreated, struct {
		ID    string        `json:"id"`
		Board boardResponse `json:"board"`
	}{id, s.snapshot()})
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		if !c.Remove(id) {
			return http.StatusNotFound, notFound(id)
		}
		return 0, ""
	})
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req posRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		if !c.Move(id, req.X, req.Y) {
			return http.StatusNotFound, notFound(id)
		}
		return 0, ""
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req layoutRequest
	if !decodeBody(w, r, &req) {
		return
	}
	patch := layout.Patch{X: req.X, Y: req.Y, W: req.W, H: req.H}
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		if !c.UpdateLayout(id, patch) {
			return http.StatusNotFound, notFound(id)
		}
		return 0, ""
	})
}

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		c.Arrange()
		return 0, ""
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		c.Reset()
		s.logger.Info("board reset")
		return 0, ""
	})
}

func (s *Server) handleEditEnter(w http.ResponseWriter, r *http.Request) {
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		if !c.EnterEdit() {
			return http.StatusConflict, "already editing"
		}
		return 0, ""
	})
}

func (s *Server) handleEditCancel(w http.ResponseWriter, r *http.Request) {
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		if !c.CancelEdit() {
			return http.StatusConflict, "not editing"
		}
		return 0, ""
	})
}

func (s *Server) handleEditSave(w http.ResponseWriter, r *http.Request) {
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		if !c.SaveEdit() {
			return http.StatusConflict, "not editing"
		}
		return 0, ""
	})
}

func (s *Server) handleDragStart(w http.ResponseWriter, r *http.Request) {
	var req dragStartRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		if _, ok := c.Widget(req.ID); !ok {
			return http.StatusNotFound, notFound(req.ID)
		}
		if !c.DragStart(req.ID, layout.ParseDevice(req.Device)) {
			return http.StatusConflict, "drag requires an open edit session"
		}
		return 0, ""
	})
}

func (s *Server) handleDragHover(w http.ResponseWriter, r *http.Request) {
	var req posRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.ctrl.Dragging(); !ok || id != req.ID {
		writeError(w, http.StatusConflict, fmt.Sprintf("widget '%s' is not being dragged", req.ID))
		return
	}
	changed := s.ctrl.Hover(req.ID, req.X, req.Y)
	writeJSON(w, http.StatusOK, struct {
		Changed bool          `json:"changed"`
		Board   boardResponse `json:"board"`
	}{changed, s.snapshot()})
}

func (s *Server) handleDragDrop(w http.ResponseWriter, r *http.Request) {
	var req posRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		if !c.Drop(req.ID, req.X, req.Y) {
			return http.StatusConflict, fmt.Sprintf("widget '%s' is not being dragged", req.ID)
		}
		return 0, ""
	})
}

func (s *Server) handleDragEnd(w http.ResponseWriter, r *http.Request) {
	s.withController(w, http.StatusOK, func(c *layout.Controller[board.Props]) (int, string) {
		c.DragEnd()
		return 0, ""
	})
}

func (s *Server) handleTypes(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	reg := s.reg
	s.mu.Unlock()

	types := []typeInfo{}
	for _, name := range reg.Types() {
		def, _ := reg.ResolveDefault(name)
		types = append(types, typeInfo{Type: name, W: def.W, H: def.H, Props: def.Props})
	}
	writeJSON(w, http.StatusOK, types)
}

func (s *Server) handleConfigReload(w http.ResponseWriter, r *http.Request) {
	if err := s.ReloadConfig(); err != nil {
		s.logger.Error("config reload failed", "err", err)
		status := http.StatusInternalServerError
		if errors.Is(err, errNoConfigFile) {
			status = http.StatusConflict
		}
		writeError(w, status, err.Error())
		return
	}
	s.logger.Info("config reloaded", "path", s.ConfigPath())
	s.withController(w, http.StatusOK, func(*layout.Controller[board.Props]) (int, string) {
		return 0, ""
	})
}

func notFound(id string) string {
	return fmt.Sprintf("widget '%s' not found", id)
}
