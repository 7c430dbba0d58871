package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) registerRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Get("/board", s.handleBoard)
		r.Put("/board", s.handleReplace)
		r.Get("/board/narrow", s.handleNarrow)

		r.Post("/widgets", s.handleAdd)
		r.Delete("/widgets/{id}", s.handleRemove)
		r.Post("/widgets/{id}/move", s.handleMove)
		r.Patch("/widgets/{id}/layout", s.handleLayout)

		r.Post("/arrange", s.handleArrange)
		r.Post("/reset", s.handleReset)

		r.Post("/edit/enter", s.handleEditEnter)
		r.Post("/edit/cancel", s.handleEditCancel)
		r.Post("/edit/save", s.handleEditSave)

		r.Post("/drag/start", s.handleDragStart)
		r.Post("/drag/hover", s.handleDragHover)
		r.Post("/drag/drop", s.handleDragDrop)
		r.Post("/drag/end", s.handleDragEnd)

		r.Get("/types", s.handleTypes)
		r.Post("/config/reload", s.handleConfigReload)
	})

	s.router = r
}

// logRequests logs each request at debug level once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()))
	})
}
