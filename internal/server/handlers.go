package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-cardioform/pkg/controller"
	"github.com/goliatone/go-cardioform/pkg/render"
)

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	page := render.NewPage(s.title, nil)
	ctrl, err := s.controller(page, "")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := ctrl.Build(); err != nil {
		s.fail(w, r, err)
		return
	}
	s.write(w, r, http.StatusOK, page, s.tokens())
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	values := make(map[string]string, s.fields.Len())
	for _, id := range s.fields.IDs() {
		values[id] = r.PostForm.Get(id)
	}
	token := strings.TrimSpace(r.PostForm.Get(render.SubmissionField))

	page := render.NewPage(s.title, values)
	ctrl, err := s.controller(page, token)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := ctrl.Build(); err != nil {
		s.fail(w, r, err)
		return
	}

	outcome, err := ctrl.Submit(r.Context())
	if err != nil {
		s.logger.Debug("submission finished without a result",
			zap.String("outcome", outcome.String()),
			zap.Error(err),
		)
	}

	if token == "" {
		token = s.tokens()
	}
	s.write(w, r, statusFor(outcome), page, token)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

func (s *Server) controller(page *render.Page, token string) (*controller.Controller, error) {
	return controller.New(s.fields, s.predictor, page.Ports(),
		controller.WithGuard(s.guards.For(token)),
		controller.WithLogger(s.logger),
	)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, page *render.Page, token string) {
	renderer, err := s.registry.Negotiate(r.Header.Get("Accept"), s.fallback)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	body, err := renderer.Render(r.Context(), page, render.RenderOptions{
		Action: analyzePath,
		Hidden: []render.HiddenField{render.SubmissionToken(token)},
		Theme:  s.theme,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", renderer.ContentType())
	w.Header().Set("Vary", "Accept")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("render page", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func statusFor(outcome controller.Outcome) int {
	switch outcome {
	case controller.OutcomeRendered:
		return http.StatusOK
	case controller.OutcomeInvalid:
		return http.StatusUnprocessableEntity
	case controller.OutcomeServerError, controller.OutcomeUnreachable:
		return http.StatusBadGateway
	case controller.OutcomeBusy:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
