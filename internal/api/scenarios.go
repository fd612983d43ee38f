package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/store"
)

func (s *Server) storeError(w http.ResponseWriter, err error, op string) {
	if eris.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	zap.L().Error("api: "+op, zap.Error(err))
	writeError(w, http.StatusInternalServerError, "storage error")
}

func (s *Server) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ScenarioFilter{CalculatorKey: q.Get("calculator")}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	list, err := s.store.ListScenarios(r.Context(), filter)
	if err != nil {
		s.storeError(w, err, "list scenarios")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"scenarios": list})
}

func (s *Server) handleCreateScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioInput
	if !s.bind(w, r, &req) {
		return
	}
	if _, ok := s.funcs[req.Calculator]; !ok {
		writeError(w, http.StatusBadRequest, "unknown calculator")
		return
	}

	sc := req.scenario()
	if err := s.store.SaveScenario(r.Context(), sc); err != nil {
		s.storeError(w, err, "save scenario")
		return
	}
	writeJSON(w, http.StatusCreated, sc)
}

func (s *Server) handlePutScenario(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req scenarioInput
	if !s.bind(w, r, &req) {
		return
	}
	if _, ok := s.funcs[req.Calculator]; !ok {
		writeError(w, http.StatusBadRequest, "unknown calculator")
		return
	}

	sc := req.scenario()
	sc.ID = id
	if err := s.store.SaveScenario(r.Context(), sc); err != nil {
		s.storeError(w, err, "save scenario")
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	sc, err := s.store.GetScenario(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err, "get scenario")
		return
	}
	writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteScenario(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.storeError(w, err, "delete scenario")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleScenarioResult(w http.ResponseWriter, r *http.Request) {
	sc, err := s.store.GetScenario(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.storeError(w, err, "get scenario")
		return
	}
	fn, ok := s.funcs[sc.CalculatorKey]
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "Calculator function not found")
		return
	}
	writeJSON(w, http.StatusOK, s.calculate(sc.CalculatorKey, fn, sc.Inputs))
}

type preferenceBody struct {
	Value string `json:"value" validate:"required,max=256"`
}

func (s *Server) handleGetPreference(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	v, err := s.store.GetPreference(r.Context(), key)
	if err != nil {
		s.storeError(w, err, "get preference")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": v})
}

func (s *Server) handlePutPreference(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	var body preferenceBody
	if !s.bind(w, r, &body) {
		return
	}
	if err := s.store.SetPreference(r.Context(), key, body.Value); err != nil {
		s.storeError(w, err, "set preference")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": body.Value})
}
