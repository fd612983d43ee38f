package api

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/m-aljasem/Sample-Size-Calculator/internal/advisory"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/calc"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/compare"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/effectsize"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/model"
	"github.com/m-aljasem/Sample-Size-Calculator/internal/sensitivity"
)

func (s *Server) handleListDesigns(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"designs": s.engine.Designs()})
}

func (s *Server) handleGetDesign(w http.ResponseWriter, r *http.Request) {
	d, ok := s.engine.Lookup(chi.URLParam(r, "key"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown design")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// CalculateResponse is the body returned by POST /v1/calculate/{key}.
// Calculation failures are reported in Result.error with status 200.
type CalculateResponse struct {
	Design         string                `json:"design"`
	Result         model.Result          `json:"result"`
	InputAdvisory  advisory.Report       `json:"inputAdvisory"`
	ResultAdvisory advisory.ResultReport `json:"resultAdvisory"`
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	fn, ok := s.funcs[key]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown design")
		return
	}

	var in model.Inputs
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in == nil {
		in = model.Inputs{}
	}

	writeJSON(w, http.StatusOK, s.calculate(key, fn, in))
}

func (s *Server) calculate(key string, fn calc.Func, in model.Inputs) CalculateResponse {
	res := fn(in)
	s.metrics.observeCalculation(key, res.OK())
	return CalculateResponse{
		Design:         key,
		Result:         res,
		InputAdvisory:  advisory.CheckInputs(in, key),
		ResultAdvisory: advisory.CheckResult(res),
	}
}

type sensitivityRequest struct {
	Calculator string              `json:"calculator" validate:"required"`
	Inputs     model.Inputs        `json:"inputs"`
	Params     []sensitivity.Param `json:"params" validate:"required,min=1,max=20,dive"`
}

type sensitivityResponse struct {
	Sweeps   []model.ParamSweep  `json:"sweeps"`
	Extremes model.SweepExtremes `json:"extremes"`
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	var req sensitivityRequest
	if !s.bind(w, r, &req) {
		return
	}
	fn, ok := s.funcs[req.Calculator]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown design")
		return
	}
	if req.Inputs == nil {
		req.Inputs = model.Inputs{}
	}

	sweeps := sensitivity.MultiRange(fn, req.Inputs, req.Params)
	writeJSON(w, http.StatusOK, sensitivityResponse{
		Sweeps:   sweeps,
		Extremes: sensitivity.Extremes(sweeps),
	})
}

type scenarioInput struct {
	Name       string       `json:"name" validate:"max=200"`
	Calculator string       `json:"calculator" validate:"required"`
	Inputs     model.Inputs `json:"inputs"`
}

func (si scenarioInput) scenario() model.Scenario {
	name := si.Name
	if name == "" {
		name = si.Calculator
	}
	in := si.Inputs
	if in == nil {
		in = model.Inputs{}
	}
	return compare.NewScenario(name, in, si.Calculator)
}

type compareRequest struct {
	Scenarios []scenarioInput `json:"scenarios" validate:"required,min=1,max=100,dive"`
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !s.bind(w, r, &req) {
		return
	}

	scenarios := make([]model.Scenario, len(req.Scenarios))
	for i, si := range req.Scenarios {
		scenarios[i] = si.scenario()
	}

	comps, err := compare.CompareParallel(r.Context(), scenarios, s.funcs, s.concurrency)
	if err != nil {
		zap.L().Warn("api: compare", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "comparison canceled")
		return
	}
	for _, c := range comps {
		if c.Result != nil {
			s.metrics.observeCalculation(c.Scenario.CalculatorKey, c.Result.OK())
		}
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = s.format
	}

	switch format {
	case compare.FormatXLSX:
		var buf bytes.Buffer
		if err := compare.ExportXLSX(&buf, comps); err != nil {
			zap.L().Error("api: export xlsx", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="comparison.xlsx"`)
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes()) //nolint:errcheck
	case compare.FormatCSV:
		out, _ := compare.Export(comps, compare.FormatCSV)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(out)) //nolint:errcheck
	default:
		out, err := compare.Export(comps, compare.FormatJSON)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "export failed")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(out)) //nolint:errcheck
	}
}

type effectConvertRequest struct {
	From      string  `json:"from" validate:"required,oneof=t f chi p"`
	Statistic float64 `json:"statistic"`
	N1        float64 `json:"n1" validate:"gte=0"`
	N2        float64 `json:"n2" validate:"gte=0"`
	DF1       float64 `json:"df1" validate:"gte=0"`
	DF2       float64 `json:"df2" validate:"gte=0"`
	N         float64 `json:"n" validate:"gte=0"`
	DF        int     `json:"df" validate:"gte=0"`
	TwoTailed *bool   `json:"twoTailed"`
}

type effectResponse struct {
	Value      float64               `json:"value"`
	Type       string                `json:"type"`
	Field      string                `json:"field"`
	Magnitude  effectsize.Magnitude  `json:"magnitude"`
	Thresholds effectsize.Thresholds `json:"thresholds"`
}

func (s *Server) handleEffectConvert(w http.ResponseWriter, r *http.Request) {
	var req effectConvertRequest
	if !s.bind(w, r, &req) {
		return
	}

	var v float64
	typ := effectsize.CohensD
	switch req.From {
	case "t":
		v = effectsize.FromT(req.Statistic, req.N1, req.N2)
	case "f":
		v = effectsize.FromF(req.Statistic, req.DF1, req.DF2)
	case "chi":
		v = effectsize.FromChiSquare(req.Statistic, req.N, req.DF)
		typ = effectsize.Correlation
	case "p":
		twoTailed := req.TwoTailed == nil || *req.TwoTailed
		v = effectsize.FromPValue(req.Statistic, req.N1, req.N2, twoTailed)
	}
	if !finite(v) {
		writeError(w, http.StatusUnprocessableEntity, "conversion produced a non-finite effect size")
		return
	}
	writeJSON(w, http.StatusOK, interpretation(v, typ, effectsize.FieldDefault))
}

type effectInterpretRequest struct {
	Value *float64 `json:"value" validate:"required"`
	Type  string   `json:"type"`
	Field string   `json:"field"`
}

func (s *Server) handleEffectInterpret(w http.ResponseWriter, r *http.Request) {
	var req effectInterpretRequest
	if !s.bind(w, r, &req) {
		return
	}
	typ, field := req.Type, req.Field
	if typ == "" {
		typ = effectsize.CohensD
	}
	if field == "" {
		field = effectsize.FieldDefault
	}
	writeJSON(w, http.StatusOK, interpretation(*req.Value, typ, field))
}

func interpretation(v float64, typ, field string) effectResponse {
	return effectResponse{
		Value:      v,
		Type:       typ,
		Field:      field,
		Magnitude:  effectsize.Interpret(v, typ, field),
		Thresholds: effectsize.Lookup(typ, field),
	}
}

// bind decodes and validates the request body, writing a 400 on failure.
func (s *Server) bind(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(w, r, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
