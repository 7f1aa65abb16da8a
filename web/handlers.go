package web

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/uyouii/score-predictor/common"
	"github.com/uyouii/score-predictor/model"
	"github.com/uyouii/score-predictor/session"
	"github.com/uyouii/score-predictor/utils"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type PredictRequest struct {
	Scores string   `json:"scores"`
	Point  *float64 `json:"point,omitempty"`
	Low    *float64 `json:"low,omitempty"`
	High   *float64 `json:"high,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type pageData struct {
	Scores string
	Report *model.Report
	Plot   *plotView
	Error  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	raw := s.cfg.DefaultScores
	s.renderResult(w, r, raw, session.Input{})
}

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form: "+err.Error(), http.StatusBadRequest)
		return
	}

	in, err := formInput(r)
	if err != nil {
		s.render(w, r, pageData{Scores: r.PostFormValue("scores"), Error: formatError(err)})
		return
	}
	s.renderResult(w, r, r.PostFormValue("scores"), in)
}

func (s *Server) renderResult(w http.ResponseWriter, r *http.Request, raw string, in session.Input) {
	data := pageData{Scores: raw}

	report, err := s.predict(r.Context(), raw, in)
	if err != nil {
		data.Error = formatError(err)
	} else {
		data.Report = report
		data.Plot = newPlotView(report.Chart)
	}
	s.render(w, r, data)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "index.html", data); err != nil {
		utils.GetLogger(r.Context()).Error("render template failed", zap.Error(err))
	}
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	report, err := s.predict(r.Context(), req.Scores, session.Input{
		Point: req.Point,
		Low:   req.Low,
		High:  req.High,
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.resetSession()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON encodes v before touching the response, so an unencodable value
// turns into a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		zap.L().Error("encode response failed", zap.Error(err))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorResponse{Error: "An error occurred: encode response: " + err.Error()})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n')) //nolint:errcheck
}

func formatError(err error) string {
	return "An error occurred: " + err.Error()
}

// formInput reads the optional slider fields. Blank fields are left nil.
func formInput(r *http.Request) (session.Input, error) {
	var in session.Input
	fields := []struct {
		name string
		dst  **float64
	}{
		{"point", &in.Point},
		{"low", &in.Low},
		{"high", &in.High},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(r.PostFormValue(f.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return session.Input{}, fmt.Errorf("invalid %s value %q: %w", f.name, raw, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return session.Input{}, fmt.Errorf("invalid %s value %q: %w: not a finite number",
				f.name, raw, common.ErrorInvalidParameter)
		}
		*f.dst = &v
	}
	return in, nil
}
