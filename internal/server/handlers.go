package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"

	"github.com/sells-group/cre-datagen/internal/generate"
	"github.com/sells-group/cre-datagen/internal/inject"
	"github.com/sells-group/cre-datagen/internal/model"
	"github.com/sells-group/cre-datagen/internal/synth"
)

type kindInfo struct {
	Kind   model.Kind `json:"kind"`
	Title  string     `json:"title"`
	Fields int        `json:"fields"`
}

type datasetResponse struct {
	Kind      model.Kind             `json:"kind"`
	Category  model.PropertyCategory `json:"category"`
	Seed      uint64                 `json:"seed"`
	Records   []model.Record         `json:"records"`
	EdgeCases []model.Record         `json:"edge_cases"`
}

type errorsResponse struct {
	Kind          model.Kind             `json:"kind"`
	Category      model.PropertyCategory `json:"category"`
	Seed          uint64                 `json:"seed"`
	MissingFields []model.Record         `json:"missing_fields"`
	InvalidTypes  []model.Record         `json:"invalid_types"`
	Malformed     string                 `json:"malformed"`
}

// batchRequest holds the query parameters shared by the dataset endpoints.
type batchRequest struct {
	kind        model.Kind
	category    model.PropertyCategory
	count       int
	seed        uint64
	probability float64
	today       time.Time
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleKinds(w http.ResponseWriter, _ *http.Request) {
	kinds := model.AllKinds()
	out := make([]kindInfo, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, kindInfo{Kind: k, Title: k.Title(), Fields: len(model.Dictionary(k))})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDictionary(w http.ResponseWriter, r *http.Request) {
	k, err := model.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, model.Dictionary(k))
}

func (s *Server) handleDataset(w http.ResponseWriter, r *http.Request) {
	req, status, err := s.parseBatch(r)
	if err != nil {
		writeError(w, status, err)
		return
	}

	src, recs, err := s.generate(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	edges := inject.NewInjector(src).EdgeCases(recs, req.probability)

	writeJSON(w, http.StatusOK, datasetResponse{
		Kind:      req.kind,
		Category:  req.category,
		Seed:      src.Seed(),
		Records:   recs,
		EdgeCases: edges,
	})
}

func (s *Server) handleErrors(w http.ResponseWriter, r *http.Request) {
	req, status, err := s.parseBatch(r)
	if err != nil {
		writeError(w, status, err)
		return
	}

	src, recs, err := s.generate(req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	v := inject.SynthesizeErrors(recs)

	writeJSON(w, http.StatusOK, errorsResponse{
		Kind:          req.kind,
		Category:      req.category,
		Seed:          src.Seed(),
		MissingFields: v.MissingFields,
		InvalidTypes:  v.InvalidTypes,
		Malformed:     v.Malformed,
	})
}

func (s *Server) generate(req batchRequest) (*synth.Source, []model.Record, error) {
	src := synth.NewUnseeded()
	if req.seed != 0 {
		src = synth.New(req.seed)
	}
	gen := generate.New(src, generate.WithToday(req.today))
	recs, err := gen.Dataset(req.kind, req.count, req.category)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "server: generate %s", req.kind)
	}
	return src, recs, nil
}

// parseBatch reads the kind path parameter and the category, count, seed,
// edge_probability and today query parameters. count is capped at the
// configured maximum.
func (s *Server) parseBatch(r *http.Request) (batchRequest, int, error) {
	req := batchRequest{
		category:    model.CategoryMultifamily,
		count:       DefaultCount,
		probability: inject.DefaultProbability,
	}

	k, err := model.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		return req, http.StatusNotFound, err
	}
	req.kind = k

	q := r.URL.Query()
	if v := q.Get("category"); v != "" {
		c, err := model.ParseCategory(v)
		if err != nil {
			return req, http.StatusBadRequest, err
		}
		req.category = c
	}
	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return req, http.StatusBadRequest, eris.Errorf("server: invalid count %q", v)
		}
		req.count = n
	}
	req.count = min(req.count, s.maxCount)

	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return req, http.StatusBadRequest, eris.Errorf("server: invalid seed %q", v)
		}
		req.seed = n
	}
	if v := q.Get("edge_probability"); v != "" {
		p, err := strconv.ParseFloat(v, 64)
		if err != nil || p < 0 || p > 1 {
			return req, http.StatusBadRequest, eris.Errorf("server: edge_probability must be in [0, 1], got %q", v)
		}
		req.probability = p
	}

	req.today = synth.Day(s.now())
	if v := q.Get("today"); v != "" {
		d, err := time.Parse(model.DateLayout, v)
		if err != nil {
			return req, http.StatusBadRequest, eris.Errorf("server: invalid today %q", v)
		}
		req.today = d
	}
	return req, 0, nil
}
