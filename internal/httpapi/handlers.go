package httpapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/picklist/core"
	"github.com/huangsam/picklist/internal/contract"
	"github.com/huangsam/picklist/internal/outwriter"
	"github.com/huangsam/picklist/schema"
)

// pickListResponse is a pick list with tiered teams.
type pickListResponse struct {
	*schema.PickList
	Teams []schema.EnrichedRankedTeam `json:"teams"`
}

// validationResponse is the result of GET /weights/validate.
type validationResponse struct {
	Strategy schema.Strategy        `json:"strategy"`
	Weights  schema.PickListWeights `json:"weights"`
	Sum      float64                `json:"sum"`
	schema.WeightValidation
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handlePickList handles GET /picklist?event=&strategy=&weights=&minMatches=&limit=&includeNotes=.
func (s *Server) handlePickList(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if cfg.EventKey == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errEventRequired)
		return
	}

	start := time.Now()
	list, err := core.GetPickListResults(core.WithSuppressHistory(r.Context()), cfg, s.mgr, s.src)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	s.metrics.ObservePickList(string(list.Strategy), len(list.Teams), len(list.Warnings), time.Since(start))

	limited := list.Limit(cfg.ResultLimit)
	writeJSON(w, http.StatusOK, pickListResponse{PickList: limited, Teams: schema.EnrichTeams(limited.Teams)})
}

// handleColumns handles GET /columns?event=&columns=&config=&user=.
func (s *Server) handleColumns(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	cfg, err := s.requestConfig(query)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if cfg.EventKey == "" {
		writeError(w, http.StatusBadRequest, "bad_request", errEventRequired)
		return
	}
	if raw := query.Get("columns"); raw != "" {
		if cfg.Columns, err = contract.ParseColumns(raw); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err)
			return
		}
	}

	results, err := core.GetColumnResults(r.Context(), cfg, s.mgr, s.src)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	if cfg.ResultLimit > 0 {
		for i := range results {
			if len(results[i].Teams) > cfg.ResultLimit {
				results[i].Teams = results[i].Teams[:cfg.ResultLimit]
			}
		}
	}
	writeJSON(w, http.StatusOK, results)
}

// handleValidateWeights handles GET /weights/validate?strategy=&weights=.
func (s *Server) handleValidateWeights(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.requestConfig(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	strategy, weights, err := core.ResolveWeights(cfg.Selection())
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, validationResponse{
		Strategy:         strategy,
		Weights:          weights,
		Sum:              weights.Sum(),
		WeightValidation: core.ValidateWeights(weights),
	})
}

func (s *Server) handleStrategies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, outwriter.BuildStrategiesRenderModel(s.baseCfg.ComputedWeights))
}

// requestConfig overlays query parameters on a copy of the base config.
func (s *Server) requestConfig(query url.Values) (*contract.Config, error) {
	cfg := s.baseCfg.Clone()
	cfg.Columns = nil

	if v := query.Get("event"); v != "" {
		cfg.EventKey = v
	}
	if v := query.Get("user"); v != "" {
		cfg.UserID = v
	}
	if v := query.Get("config"); v != "" {
		cfg.ConfigName = v
	}
	if v := query.Get("strategy"); v != "" {
		cfg.Strategy = schema.Strategy(strings.ToLower(v))
		cfg.CustomWeights = nil
	}
	if v := query.Get("weights"); v != "" {
		weights, err := schema.ParseWeights(v)
		if err != nil {
			return nil, fmt.Errorf("invalid weights: %w", err)
		}
		cfg.CustomWeights = &weights
	}

	var err error
	if cfg.MinMatches, err = intParam(query, "minMatches", cfg.MinMatches, 0, -1); err != nil {
		return nil, err
	}
	if cfg.ResultLimit, err = intParam(query, "limit", cfg.ResultLimit, 0, contract.MaxResultLimit); err != nil {
		return nil, err
	}
	if v := query.Get("includeNotes"); v != "" {
		if cfg.IncludeNotes, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid includeNotes '%s'", v)
		}
	}
	return cfg, nil
}

// intParam parses an optional integer parameter within [lo, hi]. A negative hi means unbounded.
func intParam(query url.Values, name string, fallback, lo, hi int) (int, error) {
	v := query.Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || (hi >= 0 && n > hi) {
		return 0, fmt.Errorf("invalid %s '%s'", name, v)
	}
	return n, nil
}
