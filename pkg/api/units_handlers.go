package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/platinummonkey/ordcheck/pkg/httputil"
	"github.com/platinummonkey/ordcheck/pkg/units"
)

// canonicalize handles POST /api/v1/canonicalize
func (s *Server) canonicalize(w http.ResponseWriter, r *http.Request) {
	var req CanonicalizeRequest
	if !httputil.ParseJSONOrError(w, r, &req) {
		return
	}
	if !httputil.ValidateAll(w,
		func() (bool, string) { return req.Kind != "", "kind is required" },
		func() (bool, string) { return req.Unit != "", "unit is required" },
	) {
		return
	}

	kind, ok := units.ParseKind(req.Kind)
	if !ok {
		httputil.WriteBadRequest(w, fmt.Sprintf("unknown quantity kind %q", req.Kind))
		return
	}
	engine := s.processor.Engine()
	unit, ok := engine.Units().UnitByName(kind, strings.ToUpper(req.Unit))
	if !ok {
		httputil.WriteBadRequest(w, fmt.Sprintf("unknown %s unit %q", kind, req.Unit))
		return
	}

	res, err := engine.CanonicalizeMeasurement(kind, req.Value, req.Precision, unit)
	var cerr *units.CanonicalizationError
	if errors.As(err, &cerr) {
		httputil.WriteUnprocessable(w, cerr.Error())
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteSuccess(w, CanonicalizeResponse{
		Kind:      res.Kind.String(),
		Value:     res.Value,
		Precision: res.Precision,
		Unit:      engine.Units().UnitName(res.Kind, res.Unit),
	})
}

func (s *Server) kindInfo(kind units.Kind) (KindInfo, error) {
	registry := s.processor.Engine().Units()
	canonical, err := registry.Canonical(kind)
	if err != nil {
		return KindInfo{}, err
	}
	list, err := registry.Units(kind)
	if err != nil {
		return KindInfo{}, err
	}
	info := KindInfo{Kind: kind.String(), Canonical: canonical.Name}
	for _, u := range list {
		info.Units = append(info.Units, u.Name)
	}
	return info, nil
}

// listUnits handles GET /api/v1/units
func (s *Server) listUnits(w http.ResponseWriter, r *http.Request) {
	var kinds []KindInfo
	for _, kind := range units.Kinds() {
		info, err := s.kindInfo(kind)
		if err != nil {
			httputil.WriteInternalError(w, err)
			return
		}
		kinds = append(kinds, info)
	}
	httputil.WriteSuccess(w, kinds)
}

// getUnits handles GET /api/v1/units/{kind}
func (s *Server) getUnits(w http.ResponseWriter, r *http.Request) {
	name, ok := httputil.ParsePathStringOrError(w, r, "kind")
	if !ok {
		return
	}
	kind, ok := units.ParseKind(name)
	if !ok {
		httputil.WriteNotFoundError(w, fmt.Sprintf("unknown quantity kind %q", name))
		return
	}
	info, err := s.kindInfo(kind)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}
	httputil.WriteSuccess(w, info)
}

// listRules handles GET /api/v1/rules
func (s *Server) listRules(w http.ResponseWriter, r *http.Request) {
	rules := s.processor.Engine().Rules()
	out := make([]RuleInfo, len(rules))
	for i, rule := range rules {
		out[i] = RuleInfo{Name: rule.Name(), Description: rule.Description()}
	}
	httputil.WriteSuccess(w, out)
}
