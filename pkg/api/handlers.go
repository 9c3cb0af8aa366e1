package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/kleinian/pkg/buildinfo"
	kerrors "github.com/matzehuels/kleinian/pkg/errors"
	"github.com/matzehuels/kleinian/pkg/group"
	"github.com/matzehuels/kleinian/pkg/mobius"
	"github.com/matzehuels/kleinian/pkg/pipeline"
)

// Complex is a complex number as JSON.
type Complex struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

func toComplex(z complex128) Complex {
	return Complex{Re: real(z), Im: imag(z)}
}

// ClassifyResponse is the body of GET /v1/classify.
type ClassifyResponse struct {
	Class            string    `json:"class"`
	Trace            Complex   `json:"trace"`
	Det              Complex   `json:"det"`
	FixedPoints      []Complex `json:"fixed_points,omitempty"`
	FixedPointsError string    `json:"fixed_points_error,omitempty"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var coef [4]complex128
	for i, name := range []string{"a", "b", "c", "d"} {
		z, err := complexParam(q, name)
		if err != nil {
			s.writeError(w, err)
			return
		}
		coef[i] = z
	}

	m := mobius.New(coef[0], coef[1], coef[2], coef[3])
	resp := ClassifyResponse{
		Class: m.Classify().String(),
		Trace: toComplex(m.Trace()),
		Det:   toComplex(m.Det()),
	}
	if fp, err := m.FixedPoints(); err != nil {
		resp.FixedPointsError = kerrors.UserMessage(err)
	} else {
		for _, z := range fp.Points() {
			resp.FixedPoints = append(resp.FixedPoints, toComplex(z))
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGrandma(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ta, err := complexParam(q, "ta")
	if err != nil {
		s.writeError(w, err)
		return
	}
	tb, err := complexParam(q, "tb")
	if err != nil {
		s.writeError(w, err)
		return
	}
	root, err := group.ParseRoot(q.Get("root"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	zoom, err := floatParam(q, "zoom", pipeline.DefaultZoom)
	if err != nil {
		s.writeError(w, err)
		return
	}
	seed, err := uintParam(q, "seed")
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Grandma(r.Context(), pipeline.GrandmaOptions{
		TraceA: ta,
		TraceB: tb,
		Root:   root,
		Name:   q.Get("name"),
		Zoom:   zoom,
		Size:   q.Get("size"),
		Seed:   seed,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writePack(w, res)
}

func (s *Server) handleAtlas(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	radius := 1
	if v := q.Get("radius"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > MaxAtlasRadius {
			s.writeError(w, kerrors.New(kerrors.ErrCodeInvalidInput, "radius must be an integer in [0, %d]", MaxAtlasRadius))
			return
		}
		radius = n
	}
	root, err := group.ParseRoot(q.Get("root"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	seed, err := uintParam(q, "seed")
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Atlas(r.Context(), pipeline.AtlasOptions{
		Radius: radius,
		Root:   root,
		Name:   q.Get("name"),
		Seed:   seed,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writePack(w, res)
}

// writePack sends an encoded pack with the run metadata in headers.
func (s *Server) writePack(w http.ResponseWriter, res *pipeline.Result) {
	h := w.Header()
	h.Set("Content-Type", "application/xml; charset=utf-8")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Name+".flame"))
	h.Set("X-Run-ID", res.RunID.String())
	h.Set("X-Flames", strconv.Itoa(res.Stats.Flames))
	h.Set("X-Invalid", strconv.Itoa(res.Stats.Invalid))
	if res.CacheHit {
		h.Set("X-Cache", "HIT")
	} else {
		h.Set("X-Cache", "MISS")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Pack)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode response", "err", err)
	}
}

// writeError maps the error code to a status and sends it as JSON.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := kerrors.GetCode(err)
	status := statusFor(code, err)
	if code == "" {
		code = kerrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, ErrorResponse{Code: string(code), Message: err.Error()})
}

func statusFor(code kerrors.Code, err error) int {
	switch code {
	case kerrors.ErrCodeInvalidParameters:
		return http.StatusUnprocessableEntity
	case kerrors.ErrCodeInvalidInput, kerrors.ErrCodeInvalidFormat, kerrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// complexParam parses a required complex query parameter.
func complexParam(q url.Values, name string) (complex128, error) {
	v := q.Get(name)
	if v == "" {
		return 0, kerrors.New(kerrors.ErrCodeInvalidInput, "missing parameter %q", name)
	}
	z, err := strconv.ParseComplex(v, 128)
	if err != nil {
		return 0, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "parameter %q is not a complex number", name)
	}
	return z, nil
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	v := q.Get(name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "parameter %q is not a number", name)
	}
	return f, nil
}

func uintParam(q url.Values, name string) (uint64, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "parameter %q is not an unsigned integer", name)
	}
	return n, nil
}
