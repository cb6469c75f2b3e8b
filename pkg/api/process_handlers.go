package api

import (
	"errors"
	"net/http"

	"github.com/platinummonkey/ordcheck/pkg/codec"
	"github.com/platinummonkey/ordcheck/pkg/httputil"
	"github.com/platinummonkey/ordcheck/pkg/ingest"
)

// requestFormat resolves the body format from ?format= or the Content-Type. An empty
// result means the content is sniffed.
func requestFormat(r *http.Request) (codec.Format, error) {
	if f := r.URL.Query().Get("format"); f != "" {
		return codec.ParseFormat(f)
	}
	switch httputil.MediaType(r) {
	case "application/json":
		return codec.FormatJSON, nil
	case "application/yaml", "application/x-yaml", "text/yaml":
		return codec.FormatYAML, nil
	case "application/protobuf", "application/x-protobuf", "application/octet-stream":
		return codec.FormatProto, nil
	default:
		return "", nil
	}
}

// normalize handles POST /api/v1/normalize
func (s *Server) normalize(w http.ResponseWriter, r *http.Request) {
	s.process(w, r, ingest.ModeNormalize)
}

// validate handles POST /api/v1/validate
func (s *Server) validate(w http.ResponseWriter, r *http.Request) {
	s.process(w, r, ingest.ModeValidate)
}

func (s *Server) process(w http.ResponseWriter, r *http.Request, mode ingest.Mode) {
	format, err := requestFormat(r)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	data, ok := httputil.ReadBodyOrError(w, r, s.config.MaxBodyBytes)
	if !ok {
		return
	}

	res, err := s.processor.Process(r.Context(), data, format, mode)
	if errors.Is(err, ingest.ErrDecode) {
		httputil.WriteDetailedError(w, http.StatusUnprocessableEntity, err, map[string]string{
			"format": string(formatOrDetected(format, data)),
		})
		return
	}
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	httputil.WriteJSONOrError(w, http.StatusOK, ProcessResponse{
		Accepted: res.Accepted(),
		Digest:   res.Digest,
		Format:   string(res.Format),
		Cached:   res.Cached,
		Report:   res.Report,
		Record:   res.Canonical,
	}, "failed to encode response")
}

func formatOrDetected(format codec.Format, data []byte) codec.Format {
	if format != "" {
		return format
	}
	return codec.DetectFormat(data)
}
