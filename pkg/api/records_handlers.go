package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/platinummonkey/ordcheck/pkg/codec"
	"github.com/platinummonkey/ordcheck/pkg/httputil"
	"github.com/platinummonkey/ordcheck/pkg/ingest"
	"github.com/platinummonkey/ordcheck/pkg/storage"
)

var contentTypes = map[codec.Format]string{
	codec.FormatJSON:  "application/json",
	codec.FormatYAML:  "application/yaml",
	codec.FormatProto: "application/x-protobuf",
}

// createRecord handles POST /api/v1/records
func (s *Server) createRecord(w http.ResponseWriter, r *http.Request) {
	format, err := requestFormat(r)
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	data, ok := httputil.ReadBodyOrError(w, r, s.config.MaxBodyBytes)
	if !ok {
		return
	}

	name := "upload"
	if format != "" {
		name += "." + string(format)
	}
	src := ingest.NewBytesSource("api", map[string][]byte{name: data})
	result := s.importer.ImportFile(r.Context(), src, name)

	switch result.Status {
	case ingest.StatusAccepted:
		httputil.WriteJSONOrError(w, http.StatusCreated, result, "failed to encode response")
	case ingest.StatusSkipped:
		httputil.WriteJSONOrError(w, http.StatusOK, result, "failed to encode response")
	case ingest.StatusRejected:
		httputil.WriteJSONOrError(w, http.StatusUnprocessableEntity, result, "failed to encode response")
	default:
		if errors.Is(result.Err, ingest.ErrDecode) {
			httputil.WriteUnprocessable(w, result.Error)
			return
		}
		httputil.WriteErrorMessage(w, http.StatusInternalServerError, result.Error)
	}
}

// listRecords handles GET /api/v1/records
func (s *Server) listRecords(w http.ResponseWriter, r *http.Request) {
	accepted, err := httputil.ParseQueryOptionalBool(r, "accepted")
	if err != nil {
		httputil.WriteBadRequest(w, "accepted must be a boolean")
		return
	}
	limit, err := httputil.ParseQueryInt(r, "limit", storage.DefaultListLimit)
	if err != nil {
		httputil.WriteBadRequest(w, "limit must be an integer")
		return
	}
	offset, err := httputil.ParseQueryInt(r, "offset", 0)
	if err != nil {
		httputil.WriteBadRequest(w, "offset must be an integer")
		return
	}

	filter := storage.ListFilter{Accepted: accepted, Limit: limit, Offset: offset}.Normalize()
	records, total, err := s.store.ListRecords(r.Context(), filter)
	if err != nil {
		httputil.WriteInternalError(w, err)
		return
	}

	resp := ListRecordsResponse{
		Records: make([]RecordSummary, len(records)),
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}
	for i, rec := range records {
		resp.Records[i] = summarize(rec)
	}
	httputil.WriteSuccess(w, resp)
}

// loadRecord fetches the {id} record, writing 404 or 500 itself on failure
func (s *Server) loadRecord(w http.ResponseWriter, r *http.Request) (*storage.Record, bool) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return nil, false
	}
	rec, err := s.store.GetRecord(r.Context(), id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		httputil.WriteNotFoundError(w, fmt.Sprintf("record %s not found", id))
		return nil, false
	case errors.Is(err, storage.ErrInvalidRecord):
		httputil.WriteBadRequest(w, err.Error())
		return nil, false
	case err != nil:
		httputil.WriteInternalError(w, err)
		return nil, false
	}
	return rec, true
}

// getRecord handles GET /api/v1/records/{id}
func (s *Server) getRecord(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	httputil.WriteSuccess(w, RecordResponse{
		RecordSummary: summarize(rec),
		Report:        rec.Report,
		Record:        rec.Canonical,
	})
}

// getCanonical handles GET /api/v1/records/{id}/canonical and re-encodes the stored
// canonical form on request
func (s *Server) getCanonical(w http.ResponseWriter, r *http.Request) {
	format, err := codec.ParseFormat(httputil.ParseQueryString(r, "format", "json"))
	if err != nil {
		httputil.WriteBadRequest(w, err.Error())
		return
	}
	rec, ok := s.loadRecord(w, r)
	if !ok {
		return
	}
	if len(rec.Canonical) == 0 {
		httputil.WriteNotFoundError(w, fmt.Sprintf("record %s has no canonical form", rec.ID))
		return
	}

	body := rec.Canonical
	if format != codec.FormatJSON {
		decoded, _, err := codec.DecodeJSON(rec.Canonical)
		if err != nil {
			httputil.WriteInternalError(w, err)
			return
		}
		if body, err = codec.Encode(decoded, format); err != nil {
			httputil.WriteInternalError(w, err)
			return
		}
	}
	httputil.WriteRaw(w, http.StatusOK, contentTypes[format], body)
}

// deleteRecord handles DELETE /api/v1/records/{id}
func (s *Server) deleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParsePathStringOrError(w, r, "id")
	if !ok {
		return
	}
	err := s.store.DeleteRecord(r.Context(), id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		httputil.WriteNotFoundError(w, fmt.Sprintf("record %s not found", id))
	case errors.Is(err, storage.ErrInvalidRecord):
		httputil.WriteBadRequest(w, err.Error())
	case err != nil:
		httputil.WriteInternalError(w, err)
	default:
		httputil.WriteNoContent(w)
	}
}
