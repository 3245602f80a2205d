package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/reqguard/pkg/binder"
	"github.com/dmitrymomot/reqguard/pkg/engine"
	"github.com/dmitrymomot/reqguard/pkg/logger"
	"github.com/dmitrymomot/reqguard/pkg/schema"
)

type handlers struct {
	reg *schema.Registry
	cfg *config
}

// validate answers 200 with the result when the body is valid and 422 when it
// is not. Query flags strip and paths enable the matching engine options.
func (h *handlers) validate(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "schema")
	s, ok := h.reg.Get(name)
	if !ok {
		WriteError(w, schemaNotFound(name))
		return
	}

	opts, err := h.requestOptions(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	record, err := binder.Record(r, binder.WithMaxSize(h.cfg.maxBodySize))
	if err != nil {
		h.cfg.logger.DebugContext(r.Context(), "rejected request body", logger.Schema(name), logger.Error(err))
		WriteError(w, BodyError(err))
		return
	}

	res := engine.Validate(record, s, opts...)
	if !res.Valid() {
		h.cfg.logger.WarnContext(r.Context(), "validation failed",
			logger.Schema(name),
			logger.ErrorCount(len(res.Errors)),
			logger.Fields(res.Errors.Fields()),
		)
		WriteJSON(w, http.StatusUnprocessableEntity, res)
		return
	}

	h.cfg.logger.DebugContext(r.Context(), "validation passed", logger.Schema(name))
	WriteJSON(w, http.StatusOK, res)
}

func (h *handlers) requestOptions(r *http.Request) ([]engine.Option, error) {
	opts := append([]engine.Option(nil), h.cfg.engineOpts...)

	flags := []struct {
		name   string
		option engine.Option
	}{
		{"strip", engine.WithStripUnknown()},
		{"paths", engine.WithNestedPaths()},
	}
	query := r.URL.Query()
	for _, f := range flags {
		raw := query.Get(f.name)
		if raw == "" {
			continue
		}
		on, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, invalidParameter(f.name, err)
		}
		if on {
			opts = append(opts, f.option)
		}
	}
	return opts, nil
}

func (h *handlers) listSchemas(w http.ResponseWriter, _ *http.Request) {
	WriteData(w, h.reg.Names(), map[string]any{"count": h.reg.Len()})
}

func (h *handlers) getSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "schema")
	s, ok := h.reg.Get(name)
	if !ok {
		WriteError(w, schemaNotFound(name))
		return
	}
	WriteData(w, s, map[string]any{"name": name})
}
