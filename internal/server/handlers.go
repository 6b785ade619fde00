package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/florelab/bloomforge/pkg/cache"
	"github.com/florelab/bloomforge/pkg/design"
	"github.com/florelab/bloomforge/pkg/errors"
	"github.com/florelab/bloomforge/pkg/pipeline"
	"github.com/florelab/bloomforge/pkg/render"
	"github.com/florelab/bloomforge/pkg/solid"
)

// contentTypes maps export formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatDXF:  "application/dxf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatSTL:  "model/stl",
	pipeline.FormatOBJ:  "model/obj",
}

// generateResponse is the POST /api/generate reply.
type generateResponse struct {
	Design    design.Stats       `json:"design"`
	FieldHash string             `json:"field_hash"`
	Cache     pipeline.CacheInfo `json:"cache"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode request body"))
		return
	}
	opts.Catalog = s.catalog
	opts.Logger = s.logger

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	d := design.New(result.Field)
	d.Size = opts.Size
	d.Material = opts.Material
	if result.Mesh != nil {
		d.Mesh = result.Mesh
		solidOpts := opts.Solid
		d.Solid = &solidOpts
	}
	if err := s.store.Save(r.Context(), d); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, generateResponse{
		Design:    d.Stats(),
		FieldHash: result.FieldHash,
		Cache:     result.CacheInfo,
	})
}

func (s *Server) handleListDesigns(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidConfig, "invalid limit %q", q))
			return
		}
		limit = n
	}

	stats, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"designs": stats})
}

func (s *Server) handleGetDesign(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDesign(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSolidify extrudes a stored design (again) with the options from
// the request body and persists the resulting mesh.
func (s *Server) handleSolidify(w http.ResponseWriter, r *http.Request) {
	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := solid.DefaultOptions()
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode request body"))
			return
		}
	}

	popts := pipeline.Options{Field: d.Field.Config, Solid: opts, Logger: s.logger, Catalog: s.catalog}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}
	mesh, err := s.runner.Solidify(r.Context(), d.Field, fieldHash(d), popts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	d.Mesh = mesh
	d.Solid = &popts.Solid
	if err := s.store.Save(r.Context(), d); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d.Stats())
}

// handleExport renders a stored design in the requested format. Mesh
// formats solidify on demand when the design has no stored mesh.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	d, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	if palette := q.Get("palette"); palette != "" {
		if _, err := render.LookupPalette(palette); err != nil {
			s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette"))
			return
		}
	}

	opts := pipeline.Options{
		Field:        d.Field.Config,
		Formats:      []string{format},
		Palette:      q.Get("palette"),
		EndsOnly:     q.Get("ends_only") == "true",
		Construction: q.Get("construction") == "true",
		Logger:       s.logger,
		Catalog:      s.catalog,
	}
	if d.Solid != nil {
		opts.Solid = *d.Solid
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, r, err)
		return
	}

	mesh := d.Mesh
	hash := fieldHash(d)
	if mesh == nil && opts.NeedsMesh() {
		mesh, err = s.runner.Solidify(r.Context(), d.Field, hash, opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	artifacts, err := s.runner.Render(r.Context(), d.Field, mesh, hash, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[format])
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"sizes":     s.catalog.Sizes,
		"materials": s.catalog.Materials,
		"palettes":  render.PaletteNames(),
	})
}

// fieldHash derives the cache hash of a design's field.
func fieldHash(d *design.Design) string {
	data, err := json.Marshal(d.Field)
	if err != nil {
		return d.ID
	}
	return cache.Hash(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps error codes to HTTP status codes and writes a JSON
// error body.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPreset, errors.ErrCodeInvalidID,
		errors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeDesignNotFound,
		errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}

	writeJSON(w, status, map[string]any{
		"error": errors.UserMessage(err),
		"code":  errors.GetCode(err),
	})
}
