package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/florelab/bloomforge/pkg/cache"
	"github.com/florelab/bloomforge/pkg/errors"
	"github.com/florelab/bloomforge/pkg/field"
	"github.com/florelab/bloomforge/pkg/observability"
	"github.com/florelab/bloomforge/pkg/render"
	"github.com/florelab/bloomforge/pkg/render/mesh"
	"github.com/florelab/bloomforge/pkg/solid"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → solidify → render pipeline with
// caching. The solidify stage is skipped when no mesh output is needed.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Generate
	genStart := time.Now()
	f, fieldHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Field = f
	result.Stats.GenerateTime = time.Since(genStart)
	result.Stats.Seeds = len(f.Seeds)
	result.Stats.PetalEnds = len(f.PetalEnds)
	result.CacheInfo.FieldHit = fieldHit

	if data, err := json.Marshal(f); err == nil {
		result.FieldHash = cache.Hash(data)
	}

	r.Logger.Info("generated field",
		"seeds", len(f.Seeds),
		"petals", len(f.PetalEnds),
		"duration", result.Stats.GenerateTime)

	// Stage 2: Solidify (only when mesh output is needed)
	if opts.NeedsMesh() {
		solidStart := time.Now()
		m, meshHit, err := r.SolidifyWithCacheInfo(ctx, f, result.FieldHash, opts)
		if err != nil {
			return nil, err
		}
		result.Mesh = m
		result.Stats.SolidifyTime = time.Since(solidStart)
		result.Stats.Vertices = m.VertexCount()
		result.Stats.Triangles = m.TriangleCount()
		result.CacheInfo.MeshHit = meshHit

		r.Logger.Info("solidified mesh",
			"vertices", m.VertexCount(),
			"triangles", m.TriangleCount(),
			"duration", result.Stats.SolidifyTime)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, f, result.Mesh, result.FieldHash, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// GenerateWithCacheInfo grows a field with caching and returns cache hit info.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*field.Field, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.FieldKey(opts.Field)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var f field.Field
			if err := json.Unmarshal(data, &f); err == nil {
				observability.Cache().OnCacheHit(ctx, "field")
				return &f, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "field")
	}

	start := time.Now()
	observability.Pipeline().OnGenerateStart(ctx, opts.Field.SeedCount, opts.Field.PetalCount)
	f, err := field.Generate(opts.Field)
	observability.Pipeline().OnGenerateComplete(ctx, petalEnds(f), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(f); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLField)
		observability.Cache().OnCacheSet(ctx, "field", len(data))
	}

	return f, false, nil
}

// Generate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (*field.Field, error) {
	f, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return f, err
}

// SolidifyWithCacheInfo extrudes a field with caching and returns cache hit info.
func (r *Runner) SolidifyWithCacheInfo(ctx context.Context, f *field.Field, fieldHash string, opts Options) (*solid.Mesh, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	cacheKey := r.Keyer.MeshKey(fieldHash, opts.Solid)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var m solid.Mesh
			if err := json.Unmarshal(data, &m); err == nil {
				observability.Cache().OnCacheHit(ctx, "mesh")
				return &m, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "mesh")
	}

	start := time.Now()
	observability.Pipeline().OnSolidifyStart(ctx, len(f.Seeds))
	m, err := solid.Solidify(f, opts.Solid)
	if err != nil {
		observability.Pipeline().OnSolidifyComplete(ctx, 0, 0, time.Since(start), err)
		return nil, false, err
	}
	observability.Pipeline().OnSolidifyComplete(ctx, m.VertexCount(), m.TriangleCount(), time.Since(start), nil)

	if data, err := json.Marshal(m); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLMesh)
		observability.Cache().OnCacheSet(ctx, "mesh", len(data))
	}

	return m, false, nil
}

// Solidify is a convenience wrapper that discards the cache hit info.
func (r *Runner) Solidify(ctx context.Context, f *field.Field, fieldHash string, opts Options) (*solid.Mesh, error) {
	m, _, err := r.SolidifyWithCacheInfo(ctx, f, fieldHash, opts)
	return m, err
}

// RenderWithCacheInfo renders artifacts with caching and returns cache
// hit info. Mesh formats require a non-nil mesh.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, f *field.Field, m *solid.Mesh, fieldHash string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}

	// Try to get all formats from cache. Artifact keys fold in the
	// render options so palette or overlay changes miss cleanly.
	sourceHash := cache.Hash([]byte(fieldHash + renderFingerprint(opts)))

	allCached := true
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sourceHash, format)
			if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
				artifacts[format] = data
			} else {
				allCached = false
				break
			}
		}
		if allCached && len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return artifacts, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	rendered, err := renderAll(f, m, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sourceHash, format)
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that discards the cache hit info.
func (r *Runner) Render(ctx context.Context, f *field.Field, m *solid.Mesh, fieldHash string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, f, m, fieldHash, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// renderAll dispatches every requested format to its sink.
func renderAll(f *field.Field, m *solid.Mesh, opts Options) (map[string][]byte, error) {
	palette, err := render.LookupPalette(opts.Palette)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "palette")
	}

	out := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		switch format {
		case FormatSVG:
			svgOpts := []render.SVGOption{render.WithSVGPalette(palette)}
			if opts.EndsOnly {
				svgOpts = append(svgOpts, render.WithSVGEndsOnly())
			}
			if opts.Construction {
				svgOpts = append(svgOpts, render.WithSVGConstruction())
			}
			out[format] = render.RenderSVG(f, svgOpts...)

		case FormatPNG:
			pngOpts := []render.PNGOption{render.WithPNGPalette(palette)}
			if opts.EndsOnly {
				pngOpts = append(pngOpts, render.WithPNGEndsOnly())
			}
			if opts.Construction {
				pngOpts = append(pngOpts, render.WithPNGConstruction())
			}
			data, err := render.RenderPNG(f, pngOpts...)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
			}
			out[format] = data

		case FormatDXF:
			dxfOpts := []render.DXFOption{}
			if opts.EndsOnly {
				dxfOpts = append(dxfOpts, render.WithDXFEndsOnly())
			}
			if opts.Construction {
				dxfOpts = append(dxfOpts, render.WithDXFConstruction())
			}
			out[format] = render.RenderDXF(f, dxfOpts...)

		case FormatJSON:
			data, err := render.RenderJSON(f)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "render json")
			}
			out[format] = data

		case FormatSTL:
			if m == nil {
				return nil, errors.New(errors.ErrCodeInternal, "stl requested without a mesh")
			}
			out[format] = mesh.EncodeSTL(m)

		case FormatOBJ:
			if m == nil {
				return nil, errors.New(errors.ErrCodeInternal, "obj requested without a mesh")
			}
			out[format] = mesh.EncodeOBJ(m)

		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
		}
	}
	return out, nil
}

// renderFingerprint folds the render options into the artifact cache key.
func renderFingerprint(opts Options) string {
	fp := struct {
		Palette      string `json:"palette"`
		EndsOnly     bool   `json:"ends_only"`
		Construction bool   `json:"construction"`
	}{opts.Palette, opts.EndsOnly, opts.Construction}
	data, _ := json.Marshal(fp)
	return string(data)
}

func petalEnds(f *field.Field) int {
	if f == nil {
		return 0
	}
	return len(f.PetalEnds)
}
