package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/florelab/bloomforge/pkg/design"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
	})
}

func generateBody() *bytes.Buffer {
	body := map[string]any{
		"field": map[string]any{
			"canvas":      map[string]any{"width": 30.0, "height": 30.0, "margin": 0.1},
			"seed_count":  4,
			"petal_count": 5,
		},
		"formats": []string{"svg"},
	}
	buf := &bytes.Buffer{}
	_ = json.NewEncoder(buf).Encode(body)
	return buf
}

func createDesign(t *testing.T, srv *Server) string {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/generate", generateBody())
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusCreated {
		t.Fatalf("generate returned %d: %s", w.Code, w.Body.String())
	}
	var resp generateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Design.ID == "" {
		t.Fatal("generate response has no design id")
	}
	return resp.Design.ID
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("healthz = %d", w.Code)
	}
}

func TestGenerateAndFetch(t *testing.T) {
	srv := testServer(t)
	id := createDesign(t, srv)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/designs/"+id, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get design = %d: %s", w.Code, w.Body.String())
	}
	var d design.Design
	if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d.ID != id || len(d.Field.Seeds) != 4 {
		t.Errorf("fetched design id=%q seeds=%d", d.ID, len(d.Field.Seeds))
	}
	if d.Mesh != nil {
		t.Error("svg-only generate stored a mesh")
	}
}

func TestGenerateRejectsBadBody(t *testing.T) {
	srv := testServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"not json", "{{{"},
		{"bad format", `{"field":{"canvas":{"width":30,"height":30}},"formats":["gif"]}`},
		{"bad config", `{"field":{"canvas":{"width":-1,"height":30}}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(tc.body))
			srv.Router().ServeHTTP(w, r)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

func TestListDesigns(t *testing.T) {
	srv := testServer(t)
	createDesign(t, srv)
	createDesign(t, srv)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/designs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list = %d", w.Code)
	}
	var resp struct {
		Designs []design.Stats `json:"designs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Designs) != 2 {
		t.Errorf("listed %d designs, want 2", len(resp.Designs))
	}
}

func TestSolidifyDesign(t *testing.T) {
	srv := testServer(t)
	id := createDesign(t, srv)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/designs/"+id+"/solidify",
		strings.NewReader(`{"plate_thickness": 4}`))
	srv.Router().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("solidify = %d: %s", w.Code, w.Body.String())
	}
	var stats design.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Vertices == 0 || stats.Triangles == 0 {
		t.Error("solidify stored no mesh")
	}
}

func TestExportFormats(t *testing.T) {
	srv := testServer(t)
	id := createDesign(t, srv)

	cases := []struct {
		format      string
		contentType string
		sniff       string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"dxf", "application/dxf", "SECTION"},
		{"json", "application/json", "flowers"},
		{"obj", "model/obj", "v "},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			w := httptest.NewRecorder()
			url := fmt.Sprintf("/api/designs/%s/export/%s", id, tc.format)
			srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("export = %d: %s", w.Code, w.Body.String())
			}
			if ct := w.Header().Get("Content-Type"); ct != tc.contentType {
				t.Errorf("content type = %q, want %q", ct, tc.contentType)
			}
			if !strings.Contains(w.Body.String(), tc.sniff) {
				t.Errorf("%s artifact missing %q", tc.format, tc.sniff)
			}
		})
	}

	t.Run("stl", func(t *testing.T) {
		w := httptest.NewRecorder()
		url := fmt.Sprintf("/api/designs/%s/export/stl", id)
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("export = %d", w.Code)
		}
		if (w.Body.Len()-84)%50 != 0 {
			t.Errorf("stl body length %d is not a triangle multiple", w.Body.Len())
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		w := httptest.NewRecorder()
		url := fmt.Sprintf("/api/designs/%s/export/gif", id)
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("unknown format = %d, want 400", w.Code)
		}
	})

	t.Run("bad palette", func(t *testing.T) {
		w := httptest.NewRecorder()
		url := fmt.Sprintf("/api/designs/%s/export/svg?palette=neon_void", id)
		srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("bad palette = %d, want 400", w.Code)
		}
	})
}

func TestDeleteDesign(t *testing.T) {
	srv := testServer(t)
	id := createDesign(t, srv)

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/designs/"+id, nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", w.Code)
	}

	w = httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/designs/"+id, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted design still fetchable: %d", w.Code)
	}
}

func TestDesignNotFound(t *testing.T) {
	srv := testServer(t)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet,
		"/api/designs/00000000-0000-0000-0000-000000000000", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing design = %d, want 404", w.Code)
	}
}

func TestPresets(t *testing.T) {
	srv := testServer(t)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/presets", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("presets = %d", w.Code)
	}
	var resp struct {
		Sizes     []any    `json:"sizes"`
		Materials []any    `json:"materials"`
		Palettes  []string `json:"palettes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Sizes) != 3 || len(resp.Materials) != 3 || len(resp.Palettes) != 4 {
		t.Errorf("presets = %d sizes / %d materials / %d palettes",
			len(resp.Sizes), len(resp.Materials), len(resp.Palettes))
	}
}
