package renderer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loan-booklet-be/pkg/booklet"
)

func testEnvelope() *booklet.Envelope {
	d := booklet.NewDraft(booklet.SchemeLOD)
	d.Scalars["loanType"] = "Overdraft"
	return &booklet.Envelope{Scheme: booklet.SchemeLOD, UserData: json.RawMessage(`{}`), Draft: d}
}

func TestNewHTTPRendererTimeout(t *testing.T) {
	r := NewHTTPRenderer("http://renderer.local", 15*time.Second)
	if r.Client.Timeout != 15*time.Second {
		t.Errorf("timeout = %v, want 15s", r.Client.Timeout)
	}

	r = NewHTTPRenderer("http://renderer.local", 0)
	if r.Client.Timeout != 60*time.Second {
		t.Errorf("default timeout = %v, want 60s", r.Client.Timeout)
	}
}

func TestRenderPostsEnvelope(t *testing.T) {
	var gotPath, gotContentType string
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		gotContentType = req.Header.Get("Content-Type")
		if err := json.NewDecoder(req.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Write([]byte("<html>booklet</html>"))
	}))
	defer srv.Close()

	r := NewHTTPRenderer(srv.URL, 5*time.Second)
	doc, err := r.Render(context.Background(), testEnvelope())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc != "<html>booklet</html>" {
		t.Errorf("document = %q", doc)
	}
	if gotPath != "/loan/lod-booklet" {
		t.Errorf("path = %q, want /loan/lod-booklet", gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	for _, key := range []string{"user_data", "loan_data", "borrowers_data", "deposits_data"} {
		if _, ok := gotBody[key]; !ok {
			t.Errorf("request body missing %q", key)
		}
	}
}

func TestRenderNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "template blew up", http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := NewHTTPRenderer(srv.URL, 5*time.Second)
	if _, err := r.Render(context.Background(), testEnvelope()); err == nil {
		t.Error("non-200 response did not error")
	}
}

func TestRenderUnknownScheme(t *testing.T) {
	r := NewHTTPRenderer("http://renderer.local", time.Second)
	env := testEnvelope()
	env.Scheme = "PMEGP"
	if _, err := r.Render(context.Background(), env); err == nil {
		t.Error("unknown scheme did not error")
	}
}
