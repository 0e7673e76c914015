package docrouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient("http://localhost", "", NewStaticTokenProvider("tok")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing org, got %v", err)
	}
	if _, err := NewClient("http://localhost", "org-1", nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for nil token provider, got %v", err)
	}
}

func TestNewClient_Org(t *testing.T) {
	client, err := NewClient("http://localhost", "org-1", NewStaticTokenProvider("tok"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Org() != "org-1" {
		t.Errorf("expected org-1, got %q", client.Org())
	}
}

// TestClient_EndToEnd drives the public client against a fake backend:
// upload, resolve revisions, run an extraction, poll it to completion,
// validate the result, and observe the cache short-circuit.
func TestClient_EndToEnd(t *testing.T) {
	var extractionPolls int
	mux := http.NewServeMux()

	mux.HandleFunc("POST /orgs/org-1/documents", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"uploaded_documents": []map[string]string{
				{"document_name": "invoice.pdf", "document_id": "doc-1"},
			},
		})
	})
	mux.HandleFunc("GET /orgs/org-1/schemas/sch-1/versions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"schemas": []map[string]any{
				{"schema_revid": "srev-1", "schema_version": 1},
				{"schema_revid": "srev-2", "schema_version": 2},
			},
		})
	})
	mux.HandleFunc("GET /orgs/org-1/prompts/prm-1/versions", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"prompts": []map[string]any{
				{"prompt_revid": "prev-1", "prompt_version": 1},
			},
		})
	})
	mux.HandleFunc("POST /orgs/org-1/documents/doc-1/llm/prev-1/run", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "pending"})
	})
	mux.HandleFunc("GET /orgs/org-1/documents/doc-1/llm/prev-1", func(w http.ResponseWriter, r *http.Request) {
		extractionPolls++
		if extractionPolls < 2 {
			json.NewEncoder(w).Encode(map[string]any{"status": "running"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status":     "completed",
			"llm_result": map[string]any{"invoice_number": "INV-42", "total": 117.5},
		})
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := NewClient(server.URL, "org-1", NewStaticTokenProvider("tok"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	uploaded, err := client.Documents().Upload(ctx, []DocumentUpload{
		{Name: "invoice.pdf", Content: []byte("%PDF-1.4 fake")},
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(uploaded) != 1 || uploaded[0].ID != "doc-1" {
		t.Fatalf("unexpected upload response: %+v", uploaded)
	}

	schemaRev, err := client.Schemas().ResolveLatest(ctx, "sch-1")
	if err != nil {
		t.Fatalf("resolve schema: %v", err)
	}
	if schemaRev.SchemaRevID != "srev-2" {
		t.Errorf("expected latest revision srev-2, got %s", schemaRev.SchemaRevID)
	}

	promptRev, err := client.Prompts().ResolveLatest(ctx, "prm-1")
	if err != nil {
		t.Fatalf("resolve prompt: %v", err)
	}

	handle, err := client.Extractions().Run(ctx, uploaded[0].ID, promptRev.PromptRevID)
	if err != nil {
		t.Fatalf("run extraction: %v", err)
	}
	if handle.Status != JobStatusPending {
		t.Errorf("expected pending, got %s", handle.Status)
	}

	var job *ExtractionJob
	for {
		job, err = client.Extractions().GetResult(ctx, uploaded[0].ID, promptRev.PromptRevID)
		if err != nil {
			t.Fatalf("get result: %v", err)
		}
		if job.Status.Terminal() {
			break
		}
	}
	if job.Status != JobStatusCompleted {
		t.Fatalf("expected completed, got %s", job.Status)
	}
	if job.Result["invoice_number"].Str != "INV-42" {
		t.Errorf("unexpected result: %+v", job.Result)
	}

	// A terminal result is served from the cache; the server sees no more
	// polls.
	pollsSoFar := extractionPolls
	if _, err := client.Extractions().GetResult(ctx, uploaded[0].ID, promptRev.PromptRevID); err != nil {
		t.Fatalf("cached get result: %v", err)
	}
	if extractionPolls != pollsSoFar {
		t.Errorf("expected no further polls after completion, got %d extra", extractionPolls-pollsSoFar)
	}
}

func TestClient_NotFoundTaxonomy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Document not found"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "org-1", NewStaticTokenProvider("tok"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, getErr := client.Documents().Get(context.Background(), "doc-404", FileTypeOriginal)
	if !errors.Is(getErr, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", getErr)
	}

	var httpErr *HTTPError
	if !errors.As(getErr, &httpErr) {
		t.Fatal("expected *HTTPError in the chain")
	}
	if httpErr.Message != "Document not found" {
		t.Errorf("expected backend detail, got %q", httpErr.Message)
	}
}

func TestValidateResult_PublicWrapper(t *testing.T) {
	rev := &SchemaRevision{
		SchemaID:    "sch-1",
		SchemaRevID: "srev-1",
		Version:     1,
		ResponseFormat: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"total": map[string]any{"type": "number"},
			},
			"required": []any{"total"},
		},
	}
	job := &ExtractionJob{
		DocumentID:  "doc-1",
		PromptRevID: "prev-1",
		Status:      JobStatusCompleted,
		Result:      map[string]Value{"total": {Kind: KindNumber, Num: 9}},
	}

	if err := ValidateResult(rev, job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	job.Result = map[string]Value{}
	if err := ValidateResult(rev, job); err == nil {
		t.Fatal("expected validation failure for missing required field")
	}
}
