package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hydrorag/src/infrastructure/integrations/ollama"
)

func TestGenerate(t *testing.T) {
	var gotReq ollama.GenerateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(ollama.GenerateResponse{
			Model:    gotReq.Model,
			Response: "the answer",
			Done:     true,
		})
	}))
	defer server.Close()

	client := ollama.NewClient(server.URL+"/api", server.Client())
	answer, err := client.Generate(context.Background(), "llama3.2", "system text", "prompt text", map[string]interface{}{"temperature": 0.0})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if answer != "the answer" {
		t.Errorf("Generate() = %q, want %q", answer, "the answer")
	}
	if gotReq.Stream {
		t.Error("request asked for streaming")
	}
	if gotReq.System != "system text" || gotReq.Prompt != "prompt text" {
		t.Error("request does not carry the system and user prompts")
	}
}

func TestGenerateStructured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollama.GenerateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Format != "json" {
			t.Errorf("Format = %q, want json", req.Format)
		}
		json.NewEncoder(w).Encode(ollama.GenerateResponse{
			Response: `{"score": "relevant", "reasoning": "on topic"}`,
			Done:     true,
		})
	}))
	defer server.Close()

	client := ollama.NewClient(server.URL+"/api", server.Client())

	var out struct {
		Score     string `json:"score"`
		Reasoning string `json:"reasoning"`
	}
	if err := client.GenerateStructured(context.Background(), "llama3.2", "sys", "prompt", nil, &out); err != nil {
		t.Fatalf("GenerateStructured() error = %v", err)
	}
	if out.Score != "relevant" {
		t.Errorf("Score = %q, want relevant", out.Score)
	}
}

func TestGenerateStructuredMalformedReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ollama.GenerateResponse{Response: "not json at all", Done: true})
	}))
	defer server.Close()

	client := ollama.NewClient(server.URL+"/api", server.Client())

	var out map[string]interface{}
	if err := client.GenerateStructured(context.Background(), "llama3.2", "sys", "prompt", nil, &out); err == nil {
		t.Fatal("GenerateStructured() error = nil, want decode failure")
	}
}

func TestGetEmbedding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(ollama.EmbeddingResponse{Embedding: []float64{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	client := ollama.NewClient(server.URL+"/api", server.Client())
	vec, err := client.GetEmbedding(context.Background(), "nomic-embed-text", "some text")
	if err != nil {
		t.Fatalf("GetEmbedding() error = %v", err)
	}
	if len(vec) != 3 {
		t.Fatalf("got %d dimensions, want 3", len(vec))
	}
}

func TestServerErrorSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := ollama.NewClient(server.URL+"/api", server.Client())
	if _, err := client.Generate(context.Background(), "missing", "s", "p", nil); err == nil {
		t.Fatal("Generate() error = nil, want status failure")
	}
}
