package unstructured_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hydrorag/src/infrastructure/integrations/unstructured"
)

func TestPartition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/general/v0/general" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		if _, _, err := r.FormFile("files"); err != nil {
			t.Errorf("request carries no file part: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"type": "NarrativeText", "text": "first paragraph", "element_id": "e1"},
			{"type": "NarrativeText", "text": "second paragraph", "element_id": "e2"}
		]`))
	}))
	defer server.Close()

	client := unstructured.NewClient(server.URL)
	elements, err := client.Partition(context.Background(), "doc.pdf", []byte("%PDF-1.4"))
	if err != nil {
		t.Fatalf("Partition() error = %v", err)
	}
	if len(elements) != 2 {
		t.Fatalf("got %d elements, want 2", len(elements))
	}
	if elements[0].Text != "first paragraph" {
		t.Errorf("elements[0].Text = %q", elements[0].Text)
	}
}

func TestPartitionServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := unstructured.NewClient(server.URL)
	if _, err := client.Partition(context.Background(), "doc.pdf", []byte("%PDF-1.4")); err == nil {
		t.Fatal("Partition() error = nil, want server failure")
	}
}

func TestText(t *testing.T) {
	elements := []unstructured.Element{
		{Text: "first"},
		{Text: ""},
		{Text: "second"},
	}

	got := unstructured.Text(elements)
	want := "first\n\nsecond"
	if got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	if got := unstructured.Text(nil); got != "" {
		t.Errorf("Text(nil) = %q, want empty", got)
	}
}
