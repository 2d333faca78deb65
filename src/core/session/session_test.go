package session_test

import (
	"testing"
	"time"

	"hydrorag/src/core/documents"
	"hydrorag/src/core/session"
)

func TestFileKey(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		size     int64
		want     string
	}{
		{name: "pdf", fileName: "report.pdf", size: 2048, want: "report.pdf_2048"},
		{name: "zero size", fileName: "empty.txt", size: 0, want: "empty.txt_0"},
		{name: "name with spaces", fileName: "annual report.docx", size: 77, want: "annual report.docx_77"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := session.FileKey(tt.fileName, tt.size); got != tt.want {
				t.Errorf("FileKey(%q, %d) = %q, want %q", tt.fileName, tt.size, got, tt.want)
			}
		})
	}
}

func TestStoreRoundtrip(t *testing.T) {
	store := session.NewStore(time.Minute)
	index := &documents.Index{ClassName: "Chunks1", Source: "report.pdf", ChunkCount: 3}

	sess := store.Create("report.pdf_2048", index, nil)
	if sess.ID == "" {
		t.Fatal("Create() returned a session without an ID")
	}

	got, ok := store.Get(sess.ID)
	if !ok {
		t.Fatal("Get() did not find the created session")
	}
	if got.Index.ClassName != "Chunks1" {
		t.Errorf("Index.ClassName = %q, want Chunks1", got.Index.ClassName)
	}

	if _, ok := store.Get("no-such-id"); ok {
		t.Error("Get() found a session for an unknown ID")
	}

	store.Delete(sess.ID)
	if _, ok := store.Get(sess.ID); ok {
		t.Error("Get() found a deleted session")
	}
}

func TestStoreFindByFileKey(t *testing.T) {
	store := session.NewStore(time.Minute)
	index := &documents.Index{ClassName: "Chunks2", Source: "notes.md"}

	created := store.Create("notes.md_512", index, nil)

	found, ok := store.Find("notes.md_512")
	if !ok {
		t.Fatal("Find() did not locate the session by file key")
	}
	if found.ID != created.ID {
		t.Errorf("Find() returned session %q, want %q", found.ID, created.ID)
	}

	if _, ok := store.Find("other.md_1"); ok {
		t.Error("Find() located a session for an unknown file key")
	}
}

func TestStoreDistinctIDs(t *testing.T) {
	store := session.NewStore(time.Minute)
	a := store.Create("a_1", &documents.Index{}, nil)
	b := store.Create("b_2", &documents.Index{}, nil)
	if a.ID == b.ID {
		t.Error("two sessions share an ID")
	}
}
