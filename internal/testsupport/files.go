package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"stride/internal/jsonl"
	"stride/internal/streams"
)

// WriteExport writes the given records to path as a JSONL export file,
// creating parent directories as needed.
func WriteExport(t testing.TB, path string, records ...streams.Record) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	writer, err := jsonl.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			t.Fatalf("write record to %s: %v", path, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close %s: %v", path, err)
	}
}
