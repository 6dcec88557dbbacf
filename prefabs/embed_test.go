package prefabs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestSourceReadFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "arena.yaml"), []byte("disk"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "broken.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}
	src := Source{Dir: dir, FS: fstest.MapFS{
		"arena.yaml":  {Data: []byte("embedded")},
		"extra.yaml":  {Data: []byte("embedded extra")},
		"broken.yaml": {Data: []byte("embedded broken")},
	}}

	tests := []struct {
		name    string
		file    string
		want    string
		wantErr bool
	}{
		{name: "disk wins", file: "arena.yaml", want: "disk"},
		{name: "embedded fallback", file: "extra.yaml", want: "embedded extra"},
		{name: "unreadable disk file is an error", file: "broken.yaml", wantErr: true},
		{name: "missing everywhere", file: "none.yaml", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := src.ReadFile(tt.file)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("got %q, want an error", got)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := (Source{}).ReadFile("arena.yaml"); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("empty source: got %v, want ErrNotExist", err)
	}
}

func TestOpenTuning(t *testing.T) {
	got, err := OpenTuning("")
	if err != nil {
		t.Fatalf("builtin tuning: %v", err)
	}
	if got != DefaultTuning() {
		t.Fatalf("builtin tuning differs from defaults")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("arena:\n  radius: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenTuning(path); err == nil {
		t.Fatal("zero arena radius accepted")
	}
}
