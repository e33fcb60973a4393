package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func readArchive(t *testing.T, path string) map[string]string {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read %s: %v", f.Name, err)
		}
		files[f.Name] = string(data)
	}
	return files
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	conf := ReporterConfig{Destination: filepath.Join(dir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	input := filepath.Join(dir, "site.yaml")
	if err := os.WriteFile(input, []byte("documents: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	outputs := filepath.Join(dir, "out")
	if err := os.MkdirAll(outputs, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(outputs, "global.css"), []byte("a{}"), 0644); err != nil {
		t.Fatal(err)
	}

	r.Store("site.yaml", input)
	r.Store("site.yaml", input) // same path is fine
	r.Store("output", outputs)
	r.Store("absent", filepath.Join(dir, "absent"))
	r.StoreData("config.yaml", []byte("version: 1\n"))

	if r.Name() != conf.Destination {
		t.Errorf("Name() = %q, want %q", r.Name(), conf.Destination)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	files := readArchive(t, conf.Destination)
	for name, want := range map[string]string{
		"site.yaml":         "documents: []\n",
		"output/global.css": "a{}",
		"config.yaml":       "version: 1\n",
	} {
		if got, ok := files[name]; !ok || got != want {
			t.Errorf("report entry %q = %q (present %v), want %q", name, got, ok, want)
		}
	}
	if _, ok := files["MANIFEST"]; !ok {
		t.Error("report has no MANIFEST")
	}
	if _, ok := files["absent"]; ok {
		t.Error("absent files must be skipped")
	}
}

func TestReport_OverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("x", []byte("1"))

	defer func() {
		if recover() == nil {
			t.Error("expected panic on overwrite")
		}
	}()
	r.StoreData("x", []byte("2"))
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	r.Store("a", "b")
	r.StoreData("a", nil)
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if r.Name() != "" {
		t.Errorf("Name() of nil report = %q", r.Name())
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
