package reader

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const documentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t xml:space="preserve">Senior </w:t></w:r><w:r><w:t>Python Developer</w:t></w:r></w:p>
    <w:p></w:p>
    <w:p><w:r><w:t>Docker</w:t><w:tab/><w:t>Kubernetes</w:t></w:r></w:p>
  </w:body>
</w:document>`

func writeDOCX(t *testing.T, path string) {
	t.Helper()

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create docx: %v", err)
	}
	defer file.Close()

	w := zip.NewWriter(file)
	entry, err := w.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document entry: %v", err)
	}
	if _, err := entry.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document entry: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close docx: %v", err)
	}
}

func TestReadPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	if err := os.WriteFile(path, []byte("  Python\x00 developer \n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	got := New(nil).Read(path)
	if got != "Python developer" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestReadDOCX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.docx")
	writeDOCX(t, path)

	got, err := New(nil).Extract(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expect := "Jane Doe\nSenior Python Developer\nDocker\tKubernetes"
	if got != expect {
		t.Fatalf("expected %q, got %q", expect, got)
	}
}

func TestReadSniffsUnknownExtension(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "job")
	if err := os.WriteFile(textPath, []byte("Senior Go engineer"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if got := New(nil).Read(textPath); got != "Senior Go engineer" {
		t.Fatalf("unexpected sniffed text: %q", got)
	}

	docxPath := filepath.Join(dir, "cv.bin")
	writeDOCX(t, docxPath)
	if got := New(nil).Read(docxPath); got == "" {
		t.Fatalf("expected docx content to be sniffed")
	}
}

func TestReadFailureReturnsEmptyString(t *testing.T) {
	core, observed := observer.New(zapcore.ErrorLevel)
	r := New(zap.New(core))

	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.pdf")
	if err := os.WriteFile(broken, []byte("not a pdf"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.txt"), broken, dir} {
		if got := r.Read(path); got != "" {
			t.Fatalf("expected empty text for %s, got %q", path, got)
		}
	}

	if n := observed.FilterMessage("reading document").Len(); n != 3 {
		t.Fatalf("expected 3 logged read errors, got %d", n)
	}
}
