// Package reader extracts plain text from CV and job description documents.
package reader

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/spigell/candidate-evaluator/internal/utils"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	mimeZIP  = "application/zip"
)

// ErrUnsupported is returned for documents that are neither text, PDF nor DOCX.
var ErrUnsupported = errors.New("unsupported document type")

// Reader reads documents from disk.
type Reader struct {
	logger *zap.Logger
}

// New creates a Reader. A nil logger is replaced by a no-op one.
func New(logger *zap.Logger) *Reader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reader{logger: logger}
}

// Read returns the sanitized text of the document at path, or "" when it cannot be read.
func (r *Reader) Read(path string) string {
	text, err := r.Extract(path)
	if err != nil {
		r.logger.Error("reading document", zap.String("path", path), zap.Error(err))
		return ""
	}
	return text
}

// Extract returns the sanitized text of the document at path. The format is chosen by
// extension; unknown extensions are sniffed.
func (r *Reader) Extract(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	var text string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".text":
		text, err = readPlain(path)
	case ".pdf":
		text, err = readPDF(path)
	case ".docx":
		text, err = readDOCX(path)
	default:
		text, err = r.sniff(path)
	}
	if err != nil {
		return "", err
	}

	return utils.SanitizeText(text), nil
}

func (r *Reader) sniff(path string) (string, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", fmt.Errorf("detect content type: %w", err)
	}

	r.logger.Debug("detected document type", zap.String("path", path), zap.String("mime", mtype.String()))

	switch {
	case mtype.Is(mimePDF):
		return readPDF(path)
	case mtype.Is(mimeDOCX), mtype.Is(mimeZIP):
		return readDOCX(path)
	case strings.HasPrefix(mtype.String(), "text/"):
		return readPlain(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, mtype.String())
	}
}

func readPlain(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
