package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"docmint/internal/docstate"
	"docmint/internal/render"
)

// Service generates export artifacts from a state snapshot. The
// chrome-backed renderers are function fields so tests can run without
// a browser on the host.
type Service struct {
	pdfFn func(ctx context.Context, html, title string) (*Result, error)
	pngFn func(ctx context.Context, html, title string) (*Result, error)
}

// NewService creates an export service backed by headless Chrome.
func NewService() *Service {
	return &Service{pdfFn: renderPDF, pngFn: renderPNG}
}

// Export generates an artifact in the requested format.
func (s *Service) Export(ctx context.Context, st docstate.State, req Request) (*Result, error) {
	switch req.Format {
	case FormatPDF, FormatPNG:
		html, err := render.Document(req.Document, st)
		if err != nil {
			return nil, err
		}
		title := render.Title(req.Document)
		if req.Format == FormatPDF {
			return s.pdfFn(ctx, html, title)
		}
		return s.pngFn(ctx, html, title)
	case FormatZip:
		return s.exportZip(ctx, st)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, req.Format)
	}
}

// exportZip bundles a PDF of every document type into one archive.
func (s *Service) exportZip(ctx context.Context, st docstate.State) (*Result, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, docType := range render.Types() {
		html, err := render.Document(docType, st)
		if err != nil {
			return nil, err
		}
		pdf, err := s.pdfFn(ctx, html, render.Title(docType))
		if err != nil {
			return nil, fmt.Errorf("bundle %s: %w", docType, err)
		}
		w, err := zw.Create(pdf.Filename)
		if err != nil {
			return nil, fmt.Errorf("bundle %s: %w", docType, err)
		}
		if _, err := w.Write(pdf.Data); err != nil {
			return nil, fmt.Errorf("bundle %s: %w", docType, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close bundle: %w", err)
	}

	return &Result{
		Data:     buf.Bytes(),
		Filename: "documents.zip",
		MimeType: "application/zip",
	}, nil
}
