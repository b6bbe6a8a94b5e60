package export

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"docmint/internal/docstate"
	"docmint/internal/render"
)

func stubService() *Service {
	return &Service{
		pdfFn: func(_ context.Context, _, title string) (*Result, error) {
			return &Result{
				Data:     []byte("pdf:" + sanitizeFilename(title)),
				Filename: sanitizeFilename(title) + ".pdf",
				MimeType: "application/pdf",
			}, nil
		},
		pngFn: func(_ context.Context, _, title string) (*Result, error) {
			return &Result{
				Data:     []byte("png"),
				Filename: sanitizeFilename(title) + ".png",
				MimeType: "image/png",
			}, nil
		},
	}
}

func TestExportPDF(t *testing.T) {
	svc := stubService()
	res, err := svc.Export(context.Background(), docstate.DefaultState(), Request{
		Document: render.TypePaystub,
		Format:   FormatPDF,
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.MimeType != "application/pdf" {
		t.Errorf("mime = %q", res.MimeType)
	}
	if !strings.HasSuffix(res.Filename, ".pdf") {
		t.Errorf("filename = %q", res.Filename)
	}
}

func TestExportPNG(t *testing.T) {
	svc := stubService()
	res, err := svc.Export(context.Background(), docstate.DefaultState(), Request{
		Document: render.TypeTeacherCard,
		Format:   FormatPNG,
	})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.MimeType != "image/png" {
		t.Errorf("mime = %q", res.MimeType)
	}
}

func TestExportUnknownDocument(t *testing.T) {
	svc := stubService()
	_, err := svc.Export(context.Background(), docstate.DefaultState(), Request{
		Document: "memo",
		Format:   FormatPDF,
	})
	if !errors.Is(err, render.ErrUnknownDocument) {
		t.Fatalf("err = %v", err)
	}
}

func TestExportUnsupportedFormat(t *testing.T) {
	svc := stubService()
	_, err := svc.Export(context.Background(), docstate.DefaultState(), Request{
		Document: render.TypePaystub,
		Format:   Format("docx"),
	})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("err = %v", err)
	}
}

func TestExportZipBundlesEveryType(t *testing.T) {
	svc := stubService()
	res, err := svc.Export(context.Background(), docstate.DefaultState(), Request{Format: FormatZip})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if res.MimeType != "application/zip" {
		t.Errorf("mime = %q", res.MimeType)
	}

	zr, err := zip.NewReader(bytes.NewReader(res.Data), int64(len(res.Data)))
	if err != nil {
		t.Fatalf("read zip: %v", err)
	}
	if got, want := len(zr.File), len(render.Types()); got != want {
		t.Fatalf("zip entries = %d, want %d", got, want)
	}
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".pdf") {
			t.Errorf("unexpected entry %q", f.Name)
		}
	}
}

func TestExportZipPropagatesRenderErrors(t *testing.T) {
	svc := stubService()
	svc.pdfFn = func(context.Context, string, string) (*Result, error) {
		return nil, errors.New("chrome gone")
	}
	if _, err := svc.Export(context.Background(), docstate.DefaultState(), Request{Format: FormatZip}); err == nil {
		t.Fatal("expected error")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Earnings Statement", "Earnings-Statement"},
		{"Form W-2 Wage and Tax Statement", "Form-W-2-Wage-and-Tax-Statement"},
		{"Special!@#$%Chars", "SpecialChars"},
		{"", "document"},
		{"Very Long Title That Exceeds Fifty Characters Limit", "Very-Long-Title-That-Exceeds-Fifty-Characters-Limi"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := sanitizeFilename(tt.input); got != tt.expected {
				t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestPercentEncodeForDataURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"hello world", "hello%20world"},
		{"test+sign", "test%2Bsign"},
		{"special<>", "special%3C%3E"},
		{"normal-text.txt", "normal-text.txt"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := percentEncodeForDataURL(tt.input); got != tt.expected {
				t.Errorf("percentEncodeForDataURL(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
