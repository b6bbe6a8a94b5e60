// Package export turns rendered document HTML into downloadable
// artifacts: a single PDF or PNG, or a zip bundle with every document
// type for the current state.
package export

import "errors"

// Format is the export output format.
type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
	FormatZip Format = "zip"
)

// Request contains parameters for an export operation. Document is
// ignored for the zip format, which always bundles every type.
type Request struct {
	Document string
	Format   Format
}

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

var (
	// ErrUnsupportedFormat indicates a format outside pdf, png and zip.
	ErrUnsupportedFormat = errors.New("export format unsupported")
	// ErrChromeMissing indicates the headless Chrome runtime dependency
	// is unavailable on this host.
	ErrChromeMissing = errors.New("export chrome dependency missing")
)
