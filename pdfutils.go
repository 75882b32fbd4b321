// Package pdfutils reads, splits, merges, numbers and watermarks PDF
// documents. It re-exports the entry points of the pkg/ packages.
package pdfutils

import (
	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/info"
	"github.com/pyhub-apps/pdfutils-golang/pkg/merge"
	"github.com/pyhub-apps/pdfutils-golang/pkg/numbering"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pages"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
	"github.com/pyhub-apps/pdfutils-golang/pkg/text"
	"github.com/pyhub-apps/pdfutils-golang/pkg/watermark"
)

// Re-export types for the public API
type (
	Blob         = blob.Blob
	TempRegistry = blob.TempRegistry
	Option       = pdf.Option
	Error        = pdf.Error
	Info         = info.Info
	Fields       = info.Fields
	Meta         = pages.Meta
	NumberSpec   = numbering.Spec
	Watermark    = watermark.Spec
	Properties   = watermark.Properties
	MergeRequest = merge.Request
)

// Re-export option functions
var (
	WithPassword         = pdf.WithPassword
	WithTempDir          = pdf.WithTempDir
	WithLogger           = pdf.WithLogger
	WithTracker          = pdf.WithTracker
	WithStrictValidation = pdf.WithStrictValidation
)

// Re-export blob constructors
var (
	FromFile  = blob.FromFile
	FromBytes = blob.FromBytes
)

// ReadInfo returns the metadata of a document.
func ReadInfo(src *Blob, opts ...Option) (*Info, error) {
	return info.NewReader(src, opts...).Read()
}

// ExtractText returns the plain text of all pages.
func ExtractText(src *Blob, opts ...Option) (string, error) {
	return text.NewExtractor(src, opts...).Text()
}

// ExtractPages copies pages start..end into a new document.
func ExtractPages(src *Blob, start, end int, meta Meta, opts ...Option) (*Blob, error) {
	return pages.Extract(src, start, end, meta, opts...)
}

// AddPageNumbers stamps running page numbers.
func AddPageNumbers(src *Blob, spec NumberSpec, opts ...Option) (*Blob, error) {
	return numbering.AddPageNumbers(src, spec, opts...)
}

// ApplyWatermark stamps a text, image or PDF watermark on every page.
func ApplyWatermark(src *Blob, spec Watermark, opts ...Option) (*Blob, error) {
	return watermark.Apply(src, spec, opts...)
}

// Merge concatenates documents.
func Merge(sources []*Blob, req MergeRequest, opts ...Option) (*Blob, error) {
	return merge.Merge(sources, req, opts...)
}
