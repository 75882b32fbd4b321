// Package merge concatenates PDF documents.
package merge

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
)

// Request names and describes the merged document. Empty fields are left
// as found in the first source.
type Request struct {
	OutputName string
	Title      string
	Subject    string
	Author     string
}

// Merge concatenates the pages of sources in order. Nil sources are
// skipped. With no sources Merge returns nil; a single source is returned
// unchanged. The output is named after OutputName, or after the first
// source.
func Merge(sources []*blob.Blob, req Request, opts ...pdf.Option) (*blob.Blob, error) {
	const op = "merge"

	var srcs []*blob.Blob
	for _, s := range sources {
		if s != nil {
			srcs = append(srcs, s)
		}
	}
	switch len(srcs) {
	case 0:
		return nil, nil
	case 1:
		return srcs[0], nil
	}

	conf := pdf.NewConfig(opts...)
	docs := make([]*pdf.Document, 0, len(srcs))
	defer func() {
		for _, d := range docs {
			d.Release()
		}
	}()
	for i, s := range srcs {
		doc, err := pdf.OpenConfig(s, conf)
		if err != nil {
			return nil, pdf.E(pdf.MergeError, fmt.Sprintf("%s source %d (%s)", op, i+1, s.Filename), err)
		}
		docs = append(docs, doc)
	}

	target := docs[0]
	for i, doc := range docs[1:] {
		if err := target.Append(doc); err != nil {
			return nil, pdf.E(pdf.MergeError, fmt.Sprintf("%s source %d (%s)", op, i+2, srcs[i+1].Filename), err)
		}
	}
	if err := target.SetInfo(req.Title, req.Subject, req.Author); err != nil {
		return nil, err
	}

	name := req.OutputName
	if name == "" {
		name = srcs[0].Filename
	}
	out, err := target.Save(name)
	if err != nil {
		return nil, err
	}
	conf.Logger.WithFields(logrus.Fields{
		"sources": len(srcs),
		"pages":   target.PageCount(),
		"file":    name,
	}).Debug("merged documents")
	return out, nil
}

// Merger collects sources for a single Merge call.
type Merger struct {
	sources []*blob.Blob
	opts    []pdf.Option
}

// NewMerger returns an empty Merger whose Merge uses opts.
func NewMerger(opts ...pdf.Option) *Merger {
	return &Merger{opts: opts}
}

// Add appends a source.
func (m *Merger) Add(src *blob.Blob) *Merger {
	m.sources = append(m.sources, src)
	return m
}

// AddAll appends several sources.
func (m *Merger) AddAll(srcs ...*blob.Blob) *Merger {
	m.sources = append(m.sources, srcs...)
	return m
}

// Len returns the number of non-nil sources added so far.
func (m *Merger) Len() int {
	n := 0
	for _, s := range m.sources {
		if s != nil {
			n++
		}
	}
	return n
}

// Merge merges the collected sources.
func (m *Merger) Merge(req Request) (*blob.Blob, error) {
	return Merge(m.sources, req, m.opts...)
}
