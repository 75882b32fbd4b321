package pdf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
)

// Document is an opened PDF. It is owned by the operation that opened it
// and must be released on every exit path.
type Document struct {
	ctx  *model.Context
	rs   io.Closer
	conf *Config
	log  logrus.FieldLogger

	fonts    map[string]*types.IndirectRef
	released bool
}

// headerWindow is how far into the file the %PDF- marker may appear.
const headerWindow = 1024

// Open reads and validates src.
func Open(src *blob.Blob, opts ...Option) (*Document, error) {
	return OpenConfig(src, NewConfig(opts...))
}

// OpenConfig is Open with a prepared config.
func OpenConfig(src *blob.Blob, conf *Config) (doc *Document, err error) {
	const op = "open"
	if src == nil {
		return nil, Errorf(ParseError, op, "no source document")
	}
	log := conf.Logger.WithField("file", src.Filename)

	rs, err := src.Open()
	if err != nil {
		return nil, E(IOError, op, err)
	}
	defer func() {
		if err != nil {
			rs.Close()
		}
	}()

	if err := checkHeader(rs); err != nil {
		return nil, E(ParseError, op, err)
	}

	// pdfcpu panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = Errorf(ParseError, op, "failed to read PDF: %v", r)
		}
	}()

	ctx, err := api.ReadContext(rs, conf.Model())
	if err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			return nil, E(BadPassword, op, err)
		}
		return nil, E(ParseError, op, errors.Wrap(err, "failed to read PDF context"))
	}

	// Readable documents that fail validation are still processed unless
	// strict validation was requested.
	if err := api.ValidateContext(ctx); err != nil {
		if conf.StrictValidation {
			return nil, E(ParseError, op, errors.Wrap(err, "invalid PDF"))
		}
		log.WithError(err).Warn("document failed validation")
		if err := ctx.EnsurePageCount(); err != nil {
			return nil, E(ParseError, op, errors.Wrap(err, "failed to count pages"))
		}
	}

	log.WithField("pages", ctx.PageCount).Debug("opened document")

	return &Document{
		ctx:   ctx,
		rs:    rs,
		conf:  conf,
		log:   log,
		fonts: make(map[string]*types.IndirectRef),
	}, nil
}

func checkHeader(rs io.ReadSeeker) error {
	buf := make([]byte, headerWindow)
	n, err := io.ReadFull(rs, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return errors.Wrap(err, "failed to read header")
	}
	if !bytes.Contains(buf[:n], []byte("%PDF-")) {
		return errors.New("not a PDF document: missing %PDF- header")
	}
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return errors.Wrap(err, "failed to rewind")
	}
	return nil
}

// Context exposes the underlying pdfcpu context.
func (d *Document) Context() *model.Context {
	return d.ctx
}

// Logger returns the document scoped logger.
func (d *Document) Logger() logrus.FieldLogger {
	return d.log
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return d.ctx.PageCount
}

// Version returns the PDF version, e.g. "1.7".
func (d *Document) Version() string {
	return d.ctx.XRefTable.Version().String()
}

// Encrypted reports whether the source document was encrypted.
func (d *Document) Encrypted() bool {
	return d.ctx.Encrypt != nil
}

// Catalog returns the document catalog.
func (d *Document) Catalog() (types.Dict, error) {
	cat, err := d.ctx.Catalog()
	if err != nil {
		return nil, E(ParseError, "catalog", err)
	}
	return cat, nil
}

// InfoDict returns the document information dictionary. When create is set
// a missing dictionary is added to the document.
func (d *Document) InfoDict(create bool) (types.Dict, error) {
	if d.ctx.Info == nil {
		if !create {
			return nil, nil
		}
		info := types.NewDict()
		ref, err := d.ctx.IndRefForNewObject(info)
		if err != nil {
			return nil, fmt.Errorf("failed to create info dict: %w", err)
		}
		d.ctx.Info = ref
		return info, nil
	}
	info, err := d.ctx.DereferenceDict(*d.ctx.Info)
	if err != nil {
		return nil, fmt.Errorf("failed to dereference info dict: %w", err)
	}
	return info, nil
}

// SetInfo sets title, subject and author. Empty values leave the existing
// entries untouched.
func (d *Document) SetInfo(title, subject, author string) error {
	if title == "" && subject == "" && author == "" {
		return nil
	}
	info, err := d.InfoDict(true)
	if err != nil {
		return E(IOError, "set info", err)
	}
	for key, value := range map[string]string{"Title": title, "Subject": subject, "Author": author} {
		if value != "" {
			info[key] = EncodeText(value)
		}
	}
	return nil
}

// Save serializes the document into a new temporary file. The temp file is
// removed again when writing fails.
func (d *Document) Save(filename string) (*blob.Blob, error) {
	const op = "save"
	if d.released {
		return nil, Errorf(InvalidStateError, op, "document already released")
	}

	f, err := blob.NewTempFile(d.conf.TempDir)
	if err != nil {
		return nil, E(IOError, op, err)
	}
	path := f.Name()

	if err := api.WriteContext(d.ctx, f); err != nil {
		f.Close()
		d.removeTemp(path)
		return nil, E(IOError, op, errors.Wrap(err, "failed to write PDF"))
	}
	if err := f.Close(); err != nil {
		d.removeTemp(path)
		return nil, E(IOError, op, errors.Wrap(err, "failed to close output"))
	}

	if d.conf.Tracker != nil {
		d.conf.Tracker.Track(path)
	}
	d.log.WithField("output", path).Debug("saved document")
	return blob.FromTempFile(path, filename, blob.MimeTypePDF), nil
}

func (d *Document) removeTemp(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		d.log.WithError(err).Error("failed to remove temp file")
	}
}

// Release closes the source reader. It is safe to call more than once and
// never fails: cleanup errors are logged.
func (d *Document) Release() {
	if d == nil || d.released {
		return
	}
	d.released = true
	if d.rs != nil {
		if err := d.rs.Close(); err != nil {
			d.log.WithError(err).Error("failed to close source")
		}
	}
	d.ctx = nil
	d.fonts = nil
}
