package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/pkg/errors"
)

// Append moves every page of src behind the pages of d. The objects of src
// are renumbered into d, so src may only be released afterwards.
func (d *Document) Append(src *Document) error {
	if d.ctx.XRefTable.Version() < model.V20 && src.ctx.XRefTable.Version() == model.V20 {
		return pdfcpu.ErrUnsupportedVersion
	}

	d.ctx.Configuration.Cmd = model.MERGECREATE
	d.ctx.Configuration.CreateBookmarks = false
	d.ctx.EnsureVersionForWriting()

	want := d.ctx.PageCount + src.ctx.PageCount
	if err := pdfcpu.MergeXRefTables("", src.ctx, d.ctx, false, false); err != nil {
		return errors.Wrap(err, "failed to merge cross reference tables")
	}
	// the page tree is left alone when either root is inconsistent
	if d.ctx.PageCount != want {
		return errors.Errorf("corrupt page tree: have %d pages, want %d", d.ctx.PageCount, want)
	}
	return nil
}

// infoKeys are carried over when the page tree is rebuilt.
var infoKeys = []string{"Title", "Author", "Subject", "Keywords", "Creator", "Producer", "CreationDate", "ModDate"}

// KeepPages rebuilds the document from pageNrs, in order. Catalog entries
// pointing at dropped pages are gone afterwards.
func (d *Document) KeepPages(pageNrs []int) (err error) {
	for _, nr := range pageNrs {
		if nr < 1 || nr > d.ctx.PageCount {
			return Errorf(PageRangeError, "keep pages", "page number %d out of range [1, %d]", nr, d.ctx.PageCount)
		}
	}

	info, err := d.InfoDict(false)
	if err != nil {
		return err
	}

	// pdfcpu panics on pages without a media box.
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("failed to extract pages: %v", r)
		}
	}()

	ctx, err := pdfcpu.ExtractPages(d.ctx, pageNrs, false)
	if err != nil {
		return errors.Wrap(err, "failed to extract pages")
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return errors.Wrap(err, "failed to count extracted pages")
	}

	if info != nil {
		kept := types.NewDict()
		for _, key := range infoKeys {
			obj, err := d.ctx.Dereference(info[key])
			if err != nil || obj == nil {
				continue
			}
			kept[key] = obj
		}
		if len(kept) > 0 {
			ref, err := ctx.IndRefForNewObject(kept)
			if err != nil {
				return errors.Wrap(err, "failed to add info dict")
			}
			ctx.Info = ref
		}
	}

	d.ctx = ctx
	d.fonts = make(map[string]*types.IndirectRef)
	return nil
}
