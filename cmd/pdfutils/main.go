package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/pyhub-apps/pdfutils-golang/pkg/blob"
	"github.com/pyhub-apps/pdfutils-golang/pkg/geometry"
	"github.com/pyhub-apps/pdfutils-golang/pkg/info"
	"github.com/pyhub-apps/pdfutils-golang/pkg/merge"
	"github.com/pyhub-apps/pdfutils-golang/pkg/numbering"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pages"
	"github.com/pyhub-apps/pdfutils-golang/pkg/pdf"
	"github.com/pyhub-apps/pdfutils-golang/pkg/text"
	"github.com/pyhub-apps/pdfutils-golang/pkg/watermark"
)

const usage = `Usage: pdfutils <command> [flags] <file.pdf>...

Commands:
  info       print document information
  text       print the document text
  extract    copy a page range into a new file
  number     add page numbers
  watermark  stamp text, an image or a PDF page on every page
  merge      concatenate documents
`

type command func(args []string, log *logrus.Logger) error

var commands = map[string]command{
	"info":      runInfo,
	"text":      runText,
	"extract":   runExtract,
	"number":    runNumber,
	"watermark": runWatermark,
	"merge":     runMerge,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	if err := cmd(os.Args[2:], log); err != nil {
		log.WithField("kind", pdf.KindOf(err)).Error(err)
		os.Exit(1)
	}
}

// commonFlags registers the flags every command accepts.
type commonFlags struct {
	password string
	output   string
	verbose  bool
}

func newFlagSet(name string, c *commonFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.StringVar(&c.password, "password", "", "password of encrypted input")
	fs.StringVar(&c.output, "o", "", "output file")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")
	return fs
}

func (c *commonFlags) options(log *logrus.Logger) []pdf.Option {
	if c.verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return []pdf.Option{pdf.WithPassword(c.password), pdf.WithLogger(log)}
}

func oneInput(fs *flag.FlagSet) (*blob.Blob, error) {
	if fs.NArg() != 1 {
		return nil, fmt.Errorf("%s: expected one input file, got %d", fs.Name(), fs.NArg())
	}
	return blob.FromFile(fs.Arg(0)), nil
}

// writeOutput copies a temporary result to path, defaulting to the
// result's own filename next to the input.
func writeOutput(out *blob.Blob, path, inputDir string, log *logrus.Logger) error {
	if out.IsTemp() {
		defer os.Remove(out.Path())
	}
	if path == "" {
		path = filepath.Join(inputDir, out.Filename)
	}
	r, err := out.Open()
	if err != nil {
		return err
	}
	defer r.Close()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.WithField("file", path).Info("written")
	return nil
}

func runInfo(args []string, log *logrus.Logger) error {
	var c commonFlags
	fs := newFlagSet("info", &c)
	xmp := fs.Bool("xmp", false, "include XMP metadata")
	fs.Parse(args)

	src, err := oneInput(fs)
	if err != nil {
		return err
	}
	r := info.NewReader(src, c.options(log)...)
	if err := r.SetParseWithXMP(*xmp); err != nil {
		return err
	}
	fields, err := infoFields(r, src)
	if err != nil {
		return err
	}
	printTable(os.Stdout, fields)

	if *xmp {
		meta, err := r.Read()
		if err != nil {
			return err
		}
		if meta.XMP != nil {
			fmt.Println()
			fmt.Println(*meta.XMP)
		}
	}
	return nil
}

// infoFields is the document information followed by the content digest.
func infoFields(r *info.Reader, src *blob.Blob) (info.Fields, error) {
	fields, err := r.Fields()
	if err != nil {
		return nil, err
	}
	digest, err := src.Digest()
	if err != nil {
		return nil, err
	}
	return append(fields, info.Field{Key: "Digest (BLAKE2b-256)", Value: digest}), nil
}

// printTable aligns keys by display width so that wide characters in
// values and keys do not break the columns.
func printTable(w io.Writer, fields info.Fields) {
	width := 0
	for _, f := range fields {
		if n := runewidth.StringWidth(f.Key); n > width {
			width = n
		}
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(f.Key, width), f.Value)
	}
}

func runText(args []string, log *logrus.Logger) error {
	var c commonFlags
	fs := newFlagSet("text", &c)
	needle := fs.String("line", "", "print only the first line containing this text")
	tail := fs.Bool("tail", false, "with -line, print only the text after the match")
	fs.Parse(args)

	src, err := oneInput(fs)
	if err != nil {
		return err
	}
	ex := text.NewExtractor(src, c.options(log)...)

	if *needle == "" {
		s, err := ex.Text()
		if err != nil {
			return err
		}
		fmt.Println(s)
		return nil
	}

	lookup := ex.LineContaining
	if *tail {
		lookup = ex.Tail
	}
	s, found, err := lookup(*needle)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%q not found", *needle)
	}
	fmt.Println(s)
	return nil
}

func runExtract(args []string, log *logrus.Logger) error {
	var c commonFlags
	var meta pages.Meta
	fs := newFlagSet("extract", &c)
	start := fs.Int("start", 1, "first page")
	end := fs.Int("end", 1, "last page")
	fs.StringVar(&meta.Title, "title", "", "document title")
	fs.StringVar(&meta.Subject, "subject", "", "document subject")
	fs.StringVar(&meta.Author, "author", "", "document author")
	fs.Parse(args)

	src, err := oneInput(fs)
	if err != nil {
		return err
	}
	out, err := pages.Extract(src, *start, *end, meta, c.options(log)...)
	if err != nil {
		return err
	}
	return writeOutput(out, c.output, filepath.Dir(src.Path()), log)
}

func runNumber(args []string, log *logrus.Logger) error {
	var c commonFlags
	var spec numbering.Spec
	fs := newFlagSet("number", &c)
	fs.IntVar(&spec.StartAtPage, "start-page", 1, "first page to number")
	fs.IntVar(&spec.StartAtNumber, "start-number", 1, "number of the first numbered page")
	fs.StringVar(&spec.FontFamily, "font", pdf.DefaultFont, "standard font name")
	fs.Float64Var(&spec.FontSize, "size", numbering.DefaultFontSize, "font size")
	fs.StringVar(&spec.Color, "color", "#000000", "hex color")
	fs.TextVar(&spec.Position, "position", geometry.BottomRight, "bottom-left, bottom-center, bottom-right, top-left, top-center or top-right")
	fs.Parse(args)

	src, err := oneInput(fs)
	if err != nil {
		return err
	}
	out, err := numbering.AddPageNumbers(src, spec, c.options(log)...)
	if err != nil {
		return err
	}
	if c.output == "" {
		c.output = suffixed(src.Path(), "-numbered")
	}
	return writeOutput(out, c.output, "", log)
}

func runWatermark(args []string, log *logrus.Logger) error {
	var c commonFlags
	fs := newFlagSet("watermark", &c)
	textFlag := fs.String("text", "", "watermark text")
	propsFile := fs.String("props", "", "YAML file with text watermark properties")
	imageFile := fs.String("image", "", "image to stamp")
	overlayFile := fs.String("pdf", "", "PDF whose first page is stamped")
	x := fs.Float64("x", 0, "x position")
	y := fs.Float64("y", 0, "y position")
	scale := fs.Float64("scale", 1, "image or overlay scale")
	fs.Parse(args)

	src, err := oneInput(fs)
	if err != nil {
		return err
	}

	var spec watermark.Spec
	switch {
	case *imageFile != "":
		spec = watermark.NewImageSpec(blob.FromFile(*imageFile), *x, *y, *scale)
	case *overlayFile != "":
		spec = watermark.NewPDFSpec(blob.FromFile(*overlayFile), *x, *y, *scale)
	default:
		props := watermark.Properties{X: *x, Y: *y}
		if *propsFile != "" {
			f, err := os.Open(*propsFile)
			if err != nil {
				return fmt.Errorf("failed to open properties: %w", err)
			}
			props, err = watermark.LoadProperties(f)
			f.Close()
			if err != nil {
				return err
			}
		}
		spec = watermark.NewTextSpec(*textFlag, props)
	}

	out, err := watermark.Apply(src, spec, c.options(log)...)
	if err != nil {
		return err
	}
	if c.output == "" {
		c.output = suffixed(src.Path(), "-watermarked")
	}
	return writeOutput(out, c.output, "", log)
}

func runMerge(args []string, log *logrus.Logger) error {
	var c commonFlags
	var req merge.Request
	fs := newFlagSet("merge", &c)
	fs.StringVar(&req.Title, "title", "", "document title")
	fs.StringVar(&req.Subject, "subject", "", "document subject")
	fs.StringVar(&req.Author, "author", "", "document author")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return fmt.Errorf("merge: expected at least two input files")
	}
	m := merge.NewMerger(c.options(log)...)
	for _, path := range fs.Args() {
		m.Add(blob.FromFile(path))
	}
	if c.output != "" {
		req.OutputName = filepath.Base(c.output)
	} else {
		c.output = suffixed(fs.Arg(0), "-merged")
	}

	out, err := m.Merge(req)
	if err != nil {
		return err
	}
	return writeOutput(out, c.output, "", log)
}

// suffixed inserts suffix before the extension of path.
func suffixed(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
