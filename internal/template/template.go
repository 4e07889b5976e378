// Package template implements the label template engine. Templates are
// gzip-compressed SVG documents carrying {{name}} placeholders; filling
// substitutes an entry's key, location, quantity, and field values, XML-
// escaped so the output stays a well-formed document.
package template

import (
	"bytes"
	"compress/gzip"
	_ "embed"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"

	"github.com/openapeshop/pinv/pkg/types"
)

//go:embed builtin/avery_18160.svg.gz
var averyGZ []byte

//go:embed builtin/basic_label.svg.gz
var basicLabelGZ []byte

// builtins maps builtin template ids to their compressed bytes.
var builtins = map[string][]byte{
	"avery_18160": averyGZ,
	"basic_label": basicLabelGZ,
}

// placeholderRE matches {{name}} placeholders; names follow the field
// naming rule.
var placeholderRE = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// Doc is a decompressed, parse-checked template document.
type Doc struct {
	Name string
	text string
}

// Mode decides what happens when a template references a placeholder the
// entry's catagory does not declare.
type Mode int

const (
	// ModeStrict fails the fill with ErrUnboundPlaceholder.
	ModeStrict Mode = iota
	// ModeLenient substitutes the empty string.
	ModeLenient
)

// Load resolves a template source: a builtin id first, then a file path.
// File templates are stored gzip-compressed. Decompression or XML parse
// failure yields ErrCorruptTemplate.
func Load(source string) (*Doc, error) {
	if compressed, ok := builtins[source]; ok {
		return decode(source, bytes.NewReader(compressed))
	}

	f, err := os.Open(source)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", types.ErrTemplateNotFound, source)
		}
		return nil, fmt.Errorf("opening template %q: %w", source, err)
	}
	defer f.Close()
	return decode(source, f)
}

// Builtins lists the builtin template ids in sorted order.
func Builtins() []string {
	ids := make([]string, 0, len(builtins))
	for id := range builtins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// decode decompresses and parse-checks a template.
func decode(name string, r io.Reader) (*Doc, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", types.ErrCorruptTemplate, name, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", types.ErrCorruptTemplate, name, err)
	}
	if err := checkXML(data); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", types.ErrCorruptTemplate, name, err)
	}
	return &Doc{Name: name, text: string(data)}, nil
}

// checkXML walks the token stream to confirm the document is well-formed.
func checkXML(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Placeholders returns the distinct placeholder names in document order.
func (d *Doc) Placeholders() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRE.FindAllStringSubmatch(d.text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Fill substitutes the entry's values into the template and returns the
// resulting document bytes. Bound placeholders are key, location, and
// quantity plus every field the catagory declares (Null renders empty).
// Placeholder names are case-insensitive like field names. Unbound
// placeholders follow mode.
func Fill(doc *Doc, cat *types.Catagory, e *types.Entry, mode Mode) ([]byte, error) {
	bindings := map[string]string{
		"key":      e.Key,
		"location": e.Location,
		"quantity": strconv.FormatInt(e.Quantity, 10),
	}
	for _, f := range cat.Fields {
		v, _ := e.FieldValue(f.Name)
		bindings[f.Name] = v.Render()
	}

	var unbound error
	out := placeholderRE.ReplaceAllStringFunc(doc.text, func(m string) string {
		name := types.CanonicalName(placeholderRE.FindStringSubmatch(m)[1])
		value, ok := bindings[name]
		if !ok {
			if mode == ModeStrict && unbound == nil {
				unbound = fmt.Errorf("%w: %q in template %q", types.ErrUnboundPlaceholder, name, doc.Name)
			}
			return ""
		}
		return escape(value)
	})
	if unbound != nil {
		return nil, unbound
	}
	return []byte(out), nil
}

// FillKeys substitutes each {{key}} placeholder occurrence with a freshly
// allocated key from next, left to right. Used to print sheets of blank
// labels whose keys are not yet in the store.
func FillKeys(doc *Doc, next func() string) ([]byte, error) {
	var bad error
	out := placeholderRE.ReplaceAllStringFunc(doc.text, func(m string) string {
		name := types.CanonicalName(placeholderRE.FindStringSubmatch(m)[1])
		if name != "key" {
			if bad == nil {
				bad = fmt.Errorf("%w: %q in template %q (key sheets bind only key)", types.ErrUnboundPlaceholder, name, doc.Name)
			}
			return ""
		}
		return escape(next())
	})
	if bad != nil {
		return nil, bad
	}
	return []byte(out), nil
}

// escape renders a value safe for insertion into XML character data.
func escape(s string) string {
	var b bytes.Buffer
	// EscapeText only errors on writer failure; bytes.Buffer cannot fail.
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
