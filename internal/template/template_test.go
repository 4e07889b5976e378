// Unit tests for the label template engine.
package template

import (
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openapeshop/pinv/pkg/types"
)

// writeTemplate gzips an SVG document into a temp file and returns its path.
func writeTemplate(t *testing.T, svg string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "label.svg.gz")

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(svg))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func fillCatagory(t *testing.T) *types.Catagory {
	t.Helper()
	cat, err := types.NewCatagory("ics", []types.FieldDef{
		{Name: "mfn", Type: types.FieldText},
		{Name: "pins", Type: types.FieldInteger},
	})
	require.NoError(t, err)
	return cat
}

func fillEntry(fields map[string]types.Value) *types.Entry {
	return &types.Entry{
		Key:        "a2V5MQ",
		CatagoryID: "ics",
		Location:   "bin 4",
		Quantity:   50,
		Fields:     fields,
	}
}

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg">` +
	`<text>{{key}}</text><text>{{location}}</text>` +
	`<text>qty {{quantity}}</text><text>{{mfn}}</text></svg>`

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T)
	}{
		{
			name: "builtins load and expose placeholders",
			check: func(t *testing.T) {
				doc, err := Load("basic_label")
				require.NoError(t, err)
				names := doc.Placeholders()
				assert.Contains(t, names, "key")
				assert.Contains(t, names, "location")
				assert.Contains(t, names, "quantity")
			},
		},
		{
			name: "avery sheet binds only keys",
			check: func(t *testing.T) {
				doc, err := Load("avery_18160")
				require.NoError(t, err)
				assert.Equal(t, []string{"key"}, doc.Placeholders())
			},
		},
		{
			name: "file template loads by path",
			check: func(t *testing.T) {
				path := writeTemplate(t, testSVG)
				doc, err := Load(path)
				require.NoError(t, err)
				assert.Equal(t, []string{"key", "location", "quantity", "mfn"}, doc.Placeholders())
			},
		},
		{
			name: "missing file yields ErrTemplateNotFound",
			check: func(t *testing.T) {
				_, err := Load(filepath.Join(t.TempDir(), "nope.svg.gz"))
				assert.ErrorIs(t, err, types.ErrTemplateNotFound)
			},
		},
		{
			name: "non-gzip file yields ErrCorruptTemplate",
			check: func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "raw.svg.gz")
				require.NoError(t, os.WriteFile(path, []byte(testSVG), 0o644))
				_, err := Load(path)
				assert.ErrorIs(t, err, types.ErrCorruptTemplate)
			},
		},
		{
			name: "malformed XML yields ErrCorruptTemplate",
			check: func(t *testing.T) {
				path := writeTemplate(t, "<svg><text>unclosed</svg>")
				_, err := Load(path)
				assert.ErrorIs(t, err, types.ErrCorruptTemplate)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t)
		})
	}
}

func TestBuiltins(t *testing.T) {
	assert.Equal(t, []string{"avery_18160", "basic_label"}, Builtins())
}

func TestFill(t *testing.T) {
	cat := fillCatagory(t)

	tests := []struct {
		name  string
		check func(t *testing.T)
	}{
		{
			name: "fill substitutes entry values",
			check: func(t *testing.T) {
				doc, err := Load(writeTemplate(t, testSVG))
				require.NoError(t, err)

				e := fillEntry(map[string]types.Value{
					"mfn":  types.Text("NE555"),
					"pins": types.Integer(8),
				})
				out, err := Fill(doc, cat, e, ModeStrict)
				require.NoError(t, err)

				svg := string(out)
				assert.Contains(t, svg, "<text>a2V5MQ</text>")
				assert.Contains(t, svg, "<text>bin 4</text>")
				assert.Contains(t, svg, "qty 50")
				assert.Contains(t, svg, "NE555")
				assert.NotContains(t, svg, "{{")
			},
		},
		{
			name: "values are XML-escaped",
			check: func(t *testing.T) {
				doc, err := Load(writeTemplate(t, `<svg><text>{{mfn}}</text></svg>`))
				require.NoError(t, err)

				e := fillEntry(map[string]types.Value{
					"mfn": types.Text(`<&"'>`),
				})
				out, err := Fill(doc, cat, e, ModeStrict)
				require.NoError(t, err)

				assert.NotContains(t, string(out), "<&")
				assert.NoError(t, checkXML(out), "filled document must stay well-formed")
			},
		},
		{
			name: "null fields render empty",
			check: func(t *testing.T) {
				doc, err := Load(writeTemplate(t, `<svg><text>[{{mfn}}]</text></svg>`))
				require.NoError(t, err)

				e := fillEntry(map[string]types.Value{"mfn": types.Null})
				out, err := Fill(doc, cat, e, ModeStrict)
				require.NoError(t, err)
				assert.Contains(t, string(out), "[]")
			},
		},
		{
			name: "placeholder names are case-insensitive",
			check: func(t *testing.T) {
				doc, err := Load(writeTemplate(t, `<svg><text>{{KEY}}</text></svg>`))
				require.NoError(t, err)

				out, err := Fill(doc, cat, fillEntry(nil), ModeStrict)
				require.NoError(t, err)
				assert.Contains(t, string(out), "a2V5MQ")
			},
		},
		{
			name: "strict mode fails on unbound placeholder",
			check: func(t *testing.T) {
				doc, err := Load(writeTemplate(t, `<svg><text>{{bogus}}</text></svg>`))
				require.NoError(t, err)

				_, err = Fill(doc, cat, fillEntry(nil), ModeStrict)
				assert.ErrorIs(t, err, types.ErrUnboundPlaceholder)
			},
		},
		{
			name: "lenient mode blanks unbound placeholders",
			check: func(t *testing.T) {
				doc, err := Load(writeTemplate(t, `<svg><text>[{{bogus}}]</text></svg>`))
				require.NoError(t, err)

				out, err := Fill(doc, cat, fillEntry(nil), ModeLenient)
				require.NoError(t, err)
				assert.Contains(t, string(out), "[]")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t)
		})
	}
}

func TestFillKeys(t *testing.T) {
	t.Run("each key slot gets its own fresh key", func(t *testing.T) {
		doc, err := Load(writeTemplate(t,
			`<svg><text>{{key}}</text><text>{{key}}</text><text>{{key}}</text></svg>`))
		require.NoError(t, err)

		n := 0
		out, err := FillKeys(doc, func() string {
			n++
			return strings.Repeat("k", n)
		})
		require.NoError(t, err)
		assert.Equal(t, 3, n)
		assert.Contains(t, string(out), "<text>k</text>")
		assert.Contains(t, string(out), "<text>kk</text>")
		assert.Contains(t, string(out), "<text>kkk</text>")
	})

	t.Run("non-key placeholder rejected", func(t *testing.T) {
		doc, err := Load(writeTemplate(t, `<svg><text>{{key}}</text><text>{{mfn}}</text></svg>`))
		require.NoError(t, err)

		_, err = FillKeys(doc, func() string { return "k" })
		assert.ErrorIs(t, err, types.ErrUnboundPlaceholder)
	})

	t.Run("avery builtin fills thirty labels", func(t *testing.T) {
		doc, err := Load("avery_18160")
		require.NoError(t, err)

		count := len(placeholderRE.FindAllString(doc.text, -1))
		n := 0
		_, err = FillKeys(doc, func() string {
			n++
			return "a2V5MQ"
		})
		require.NoError(t, err)
		assert.Equal(t, count, n)
		assert.Equal(t, 30, n)
	})
}
