// Unit tests for entry store operations.
package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openapeshop/pinv/pkg/types"
)

func TestCreateEntry(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "create hydrates unspecified fields as null",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				e, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 5, map[string]types.Value{
					"mfn": types.Text("NE555"),
				})
				require.NoError(t, err)

				assert.Equal(t, "a2V5MQ", e.Key)
				assert.Equal(t, "ics", e.CatagoryID)
				assert.Equal(t, int64(5), e.Quantity)
				require.Len(t, e.Fields, 3)

				v, _ := e.FieldValue("mfn")
				assert.True(t, types.Text("NE555").Equal(v))
				v, _ = e.FieldValue("pins")
				assert.True(t, v.IsNull())
				v, _ = e.FieldValue("max_volts")
				assert.True(t, v.IsNull())
			},
		},
		{
			name: "create round-trips typed values",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, map[string]types.Value{
					"mfn":       types.Text("NE555"),
					"pins":      types.Integer(8),
					"max_volts": types.Real(16.5),
				})
				require.NoError(t, err)

				e, err := b.Entry("a2V5MQ")
				require.NoError(t, err)
				v, _ := e.FieldValue("pins")
				assert.True(t, types.Integer(8).Equal(v))
				v, _ = e.FieldValue("max_volts")
				assert.True(t, types.Real(16.5).Equal(v))
			},
		},
		{
			name: "empty text survives distinct from null",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, map[string]types.Value{
					"mfn": types.Text(""),
				})
				require.NoError(t, err)

				e, err := b.Entry("a2V5MQ")
				require.NoError(t, err)
				v, _ := e.FieldValue("mfn")
				assert.Equal(t, types.KindText, v.Kind())
				assert.False(t, v.IsNull())
			},
		},
		{
			name: "field names match case-insensitively",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				e, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, map[string]types.Value{
					"MFN": types.Text("NE555"),
				})
				require.NoError(t, err)
				v, ok := e.FieldValue("mfn")
				require.True(t, ok)
				assert.True(t, types.Text("NE555").Equal(v))
			},
		},
		{
			name: "duplicate key rejected across catagories",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.DefineCatagory("resistors", []types.FieldDef{{Name: "ohms", Type: types.FieldReal}})
				require.NoError(t, err)

				_, err = b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, nil)
				require.NoError(t, err)
				_, err = b.CreateEntry("resistors", "a2V5MQ", "bin 5", 1, nil)
				assert.ErrorIs(t, err, types.ErrDuplicateKey)
			},
		},
		{
			name: "empty key rejected",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "", "bin 4", 1, nil)
				assert.ErrorIs(t, err, types.ErrInvalidKey)
			},
		},
		{
			name: "negative quantity rejected",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", -1, nil)
				assert.ErrorIs(t, err, types.ErrNegativeQuantity)
			},
		},
		{
			name: "undeclared field rejected before any write",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, map[string]types.Value{
					"bogus": types.Text("x"),
				})
				require.ErrorIs(t, err, types.ErrUnknownField)

				_, err = b.Entry("a2V5MQ")
				assert.ErrorIs(t, err, types.ErrEntryNotFound)
			},
		},
		{
			name: "type mismatch rejected",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, map[string]types.Value{
					"pins": types.Text("eight"),
				})
				assert.ErrorIs(t, err, types.ErrTypeMismatch)
			},
		},
		{
			name: "unknown catagory rejected",
			check: func(t *testing.T, b *Backend) {
				_, err := b.CreateEntry("missing", "a2V5MQ", "bin 4", 1, nil)
				assert.ErrorIs(t, err, types.ErrCatagoryNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			tt.check(t, b)
		})
	}
}

func TestEntryLookup(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "unknown key returns ErrEntryNotFound",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.Entry("bm9wZQ")
				assert.ErrorIs(t, err, types.ErrEntryNotFound)
			},
		},
		{
			name: "entries lists in insertion order",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				for _, key := range []string{"a2V5MQ", "a2V5Mg", "a2V5Mw"} {
					_, err := b.CreateEntry("ics", key, "bin", 1, nil)
					require.NoError(t, err)
				}

				entries, err := b.Entries("ics")
				require.NoError(t, err)
				require.Len(t, entries, 3)
				assert.Equal(t, "a2V5MQ", entries[0].Key)
				assert.Equal(t, "a2V5Mg", entries[1].Key)
				assert.Equal(t, "a2V5Mw", entries[2].Key)
			},
		},
		{
			name: "entries of an empty catagory is empty",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				entries, err := b.Entries("ics")
				require.NoError(t, err)
				assert.Empty(t, entries)
			},
		},
		{
			name: "drifted stored value surfaces as ErrCorruptEntry",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin", 1, nil)
				require.NoError(t, err)

				_, err = b.db.Exec(
					"UPDATE entry_fields SET value = 'not-a-number' WHERE entry_key = ? AND name = 'pins'",
					"a2V5MQ")
				require.NoError(t, err)

				_, err = b.Entry("a2V5MQ")
				assert.ErrorIs(t, err, types.ErrCorruptEntry)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			tt.check(t, b)
		})
	}
}

func TestModifyEntry(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "partial update leaves unlisted fields alone",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, map[string]types.Value{
					"mfn":  types.Text("NE555"),
					"pins": types.Integer(8),
				})
				require.NoError(t, err)

				_, err = b.ModifyEntry("a2V5MQ", map[string]types.Value{
					"pins": types.Integer(14),
				}, nil)
				require.NoError(t, err)

				e, err := b.Entry("a2V5MQ")
				require.NoError(t, err)
				v, _ := e.FieldValue("pins")
				assert.True(t, types.Integer(14).Equal(v))
				v, _ = e.FieldValue("mfn")
				assert.True(t, types.Text("NE555").Equal(v))
				assert.Equal(t, "bin 4", e.Location)
			},
		},
		{
			name: "explicit null clears a field",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, map[string]types.Value{
					"mfn": types.Text("NE555"),
				})
				require.NoError(t, err)

				_, err = b.ModifyEntry("a2V5MQ", map[string]types.Value{
					"mfn": types.Null,
				}, nil)
				require.NoError(t, err)

				e, err := b.Entry("a2V5MQ")
				require.NoError(t, err)
				v, _ := e.FieldValue("mfn")
				assert.True(t, v.IsNull())
			},
		},
		{
			name: "location updates when given",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, nil)
				require.NoError(t, err)

				loc := "shelf 2"
				e, err := b.ModifyEntry("a2V5MQ", nil, &loc)
				require.NoError(t, err)
				assert.Equal(t, "shelf 2", e.Location)
			},
		},
		{
			name: "modify can fill a field added after creation",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, nil)
				require.NoError(t, err)
				_, err = b.AddField("ics", "package", types.FieldText)
				require.NoError(t, err)

				_, err = b.ModifyEntry("a2V5MQ", map[string]types.Value{
					"package": types.Text("DIP-8"),
				}, nil)
				require.NoError(t, err)

				e, err := b.Entry("a2V5MQ")
				require.NoError(t, err)
				v, _ := e.FieldValue("package")
				assert.True(t, types.Text("DIP-8").Equal(v))
			},
		},
		{
			name: "modify bumps modified and keeps created",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				created, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, nil)
				require.NoError(t, err)

				e, err := b.ModifyEntry("a2V5MQ", map[string]types.Value{
					"pins": types.Integer(8),
				}, nil)
				require.NoError(t, err)
				assert.Equal(t, created.Created.Unix(), e.Created.Unix())
				assert.False(t, e.Modified.Before(created.Modified))
			},
		},
		{
			name: "unknown field rejected without writing",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, nil)
				require.NoError(t, err)

				loc := "shelf 2"
				_, err = b.ModifyEntry("a2V5MQ", map[string]types.Value{
					"bogus": types.Text("x"),
				}, &loc)
				require.ErrorIs(t, err, types.ErrUnknownField)

				e, err := b.Entry("a2V5MQ")
				require.NoError(t, err)
				assert.Equal(t, "bin 4", e.Location, "failed update must not move the entry")
			},
		},
		{
			name: "unknown key rejected",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.ModifyEntry("bm9wZQ", nil, nil)
				assert.ErrorIs(t, err, types.ErrEntryNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			tt.check(t, b)
		})
	}
}

func TestAdjustQuantity(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "give adds stock",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 5, nil)
				require.NoError(t, err)

				e, err := b.AdjustQuantity("a2V5MQ", 3)
				require.NoError(t, err)
				assert.Equal(t, int64(8), e.Quantity)
			},
		},
		{
			name: "take removes stock down to zero",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 5, nil)
				require.NoError(t, err)

				e, err := b.AdjustQuantity("a2V5MQ", -5)
				require.NoError(t, err)
				assert.Equal(t, int64(0), e.Quantity)
			},
		},
		{
			name: "overdraw fails and leaves quantity untouched",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 5, nil)
				require.NoError(t, err)

				_, err = b.AdjustQuantity("a2V5MQ", -6)
				require.ErrorIs(t, err, types.ErrInsufficientQuantity)

				e, err := b.Entry("a2V5MQ")
				require.NoError(t, err)
				assert.Equal(t, int64(5), e.Quantity)
			},
		},
		{
			name: "unknown key rejected",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.AdjustQuantity("bm9wZQ", 1)
				assert.ErrorIs(t, err, types.ErrEntryNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			tt.check(t, b)
		})
	}
}

func TestDeleteEntry(t *testing.T) {
	tests := []struct {
		name  string
		check func(t *testing.T, b *Backend)
	}{
		{
			name: "delete removes the entry and frees its key",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				_, err := b.CreateEntry("ics", "a2V5MQ", "bin 4", 1, map[string]types.Value{
					"mfn": types.Text("NE555"),
				})
				require.NoError(t, err)

				require.NoError(t, b.DeleteEntry("a2V5MQ"))
				_, err = b.Entry("a2V5MQ")
				assert.ErrorIs(t, err, types.ErrEntryNotFound)

				// The key can be reused after deletion.
				_, err = b.CreateEntry("ics", "a2V5MQ", "bin 5", 2, nil)
				assert.NoError(t, err)
			},
		},
		{
			name: "unknown key rejected",
			check: func(t *testing.T, b *Backend) {
				icsCatagory(t, b)
				err := b.DeleteEntry("bm9wZQ")
				assert.ErrorIs(t, err, types.ErrEntryNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setupBackend(t)
			tt.check(t, b)
		})
	}
}
