// Entry store operations: create, find, list, modify, adjust-quantity, and
// delete. Field values are stored one row per declared field, rendered
// canonically, with SQL NULL for Null; they are re-validated against the
// current schema on every load so drifted rows surface as ErrCorruptEntry
// instead of crashing or silently repairing.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/openapeshop/pinv/pkg/types"
)

// CreateEntry validates and persists a new entry. Declared fields missing
// from the supplied mapping default to Null. The key is opaque and must be
// unique across all catagories.
func (b *Backend) CreateEntry(catagoryID, key, location string, quantity int64, fields map[string]types.Value) (*types.Entry, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: key must not be empty", types.ErrInvalidKey)
	}
	cat, err := b.Catagory(catagoryID)
	if err != nil {
		return nil, err
	}
	if quantity < 0 {
		return nil, fmt.Errorf("%w: %d", types.ErrNegativeQuantity, quantity)
	}
	values, err := resolveFieldValues(cat, fields)
	if err != nil {
		return nil, err
	}

	var exists int
	err = b.db.QueryRow("SELECT 1 FROM entries WHERE key = ?", key).Scan(&exists)
	if err == nil {
		return nil, fmt.Errorf("%w: %q", types.ErrDuplicateKey, key)
	}
	if err != sql.ErrNoRows {
		return nil, storageErr("checking key uniqueness", err)
	}

	now := time.Now().UTC()
	e := &types.Entry{
		Key:        key,
		CatagoryID: cat.ID,
		Location:   location,
		Quantity:   quantity,
		Created:    now,
		Modified:   now,
		Fields:     values,
	}

	err = b.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO entries (key, catagory_id, location, quantity, created, modified) VALUES (?, ?, ?, ?, ?, ?)",
			e.Key, e.CatagoryID, e.Location, e.Quantity,
			e.Created.Format(time.RFC3339), e.Modified.Format(time.RFC3339))
		if err != nil {
			return storageErr("inserting entry", err)
		}
		for _, f := range cat.Fields {
			_, err := tx.Exec(
				"INSERT INTO entry_fields (entry_key, name, value) VALUES (?, ?, ?)",
				e.Key, f.Name, storedValue(values[f.Name]))
			if err != nil {
				return storageErr("inserting entry field", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Entry finds an entry by key and re-validates it against the current
// schema of its catagory. Fields added to the schema after the entry was
// created hydrate as Null; fields stored but no longer declared mean the
// store is corrupt (the additive-only rule forbids removal).
func (b *Backend) Entry(key string) (*types.Entry, error) {
	row := b.db.QueryRow(
		"SELECT key, catagory_id, location, quantity, created, modified FROM entries WHERE key = ?", key)
	e, err := scanEntryFrom(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %q", types.ErrEntryNotFound, key)
	}
	if err != nil {
		return nil, err
	}

	cat, err := b.Catagory(e.CatagoryID)
	if err != nil {
		return nil, err
	}
	if err := b.loadEntryFields(e, cat); err != nil {
		return nil, err
	}
	return e, nil
}

// Entries lists all entries of a catagory in insertion order.
func (b *Backend) Entries(catagoryID string) ([]*types.Entry, error) {
	cat, err := b.Catagory(catagoryID)
	if err != nil {
		return nil, err
	}

	rows, err := b.db.Query(
		"SELECT key, catagory_id, location, quantity, created, modified FROM entries WHERE catagory_id = ? ORDER BY rowid",
		cat.ID)
	if err != nil {
		return nil, storageErr("querying entries", err)
	}
	defer rows.Close()

	var entries []*types.Entry
	for rows.Next() {
		e, err := scanEntryRows(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating entries", err)
	}

	for _, e := range entries {
		if err := b.loadEntryFields(e, cat); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// ModifyEntry applies a partial update to an entry's fields and,
// optionally, its location. Unlisted fields are unchanged; an explicit
// Null clears a field. Validation runs fully before any write.
func (b *Backend) ModifyEntry(key string, updates map[string]types.Value, location *string) (*types.Entry, error) {
	e, err := b.Entry(key)
	if err != nil {
		return nil, err
	}
	cat, err := b.Catagory(e.CatagoryID)
	if err != nil {
		return nil, err
	}

	canon := make(map[string]types.Value, len(updates))
	for name, v := range updates {
		def, ok := cat.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q in catagory %q", types.ErrUnknownField, name, cat.ID)
		}
		if !v.Matches(def.Type) {
			return nil, fmt.Errorf("%w: field %q wants %s", types.ErrTypeMismatch, def.Name, def.Type)
		}
		canon[def.Name] = v
	}

	e.Modified = time.Now().UTC()
	if location != nil {
		e.Location = *location
	}
	for name, v := range canon {
		e.Fields[name] = v
	}

	err = b.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"UPDATE entries SET location = ?, modified = ? WHERE key = ?",
			e.Location, e.Modified.Format(time.RFC3339), e.Key)
		if err != nil {
			return storageErr("updating entry", err)
		}
		for name, v := range canon {
			// Upsert: a field appended to the schema after this entry was
			// created has no row yet.
			_, err := tx.Exec(`
				INSERT INTO entry_fields (entry_key, name, value) VALUES (?, ?, ?)
				ON CONFLICT(entry_key, name) DO UPDATE SET value = excluded.value`,
				e.Key, name, storedValue(v))
			if err != nil {
				return storageErr("updating entry field", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// AdjustQuantity adds delta to an entry's quantity; give is a positive
// delta, take a negative one. A delta that would drive the quantity below
// zero fails with ErrInsufficientQuantity and leaves the entry unchanged.
func (b *Backend) AdjustQuantity(key string, delta int64) (*types.Entry, error) {
	e, err := b.Entry(key)
	if err != nil {
		return nil, err
	}
	newQuantity := e.Quantity + delta
	if newQuantity < 0 {
		return nil, fmt.Errorf("%w: have %d, delta %d", types.ErrInsufficientQuantity, e.Quantity, delta)
	}

	e.Quantity = newQuantity
	e.Modified = time.Now().UTC()
	err = b.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"UPDATE entries SET quantity = ?, modified = ? WHERE key = ?",
			e.Quantity, e.Modified.Format(time.RFC3339), e.Key)
		if err != nil {
			return storageErr("updating entry quantity", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// DeleteEntry removes an entry and its field rows.
func (b *Backend) DeleteEntry(key string) error {
	var exists int
	err := b.db.QueryRow("SELECT 1 FROM entries WHERE key = ?", key).Scan(&exists)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %q", types.ErrEntryNotFound, key)
	}
	if err != nil {
		return storageErr("checking entry existence", err)
	}

	return b.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM entry_fields WHERE entry_key = ?", key); err != nil {
			return storageErr("deleting entry fields", err)
		}
		if _, err := tx.Exec("DELETE FROM entries WHERE key = ?", key); err != nil {
			return storageErr("deleting entry", err)
		}
		return nil
	})
}

// resolveFieldValues canonicalizes and type-checks a caller-supplied field
// mapping against the schema, defaulting unspecified fields to Null.
func resolveFieldValues(cat *types.Catagory, fields map[string]types.Value) (map[string]types.Value, error) {
	values := make(map[string]types.Value, len(cat.Fields))
	for _, f := range cat.Fields {
		values[f.Name] = types.Null
	}
	for name, v := range fields {
		def, ok := cat.Field(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q in catagory %q", types.ErrUnknownField, name, cat.ID)
		}
		if !v.Matches(def.Type) {
			return nil, fmt.Errorf("%w: field %q wants %s", types.ErrTypeMismatch, def.Name, def.Type)
		}
		values[def.Name] = v
	}
	return values, nil
}

// storedValue renders a value for the entry_fields value column.
// Null maps to SQL NULL so it survives round trips distinct from "".
func storedValue(v types.Value) any {
	if v.IsNull() {
		return nil
	}
	return v.Render()
}

// hydrateValue parses a stored column back into a typed value using the
// field's declared type. A stored value that no longer parses means the
// store has drifted from the schema.
func hydrateValue(s sql.NullString, t types.FieldType) (types.Value, error) {
	if !s.Valid {
		return types.Null, nil
	}
	switch t {
	case types.FieldText:
		return types.Text(s.String), nil
	case types.FieldInteger, types.FieldReal:
		v, err := types.Coerce(s.String, t)
		if err != nil || v.IsNull() {
			return types.Null, fmt.Errorf("%w: stored %q is not %s", types.ErrCorruptEntry, s.String, t)
		}
		return v, nil
	default:
		return types.Null, fmt.Errorf("%w: unknown field type %v", types.ErrCorruptEntry, t)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntryFrom(s rowScanner) (*types.Entry, error) {
	var e types.Entry
	var created, modified string
	if err := s.Scan(&e.Key, &e.CatagoryID, &e.Location, &e.Quantity, &created, &modified); err != nil {
		return nil, err
	}
	var err error
	e.Created, err = time.Parse(time.RFC3339, created)
	if err != nil {
		return nil, storageErr("parsing entry created", err)
	}
	e.Modified, err = time.Parse(time.RFC3339, modified)
	if err != nil {
		return nil, storageErr("parsing entry modified", err)
	}
	e.Fields = make(map[string]types.Value)
	return &e, nil
}

func scanEntryRows(rows *sql.Rows) (*types.Entry, error) {
	e, err := scanEntryFrom(rows)
	if err != nil {
		return nil, storageErr("scanning entry", err)
	}
	return e, nil
}

// loadEntryFields hydrates an entry's field mapping against the current
// schema: every declared field gets a value (Null when no row exists), and
// any stored row for an undeclared field fails the read.
func (b *Backend) loadEntryFields(e *types.Entry, cat *types.Catagory) error {
	rows, err := b.db.Query("SELECT name, value FROM entry_fields WHERE entry_key = ?", e.Key)
	if err != nil {
		return storageErr("querying entry fields", err)
	}
	defer rows.Close()

	stored := make(map[string]sql.NullString)
	for rows.Next() {
		var name string
		var value sql.NullString
		if err := rows.Scan(&name, &value); err != nil {
			return storageErr("scanning entry field", err)
		}
		stored[name] = value
	}
	if err := rows.Err(); err != nil {
		return storageErr("iterating entry fields", err)
	}

	for name := range stored {
		if !cat.HasField(name) {
			return fmt.Errorf("%w: entry %q carries undeclared field %q", types.ErrCorruptEntry, e.Key, name)
		}
	}
	for _, f := range cat.Fields {
		raw, ok := stored[f.Name]
		if !ok {
			e.Fields[f.Name] = types.Null
			continue
		}
		v, err := hydrateValue(raw, f.Type)
		if err != nil {
			return err
		}
		e.Fields[f.Name] = v
	}
	return nil
}
