// Package csvio round-trips a catagory's entries through CSV. The header
// row is key,location,quantity followed by the catagory's fields in
// declaration order; blank cells are Null.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/openapeshop/pinv/pkg/types"
)

// Row is one imported entry, ready for Backend.CreateEntry.
type Row struct {
	Key      string
	Location string
	Quantity int64
	Fields   map[string]types.Value
}

// Export writes all entries of a catagory as CSV.
func Export(w io.Writer, cat *types.Catagory, entries []*types.Entry) error {
	cw := csv.NewWriter(w)

	header := []string{"key", "location", "quantity"}
	for _, f := range cat.Fields {
		header = append(header, f.Name)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, e := range entries {
		record := []string{e.Key, e.Location, strconv.FormatInt(e.Quantity, 10)}
		for _, f := range cat.Fields {
			v, _ := e.FieldValue(f.Name)
			record = append(record, v.Render())
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV record for %q: %w", e.Key, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Import parses CSV into rows validated against the catagory. The header
// must carry key, location, and quantity columns; every other column must
// name a declared field. Values are coerced to the field's type, blank
// cells to Null.
func Import(r io.Reader, cat *types.Catagory) ([]Row, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("reading CSV header: empty input")
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	type column struct {
		name  string
		field bool
		def   types.FieldDef
	}
	columns := make([]column, len(header))
	seen := make(map[string]bool)
	for i, raw := range header {
		name := types.CanonicalName(raw)
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate CSV column %q", types.ErrDuplicateField, name)
		}
		seen[name] = true
		switch name {
		case "key", "location", "quantity":
			columns[i] = column{name: name}
		default:
			def, ok := cat.Field(name)
			if !ok {
				return nil, fmt.Errorf("%w: CSV column %q in catagory %q", types.ErrUnknownField, raw, cat.ID)
			}
			columns[i] = column{name: name, field: true, def: def}
		}
	}
	for _, required := range []string{"key", "location", "quantity"} {
		if !seen[required] {
			return nil, fmt.Errorf("CSV header missing %q column", required)
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}

		row := Row{Fields: make(map[string]types.Value)}
		for i, cell := range record {
			col := columns[i]
			switch {
			case col.field:
				v, err := types.Coerce(cell, col.def.Type)
				if err != nil {
					return nil, fmt.Errorf("CSV line %d, column %q: %w", line, col.name, err)
				}
				row.Fields[col.name] = v
			case col.name == "key":
				row.Key = cell
			case col.name == "location":
				row.Location = cell
			case col.name == "quantity":
				q, err := strconv.ParseInt(cell, 10, 64)
				if err != nil {
					return nil, fmt.Errorf("CSV line %d: %w: quantity %q", line, types.ErrTypeMismatch, cell)
				}
				row.Quantity = q
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
