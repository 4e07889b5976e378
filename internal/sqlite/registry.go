// Schema registry operations: define, resolve, evolve, and list catagories.
// Catagory ids and field names are stored in canonical lower case. Schema
// evolution is additive-only: fields are appended, never renamed, retyped,
// or removed, so entries written by older versions stay readable.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/openapeshop/pinv/pkg/types"
)

// DefineCatagory validates and persists a new catagory. The id must not
// collide case-insensitively with an existing one.
func (b *Backend) DefineCatagory(id string, fields []types.FieldDef) (*types.Catagory, error) {
	cat, err := types.NewCatagory(id, fields)
	if err != nil {
		return nil, err
	}

	var exists int
	err = b.db.QueryRow("SELECT 1 FROM catagories WHERE id = ?", cat.ID).Scan(&exists)
	if err == nil {
		return nil, fmt.Errorf("%w: %q", types.ErrDuplicateCatagory, cat.ID)
	}
	if err != sql.ErrNoRows {
		return nil, storageErr("checking catagory existence", err)
	}

	cat.CreatedAt = time.Now().UTC()
	err = b.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO catagories (id, created_at) VALUES (?, ?)",
			cat.ID, cat.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return storageErr("inserting catagory", err)
		}
		for i, f := range cat.Fields {
			_, err := tx.Exec(
				"INSERT INTO catagory_fields (catagory_id, name, type, position) VALUES (?, ?, ?, ?)",
				cat.ID, f.Name, f.Type.String(), i)
			if err != nil {
				return storageErr("inserting catagory field", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// Catagory resolves a catagory by case-insensitive id.
func (b *Backend) Catagory(id string) (*types.Catagory, error) {
	canon := types.CanonicalName(id)
	var createdAt string
	err := b.db.QueryRow("SELECT created_at FROM catagories WHERE id = ?", canon).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %q", types.ErrCatagoryNotFound, id)
	}
	if err != nil {
		return nil, storageErr("querying catagory", err)
	}

	cat := &types.Catagory{ID: canon}
	cat.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, storageErr("parsing catagory created_at", err)
	}
	cat.Fields, err = b.catagoryFields(canon)
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// catagoryFields loads the declared fields of a catagory in declaration order.
func (b *Backend) catagoryFields(id string) ([]types.FieldDef, error) {
	rows, err := b.db.Query(
		"SELECT name, type FROM catagory_fields WHERE catagory_id = ? ORDER BY position", id)
	if err != nil {
		return nil, storageErr("querying catagory fields", err)
	}
	defer rows.Close()

	var fields []types.FieldDef
	for rows.Next() {
		var name, typeStr string
		if err := rows.Scan(&name, &typeStr); err != nil {
			return nil, storageErr("scanning catagory field", err)
		}
		t, err := types.ParseFieldType(typeStr)
		if err != nil {
			return nil, storageErr("parsing stored field type", err)
		}
		fields = append(fields, types.FieldDef{Name: name, Type: t})
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating catagory fields", err)
	}
	return fields, nil
}

// AddField appends a new field to an existing catagory. Entries created
// before the change hydrate the new field as Null; nothing is rewritten.
func (b *Backend) AddField(catagoryID, name string, t types.FieldType) (*types.Catagory, error) {
	cat, err := b.Catagory(catagoryID)
	if err != nil {
		return nil, err
	}
	def, err := cat.AddField(name, t)
	if err != nil {
		return nil, err
	}

	err = b.inTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			"INSERT INTO catagory_fields (catagory_id, name, type, position) VALUES (?, ?, ?, ?)",
			cat.ID, def.Name, def.Type.String(), len(cat.Fields)-1)
		if err != nil {
			return storageErr("inserting catagory field", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// Catagories lists all catagories in creation order.
func (b *Backend) Catagories() ([]*types.Catagory, error) {
	rows, err := b.db.Query("SELECT id FROM catagories ORDER BY rowid")
	if err != nil {
		return nil, storageErr("querying catagories", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr("scanning catagory id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating catagories", err)
	}

	cats := make([]*types.Catagory, 0, len(ids))
	for _, id := range ids {
		cat, err := b.Catagory(id)
		if err != nil {
			return nil, err
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// CatagoryStat pairs a catagory id with its entry count.
type CatagoryStat struct {
	ID      string `json:"id"`
	Entries int64  `json:"entries"`
}

// CatagoryStats returns entry counts per catagory, in creation order.
func (b *Backend) CatagoryStats() ([]CatagoryStat, error) {
	rows, err := b.db.Query(`
		SELECT c.id, COUNT(e.key)
		FROM catagories c LEFT JOIN entries e ON e.catagory_id = c.id
		GROUP BY c.id ORDER BY c.rowid`)
	if err != nil {
		return nil, storageErr("querying catagory stats", err)
	}
	defer rows.Close()

	var stats []CatagoryStat
	for rows.Next() {
		var s CatagoryStat
		if err := rows.Scan(&s.ID, &s.Entries); err != nil {
			return nil, storageErr("scanning catagory stat", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterating catagory stats", err)
	}
	return stats, nil
}
