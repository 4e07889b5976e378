package types

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Entry is one inventoried record. The key is an opaque base64 string
// supplied by the caller (typically decoded from a printed label) and is
// immutable after creation. Fields always covers exactly the set of fields
// declared by the entry's catagory; undeclared names never appear and
// unset fields hold Null.
type Entry struct {
	Key        string           `json:"key"`
	CatagoryID string           `json:"catagory"`
	Location   string           `json:"location"`
	Quantity   int64            `json:"quantity"`
	Created    time.Time        `json:"created"`
	Modified   time.Time        `json:"modified"`
	Fields     map[string]Value `json:"fields"`
}

// FieldValue returns the value of a declared field by case-insensitive name.
func (e *Entry) FieldValue(name string) (Value, bool) {
	v, ok := e.Fields[CanonicalName(name)]
	return v, ok
}

// String renders the entry the way the CLI prints it, location and
// quantity first, then fields in name order:
//
//	ENTRY QkFTRTY0, CATAGORY resistors:
//	    LOCATION   = Drawer 1,
//	    QUANTITY   = 50,
//	    resistance = 220
func (e *Entry) String() string {
	names := make([]string, 0, len(e.Fields))
	pad := len("LOCATION")
	for name := range e.Fields {
		names = append(names, name)
		if len(name) > pad {
			pad = len(name)
		}
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "ENTRY %s, CATAGORY %s:", e.Key, e.CatagoryID)
	fmt.Fprintf(&b, "\n    LOCATION%*s = %s,", pad-len("LOCATION"), "", e.Location)
	fmt.Fprintf(&b, "\n    QUANTITY%*s = %d,", pad-len("QUANTITY"), "", e.Quantity)
	fmt.Fprintf(&b, "\n    CREATED %*s = %s,", pad-len("CREATED"), "", e.Created.Local().Format(time.DateTime))
	fmt.Fprintf(&b, "\n    MODIFIED%*s = %s", pad-len("MODIFIED"), "", e.Modified.Local().Format(time.DateTime))
	for _, name := range names {
		fmt.Fprintf(&b, ",\n    %s%*s = %s", name, pad-len(name), "", e.Fields[name].Render())
	}
	return b.String()
}
