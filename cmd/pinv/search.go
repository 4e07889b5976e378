// Command: pinv search
package main

import (
	"github.com/spf13/cobra"

	"github.com/openapeshop/pinv/internal/filter"
)

var searchCmd = &cobra.Command{
	Use:   "search CATAGORY [CONSTRAINT...]",
	Short: "Search a catagory's entries with field constraints",
	Long: `Search lists the entries of a catagory that satisfy every given
constraint. A constraint is FIELD OP VALUE written as one token, e.g.
quantity>0, location=shelf, mfn~NE555. Operators are = != < <= > >=
for comparison and ~ for substring match on text fields. Entries whose
field is Null never match, not even with !=.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	cat, err := backend.Catagory(args[0])
	if err != nil {
		return err
	}

	var set filter.Set
	for _, token := range args[1:] {
		constraint, err := filter.ParseToken(cat, token)
		if err != nil {
			return err
		}
		set.Push(constraint)
	}

	entries, err := backend.Entries(cat.ID)
	if err != nil {
		return err
	}

	return printEntries(set.Apply(entries))
}
