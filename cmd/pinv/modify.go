// Command: pinv modify
package main

import (
	"github.com/spf13/cobra"
)

var modifyLocation string

var modifyCmd = &cobra.Command{
	Use:   "modify KEY [FIELD=VALUE...]",
	Short: "Modify an entry's fields or location",
	Long: `Modify updates the given fields of an entry and bumps its modified
timestamp. Setting a field to an empty value clears it to Null. Fields
not named keep their current value.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runModify,
}

func init() {
	modifyCmd.Flags().StringVarP(&modifyLocation, "location", "l", "", "move the entry to a new location")
}

func runModify(cmd *cobra.Command, args []string) error {
	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	current, err := backend.Entry(args[0])
	if err != nil {
		return err
	}

	cat, err := backend.Catagory(current.CatagoryID)
	if err != nil {
		return err
	}

	updates, err := parseFieldArgs(cat, args[1:])
	if err != nil {
		return err
	}

	var location *string
	if cmd.Flags().Changed("location") {
		location = &modifyLocation
	}

	entry, err := backend.ModifyEntry(args[0], updates, location)
	if err != nil {
		return err
	}

	return printEntry(entry)
}
