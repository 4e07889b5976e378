// Command: pinv catagory (add | list | show | addfield)
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catagoryCmd = &cobra.Command{
	Use:   "catagory",
	Short: "Manage catagories",
	Long: `Catagory manages the typed schemas entries are filed under. A catagory
is declared once with its fields and can only grow afterwards: fields
may be added but never removed or retyped.`,
}

var catagoryAddCmd = &cobra.Command{
	Use:   "add ID FIELD:TYPE [FIELD:TYPE...]",
	Short: "Declare a new catagory",
	Long: `Add declares a new catagory with the given fields. Types are text (t),
integer (i), or real (r). Field names are case-insensitive and stored
lower-case; key, location, quantity, created, and modified are reserved.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCatagoryAdd,
}

var catagoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catagories with their entry counts",
	Args:  cobra.NoArgs,
	RunE:  runCatagoryList,
}

var catagoryShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a catagory's schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatagoryShow,
}

var catagoryAddFieldCmd = &cobra.Command{
	Use:   "addfield ID FIELD:TYPE",
	Short: "Append a field to an existing catagory",
	Long: `Addfield appends one field to a catagory's schema. Existing entries
report Null for the new field until they are modified.`,
	Args: cobra.ExactArgs(2),
	RunE: runCatagoryAddField,
}

func init() {
	catagoryCmd.AddCommand(catagoryAddCmd)
	catagoryCmd.AddCommand(catagoryListCmd)
	catagoryCmd.AddCommand(catagoryShowCmd)
	catagoryCmd.AddCommand(catagoryAddFieldCmd)
}

func runCatagoryAdd(cmd *cobra.Command, args []string) error {
	defs, err := parseFieldDefs(args[1:])
	if err != nil {
		return err
	}

	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	cat, err := backend.DefineCatagory(args[0], defs)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cat)
	}
	fmt.Println(cat)
	return nil
}

func runCatagoryList(cmd *cobra.Command, args []string) error {
	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	stats, err := backend.CatagoryStats()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(stats)
	}
	for _, stat := range stats {
		fmt.Printf("%s\t%d entries\n", stat.ID, stat.Entries)
	}
	return nil
}

func runCatagoryShow(cmd *cobra.Command, args []string) error {
	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	cat, err := backend.Catagory(args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cat)
	}
	fmt.Println(cat)
	return nil
}

func runCatagoryAddField(cmd *cobra.Command, args []string) error {
	def, err := parseFieldDefs(args[1:2])
	if err != nil {
		return err
	}

	backend, _, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	cat, err := backend.AddField(args[0], def[0].Name, def[0].Type)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(cat)
	}
	fmt.Println(cat)
	return nil
}
