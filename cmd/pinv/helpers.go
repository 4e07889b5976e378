// Shared helpers for pinv subcommands.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/openapeshop/pinv/internal/paths"
	"github.com/openapeshop/pinv/internal/sqlite"
	"github.com/openapeshop/pinv/pkg/types"
)

// resolveConfig builds the effective Config from flags, config.yaml, and
// environment variables.
func resolveConfig() (types.Config, error) {
	configDir, err := paths.ResolveConfigDir(flagConfigDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving config dir: %w", err)
	}

	v, err := loadConfig(configDir)
	if err != nil {
		return types.Config{}, err
	}

	dataDir, err := paths.ResolveDataDir(flagDataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving data dir: %w", err)
	}

	templateDir, err := paths.ResolveTemplateDir(flagTemplateDir, v.GetString(cfgKeyTemplateDir), dataDir)
	if err != nil {
		return types.Config{}, fmt.Errorf("resolving template dir: %w", err)
	}

	return types.Config{DataDir: dataDir, TemplateDir: templateDir}, nil
}

// attachBackend opens the SQLite backend from the resolved config. The
// caller owns the returned backend and must Close it.
func attachBackend() (*sqlite.Backend, types.Config, error) {
	config, err := resolveConfig()
	if err != nil {
		return nil, types.Config{}, err
	}

	backend, err := sqlite.Open(config)
	if err != nil {
		return nil, types.Config{}, err
	}

	return backend, config, nil
}

// confirm prompts for a y/n answer on stdin. The --yes flag skips the
// prompt and answers yes.
func confirm(prompt string) bool {
	if flagYes {
		return true
	}

	fmt.Printf("%s (y/n): ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes"
}

// parseFieldArgs parses name=value arguments against a catagory's schema.
// Values are coerced to the declared field type; blank values become Null.
func parseFieldArgs(cat *types.Catagory, args []string) (map[string]types.Value, error) {
	fields := make(map[string]types.Value, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("argument %q is not of the form name=value", arg)
		}

		name = types.CanonicalName(name)
		def, found := cat.Field(name)
		if !found {
			return nil, fmt.Errorf("%w: %q in catagory %q", types.ErrUnknownField, name, cat.ID)
		}

		value, err := types.Coerce(raw, def.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields[name] = value
	}
	return fields, nil
}

// parseFieldDefs parses name:type arguments into field definitions.
func parseFieldDefs(args []string) ([]types.FieldDef, error) {
	defs := make([]types.FieldDef, 0, len(args))
	for _, arg := range args {
		def, err := types.ParseFieldDef(arg)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printEntry renders an entry in the format selected by --json.
func printEntry(e *types.Entry) error {
	if flagJSON {
		return printJSON(e)
	}
	fmt.Println(e)
	return nil
}

// printEntries renders a list of entries in the format selected by --json.
func printEntries(entries []*types.Entry) error {
	if flagJSON {
		return printJSON(entries)
	}
	for _, e := range entries {
		fmt.Println(e)
	}
	return nil
}
