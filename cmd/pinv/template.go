// Command: pinv template (fill | keys | list)
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/openapeshop/pinv/internal/keys"
	"github.com/openapeshop/pinv/internal/template"
	"github.com/openapeshop/pinv/pkg/types"
)

var (
	templateOut     string
	templateLenient bool
	templateCount   int
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Fill SVG label templates",
	Long: `Template fills gzip-compressed SVG label templates. A template names
its slots as {{placeholder}}; fill binds them to an entry's key,
location, quantity, and field values. Templates are looked up first by
builtin name, then as a path, then in the user template directory.`,
}

var templateFillCmd = &cobra.Command{
	Use:   "fill TEMPLATE KEY",
	Short: "Fill a template with an entry's values",
	Args:  cobra.ExactArgs(2),
	RunE:  runTemplateFill,
}

var templateKeysCmd = &cobra.Command{
	Use:   "keys TEMPLATE",
	Short: "Fill a template's key slots with fresh keys",
	Long: `Keys fills every {{key}} slot of a template with a freshly generated
key and prints the keys, one per line, to stderr. Use it to print a
sheet of labels before the items exist; add each item later with
pinv add --key. The template must contain no slot other than {{key}}.`,
	Args: cobra.ExactArgs(1),
	RunE: runTemplateKeys,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List builtin templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

func init() {
	templateFillCmd.Flags().StringVarP(&templateOut, "out", "o", "", "output SVG file (default: stdout)")
	templateFillCmd.Flags().BoolVar(&templateLenient, "lenient", false, "leave placeholders with no binding in place")
	templateKeysCmd.Flags().StringVarP(&templateOut, "out", "o", "", "output SVG file (default: stdout)")

	templateCmd.AddCommand(templateFillCmd)
	templateCmd.AddCommand(templateKeysCmd)
	templateCmd.AddCommand(templateListCmd)
}

// loadTemplate resolves a template source by builtin name, by path, and
// finally inside the user template directory.
func loadTemplate(config types.Config, source string) (*template.Doc, error) {
	doc, err := template.Load(source)
	if err == nil || !errors.Is(err, types.ErrTemplateNotFound) {
		return doc, err
	}

	for _, candidate := range []string{
		filepath.Join(config.TemplateDir, source),
		filepath.Join(config.TemplateDir, source+".svg.gz"),
	} {
		doc, err := template.Load(candidate)
		if err == nil || !errors.Is(err, types.ErrTemplateNotFound) {
			return doc, err
		}
	}

	return nil, fmt.Errorf("%w: %q", types.ErrTemplateNotFound, source)
}

// writeSVG writes the filled template to --out or stdout.
func writeSVG(svg []byte) error {
	if templateOut == "" {
		_, err := os.Stdout.Write(svg)
		return err
	}
	return os.WriteFile(templateOut, svg, 0o644)
}

func runTemplateFill(cmd *cobra.Command, args []string) error {
	backend, config, err := attachBackend()
	if err != nil {
		return err
	}
	defer backend.Close()

	doc, err := loadTemplate(config, args[0])
	if err != nil {
		return err
	}

	entry, err := backend.Entry(args[1])
	if err != nil {
		return err
	}

	cat, err := backend.Catagory(entry.CatagoryID)
	if err != nil {
		return err
	}

	mode := template.ModeStrict
	if templateLenient {
		mode = template.ModeLenient
	}

	svg, err := template.Fill(doc, cat, entry, mode)
	if err != nil {
		return err
	}

	return writeSVG(svg)
}

func runTemplateKeys(cmd *cobra.Command, args []string) error {
	config, err := resolveConfig()
	if err != nil {
		return err
	}

	doc, err := loadTemplate(config, args[0])
	if err != nil {
		return err
	}

	var issued []string
	svg, err := template.FillKeys(doc, func() string {
		key := keys.Fresh()
		issued = append(issued, key)
		return key
	})
	if err != nil {
		return err
	}

	if err := writeSVG(svg); err != nil {
		return err
	}

	for _, key := range issued {
		fmt.Fprintln(os.Stderr, key)
	}
	return nil
}

func runTemplateList(cmd *cobra.Command, args []string) error {
	names := template.Builtins()
	if flagJSON {
		return printJSON(names)
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
