/*
Copyright © 2026 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"
)

// newInspectCommand creates a fresh inspect command instance.
func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a content-types manifest",
		Long: `Inspect parses a content-types manifest, reports its Default and Override
declarations, and optionally re-indents it for reading.`,
		Args: cobra.ExactArgs(1),
		RunE: runInspect,
	}
	cmd.Flags().Bool("pretty", false, "Print the manifest re-indented")
	return cmd
}

// inspectCmd represents the inspect command
var inspectCmd = newInspectCommand()

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	pretty, _ := cmd.Flags().GetBool("pretty")
	out := cmd.OutOrStdout()

	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied manifest path
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return fmt.Errorf("manifest is not well-formed XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("manifest has no root element")
	}

	defaults := root.SelectElements("Default")
	overrides := root.SelectElements("Override")
	fmt.Fprintf(out, "%s: root <%s>, %d default(s), %d override(s)\n",
		path, root.Tag, len(defaults), len(overrides))
	for _, d := range defaults {
		fmt.Fprintf(out, "  default  .%-8s %s\n",
			d.SelectAttrValue("Extension", "?"), d.SelectAttrValue("ContentType", "?"))
	}
	for _, o := range overrides {
		fmt.Fprintf(out, "  override %-9s %s\n",
			o.SelectAttrValue("PartName", "?"), o.SelectAttrValue("ContentType", "?"))
	}

	if pretty {
		doc.Indent(2)
		fmt.Fprintln(out)
		if _, err := doc.WriteTo(out); err != nil {
			return fmt.Errorf("failed to format manifest: %w", err)
		}
	}
	return nil
}
