package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var catalogYAML bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the question catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

func init() {
	catalogCmd.Flags().BoolVar(&catalogYAML, "yaml", false, "Print the catalog as a YAML document")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if catalogYAML {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(cat); err != nil {
			return err
		}
		return enc.Close()
	}

	fmt.Fprintf(out, "%s (%d categories, %d questions)\n", cat.Name, len(cat.Categories), cat.QuestionCount())
	for _, c := range cat.Categories {
		fmt.Fprintf(out, "\n%s [%s]\n", c.DisplayName(), c.ID)
		for i, q := range c.Questions {
			fmt.Fprintf(out, "  %d. %s\n", i, q)
		}
	}
	return nil
}
