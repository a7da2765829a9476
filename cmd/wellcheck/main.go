// Command wellcheck inspects the question catalog and scores answer files
// offline, without MongoDB or Redis.
package main

import (
	"os"
	"wellcheck/internal/catalog"
	"wellcheck/internal/model"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	catalogFile string
	verbose     bool
	logger      = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "wellcheck",
	Short: "Wellness self-assessment tools",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if !verbose {
			return nil
		}
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&catalogFile, "catalog", "c", "", "YAML catalog file (default: built-in catalog)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(scoreCmd)
}

func loadCatalog(cmd *cobra.Command) (model.Catalog, error) {
	return catalog.Resolve(cmd.Context(), logger, catalogFile, nil, "")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
