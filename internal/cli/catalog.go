package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect image pair catalogs",
	Long: `Inspect the image pair catalog used by the grid.

Subcommands:
  list      List the image pairs in grid order
  validate  Check a catalog file without opening the grid

Examples:
  imagegrid catalog list
  imagegrid catalog validate --catalog ./food.yaml`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the image pairs in grid order",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a catalog file",
	Args:  cobra.NoArgs,
	RunE:  runCatalogValidate,
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%dx%d)\n\n", cat.Title, cat.Rows(), cat.Columns)
	fmt.Fprintf(out, "%-6s %-10s %s\n", "ID", "IMAGE", "URI")
	fmt.Fprintln(out, "------------------------------------------------------------------------")
	for _, p := range cat.Pairs {
		fmt.Fprintf(out, "%-6s %-10s %s\n", p.ID, "primary", p.PrimaryURI)
		fmt.Fprintf(out, "%-6s %-10s %s\n", "", "alternate", p.AlternateURI)
	}
	return nil
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: %d image pairs, %dx%d grid\n",
		catalogName(cfg.CatalogFile), len(cat.Pairs), cat.Rows(), cat.Columns)
	if cat.Rows()*cat.Columns != len(cat.Pairs) {
		logger.Warn("last grid row is incomplete", "pairs", len(cat.Pairs), "columns", cat.Columns)
	}
	return nil
}
