package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// taxonomyCmd groups taxonomy management subcommands.
var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Manage the category tree",
}

var taxonomyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories and their subcategories",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		taxonomy, err := appInstance.TaxonomyService.Snapshot(ctx)
		if err != nil {
			return fmt.Errorf("failed to load taxonomy: %w", err)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Category", "Sub ID", "Subcategory"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, cat := range taxonomy {
			for _, sub := range cat.Subcategories {
				table.Append([]string{
					strconv.FormatInt(cat.ID, 10),
					cat.Name,
					strconv.FormatInt(sub.ID, 10),
					sub.Name,
				})
			}
		}
		table.Render()
		return nil
	},
}

var taxonomyImportCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Import categories and subcategories from a YAML file",
	Long: `Reads a YAML document of the form:

  categories:
    - name: Yazılım Dünyası
      subcategories: [Frontend Geliştirme, Backend Geliştirme]

Existing entries are skipped, so re-importing the same file is safe.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open taxonomy file: %w", err)
		}
		defer f.Close()

		cats, subs, err := appInstance.TaxonomyService.ImportFromYAML(ctx, f)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("Imported %d categories and %d subcategories.\n", cats, subs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
	taxonomyCmd.AddCommand(taxonomyListCmd)
	taxonomyCmd.AddCommand(taxonomyImportCmd)
}
