package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"tasnif/internal/clix"
)

var (
	jobsLimit  int
	jobsOffset int
)

// jobsCmd represents the jobs command
var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List recorded background jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		pagination, err := clix.ParsePagination(cmd.Flags())
		if err != nil {
			return err
		}

		jobs, err := appInstance.JobStore.ListJobs(ctx, pagination.Limit, pagination.Offset)
		if err != nil {
			return fmt.Errorf("failed to list jobs: %w", err)
		}

		if len(jobs) == 0 {
			fmt.Println("No background jobs recorded.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Job ID", "Type", "Queue", "Status", "Entity", "Updated At"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, j := range jobs {
			entity := "-"
			if j.RelatedEntityType != nil && j.RelatedEntityID != nil {
				entity = fmt.Sprintf("%s/%d", *j.RelatedEntityType, *j.RelatedEntityID)
			}
			table.Append([]string{
				j.JobID.String(),
				j.TaskType,
				j.Queue,
				j.Status,
				entity,
				j.UpdatedAt.Format("2006-01-02 15:04:05"),
			})
		}
		table.Render()

		fmt.Printf("Displayed %d jobs.\n", len(jobs))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().IntVarP(&jobsLimit, "limit", "l", 20, "Number of jobs to display per page")
	jobsCmd.Flags().IntVarP(&jobsOffset, "offset", "o", 0, "Number of jobs to skip (for pagination)")
}
