package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"tasnif/internal/clix"
	"tasnif/pkg/classifier"
)

var (
	topicTitle      string
	topicBody       string
	topicLimit      int
	topicOffset     int
	reclassifyNow   bool
	reclassifyAll   bool
	reclassifyBatch int
)

// topicCmd groups topic management subcommands.
var topicCmd = &cobra.Command{
	Use:   "topic",
	Short: "Manage forum topics",
}

var topicAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Store a new topic",
	Long: `Stores a topic in the pending state. HTML markup in the body is stripped
before storage. Run 'topic reclassify' to assign a category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		topic, err := appInstance.TopicService.CreateTopic(ctx, topicTitle, topicBody)
		if err != nil {
			return fmt.Errorf("failed to create topic: %w", err)
		}

		fmt.Printf("Created topic %d: %s\n", topic.ID, topic.Title)
		return nil
	},
}

var topicListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored topics",
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

		topics, err := appInstance.TopicService.ListTopics(ctx, pagination.Limit, pagination.Offset)
		if err != nil {
			return fmt.Errorf("failed to list topics: %w", err)
		}

		if len(topics) == 0 {
			fmt.Println("No topics found.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "Title", "Status", "Category", "Subcategory"})
		table.SetBorder(false)
		table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
		table.SetAlignment(tablewriter.ALIGN_LEFT)

		for _, t := range topics {
			catID, subID := "-", "-"
			if t.CategoryID != nil {
				catID = strconv.FormatInt(*t.CategoryID, 10)
			}
			if t.SubcategoryID != nil {
				subID = strconv.FormatInt(*t.SubcategoryID, 10)
			}
			table.Append([]string{
				strconv.FormatInt(t.ID, 10),
				t.Title,
				t.Status,
				catID,
				subID,
			})
		}
		table.Render()
		return nil
	},
}

var topicShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a single topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid topic ID: %s", args[0])
		}

		topic, err := appInstance.TopicService.GetTopic(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get topic: %w", err)
		}

		fmt.Printf("ID: %d\nTitle: %s\nStatus: %s\nCreated: %s\n",
			topic.ID, topic.Title, topic.Status, topic.CreatedAt.Format("2006-01-02 15:04:05"))
		if topic.ClassifiedAt != nil {
			fmt.Printf("Classified: %s\n", topic.ClassifiedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("Body: %s\n", topic.Body)
		return nil
	},
}

var topicReclassifyCmd = &cobra.Command{
	Use:   "reclassify [id]",
	Short: "Reclassify a topic",
	Long: `Enqueues a background reclassification job for the topic. With --now the
classification runs in this process instead and the result is printed. With
--pending every topic still awaiting classification is enqueued and no ID is
expected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		if reclassifyAll {
			enqueued, err := appInstance.TopicService.EnqueueReclassifyPending(ctx, reclassifyBatch)
			if err != nil {
				return fmt.Errorf("failed to enqueue pending topics: %w", err)
			}
			fmt.Printf("Enqueued reclassification for %d pending topics.\n", enqueued)
			return nil
		}

		if len(args) != 1 {
			return fmt.Errorf("topic ID required unless --pending is given")
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid topic ID: %s", args[0])
		}

		if reclassifyNow {
			outcome, err := appInstance.TopicService.Reclassify(ctx, id)
			if err != nil {
				return fmt.Errorf("reclassification failed: %w", err)
			}
			if outcome.Kind != classifier.KindClassified {
				return fmt.Errorf("engine did not reach a decision for topic %d", id)
			}
			fmt.Printf("%s %s > %s\n",
				color.GreenString("Kategori:"), outcome.CategoryName, outcome.SubcategoryName)
			return nil
		}

		if err := appInstance.TopicService.EnqueueReclassify(ctx, id); err != nil {
			return fmt.Errorf("failed to enqueue reclassification: %w", err)
		}
		fmt.Printf("Enqueued reclassification for topic %d.\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(topicCmd)
	topicCmd.AddCommand(topicAddCmd)
	topicCmd.AddCommand(topicListCmd)
	topicCmd.AddCommand(topicShowCmd)
	topicCmd.AddCommand(topicReclassifyCmd)

	topicAddCmd.Flags().StringVarP(&topicTitle, "title", "t", "", "Topic title")
	topicAddCmd.Flags().StringVarP(&topicBody, "body", "b", "", "Topic body (may contain HTML)")
	topicAddCmd.MarkFlagRequired("title")
	topicAddCmd.MarkFlagRequired("body")

	topicListCmd.Flags().IntVarP(&topicLimit, "limit", "l", 20, "Number of topics to display per page")
	topicListCmd.Flags().IntVarP(&topicOffset, "offset", "o", 0, "Number of topics to skip (for pagination)")

	topicReclassifyCmd.Flags().BoolVar(&reclassifyNow, "now", false, "Run the classification synchronously instead of enqueueing")
	topicReclassifyCmd.Flags().BoolVar(&reclassifyAll, "pending", false, "Enqueue every topic still awaiting classification")
	topicReclassifyCmd.Flags().IntVar(&reclassifyBatch, "batch-size", 100, "Maximum number of pending topics to enqueue with --pending")
}
