package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"tasnif/pkg/classifier"
)

var classifySessionID string

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify [message]",
	Short: "Advance a persisted classification dialogue by one turn",
	Long: `Sends one message through the classification service. Without --session a
new session is opened; pass the printed session ID back with --session to
answer a clarifying question. Sessions are stored in the database, so a
dialogue can span multiple invocations.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		var sessionID *uuid.UUID
		if classifySessionID != "" {
			parsed, err := uuid.Parse(classifySessionID)
			if err != nil {
				return fmt.Errorf("invalid session ID: %s", classifySessionID)
			}
			sessionID = &parsed
		}

		message := strings.Join(args, " ")
		outcome, err := appInstance.ClassificationService.HandleMessage(ctx, sessionID, message)
		if err != nil {
			return fmt.Errorf("classification failed: %w", err)
		}

		fmt.Printf("Session: %s\n", outcome.SessionID)
		if outcome.Kind == classifier.KindNeedsClarification {
			fmt.Println(color.YellowString(outcome.Question))
			if len(outcome.Options) > 0 {
				fmt.Printf("  (%s)\n", strings.Join(outcome.Options, " / "))
			}
			fmt.Printf("Answer with: tasnif classify --session %s \"...\"\n", outcome.SessionID)
			return nil
		}

		fmt.Printf("%s %s > %s\n",
			color.GreenString("Kategori:"), outcome.CategoryName, outcome.SubcategoryName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVarP(&classifySessionID, "session", "s", "", "Session ID of an open dialogue to continue")
}
