package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"tasnif/pkg/classifier"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Classify a topic interactively",
	Long: `Starts an interactive dialogue on the terminal. Type what your topic is
about; if the input is too vague you get one clarifying question, then a
category decision. The dialogue runs in memory and stores nothing.`,
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

		fmt.Println("Konunuz ne hakkında? (çıkmak için 'exit')")

		scanner := bufio.NewScanner(os.Stdin)
		var history []classifier.Message
		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				break
			}
			input := strings.TrimSpace(scanner.Text())
			if input == "" {
				continue
			}
			if input == "exit" || input == "quit" {
				break
			}

			// By convention the new turn is part of the history before the
			// engine sees it.
			history = append(history, classifier.Message{Role: classifier.RoleUser, Text: input})
			result, err := appInstance.Engine.Classify(ctx, classifier.Request{
				Input:    input,
				Taxonomy: taxonomy,
				History:  history,
			})
			if err != nil {
				fmt.Printf("  %s: %v\n", color.RedString("ERROR"), err)
				continue
			}

			if result.Kind == classifier.KindNeedsClarification {
				fmt.Println(color.YellowString(result.Question))
				if len(result.Options) > 0 {
					fmt.Printf("  (%s)\n", strings.Join(result.Options, " / "))
				}
				history = append(history, classifier.Message{Role: classifier.RoleAssistant, Text: result.Question})
				continue
			}

			fmt.Printf("%s %s > %s\n",
				color.GreenString("Kategori:"), result.CategoryName, result.SubcategoryName)
			return nil
		}
		return scanner.Err()
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
