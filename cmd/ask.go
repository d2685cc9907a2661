package cmd

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var askTopK int

var askCmd = &cobra.Command{
	Use:   "ask <course> <question>...",
	Short: "Search a course's material for relevant passages",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of passages to return (0 = config default)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := newLogger()
	system, _, err := setup(ctx, logger)
	if err != nil {
		return err
	}

	course := args[0]
	question := strings.Join(args[1:], " ")

	results, err := system.Retrieve(ctx, course, question, askTopK)
	if err != nil {
		return fmt.Errorf("retrieving: %w", err)
	}

	if len(results) == 0 {
		fmt.Printf("No relevant material found for course %q.\n", course)
		fmt.Println("Upload documents first with: studyowl ingest")
		return nil
	}

	for i, r := range results {
		fmt.Printf("%d. [%s] (distance %.3f)\n", i+1, r.Source, r.Distance)
		fmt.Println(indent(r.Text, "   "))
		fmt.Println()
	}
	return nil
}

// indent prefixes every line of s for readable terminal output.
func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
