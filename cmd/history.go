package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/lernix/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show quiz attempt history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		attempts, err := st.AttemptRepo().List(ctx, limit)
		if err != nil {
			return fmt.Errorf("list attempts: %w", err)
		}
		if len(attempts) == 0 {
			fmt.Println("No quiz attempts yet.")
			return nil
		}

		stats, err := st.AttemptRepo().Stats(ctx)
		if err != nil {
			return fmt.Errorf("attempt stats: %w", err)
		}

		fmt.Printf("%d tests taken, average %.0f%%, best %.0f%%\n\n",
			stats.TestsTaken, stats.AveragePct, stats.BestPct)
		fmt.Printf("%-30s  %-7s  %s\n", "Topic", "Score", "Taken")
		for _, a := range attempts {
			topic := a.Topic
			if len(topic) > 30 {
				topic = topic[:27] + "..."
			}
			fmt.Printf("%-30s  %2d/%-4d  %s\n", topic, a.Score, a.Total, a.TakenAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of attempts to show (0 = all)")
}
