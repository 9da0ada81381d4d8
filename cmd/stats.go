package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz statistics per block",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()

		ids, err := repo.BlockIDs(ctx)
		if err != nil {
			return fmt.Errorf("list blocks: %w", err)
		}
		if only, _ := cmd.Flags().GetString("block"); only != "" {
			ids = []string{only}
		}
		if len(ids) == 0 {
			fmt.Println("No quizzes played yet.")
			return nil
		}

		fmt.Printf("%-32s  %8s  %8s  %8s  %11s  %4s  %6s  %s\n",
			"Block", "Sessions", "Attempts", "Accuracy", "Completions", "Best", "Avg", "Last completed")
		fmt.Println(strings.Repeat("─", 110))
		for _, id := range ids {
			st, err := repo.BlockStats(ctx, id)
			if err != nil {
				return fmt.Errorf("stats for %s: %w", id, err)
			}
			best, avg, last := "-", "-", "-"
			if st.Completions > 0 {
				best = fmt.Sprintf("%d", st.BestAttempts)
				avg = fmt.Sprintf("%.1f", st.AverageAttempts)
				last = st.LastCompletedAt.Local().Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%-32s  %8d  %8d  %7.0f%%  %11d  %4s  %6s  %s\n",
				truncate(id, 32), st.Sessions, st.Attempts, st.Accuracy()*100, st.Completions, best, avg, last)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringP("block", "b", "", "Only show this block")
}
