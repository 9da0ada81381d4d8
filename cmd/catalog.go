package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/glossmatch/internal/glossary"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect, check and create quiz catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the terms of the active catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		f, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		if format, _ := cmd.Flags().GetString("output"); format != "" {
			data, err := glossary.Marshal(f, glossary.Format(format))
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Block:   %s\n", f.BlockID)
		if f.Title != "" {
			fmt.Fprintf(out, "Title:   %s\n", f.Title)
		}
		fmt.Fprintf(out, "Entries: %d\n\n", len(f.Entries))
		for _, e := range f.Entries {
			fmt.Fprintf(out, "%-4s %-28s %s\n", e.ID, truncate(e.Term, 28), truncate(e.Definition, 60))
		}
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check catalog files for schema and content problems",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			f, err := glossary.Load(path)
			if err != nil {
				failed++
				fmt.Fprintf(out, "✗ %s\n", path)
				var verr *glossary.ValidationError
				if errors.As(err, &verr) {
					for _, p := range verr.Problems {
						fmt.Fprintf(out, "    %s\n", p)
					}
				} else {
					fmt.Fprintf(out, "    %v\n", err)
				}
				continue
			}
			fmt.Fprintf(out, "✓ %s (%s, %d entries)\n", path, f.BlockID, len(f.Entries))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d catalogs invalid", failed, len(args))
		}
		return nil
	},
}

var catalogGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Have a language model write a new catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		log, err := newLogger(cmd, cfg, false)
		if err != nil {
			return err
		}
		defer log.Sync()

		opts := glossary.GenerateOptions{}
		opts.Topic, _ = cmd.Flags().GetString("topic")
		opts.Language, _ = cmd.Flags().GetString("language")
		opts.Entries, _ = cmd.Flags().GetInt("entries")
		opts.BlockID, _ = cmd.Flags().GetString("block-id")
		outPath, _ := cmd.Flags().GetString("out")
		if strings.TrimSpace(opts.Topic) == "" {
			return errors.New("--topic is required")
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := newProvider(ctx, cfg, st.EventRepo(), log)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		f, err := glossary.NewGenerator(provider).Generate(ctx, opts)
		if err != nil {
			return err
		}
		log.Info("catalog generated", zap.String("block_id", f.BlockID), zap.Int("entries", len(f.Entries)))

		if outPath == "" {
			data, err := glossary.Marshal(f, glossary.FormatYAML)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := glossary.Save(outPath, f); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s. Play it with: glossmatch --catalog %s\n", outPath, outPath)
		return nil
	},
}

func init() {
	catalogListCmd.Flags().StringP("output", "o", "", "Print the whole catalog as yaml or json")

	catalogGenerateCmd.Flags().StringP("topic", "t", "", "Subject of the quiz")
	catalogGenerateCmd.Flags().StringP("language", "l", "", "Language of terms and definitions (default English)")
	catalogGenerateCmd.Flags().IntP("entries", "n", 0, "Number of terms (default 6, max 12)")
	catalogGenerateCmd.Flags().String("block-id", "", "Block id (default derived from the topic)")
	catalogGenerateCmd.Flags().StringP("out", "o", "", "Write to this file (.yaml or .json) instead of stdout")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogGenerateCmd)
}
