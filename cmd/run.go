package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/glossmatch/internal/app"
	"github.com/abhisek/glossmatch/internal/glossary"
	"github.com/abhisek/glossmatch/internal/notify"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command, play bool) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cmd, cfg, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	opts := app.Options{Catalog: catalog.Catalog(), Log: log, Play: play}
	opts.Seed, _ = cmd.Flags().GetUint64("seed")

	sessions := &notify.SessionRef{}
	opts.OnSession = sessions.Set
	sinks := []notify.Sink{notify.LogSink{Log: log}}

	st, err := openStore(cfg)
	if err != nil {
		// History is optional; the quiz still works without it.
		log.Warn("history unavailable", zap.Error(err))
	} else {
		defer st.Close()
		opts.Repo = st.EventRepo()
		sinks = append(sinks, notify.StoreSink{Repo: opts.Repo})
	}

	if cfg.Notify.WebhookURL != "" {
		wh := notify.NewWebhookSink(cfg.Notify.WebhookURL)
		for k, v := range cfg.Notify.Headers {
			if wh.Header == nil {
				wh.Header = make(http.Header)
			}
			wh.Header.Set(k, v)
		}
		sinks = append(sinks, wh)
	}
	broadcaster := notify.NewBroadcaster(sinks,
		notify.WithLogger(log),
		notify.WithTimeout(cfg.Notify.Timeout),
		notify.WithSessionID(sessions.Get))
	defer broadcaster.Wait()
	opts.Notifier = broadcaster

	provider, err := newProvider(ctx, cfg, opts.Repo, log)
	if err != nil {
		log.Info("LLM provider not configured, quiz generation disabled", zap.Error(err))
	} else {
		opts.Generator = glossary.NewGenerator(provider)
	}

	log.Info("starting",
		zap.String("block_id", catalog.BlockID),
		zap.Int("entries", len(catalog.Entries)),
		zap.Strings("sinks", broadcaster.Sinks()))

	if err := app.Run(opts); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
