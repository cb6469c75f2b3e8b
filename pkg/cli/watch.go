package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/ordcheck/pkg/ingest"
)

func newWatchCommand() *Command {
	cmd := &Command{
		Name:        "watch",
		Description: "Import records as they land in an inbox directory",
		Flags:       newFlagSet("watch"),
	}

	configPath := cmd.Flags.String("config", "", "Path to a YAML config file")
	dir := cmd.Flags.String("dir", "", "Inbox directory (default from config)")
	debounce := cmd.Flags.Duration("debounce", 0, "Quiet period before a changed file is read (default from config)")
	existing := cmd.Flags.Bool("existing", false, "Import files already in the inbox before watching")
	dryRun := cmd.Flags.Bool("dry-run", false, "Check records without storing them")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}

		a, err := newApp(appOptions{configPath: *configPath, withStore: !*dryRun})
		if err != nil {
			return err
		}
		defer a.Close()

		inbox := *dir
		if inbox == "" {
			inbox = a.cfg.Import.InboxDir
		}
		if inbox == "" {
			return errors.New("no inbox directory: pass -dir or set ORDCHECK_INBOX_DIR")
		}
		wait := a.cfg.Import.Debounce
		if *debounce > 0 {
			wait = *debounce
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts, err := a.importerOptions(ctx)
		if err != nil {
			return err
		}
		importer := ingest.NewImporter(a.processor, a.store, a.cfg.Import.ImportConfig, opts...)
		return runWatch(ctx, importer, inbox, wait, *existing, a.logger)
	}

	return cmd
}

func runWatch(ctx context.Context, importer *ingest.Importer, inbox string, debounce time.Duration, existing bool, logger *logrus.Logger) error {
	if existing {
		src, err := ingest.NewDirSource(inbox)
		if err != nil {
			return err
		}
		summary, err := importer.Run(ctx, src)
		if err != nil {
			return err
		}
		for _, item := range summary.Items {
			printItem(item)
		}
	}

	watcher, err := ingest.NewWatcher(inbox, importer, debounce, logger)
	if err != nil {
		return err
	}
	watcher.OnResult = printItem

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
