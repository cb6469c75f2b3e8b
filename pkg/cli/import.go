package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	json "github.com/goccy/go-json"

	"github.com/platinummonkey/ordcheck/pkg/ingest"
)

func newImportCommand() *Command {
	cmd := &Command{
		Name:        "import",
		Description: "Validate a directory or S3 prefix of records and store the accepted ones",
		Flags:       newFlagSet("import"),
	}

	configPath := cmd.Flags.String("config", "", "Path to a YAML config file")
	dir := cmd.Flags.String("dir", "", "Directory to import; the configured S3 source is used when empty")
	workers := cmd.Flags.Int("workers", 0, "Concurrent workers (default from config)")
	mode := cmd.Flags.String("mode", "", "normalize or validate (default from config)")
	storeRejected := cmd.Flags.Bool("store-rejected", false, "Also store records that have errors")
	dryRun := cmd.Flags.Bool("dry-run", false, "Check records without storing them")
	output := cmd.Flags.String("output", "text", "Summary format (text, json)")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		if *output != "text" && *output != "json" {
			return fmt.Errorf("invalid output format %q (expected text or json)", *output)
		}

		a, err := newApp(appOptions{configPath: *configPath, withStore: !*dryRun})
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		importCfg := a.cfg.Import.ImportConfig
		if *workers > 0 {
			importCfg.Workers = *workers
		}
		if *mode != "" {
			if importCfg.Mode, err = ingest.ParseMode(*mode); err != nil {
				return err
			}
		}
		if *storeRejected {
			importCfg.StoreRejected = true
		}

		src, err := a.importSource(ctx, *dir)
		if err != nil {
			return err
		}
		opts, err := a.importerOptions(ctx)
		if err != nil {
			return err
		}

		importer := ingest.NewImporter(a.processor, a.store, importCfg, opts...)
		return runImport(ctx, importer, src, *output)
	}

	return cmd
}

// importSource picks the directory when given, else the configured S3 source
func (a *app) importSource(ctx context.Context, dir string) (ingest.Source, error) {
	if dir != "" {
		return ingest.NewDirSource(dir)
	}
	src, err := a.s3Source(ctx)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New("nothing to import: pass -dir or configure an S3 bucket")
	}
	return src, nil
}

func runImport(ctx context.Context, importer *ingest.Importer, src ingest.Source, output string) error {
	summary, err := importer.Run(ctx, src)
	if summary == nil {
		return err
	}

	if output == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(summary); encErr != nil {
			return fmt.Errorf("failed to encode summary: %w", encErr)
		}
	} else {
		for _, item := range summary.Items {
			printItem(item)
		}
		fmt.Fprintln(stdout, summary.String())
	}

	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d items failed to import", summary.Failed, summary.Total)
	}
	return nil
}

func printItem(item ingest.ItemResult) {
	switch item.Status {
	case ingest.StatusAccepted:
		fmt.Fprintf(stdout, "%-9s %s -> %s\n", item.Status, item.Name, item.RecordID)
	case ingest.StatusRejected:
		fmt.Fprintf(stdout, "%-9s %s: %s\n", item.Status, item.Name, item.Report.Summary())
	case ingest.StatusFailed:
		fmt.Fprintf(stdout, "%-9s %s: %s\n", item.Status, item.Name, item.Error)
	default:
		fmt.Fprintf(stdout, "%-9s %s\n", item.Status, item.Name)
	}
}
