package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/platinummonkey/ordcheck/pkg/codec"
	"github.com/platinummonkey/ordcheck/pkg/ingest"
)

func newNormalizeCommand() *Command {
	cmd := &Command{
		Name:        "normalize",
		Description: "Convert every measurement of a record to canonical units",
		Flags:       newFlagSet("normalize"),
	}

	configPath := cmd.Flags.String("config", "", "Path to a YAML config file")
	format := cmd.Flags.String("format", "", "Input format (json, yaml, proto); guessed from the file name when empty")
	to := cmd.Flags.String("to", "json", "Output format (json, yaml, proto)")
	out := cmd.Flags.String("o", "", "Write the canonical record to this file instead of stdout")
	force := cmd.Flags.Bool("force", false, "Write the canonical record even when it has errors")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		if cmd.Flags.NArg() != 1 {
			return errors.New("normalize takes exactly one input file (use - for stdin)")
		}
		outFormat, err := codec.ParseFormat(*to)
		if err != nil {
			return err
		}
		var inFormat codec.Format
		if *format != "" {
			if inFormat, err = codec.ParseFormat(*format); err != nil {
				return err
			}
		}

		a, err := newApp(appOptions{configPath: *configPath})
		if err != nil {
			return err
		}
		defer a.Close()

		return runNormalize(context.Background(), a.processor, cmd.Flags.Arg(0), inFormat, outFormat, *out, *force)
	}

	return cmd
}

func runNormalize(ctx context.Context, processor *ingest.Processor, file string, inFormat, outFormat codec.Format, out string, force bool) error {
	data, err := readInput(file)
	if err != nil {
		return err
	}
	if inFormat == "" {
		inFormat = ingest.FormatOf(file, data)
	}

	res, err := processor.Process(ctx, data, inFormat, ingest.ModeNormalize)
	if err != nil {
		return err
	}

	printFileReport(stderr, fileReport{File: file, Report: res.Report}, true)
	if !res.Accepted() && !force {
		return ErrRejected
	}

	if res.Canonical == nil {
		return fmt.Errorf("%s: no canonical record was produced", file)
	}
	body := res.Canonical
	if outFormat != codec.FormatJSON {
		rec := res.Record
		if rec == nil {
			if rec, _, err = codec.DecodeJSON(res.Canonical); err != nil {
				return fmt.Errorf("failed to decode canonical record: %w", err)
			}
		}
		if body, err = codec.Encode(rec, outFormat); err != nil {
			return err
		}
	}

	if out == "" {
		_, err = stdout.Write(body)
		return err
	}
	if err := os.WriteFile(out, body, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}
