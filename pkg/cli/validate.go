package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/platinummonkey/ordcheck/pkg/codec"
	"github.com/platinummonkey/ordcheck/pkg/ingest"
	"github.com/platinummonkey/ordcheck/pkg/validation"
)

// fileReport is one entry of the JSON output of validate
type fileReport struct {
	File     string             `json:"file"`
	Format   string             `json:"format,omitempty"`
	Accepted bool               `json:"accepted"`
	Error    string             `json:"error,omitempty"`
	Report   *validation.Report `json:"report,omitempty"`
}

func newValidateCommand() *Command {
	cmd := &Command{
		Name:        "validate",
		Description: "Check reaction records and print their findings",
		Flags:       newFlagSet("validate"),
	}

	configPath := cmd.Flags.String("config", "", "Path to a YAML config file")
	format := cmd.Flags.String("format", "", "Input format (json, yaml, proto); guessed from the file name when empty")
	output := cmd.Flags.String("output", "text", "Output format (text, json)")
	warnings := cmd.Flags.Bool("warnings", true, "Print warnings as well as errors")

	cmd.Run = func(args []string) error {
		if err := cmd.Flags.Parse(args); err != nil {
			return err
		}
		if *output != "text" && *output != "json" {
			return fmt.Errorf("invalid output format %q (expected text or json)", *output)
		}
		var inputFormat codec.Format
		if *format != "" {
			f, err := codec.ParseFormat(*format)
			if err != nil {
				return err
			}
			inputFormat = f
		}

		files, err := expandInputs(cmd.Flags.Args())
		if err != nil {
			return err
		}

		a, err := newApp(appOptions{configPath: *configPath})
		if err != nil {
			return err
		}
		defer a.Close()

		return runValidate(context.Background(), a.processor, files, inputFormat, *output, *warnings)
	}

	return cmd
}

func runValidate(ctx context.Context, processor *ingest.Processor, files []string, format codec.Format, output string, warnings bool) error {
	var (
		results  []fileReport
		rejected bool
	)
	for _, file := range files {
		res := validateFile(ctx, processor, file, format)
		if !res.Accepted {
			rejected = true
		}
		results = append(results, res)

		if output == "text" {
			printFileReport(stdout, res, warnings)
		}
	}

	if output == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	}

	if rejected {
		return ErrRejected
	}
	return nil
}

func validateFile(ctx context.Context, processor *ingest.Processor, file string, format codec.Format) fileReport {
	res := fileReport{File: file}
	data, err := readInput(file)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	if format == "" {
		format = ingest.FormatOf(file, data)
	}
	res.Format = string(format)

	processed, err := processor.Process(ctx, data, format, ingest.ModeValidate)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Report = processed.Report
	res.Accepted = processed.Accepted()
	return res
}

func printFileReport(w io.Writer, res fileReport, warnings bool) {
	if res.Error != "" {
		fmt.Fprintf(w, "%s: %s\n", res.File, res.Error)
		return
	}
	fmt.Fprintf(w, "%s: %s\n", res.File, res.Report.Summary())
	for _, f := range res.Report.Findings() {
		if f.Severity == validation.SeverityWarning && !warnings {
			continue
		}
		fmt.Fprintf(w, "  %s\n", f)
		for _, rel := range f.Related {
			fmt.Fprintf(w, "      see %s\n", rel)
		}
	}
}

// expandInputs replaces directory arguments with the record files below them
func expandInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, errors.New("no input files given (use - for stdin)")
	}

	var files []string
	for _, arg := range args {
		if arg == "-" {
			files = append(files, arg)
			continue
		}
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}

		src, err := ingest.NewDirSource(arg)
		if err != nil {
			return nil, err
		}
		names, err := src.List(context.Background())
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			files = append(files, filepath.Join(arg, filepath.FromSlash(name)))
		}
	}
	return files, nil
}
