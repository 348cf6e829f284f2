// Package main provides the CLI entry point for sheetxml-go.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/config"
	"github.com/ukaji3/sheetxml-go/pkg/sheetxml/output"
)

type flags struct {
	outputPath      string
	pretty          bool
	naming          string
	headerRow       int
	emitType        bool
	emitRowNumber   bool
	emitPosition    bool
	dateFormat      string
	numberFormat    string
	encoding        string
	contentEncoding string
	ignoreNullRows  bool
	timeZone        string
	configPath      string
	logLevel        string
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}
	rootCmd := &cobra.Command{
		Use:   "sheetxml [input.xlsx|input.xls]",
		Short: "Convert spreadsheets to XML",
		Long: `sheetxml-go converts every sheet of an Excel workbook into an XML
document with one element per sheet, row and cell.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := run(cmd, f, args[0], stdout, stderr)
			if err != nil {
				fmt.Fprintln(stderr, "Error:", err)
			}
			return err
		},
	}

	fl := rootCmd.Flags()
	fl.StringVarP(&f.outputPath, "output", "o", "", "Output file path (default: stdout)")
	fl.BoolVar(&f.pretty, "pretty", false, "Indent XML output")
	fl.StringVar(&f.naming, "naming", "simple", "Cell element naming: simple, column-letter, header-row")
	fl.IntVar(&f.headerRow, "header-row", 1, "1-based header row for header-row naming")
	fl.BoolVar(&f.emitType, "emit-type", false, "Add a type attribute to each cell")
	fl.BoolVar(&f.emitRowNumber, "emit-row-number", false, "Add a number attribute to each row")
	fl.BoolVar(&f.emitPosition, "emit-position", false, "Add a position attribute such as B3 to each cell")
	fl.StringVar(&f.dateFormat, "date-format", "", "Date pattern (default yyyy-MM-dd'T'HH:mm:ssZ)")
	fl.StringVar(&f.numberFormat, "number-format", "", "Decimal pattern for numbers, e.g. 0.###E0")
	fl.StringVar(&f.encoding, "encoding", "", "Output encoding")
	fl.StringVar(&f.contentEncoding, "content-encoding", "", "Encoding to use when --encoding is not set")
	fl.BoolVar(&f.ignoreNullRows, "ignore-null-rows", false, "Skip absent rows instead of failing")
	fl.StringVar(&f.timeZone, "time-zone", "", "IANA time zone for date cells (default UTC)")
	fl.StringVar(&f.configPath, "config", "", "YAML config file")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level: error, warn, info, debug, trace")

	return rootCmd
}

func run(cmd *cobra.Command, f *flags, inputPath string, stdout, stderr io.Writer) error {
	// Validate input file exists
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", sheetxml.ErrFileNotFound, inputPath)
	}

	cfg, err := config.Read(f.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, f, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := cfg.ToOptions()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}
	opts.Logger = logger

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	logger.WithField("file", inputPath).Info("converting workbook")
	result, err := sheetxml.ConvertBytes(data, f.contentEncoding, opts)
	if err != nil {
		return fmt.Errorf("conversion failed: %w", err)
	}

	xmlData, err := output.ToXML(result.Document, result.Encoding, f.pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if f.outputPath != "" {
		if err := os.WriteFile(f.outputPath, xmlData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		logger.WithField("file", f.outputPath).Info("wrote output")
		return nil
	}
	_, err = stdout.Write(xmlData)
	return err
}

// applyFlags copies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, f *flags, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("naming") {
		cfg.ElementNaming = f.naming
	}
	if changed("header-row") {
		cfg.HeaderRow = f.headerRow
	}
	if changed("emit-type") {
		cfg.EmitDataTypeAttr = f.emitType
	}
	if changed("emit-row-number") {
		cfg.EmitRowNumberAttr = f.emitRowNumber
	}
	if changed("emit-position") {
		cfg.EmitCellPositionAttr = f.emitPosition
	}
	if changed("date-format") {
		cfg.DateFormat = f.dateFormat
	}
	if changed("number-format") {
		cfg.NumberFormat = f.numberFormat
	}
	if changed("encoding") {
		cfg.XMLEncoding = f.encoding
	}
	if changed("ignore-null-rows") {
		cfg.IgnoreNullRows = f.ignoreNullRows
	}
	if changed("time-zone") {
		cfg.TimeZone = f.timeZone
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
}

func newLogger(level string, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if level == "" {
		level = "info"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", sheetxml.ErrInvalidArgument, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}
