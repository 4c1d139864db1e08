package main

import (
	"fmt"
	"log"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vrechner/vorsorge-calculator/internal/calculation"
	"github.com/vrechner/vorsorge-calculator/internal/config"
	"github.com/vrechner/vorsorge-calculator/internal/output"
)

var (
	inputFile   string
	formatName  string
	writeToFile bool
	verbose     bool
)

// stderrLogger implements calculation.Logger on the standard log package
type stderrLogger struct {
	debug bool
}

func (l stderrLogger) Debugf(format string, args ...any) {
	if l.debug {
		log.Printf("DEBUG "+format, args...)
	}
}
func (l stderrLogger) Infof(format string, args ...any)  { log.Printf("INFO "+format, args...) }
func (l stderrLogger) Warnf(format string, args ...any)  { log.Printf("WARN "+format, args...) }
func (l stderrLogger) Errorf(format string, args ...any) { log.Printf("ERROR "+format, args...) }

func main() {
	rootCmd := &cobra.Command{
		Use:   "vorsorge",
		Short: "German retirement vehicle comparison calculator",
		Long: `vorsorge projects long-term outcomes of insurance-wrapped fund pensions,
basis pensions and ETF savings plans under German tax law and produces a
scored recommendation.`,
		Version:      "0.1.0",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "vorsorge.yaml", "input configuration file")
	rootCmd.PersistentFlags().StringVarP(&formatName, "format", "f", "console", "output format (console, json, csv)")
	rootCmd.PersistentFlags().BoolVar(&writeToFile, "write", false, "write the report to a timestamped file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newProjectCommand())
	rootCmd.AddCommand(newExampleCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare all configured products against the ETF baseline",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(stderrLogger{debug: verbose})

			results, err := engine.RunComparisons(cfg)
			if err != nil {
				return err
			}

			formatter := output.GetFormatterByName(formatName)
			if formatter == nil {
				return fmt.Errorf("unknown format %q, available: %v", formatName, output.AvailableFormatterNames())
			}

			if writeToFile {
				filename, err := output.WriteFormatted(formatter, results, formatter.Name())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", filename)
				return nil
			}

			data, err := formatter.Format(results)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newProjectCommand() *cobra.Command {
	var productName string

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project a single insurance product",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(inputFile)
			if err != nil {
				return err
			}

			engine := calculation.NewCalculationEngine()
			engine.SetLogger(stderrLogger{debug: verbose})

			result, err := engine.RunProjection(cfg, productName)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}

	cmd.Flags().StringVarP(&productName, "product", "p", "", "product name (defaults to the first configured product)")
	return cmd
}

func newExampleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "example",
		Short: "Write an example configuration to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			example := config.NewInputParser().CreateExampleConfiguration()
			data, err := yaml.Marshal(example)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
