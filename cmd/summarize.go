package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/chartloom-cli/internal/config"
	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/KaramelBytes/chartloom-cli/internal/stats"
	"github.com/spf13/cobra"
)

var (
	sumProfile    string
	sumOutputPath string
	sumDelimiter  string
	sumSampleRows int
	sumTopValues  int
	sumSheetName  string
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file>",
	Short: "Summarize a CSV/TSV/XLSX after coercion as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		profile, err := profileFor(sumProfile, sumDelimiter)
		if err != nil {
			return err
		}
		ds, err := loadDataset(path, sumSheetName, profile)
		if err != nil {
			return err
		}

		opt := stats.DefaultOptions()
		if cmd.Flags().Changed("sample-rows") {
			opt.SampleRows = sumSampleRows
		} else if cfg != nil {
			opt.SampleRows = cfg.SampleRows
		}
		if sumTopValues > 0 {
			opt.TopValues = sumTopValues
		}
		md := stats.Describe(ds, profile.Name, opt).Markdown()

		if sumOutputPath != "" {
			if err := os.WriteFile(sumOutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote summary to %s\n", sumOutputPath)
			return nil
		}
		fmt.Println(md)
		return nil
	},
}

// profileFor resolves a profile by name, falling back to pass-through when
// name is empty, and applies a delimiter override.
func profileFor(name, delim string) (record.Profile, error) {
	p := record.Profile{Name: "raw"}
	if name != "" {
		c := cfg
		if c == nil {
			c = &cfgpkg.Global{}
		}
		var err error
		if p, err = c.ResolveProfile(name); err != nil {
			return p, err
		}
	}
	switch delim {
	case "":
	case ",":
		p.Delimiter = ','
	case ";":
		p.Delimiter = ';'
	case "|":
		p.Delimiter = '|'
	case "\t", "tab":
		p.Delimiter = '\t'
	default:
		return p, fmt.Errorf("unsupported --delimiter: %s", delim)
	}
	return p, nil
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVar(&sumProfile, "profile", "", "coercion profile (loadtest, intel-cpu or a configured one; default keeps text)")
	summarizeCmd.Flags().StringVarP(&sumOutputPath, "output", "o", "", "optional path to write the summary (Markdown)")
	summarizeCmd.Flags().StringVar(&sumDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab'")
	summarizeCmd.Flags().IntVar(&sumSampleRows, "sample-rows", 5, "number of sample rows to include")
	summarizeCmd.Flags().IntVar(&sumTopValues, "top-values", 0, "top text values listed per column")
	summarizeCmd.Flags().StringVar(&sumSheetName, "sheet-name", "", "XLSX: sheet name to summarize")
}
