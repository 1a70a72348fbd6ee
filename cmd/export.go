package cmd

import (
	"fmt"

	"github.com/KaramelBytes/chartloom-cli/internal/export"
	"github.com/spf13/cobra"
)

var (
	expProfile   string
	expOutput    string
	expDelimiter string
	expSheetName string
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the coerced records as JSON or Parquet",
	Long: `Load a file through a profile and write its records. The output format
follows the extension of --output: .json keeps absent and null cells distinct,
.parquet writes nullable typed columns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := export.FormatFor(expOutput); err != nil {
			return err
		}
		profile, err := profileFor(expProfile, expDelimiter)
		if err != nil {
			return err
		}
		ds, err := loadDataset(args[0], expSheetName, profile)
		if err != nil {
			return err
		}
		if err := export.WriteFile(expOutput, ds); err != nil {
			return err
		}
		fmt.Printf("✓ Exported %d records to %s\n", ds.Len(), expOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&expProfile, "profile", "", "coercion profile (default keeps text)")
	exportCmd.Flags().StringVarP(&expOutput, "output", "o", "", "output path ending in .json or .parquet")
	exportCmd.Flags().StringVar(&expDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab'")
	exportCmd.Flags().StringVar(&expSheetName, "sheet-name", "", "XLSX: sheet name to export")
	_ = exportCmd.MarkFlagRequired("output")
}
