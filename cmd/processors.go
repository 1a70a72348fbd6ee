package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/KaramelBytes/chartloom-cli/internal/processors"
	"github.com/KaramelBytes/chartloom-cli/internal/project"
	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/spf13/cobra"
)

const processorChartFile = "processor_advancements.png"

var (
	procOutDir  string
	procSheet   string
	procProfile string
)

var processorsCmd = &cobra.Command{
	Use:   "processors [file]",
	Short: "Chart desktop CPU clock, bandwidth and core count by launch date",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		profile, err := c.ResolveProfile(procProfile)
		if err != nil {
			return err
		}
		path := c.DataPath(c.CPUPath)
		if len(args) == 1 {
			path = args[0]
		}
		sheet := c.CPUSheet
		if procSheet != "" {
			sheet = procSheet
		}
		ds, err := loadDataset(path, sheet, profile)
		if err != nil {
			return err
		}
		if ds.Len() == 0 {
			fmt.Printf("⚠ Warning: no rows in %s matched profile %s\n", path, profile.Name)
		}

		outDir := c.ImagesDir
		if procOutDir != "" {
			outDir = procOutDir
		}
		out := filepath.Join(outDir, processorChartFile)
		opt := processors.ChartOptions{Width: c.ChartWidth, Height: c.ChartHeight}
		if err := writeChart(out, func(w io.Writer) error { return processors.RenderDataset(w, ds, opt) }); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s (%d processors, %d rows skipped)\n", out, ds.Len(), ds.Skipped)
		return recordChart(outDir, "processor_advancements", out, profile.Name, []project.Source{
			{Path: path, Rows: ds.Len(), Skipped: ds.Skipped},
		})
	},
}

func init() {
	rootCmd.AddCommand(processorsCmd)
	processorsCmd.Flags().StringVarP(&procOutDir, "out", "o", "", "output directory (default images_dir from config)")
	processorsCmd.Flags().StringVar(&procSheet, "sheet", "", "worksheet name for .xlsx input")
	processorsCmd.Flags().StringVar(&procProfile, "profile", record.ProfileIntelCPU, "coercion profile")
}
