package cmd

import (
	"fmt"
	"strconv"
	"strings"

	cfgpkg "github.com/KaramelBytes/chartloom-cli/internal/config"
	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set ChartLoom configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Println("No config loaded")
			return nil
		}
		fmt.Printf("data_dir: %s\n", cfg.DataDir)
		fmt.Printf("images_dir: %s\n", cfg.ImagesDir)
		fmt.Println("runs:")
		for _, r := range cfg.Runs {
			conn := ""
			if r.Connect {
				conn = " [connect]"
			}
			fmt.Printf("  - %s: %s%s\n", r.Label, cfg.DataPath(r.Path), conn)
		}
		fmt.Printf("cpu_path: %s\n", cfg.DataPath(cfg.CPUPath))
		if cfg.CPUSheet != "" {
			fmt.Printf("cpu_sheet: %s\n", cfg.CPUSheet)
		}
		fmt.Printf("panel_size: %dx%d\n", cfg.PanelWidth, cfg.PanelHeight)
		fmt.Printf("chart_size: %dx%d\n", cfg.ChartWidth, cfg.ChartHeight)
		fmt.Printf("sample_rows: %d\n", cfg.SampleRows)
		names := []string{record.ProfileLoadTest, record.ProfileIntelCPU}
		for _, p := range cfg.Profiles {
			if p.Name != record.ProfileLoadTest && p.Name != record.ProfileIntelCPU {
				names = append(names, p.Name)
			}
		}
		fmt.Printf("profiles: %s\n", strings.Join(names, ", "))
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "data_dir":
			cfg.DataDir = val
		case "images_dir":
			cfg.ImagesDir = val
		case "cpu_path":
			cfg.CPUPath = val
		case "cpu_sheet":
			cfg.CPUSheet = val
		case "panel_width", "panel_height", "chart_width", "chart_height", "sample_rows":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for %s: %w", key, err)
			}
			switch key {
			case "panel_width":
				cfg.PanelWidth = i
			case "panel_height":
				cfg.PanelHeight = i
			case "chart_width":
				cfg.ChartWidth = i
			case "chart_height":
				cfg.ChartHeight = i
			case "sample_rows":
				cfg.SampleRows = i
			}
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Println("Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
