package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	cfgpkg "github.com/KaramelBytes/chartloom-cli/internal/config"
	"github.com/KaramelBytes/chartloom-cli/internal/loadtest"
	"github.com/KaramelBytes/chartloom-cli/internal/project"
	"github.com/KaramelBytes/chartloom-cli/internal/record"
	"github.com/spf13/cobra"
)

const (
	requestTimingsFile = "request_timings.png"
	connectTimingsFile = "connect_timings.png"
)

var (
	timOutDir  string
	timLabels  []string
	timConnect []int
	timProfile string
)

var timingsCmd = &cobra.Command{
	Use:   "timings [csv...]",
	Short: "Chart request and connect timings of load-test runs",
	Long: `Render request_timings.png (elapsed ms per run) and connect_timings.png
(connect ms for runs marked as connect runs). Without arguments the runs come
from the configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		profile, err := c.ResolveProfile(timProfile)
		if err != nil {
			return err
		}
		runCfgs, err := timingRuns(c, args)
		if err != nil {
			return err
		}
		if len(runCfgs) == 0 {
			return loadtest.ErrNoRuns
		}

		runs := make([]loadtest.Run, 0, len(runCfgs))
		sources := make([]project.Source, 0, len(runCfgs))
		hasConnect := false
		for _, rc := range runCfgs {
			ds, err := loadDataset(rc.Path, "", profile)
			if err != nil {
				return err
			}
			if ds.Len() == 0 {
				fmt.Printf("⚠ Warning: %s has no rows\n", rc.Path)
			}
			runs = append(runs, loadtest.Run{Label: rc.Label, Data: ds, Connect: rc.Connect})
			sources = append(sources, project.Source{Label: rc.Label, Path: rc.Path, Rows: ds.Len(), Skipped: ds.Skipped})
			hasConnect = hasConnect || rc.Connect
		}

		outDir := c.ImagesDir
		if timOutDir != "" {
			outDir = timOutDir
		}
		opt := loadtest.ChartOptions{PanelWidth: c.PanelWidth, PanelHeight: c.PanelHeight}

		reqPath := filepath.Join(outDir, requestTimingsFile)
		if err := writeChart(reqPath, func(w io.Writer) error { return loadtest.RenderRequestTimings(w, runs, opt) }); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", reqPath)
		if err := recordChart(outDir, "request_timings", reqPath, profile.Name, sources); err != nil {
			return err
		}

		if !hasConnect {
			fmt.Println("⚠ Warning: no connect runs selected, skipping connect chart")
			return nil
		}
		conPath := filepath.Join(outDir, connectTimingsFile)
		if err := writeChart(conPath, func(w io.Writer) error { return loadtest.RenderConnectTimings(w, runs, opt) }); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote %s\n", conPath)
		var conSources []project.Source
		for i, r := range runs {
			if r.Connect {
				conSources = append(conSources, sources[i])
			}
		}
		return recordChart(outDir, "connect_timings", conPath, profile.Name, conSources)
	},
}

// timingRuns returns the configured runs, or runs built from args. Labels
// default to the file name; --connect selects runs by 1-based position.
func timingRuns(c *cfgpkg.Global, args []string) ([]cfgpkg.RunConfig, error) {
	if len(args) == 0 {
		out := make([]cfgpkg.RunConfig, len(c.Runs))
		for i, r := range c.Runs {
			r.Path = c.DataPath(r.Path)
			out[i] = r
		}
		return out, nil
	}
	if len(timLabels) > 0 && len(timLabels) != len(args) {
		return nil, fmt.Errorf("got %d labels for %d files", len(timLabels), len(args))
	}
	out := make([]cfgpkg.RunConfig, len(args))
	for i, a := range args {
		label := strings.TrimSuffix(filepath.Base(a), filepath.Ext(a))
		if len(timLabels) > 0 {
			label = timLabels[i]
		}
		out[i] = cfgpkg.RunConfig{Label: label, Path: a}
	}
	for _, n := range timConnect {
		if n < 1 || n > len(out) {
			return nil, fmt.Errorf("--connect %d out of range 1..%d", n, len(out))
		}
		out[n-1].Connect = true
	}
	return out, nil
}

func init() {
	rootCmd.AddCommand(timingsCmd)
	timingsCmd.Flags().StringVarP(&timOutDir, "out", "o", "", "output directory (default images_dir from config)")
	timingsCmd.Flags().StringSliceVar(&timLabels, "labels", nil, "chart labels for the given files, in order")
	timingsCmd.Flags().IntSliceVar(&timConnect, "connect", nil, "1-based positions of files to include in the connect chart")
	timingsCmd.Flags().StringVar(&timProfile, "profile", record.ProfileLoadTest, "coercion profile")
}
