package cmd

import (
	"fmt"

	"github.com/KaramelBytes/chartloom-cli/internal/project"
	"github.com/spf13/cobra"
)

var listDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List charts recorded in the images directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := listDir
		if dir == "" {
			c, err := requireConfig()
			if err != nil {
				return err
			}
			dir = c.ImagesDir
		}
		p, err := project.Open(dir)
		if err != nil {
			return err
		}
		charts := p.List()
		if len(charts) == 0 {
			fmt.Println("(no charts)")
			return nil
		}
		for _, c := range charts {
			srcs := make([]string, 0, len(c.Sources))
			for _, s := range c.Sources {
				srcs = append(srcs, fmt.Sprintf("%s: %d rows, %d skipped", s.Path, s.Rows, s.Skipped))
			}
			fmt.Printf("- %s: %s (%s) %s\n", c.Name, c.Path, c.Profile, c.GeneratedAt.Format("2006-01-02 15:04:05"))
			for _, s := range srcs {
				fmt.Printf("    %s\n", s)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listDir, "dir", "d", "", "images directory (default images_dir from config)")
}
