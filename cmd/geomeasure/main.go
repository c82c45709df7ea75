package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"geomeasure/internal/config"
	"geomeasure/internal/tui"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "geomeasure [file]",
	Short: "Measure distances and areas on a terminal map",
	Long: `geomeasure opens a terminal map with an interactive measurement control.
Press m to start measuring, click to add points and double-click to finish.
An optional GeoJSON, WKT, CSV, KML or XLSX file is drawn underneath.`,
	Version:      "0.1.0",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write a debug log to geomeasure-debug.log")
}

// loadConfig reads --config strictly and the default location leniently.
func loadConfig() (config.Config, error) {
	if configPath != "" {
		return config.Load(configPath, false)
	}
	return config.Load(config.DefaultPath(), true)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// the program owns the terminal, so log lines go to a file or nowhere
	if debug || os.Getenv("GEOMEASURE_DEBUG") != "" {
		f, err := tea.LogToFile("geomeasure-debug.log", "debug")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	var m tui.Model
	if len(args) == 1 {
		m, err = tui.NewWithPath(cfg, args[0])
	} else {
		m, err = tui.New(cfg)
	}
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
