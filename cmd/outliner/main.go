package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tsawler/outliner"
	"github.com/tsawler/outliner/internal/config"
)

const version = "0.1.0"

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

var rootCmd = &cobra.Command{
	Use:   "outliner",
	Short: "Derive heading outlines and titles from positioned text spans",
	Long: `Outliner reads positioned text spans from JSON, MessagePack, HTML, or
EPUB documents and derives an H1-H4 heading outline plus a document title.`,
	SilenceUsage: true,
}

func main() {
	rootCmd.Version = version

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(batchCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "TOML tuning file overlaid on the defaults")
	rootCmd.PersistentFlags().String("language", "", "pin the document language instead of detecting it")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		mode, _ := cmd.Flags().GetString("color")
		return applyColorMode(mode)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyColorMode(mode string) error {
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto", "":
		color.NoColor = !term.IsTerminal(int(os.Stderr.Fd()))
	default:
		return fmt.Errorf("invalid --color mode %q (want auto, on, or off)", mode)
	}
	return nil
}

// loadConfig resolves the pipeline configuration from the --config flag,
// falling back to the tuned defaults when no file is given.
func loadConfig(cmd *cobra.Command) (outliner.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return outliner.DefaultConfig(), nil
	}
	return config.Load(path)
}
