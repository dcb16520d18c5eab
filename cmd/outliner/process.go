package main

import (
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/outliner"
	"github.com/tsawler/outliner/model"
	"github.com/tsawler/outliner/render"
	"github.com/tsawler/outliner/source"
	"github.com/tsawler/outliner/summary"
)

var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Outline a single document",
	Long: `Process runs the full pipeline over one document and writes the title
and outline to stdout or to --output.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().String("format", "json", "output format (json|text|html)")
	processCmd.Flags().StringP("output", "o", "", "write to this file instead of stdout")
	processCmd.Flags().Bool("summary", false, "include an extractive summary of the body text")
	processCmd.Flags().String("dump-spans", "", "also write the loaded span document to this MessagePack file")
}

func runProcess(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	language, _ := cmd.Flags().GetString("language")
	outputPath, _ := cmd.Flags().GetString("output")
	withSummary, _ := cmd.Flags().GetBool("summary")
	dumpPath, _ := cmd.Flags().GetString("dump-spans")

	if dumpPath != "" {
		if err := dumpSpans(path, dumpPath); err != nil {
			return err
		}
	}

	pipeline := outliner.Open(path).WithConfig(cfg)
	if language != "" {
		pipeline.Language(language)
	}

	result, err := pipeline.Outline()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	var digest string
	if withSummary {
		blocks, err := pipeline.Blocks()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		lang := language
		if lang == "" {
			lang = "en"
		}
		digest = summary.NewSummarizer().SummarizeBlocks(blocks, lang)
	}

	out := io.Writer(os.Stdout)
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return writeResult(out, format, result, digest)
}

// dumpSpans re-encodes the loaded span document as MessagePack, giving
// later runs a compact cache that skips HTML or JSON parsing.
func dumpSpans(inputPath, dumpPath string) error {
	doc, err := source.Load(inputPath)
	if err != nil {
		return fmt.Errorf("%s: %w", inputPath, err)
	}
	f, err := os.Create(dumpPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return source.EncodeMsgPack(f, doc)
}

func writeResult(w io.Writer, format string, result *model.Result, digest string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			*model.Result
			Summary string `json:"summary,omitempty"`
		}{result, digest})
	case "text":
		if err := render.WriteText(w, result); err != nil {
			return err
		}
		if digest != "" {
			_, err := fmt.Fprintf(w, "\n%s\n", digest)
			return err
		}
		return nil
	case "html":
		if err := render.WriteHTML(w, result); err != nil {
			return err
		}
		if digest != "" {
			_, err := fmt.Fprintf(w, "<p class=\"summary\">%s</p>\n", html.EscapeString(digest))
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json, text, or html)", format)
	}
}
