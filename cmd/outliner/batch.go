package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/outliner"
	"github.com/tsawler/outliner/source"
)

// outlineSuffix marks batch outputs so a rerun does not pick them up as
// inputs.
const outlineSuffix = ".outline.json"

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Outline every supported document under a directory",
	Long: `Batch discovers JSON, MessagePack, HTML, and EPUB documents under a directory
and writes one outline JSON file per input. Documents are processed in
parallel; a failing document is reported and skipped, never aborting
the rest of the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().Int("workers", 0, "parallel workers (0 = number of CPUs)")
	batchCmd.Flags().StringP("out", "o", "", "directory for outline files (default: next to each input)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	language, _ := cmd.Flags().GetString("language")
	workers, _ := cmd.Flags().GetInt("workers")
	outDir, _ := cmd.Flags().GetString("out")

	files, err := listDocuments(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		warnColor.Fprintf(os.Stderr, "no supported documents under %s\n", dir)
		return nil
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return err
		}
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var failed atomic.Int64
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(min(workers, len(files)))

	for _, path := range files {
		path := path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if err := processOne(path, dir, outDir, language, cfg); err != nil {
				failed.Add(1)
				errorColor.Fprintf(os.Stderr, "%s: %v\n", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if failures := failed.Load(); failures > 0 {
		return fmt.Errorf("%d of %d documents failed", failures, len(files))
	}
	successColor.Fprintf(os.Stderr, "processed %d documents\n", len(files))
	return nil
}

// listDocuments returns the sorted paths of all supported documents
// under dir, skipping earlier batch outputs.
func listDocuments(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, outlineSuffix) {
			return nil
		}
		if source.Detect(path) != source.Unknown {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func processOne(path, root, outDir, language string, cfg outliner.Config) error {
	pipeline := outliner.Open(path).WithConfig(cfg)
	if language != "" {
		pipeline.Language(language)
	}
	result, err := pipeline.Outline()
	if err != nil {
		return err
	}

	target := outlinePath(path, root, outDir)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// outlinePath maps an input path to its outline file: next to the input
// by default, or mirroring the input's relative path under outDir.
func outlinePath(path, root, outDir string) string {
	if outDir == "" {
		return strings.TrimSuffix(path, filepath.Ext(path)) + outlineSuffix
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return filepath.Join(outDir, strings.TrimSuffix(rel, filepath.Ext(rel))+outlineSuffix)
}
