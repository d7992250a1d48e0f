package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <pattern>...",
	Short: "Ingest documents matching glob patterns",
	Long:  "Ingest documents into the persistent store so they can be queried later. Patterns support doublestar globs, e.g. 'docs/**/*.pdf'.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files, err := expandPatterns(args)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			return fmt.Errorf("no files match the given patterns")
		}

		comps, err := buildComponents(cfg)
		if err != nil {
			return err
		}
		defer comps.close()

		bar := progressbar.NewOptions(len(files),
			progressbar.OptionSetDescription("ingesting"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		ok, failed := 0, 0
		for _, path := range files {
			data, err := os.ReadFile(path)
			if err != nil {
				logg.Error("read failed", "file", path, "err", err)
				failed++
				bar.Add(1)
				continue
			}
			doc, err := comps.ingest.Ingest(context.Background(), filepath.Base(path), "", data)
			if err != nil {
				logg.Error("ingest failed", "file", path, "err", err)
				failed++
				bar.Add(1)
				continue
			}
			ok++
			bar.Add(1)
			fmt.Printf("%s  %s  (%d chunks)\n", doc.ID, doc.Filename, doc.ChunkCount)
		}

		fmt.Printf("ingested %d document(s), %d failed\n", ok, failed)
		if failed > 0 && ok == 0 {
			return fmt.Errorf("all ingests failed")
		}
		return nil
	},
}

// expandPatterns resolves glob patterns to a sorted, deduplicated file
// list. A pattern without glob metacharacters is treated as a literal
// path.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if _, dup := seen[match]; dup {
				continue
			}
			seen[match] = struct{}{}
			files = append(files, match)
		}
	}

	sort.Strings(files)
	return files, nil
}
