package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/iksnae/dm-insights/internal"
	"github.com/iksnae/dm-insights/internal/session"
)

// ErrUnknownWeek is returned when a selected week has no messages
var ErrUnknownWeek = errors.New("no messages in selected week")

// File is a named export artifact
type File struct {
	Name    string
	Content []byte
}

// ExportSelection renders one report per selected week of a partner's
// conversation, in chronological order. Duplicate keys are ignored and an
// empty selection yields no files.
func ExportSelection(state *session.State, partner string, weekKeys []string) ([]File, error) {
	if len(weekKeys) == 0 {
		return nil, nil
	}
	conv, err := state.Conversation(partner)
	if err != nil {
		return nil, err
	}

	selected := make(map[string]bool, len(weekKeys))
	for _, key := range weekKeys {
		key = strings.TrimSpace(key)
		if _, _, err := internal.ParseWeekKey(key); err != nil {
			return nil, err
		}
		if _, ok := conv.WeekClusters[key]; !ok {
			return nil, fmt.Errorf("%w: %s has nothing in %s", ErrUnknownWeek, partner, key)
		}
		selected[key] = true
	}

	keys := make([]string, 0, len(selected))
	for key := range selected {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	files := make([]File, 0, len(keys))
	for _, key := range keys {
		cluster := conv.WeekClusters[key]
		files = append(files, File{
			Name:    WeekFileName(partner, cluster),
			Content: []byte(FormatWeek(partner, cluster)),
		})
	}
	return files, nil
}

// WeekFileName names a week report, e.g. bob_2024-W03.md
func WeekFileName(partner string, cluster *internal.WeekCluster) string {
	return fmt.Sprintf("%s_%s.md", SafeFileName(partner), cluster.Key())
}

// SafeFileName replaces characters that are unsafe in file names
func SafeFileName(name string) string {
	name = strings.TrimSpace(name)
	replacer := strings.NewReplacer(
		"/", "_", "\\", "_", ":", "_", "*", "_", "?", "_",
		"\"", "_", "<", "_", ">", "_", "|", "_", "\x00", "_",
	)
	name = replacer.Replace(name)
	if name == "" || name == "." || name == ".." {
		return "conversation"
	}
	return name
}

// WriteFiles writes files into dir concurrently and returns their paths in
// input order
func WriteFiles(ctx context.Context, dir string, files []File) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &internal.ExportError{Format: "file", Path: dir, Err: err}
	}

	paths := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, f.Name)
			if err := os.WriteFile(path, f.Content, 0644); err != nil {
				return &internal.ExportError{Format: "file", Path: path, Err: err}
			}
			internal.LogDebug("Wrote %s (%d bytes)", path, len(f.Content))
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
