package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// StdinPath selects standard input as the export source
const StdinPath = "-"

// knownExportNames are the file names data exports ship with
var knownExportNames = []string{"user_data.json", "user_data_tiktok.json"}

// ResolveInputPath turns a user supplied path into the export file to read.
// Directories are searched for a known export name, then for a lone JSON file.
func ResolveInputPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("no input given (pass an export file, a directory, or - for stdin)")
	}
	if path == StdinPath {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access input: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	for _, name := range knownExportNames {
		candidate := filepath.Join(path, name)
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			LogDebug("Found export file %s", candidate)
			return candidate, nil
		}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", fmt.Errorf("failed to read directory: %w", err)
	}
	var jsonFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			jsonFiles = append(jsonFiles, filepath.Join(path, entry.Name()))
		}
	}

	switch len(jsonFiles) {
	case 0:
		return "", fmt.Errorf("no export file found in %s (expected one of %s)", path, strings.Join(knownExportNames, ", "))
	case 1:
		return jsonFiles[0], nil
	default:
		return "", fmt.Errorf("found %d JSON files in %s; pass the export file directly", len(jsonFiles), path)
	}
}

// ReadInput resolves path and reads the whole export
func ReadInput(path string, stdin io.Reader) ([]byte, error) {
	resolved, err := ResolveInputPath(path)
	if err != nil {
		return nil, err
	}
	if resolved == StdinPath {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", resolved, err)
	}
	LogDebug("Read %d bytes from %s", len(data), resolved)
	return data, nil
}
