package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"LeafTools/lf2"

	"github.com/apex/log"
)

// extractSingleFile extracts a single file from the bundle to a specified
// path. An output path ending in .png decodes the entry as an LF2 image.
func extractSingleFile(bundlePath string, fileIndex int, outputPath string, cfg *Config) error {
	archive, err := openBundle(bundlePath, cfg)
	if err != nil {
		return err
	}

	if fileIndex < 0 || fileIndex >= len(archive.Entries) {
		return fmt.Errorf("invalid file index %d (valid range: 0-%d)", fileIndex, len(archive.Entries)-1)
	}
	entry := archive.Entries[fileIndex]
	file := archive.Extract(entry)

	if dir := filepath.Dir(outputPath); dir != "" {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return fmt.Errorf("error creating directory for %s: %w", outputPath, err)
		}
	}

	entryLog := log.WithFields(log.Fields{"name": entry.Name, "output": outputPath})
	if strings.EqualFold(filepath.Ext(outputPath), ".png") {
		img, err := lf2.Decode(file.Data, lf2.WithRowOrder(cfg.rowOrder()), lf2.WithLogger(entryLog))
		if err != nil {
			return fmt.Errorf("%s: %w", entry.Name, err)
		}
		if err := savePNG(outputPath, img); err != nil {
			return err
		}
		entryLog.Info("converted")
		return nil
	}

	if err := os.WriteFile(outputPath, file.Data, 0644); err != nil {
		return fmt.Errorf("unable to write %s: %w", outputPath, err)
	}
	entryLog.WithField("length", len(file.Data)).Info("extracted")
	return nil
}
