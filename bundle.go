package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"

	"LeafTools/lf2"

	"github.com/apex/log"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// listBundle reads a bundle file and prints the table data
func listBundle(bundlePath string, cfg *Config, w io.Writer) error {
	archive, err := openBundle(bundlePath, cfg)
	if err != nil {
		return err
	}
	printFileTable(w, archive)
	return nil
}

// extractBundle writes every entry matching pattern to extractPath. LF2
// entries are also written as PNG when cfg.ConvertImages is set; an entry
// that fails to convert is logged and skipped.
func extractBundle(bundlePath, extractPath, pattern string, cfg *Config) error {
	archive, err := openBundle(bundlePath, cfg)
	if err != nil {
		return err
	}

	regex, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern: %w", err)
	}

	if err := os.MkdirAll(extractPath, os.ModePerm); err != nil {
		return fmt.Errorf("error creating extraction directory %s: %w", extractPath, err)
	}

	var (
		mu       sync.Mutex
		seen     = make(map[uint64]string)
		failed   atomic.Int32
		written  atomic.Int32
		g        errgroup.Group
		archiveLog = log.WithField("archive", filepath.Base(bundlePath))
	)
	g.SetLimit(max(cfg.Workers, 1))

	for _, entry := range archive.Entries {
		if !regex.MatchString(entry.Name) {
			continue
		}

		g.Go(func() error {
			entryLog := archiveLog.WithFields(log.Fields{"name": entry.Name, "index": entry.Index})
			file := archive.Extract(entry)

			sum := xxhash.Sum64(file.Data)
			mu.Lock()
			if other, ok := seen[sum]; ok && len(file.Data) > 0 {
				entryLog.WithField("same_as", other).Debug("duplicate content")
			} else {
				seen[sum] = entry.Name
			}
			mu.Unlock()

			outputPath := filepath.Join(extractPath, safeName(entry))
			if err := os.WriteFile(outputPath, file.Data, 0644); err != nil {
				return fmt.Errorf("unable to write %s: %w", outputPath, err)
			}
			written.Add(1)
			entryLog.WithField("length", entry.Length).Debug("extracted")

			if !cfg.ConvertImages || !strings.EqualFold(filepath.Ext(entry.Name), ".lf2") {
				return nil
			}
			img, err := lf2.Decode(file.Data, lf2.WithRowOrder(cfg.rowOrder()), lf2.WithLogger(entryLog))
			if err != nil {
				entryLog.WithError(err).Warn("not converted")
				failed.Add(1)
				return nil
			}
			return savePNG(pngPath(extractPath, entry.Name), img)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	archiveLog.WithFields(log.Fields{
		"files":  written.Load(),
		"output": extractPath,
	}).Info("extracted")
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d images in %s could not be converted", n, bundlePath)
	}
	return nil
}
