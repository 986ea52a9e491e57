package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"LeafTools/format"
	"LeafTools/lf2"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/apex/log"
	"golang.org/x/sync/errgroup"
)

// pngPath names the PNG for an image file: same base name, .png extension.
func pngPath(dir, name string) string {
	base := filepath.Base(name)
	return filepath.Join(dir, strings.TrimSuffix(base, filepath.Ext(base))+".png")
}

func savePNG(path string, img *lf2.Image) error {
	if err := imgio.Save(path, img.NRGBA(), imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("unable to write %s: %w", path, err)
	}
	return nil
}

// findImages expands folders into the .lf2 files below them. Plain files
// are kept whatever their extension.
func findImages(paths []string) ([]string, error) {
	var found []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("%s does not exist", p)
		}
		if !info.IsDir() {
			found = append(found, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".lf2") {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error reading directory %s: %w", p, err)
		}
	}
	return found, nil
}

// convertImage decodes one LF2 file and writes it to outDir as PNG.
func convertImage(imagePath, outDir string, order lf2.RowOrder) error {
	buf, err := os.ReadFile(imagePath)
	if err != nil {
		return fmt.Errorf("unable to read %s: %w", imagePath, err)
	}

	imageLog := log.WithField("image", imagePath)
	img, err := lf2.Decode(buf, lf2.WithRowOrder(order), lf2.WithLogger(imageLog))
	if err != nil {
		return err
	}

	outputPath := pngPath(outDir, imagePath)
	if err := savePNG(outputPath, img); err != nil {
		return err
	}
	imageLog.WithFields(log.Fields{
		"width":  img.Rect.Width,
		"height": img.Rect.Height,
		"colors": len(img.Palette),
		"output": outputPath,
	}).Debug("converted")
	return nil
}

// convertImages converts every image under paths. Files that are not LF2
// images are logged and counted; write failures stop the batch.
func convertImages(paths []string, outDir string, cfg *Config) error {
	images, err := findImages(paths)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return fmt.Errorf("error creating output directory %s: %w", outDir, err)
	}

	var failed atomic.Int32
	var g errgroup.Group
	g.SetLimit(max(cfg.Workers, 1))

	order := cfg.rowOrder()
	for _, imagePath := range images {
		g.Go(func() error {
			err := convertImage(imagePath, outDir, order)
			var formatErr *format.Error
			if errors.As(err, &formatErr) {
				log.WithField("image", imagePath).WithError(err).Warn("skipped")
				failed.Add(1)
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"images": len(images) - int(failed.Load()),
		"output": outDir,
	}).Info("converted")
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d images could not be converted", n, len(images))
	}
	return nil
}
