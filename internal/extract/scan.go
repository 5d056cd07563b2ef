// Package extract turns a directory of photo files into pipeline-ready
// images: recursive discovery, capture timestamps from EXIF, perceptual
// hashes, sidecar quality metrics and optional embeddings from the
// embedding server.
package extract

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions covers standard formats plus the raw formats of the major
// camera manufacturers. Raw files get timestamps and metrics but no hashes,
// the in-process decoders cannot read them.
var imageExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true,
	".tiff": true, ".tif": true, ".webp": true,
	// Canon
	".cr2": true, ".cr3": true, ".crw": true,
	// Nikon
	".nef": true, ".nrw": true,
	// Sony
	".arw": true, ".srf": true, ".sr2": true,
	// Fujifilm
	".raf": true,
	// Olympus
	".orf": true,
	// Panasonic
	".rw2": true,
	// Pentax
	".pef": true, ".ptx": true,
	// Adobe
	".dng": true,
	// Phase One
	".iiq": true,
	// Leica
	".rwl": true, ".raw": true,
	// Hasselblad
	".3fr": true,
	// Sigma
	".x3f": true,
	// Samsung
	".srw": true,
}

// Scan walks the directory recursively and returns the paths of all image
// files, sorted for a stable processing order.
func Scan(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if imageExtensions[strings.ToLower(filepath.Ext(path))] {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}
