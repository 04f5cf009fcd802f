package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/filetidy/filetidy/internal/security"
)

// MaxFiles caps a single scan so a runaway recursive scan cannot exhaust
// memory; the result is flagged Truncated when the cap is hit.
const MaxFiles = 50000

// Scan walks root and returns descriptor snapshots for every matching file.
// Hidden files and directories are skipped. The context is checked between
// entries so a long scan can be cancelled.
func Scan(ctx context.Context, root string, opts Options) (*Result, error) {
	cleanRoot, err := security.ValidateScanPath(root)
	if err != nil {
		return nil, fmt.Errorf("invalid scan path: %w", err)
	}

	extFilter := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		extFilter[strings.ToLower(strings.TrimPrefix(e, "."))] = true
	}

	result := &Result{
		Files:     []FileInfo{},
		Path:      cleanRoot,
		ScannedAt: time.Now(),
	}

	walkErr := filepath.WalkDir(cleanRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped, not fatal
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path == cleanRoot {
				return nil
			}
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}

		_, ext := SplitName(d.Name())
		if len(extFilter) > 0 && !extFilter[strings.ToLower(ext)] {
			return nil
		}

		if len(result.Files) >= MaxFiles {
			result.Truncated = true
			return filepath.SkipAll
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		result.Files = append(result.Files, newFileInfo(path, cleanRoot, info))
		return nil
	})

	if walkErr != nil && walkErr != filepath.SkipAll {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("scan failed for %s: %w", cleanRoot, walkErr)
	}

	result.TotalCount = len(result.Files)
	return result, nil
}

// createdTime returns the best creation timestamp available. Birth time is
// not exposed portably by os.FileInfo, so modification time stands in; the
// engine only uses it for display.
func createdTime(info os.FileInfo) time.Time {
	return info.ModTime()
}

func newFileInfo(path, root string, info os.FileInfo) FileInfo {
	fullName := info.Name()
	name, ext := SplitName(fullName)

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = fullName
	}

	return FileInfo{
		Path:         path,
		Name:         name,
		Extension:    ext,
		FullName:     fullName,
		Size:         info.Size(),
		CreatedAt:    createdTime(info),
		ModifiedAt:   info.ModTime(),
		RelativePath: relPath,
		Category:     CategoryForExtension(ext),
	}
}
