package parser

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"git.lost.host/meutraa/techmania/internal/game"
)

// LibraryEntry is a parsed track and the folder it lives in.
type LibraryEntry struct {
	Folder string
	Track  *game.Track
}

// ScanLibrary finds every track file below dir and parses them with up to
// concurrency parsers at once. Tracks that fail to parse are logged and
// skipped. Entries are ordered by folder.
func ScanLibrary(ctx context.Context, p Parser, dir string, concurrency int, logger zerolog.Logger) ([]LibraryEntry, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if nil != err {
			return err
		}
		if !d.IsDir() && d.Name() == game.TrackFilename {
			files = append(files, path)
		}
		return nil
	})
	if nil != err {
		return nil, fmt.Errorf("unable to walk tracks folder: %w", err)
	}

	var (
		mux     sync.Mutex
		entries = make([]LibraryEntry, 0, len(files))
	)
	wg, wgCtx := errgroup.WithContext(ctx)
	wg.SetLimit(concurrency)
	for _, file := range files {
		file := file
		wg.Go(func() error {
			if err := wgCtx.Err(); nil != err {
				return err
			}
			track, err := p.Parse(file)
			if nil != err {
				logger.Warn().Err(err).Str("file_path", file).Msg("Skipping unparsable track")
				return nil
			}
			mux.Lock()
			defer mux.Unlock()
			entries = append(entries, LibraryEntry{Folder: filepath.Dir(file), Track: track})
			return nil
		})
	}
	if err := wg.Wait(); nil != err {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Folder < entries[j].Folder })
	return entries, nil
}
