// Package fs implements ports.Storage on top of a JSON file.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	logadapter "github.com/bft-labs/votebox/internal/adapters/log"
	"github.com/bft-labs/votebox/internal/domain"
	"github.com/bft-labs/votebox/internal/ports"
)

// DefaultFileName is the tally file used when no path is configured.
const DefaultFileName = "machine.json"

// TallyFile stores the voting state in a single JSON file. Every Load reads
// and decodes the whole file and every Save rewrites it, so several instances
// opened on the same path observe each other's writes.
type TallyFile struct {
	path   string
	logger ports.Logger

	mu     sync.Mutex
	broken error

	// rename replaces the target with the synced temp file.
	rename func(oldpath, newpath string) error
}

// Open returns a TallyFile for path (DefaultFileName when empty).
//
// If the file already exists its content wins over initial, which is ignored;
// the content is decoded once so a corrupt file is reported here. Otherwise
// initial is written.
func Open(ctx context.Context, path string, initial domain.VotingState, logger ports.Logger) (*TallyFile, error) {
	if path == "" {
		path = DefaultFileName
	}
	f := &TallyFile{path: path, logger: logadapter.OrNoop(logger), rename: os.Rename}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		existing, err := decodeState(data)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		if !sameCandidates(existing.Scoreboard, initial.Scoreboard) {
			f.logger.Warn("tally file candidates differ from configuration, keeping file",
				ports.String("path", path),
				ports.Any("file_candidates", existing.Scoreboard.Candidates()))
		}
		f.logger.Info("resuming tally file",
			ports.String("path", path),
			ports.Int("voters", existing.TotalBallots()))
		return f, nil

	case os.IsNotExist(err):
		if err := f.write(initial); err != nil {
			return nil, err
		}
		f.logger.Info("created tally file", ports.String("path", path))
		return f, nil

	default:
		return nil, fmt.Errorf("%w: read %s: %w", domain.ErrStorageUnavailable, path, err)
	}
}

// Load reads and decodes the tally file. A missing file is reported as
// domain.ErrStorageUnavailable: the file existed when the store was opened.
func (f *TallyFile) Load(_ context.Context) (domain.VotingState, error) {
	if err := f.failure(); err != nil {
		return domain.VotingState{}, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return domain.VotingState{}, fmt.Errorf("%w: read %s: %w", domain.ErrStorageUnavailable, f.path, err)
	}
	st, err := decodeState(data)
	if err != nil {
		f.markBroken(err)
		return domain.VotingState{}, err
	}
	return st, nil
}

// Save atomically replaces the tally file with state.
func (f *TallyFile) Save(_ context.Context, state domain.VotingState) error {
	if err := f.failure(); err != nil {
		return err
	}
	return f.write(state)
}

// Path returns the tally file path.
func (f *TallyFile) Path() string {
	return f.path
}

// write encodes state into a temp file next to the target, syncs it and
// renames it over the target. On failure the target is left as it was.
func (f *TallyFile) write(state domain.VotingState) error {
	data, err := encodeState(state)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", domain.ErrStorageUnavailable, err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %w", domain.ErrStorageUnavailable, tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync %s: %w", domain.ErrStorageUnavailable, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %w", domain.ErrStorageUnavailable, tmpName, err)
	}
	if err := f.rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename %s: %w", domain.ErrStorageUnavailable, f.path, err)
	}

	f.logger.Debug("tally file saved",
		ports.String("path", f.path),
		ports.Int("voters", state.TotalBallots()))
	return nil
}

func (f *TallyFile) failure() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.broken
}

// markBroken makes every later call fail with err. A file that could not be
// decoded is never overwritten by this instance.
func (f *TallyFile) markBroken(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.broken == nil {
		f.broken = err
		f.logger.Error("tally file is malformed", ports.String("path", f.path), ports.Err(err))
	}
}

func sameCandidates(a, b domain.Scoreboard) bool {
	if len(a.Scores) != len(b.Scores) {
		return false
	}
	for c := range a.Scores {
		if _, ok := b.Scores[c]; !ok {
			return false
		}
	}
	return true
}
