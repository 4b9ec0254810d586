package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// renamedRotateWriter is the alternate rotation scheme: when the active
// file exceeds maxBytes it is renamed to base_1.log, base_2.log, ... and
// the oldest surplus backups (by modification time) beyond backupCount are
// deleted. The active file is opened lazily on first write.
type renamedRotateWriter struct {
	mu          sync.Mutex
	path        string // active log file, e.g. logs/DEV/info.log
	maxBytes    int64
	backupCount int
	file        *os.File
	size        int64
}

func newRenamedRotateWriter(path string, maxBytes int64, backupCount int) *renamedRotateWriter {
	return &renamedRotateWriter{
		path:        path,
		maxBytes:    maxBytes,
		backupCount: backupCount,
	}
}

func (w *renamedRotateWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.openLocked(); err != nil {
		return 0, err
	}
	if w.maxBytes > 0 && w.size > 0 && w.size+int64(len(p)) > w.maxBytes {
		if err := w.rotateLocked(); err != nil {
			return 0, err
		}
	}
	n, err := w.file.Write(p)
	w.size += int64(n)
	return n, err
}

func (w *renamedRotateWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *renamedRotateWriter) openLocked() error {
	if w.file != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}
	w.file = file
	w.size = info.Size()
	return nil
}

// rotateLocked renames the active file to the next free base_N.log name and
// prunes surplus backups.
func (w *renamedRotateWriter) rotateLocked() error {
	if err := w.file.Close(); err != nil {
		return err
	}
	w.file = nil
	w.size = 0

	next := 1
	for _, backup := range w.backups() {
		if n := backupIndex(backup, w.base(), w.ext()); n >= next {
			next = n + 1
		}
	}
	renamed := filepath.Join(filepath.Dir(w.path), fmt.Sprintf("%s_%d%s", w.base(), next, w.ext()))
	if err := os.Rename(w.path, renamed); err != nil && !os.IsNotExist(err) {
		return err
	}

	for _, stale := range w.filesToDelete() {
		os.Remove(stale)
	}
	return w.openLocked()
}

// filesToDelete returns the oldest backups (by mtime) exceeding the
// retention count.
func (w *renamedRotateWriter) filesToDelete() []string {
	backups := w.backups()
	if len(backups) <= w.backupCount {
		return nil
	}
	sort.Slice(backups, func(i, j int) bool {
		return mtime(backups[i]).Before(mtime(backups[j]))
	})
	return backups[:len(backups)-w.backupCount]
}

// backups lists existing base_N.log files next to the active file.
func (w *renamedRotateWriter) backups() []string {
	pattern := filepath.Join(filepath.Dir(w.path), w.base()+"_*"+w.ext())
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil
	}
	var out []string
	for _, m := range matches {
		if backupIndex(m, w.base(), w.ext()) > 0 {
			out = append(out, m)
		}
	}
	return out
}

func (w *renamedRotateWriter) base() string {
	name := filepath.Base(w.path)
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func (w *renamedRotateWriter) ext() string {
	return filepath.Ext(w.path)
}

// backupIndex extracts N from base_N.ext, or 0 when the name does not match.
func backupIndex(path, base, ext string) int {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, base+"_") || !strings.HasSuffix(name, ext) {
		return 0
	}
	numeric := strings.TrimSuffix(strings.TrimPrefix(name, base+"_"), ext)
	n, err := strconv.Atoi(numeric)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

func mtime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
