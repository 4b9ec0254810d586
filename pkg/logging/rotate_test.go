package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenamedRotateWriter(t *testing.T) {
	t.Run("writes append to the active file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "info.log")
		w := newRenamedRotateWriter(path, 1024, 3)
		defer w.Close()

		_, err := w.Write([]byte("first\n"))
		require.NoError(t, err)
		_, err = w.Write([]byte("second\n"))
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "first\nsecond\n", string(data))
	})

	t.Run("rotation renames to the _N pattern", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "info.log")
		w := newRenamedRotateWriter(path, 10, 3)
		defer w.Close()

		_, err := w.Write([]byte("0123456789"))
		require.NoError(t, err)
		// Exceeds the threshold, so the active file rotates first.
		_, err = w.Write([]byte("next"))
		require.NoError(t, err)

		backup, err := os.ReadFile(filepath.Join(dir, "info_1.log"))
		require.NoError(t, err)
		assert.Equal(t, "0123456789", string(backup))

		active, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "next", string(active))
	})

	t.Run("indexes continue past existing backups", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "info.log")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "info_1.log"), []byte("old"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "info_2.log"), []byte("old"), 0o644))

		w := newRenamedRotateWriter(path, 5, 10)
		defer w.Close()
		_, err := w.Write([]byte("123456"))
		require.NoError(t, err)
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)

		_, err = os.Stat(filepath.Join(dir, "info_3.log"))
		assert.NoError(t, err, "rotation should pick the next free index")
	})

	t.Run("oldest surplus backups are deleted by mtime", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "info.log")

		old := filepath.Join(dir, "info_1.log")
		mid := filepath.Join(dir, "info_2.log")
		require.NoError(t, os.WriteFile(old, []byte("oldest"), 0o644))
		require.NoError(t, os.WriteFile(mid, []byte("newer"), 0o644))
		base := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(old, base, base))
		require.NoError(t, os.Chtimes(mid, base.Add(time.Minute), base.Add(time.Minute)))

		w := newRenamedRotateWriter(path, 5, 2)
		defer w.Close()
		_, err := w.Write([]byte("123456"))
		require.NoError(t, err)
		_, err = w.Write([]byte("y"))
		require.NoError(t, err)

		_, err = os.Stat(old)
		assert.True(t, os.IsNotExist(err), "oldest backup should be pruned")
		_, err = os.Stat(mid)
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "info_3.log"))
		assert.NoError(t, err)
	})

	t.Run("active file opens lazily", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "info.log")
		w := newRenamedRotateWriter(path, 1024, 3)
		defer w.Close()

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "no file before the first write")
	})
}

func TestBackupIndex(t *testing.T) {
	cases := map[string]int{
		"info_1.log":       1,
		"info_12.log":      12,
		"info.log":         0,
		"info_x.log":       0,
		"other_1.log":      0,
		"info_0.log":       0,
		"randomfile.txt":   0,
		"info_1.log.extra": 0,
	}
	for name, want := range cases {
		if got := backupIndex(filepath.Join("dir", name), "info", ".log"); got != want {
			t.Errorf("backupIndex(%q) = %d, want %d", name, got, want)
		}
	}
}

func TestFilesToDelete(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "info.log")

	var backups []string
	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 3; i++ {
		p := filepath.Join(dir, fmt.Sprintf("info_%d.log", i))
		require.NoError(t, os.WriteFile(p, []byte("log content"), 0o644))
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, ts, ts))
		backups = append(backups, p)
	}

	w := newRenamedRotateWriter(path, 50, 2)
	toDelete := w.filesToDelete()
	require.Len(t, toDelete, 1)
	assert.Equal(t, backups[0], toDelete[0], "oldest by mtime is deletable")
}
