//go:build linux

package scanner

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"unsafe"

	"golang.org/x/sys/unix"
)

// rawNames lists dir straight from getdents64 through unix.Dirent.
func rawNames(t *testing.T, dir string) []string {
	t.Helper()
	f, err := os.Open(dir)
	if err != nil {
		t.Fatalf("open %s: %v", dir, err)
	}
	defer f.Close()

	var names []string
	buf := make([]byte, 4096)
	for {
		n, err := unix.Getdents(int(f.Fd()), buf)
		if err != nil {
			t.Fatalf("getdents %s: %v", dir, err)
		}
		if n <= 0 {
			return names
		}
		for off := 0; off < n; {
			d := (*unix.Dirent)(unsafe.Pointer(&buf[off]))
			var name []byte
			for _, c := range d.Name {
				if c == 0 {
					break
				}
				name = append(name, byte(c))
			}
			names = append(names, string(name))
			off += int(d.Reclen)
		}
	}
}

func TestScanYieldsEveryEntryInNativeOrder(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "b.txt", "bravo", 0o644)
	writeTestFile(t, dir, ".hidden", "x", 0o644)
	writeTestFile(t, dir, "a.css", "alpha", 0o644)
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	var got []string
	metas := map[string]FileMeta{}
	err := Scan(dir, func(e Entry, statErr error) error {
		if statErr != nil {
			t.Fatalf("unexpected stat error for %s: %v", e.Name, statErr)
		}
		got = append(got, e.Name)
		metas[e.Name] = e.Meta
		return nil
	})
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	want := rawNames(t, dir)
	if len(got) != len(want) {
		t.Fatalf("unexpected entry count: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order at %d: got %v want %v", i, got, want)
		}
	}
	for _, name := range []string{".", "..", ".hidden"} {
		if _, ok := metas[name]; !ok {
			t.Fatalf("entry %q was filtered: %v", name, got)
		}
	}
	if !metas["."].IsDir || !metas[".."].IsDir {
		t.Fatalf("dot entries should be directories: %+v %+v", metas["."], metas[".."])
	}
	if !metas["nested"].IsDir || metas["nested"].IsRegular {
		t.Fatalf("nested should be a directory: %+v", metas["nested"])
	}
	if !metas["b.txt"].IsRegular || metas["b.txt"].Size != 5 {
		t.Fatalf("unexpected meta for b.txt: %+v", metas["b.txt"])
	}
}

func TestScanSpansSeveralReads(t *testing.T) {
	dir := t.TempDir()
	const files = 600
	for i := 0; i < files; i++ {
		writeTestFile(t, dir, "entry-with-a-longish-name-"+strconv.Itoa(i), "", 0o644)
	}

	count := 0
	if err := Scan(dir, func(Entry, error) error {
		count++
		return nil
	}); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if count != files+2 {
		t.Fatalf("unexpected entry count across reads: got %d want %d", count, files+2)
	}
	if raw := len(rawNames(t, dir)); raw != count {
		t.Fatalf("scan and raw directory disagree: got %d want %d", count, raw)
	}
}

func TestParseDirentsStopsOnTruncatedRecord(t *testing.T) {
	if names := parseDirents(make([]byte, direntNameOff-1)); len(names) != 0 {
		t.Fatalf("expected no names from a short buffer, got %v", names)
	}
	buf := make([]byte, 32)
	buf[direntReclenOff] = 64 // longer than the buffer
	if names := parseDirents(buf); len(names) != 0 {
		t.Fatalf("expected truncated record to be ignored, got %v", names)
	}
}
