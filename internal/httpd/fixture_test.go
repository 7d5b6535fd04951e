package httpd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/astaxie/beego/logs"
	"github.com/stretchr/testify/require"
)

const indexContents = "<html><body>welcome</body></html>"

func quietLogger() *logs.BeeLogger {
	l := logs.NewLogger()
	l.SetLevel(logs.LevelEmergency)
	return l
}

func mkdir(t *testing.T, root, rel string, perm os.FileMode) string {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(full, 0o755))
	require.NoError(t, os.Chmod(full, perm))
	return full
}

func writeFile(t *testing.T, root, rel, contents string, perm os.FileMode) string {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.WriteFile(full, []byte(contents), 0o644))
	require.NoError(t, os.Chmod(full, perm))
	return full
}

// docRoot builds a small document tree:
//
//	/index.html           readable
//	/secret.txt           not other-readable
//	/assets/              listable, no index
//	/assets/site.css
//	/assets/logo.png
//	/assets/a&b.txt
//	/assets/fonts/
//	/private/             not other-executable
//	/private/inner.txt
//	/locked/index.html    not other-readable
func docRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Chmod(root, 0o755))

	writeFile(t, root, "index.html", indexContents, 0o644)
	writeFile(t, root, "secret.txt", "top secret", 0o640)

	mkdir(t, root, "assets", 0o755)
	writeFile(t, root, "assets/site.css", "body{}", 0o644)
	writeFile(t, root, "assets/logo.png", "\x89PNG", 0o644)
	writeFile(t, root, "assets/a&b.txt", "ab", 0o644)
	mkdir(t, root, "assets/fonts", 0o755)

	mkdir(t, root, "private", 0o755)
	writeFile(t, root, "private/inner.txt", "inner", 0o644)
	require.NoError(t, os.Chmod(filepath.Join(root, "private"), 0o750))

	mkdir(t, root, "locked", 0o755)
	writeFile(t, root, "locked/index.html", indexContents, 0o640)
	return root
}
