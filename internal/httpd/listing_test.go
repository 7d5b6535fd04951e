package httpd

import (
	"html"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderListing(t *testing.T) {
	root := docRoot(t)
	dir := filepath.Join(root, "assets") + "/"

	body, err := renderListing(dir, "/assets/", DefaultServerName, func(name string, err error) {
		t.Fatalf("unexpected skipped entry %s: %v", name, err)
	})
	require.NoError(t, err)
	page := string(body)

	assert.True(t, strings.HasPrefix(page, "<HTML>\n<HEAD><TITLE>Index of /assets/</TITLE></HEAD>\n<BODY>\n<H4>Index of /assets/</H4>\n"))
	assert.True(t, strings.HasSuffix(page, "</table>\n<HR>\n<ADDRESS>webserver/1.0</ADDRESS>\n</BODY>\n</HTML>"))

	names := rawDirNames(t, dir)
	assert.Equal(t, len(names), strings.Count(page, "<tr>\n<td>"))
	assert.Contains(t, page, "<td><A HREF=\"./\">./</A></td>")
	assert.Contains(t, page, "<td><A HREF=\"../\">../</A></td>")
	assert.Contains(t, page, "<td><A HREF=\"site.css\">site.css</A></td>")
	assert.Contains(t, page, "<td><A HREF=\"fonts/\">fonts/</A></td>")
	assert.Contains(t, page, "<td><A HREF=\"a&amp;b.txt\">a&amp;b.txt</A></td>")
	assert.Contains(t, page, "</td>\n<td>6</td>\n</tr>")

	// Rows appear in the order the directory is enumerated.
	last := -1
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		if info.IsDir() {
			name += "/"
		}
		name = html.EscapeString(name)
		idx := strings.Index(page, "<A HREF=\""+name+"\">"+name+"</A>")
		require.Greater(t, idx, last, "row for %s out of order", name)
		last = idx
	}
}

func TestRenderListingEscapesTitle(t *testing.T) {
	root := docRoot(t)
	body, err := renderListing(root+"/assets/", "/<x>/", "srv", nil)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Index of /&lt;x&gt;/")
}

func TestRenderListingMissingDirectory(t *testing.T) {
	_, err := renderListing(filepath.Join(t.TempDir(), "gone"), "/gone/", "srv", nil)
	require.Error(t, err)
}
