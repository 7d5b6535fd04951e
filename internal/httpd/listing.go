package httpd

import (
	"bytes"
	"fmt"
	"html"
	"strconv"

	"github.com/syncopasoft/webserver/internal/scanner"
)

const (
	listingHead = "<HTML>\n<HEAD><TITLE>Index of %s</TITLE></HEAD>\n<BODY>\n<H4>Index of %s</H4>\n<table CELLSPACING=8>\n<tr><th>Name</th><th>Last Modified</th><th>Size</th></tr>\n"
	listingRow  = "<tr>\n<td><A HREF=\"%s\">%s</A></td>\n<td>%s</td>\n<td>%s</td>\n</tr>"
	listingTail = "</table>\n<HR>\n<ADDRESS>%s</ADDRESS>\n</BODY>\n</HTML>"
)

// renderListing builds the index page for dir. Rows follow the filesystem's
// enumeration order. Entries whose metadata cannot be read are passed to
// skipped and left out.
func renderListing(dir, title, server string, skipped func(name string, err error)) ([]byte, error) {
	var body bytes.Buffer
	title = html.EscapeString(title)
	fmt.Fprintf(&body, listingHead, title, title)

	err := scanner.Scan(dir, func(e scanner.Entry, statErr error) error {
		if statErr != nil {
			if skipped != nil {
				skipped(e.Name, statErr)
			}
			return nil
		}
		name := e.Name
		size := ""
		if e.Meta.IsRegular {
			size = strconv.FormatInt(e.Meta.Size, 10)
		} else {
			name += "/"
		}
		name = html.EscapeString(name)
		fmt.Fprintf(&body, listingRow, name, name, FormatTime(e.Meta.ModTime), size)
		return nil
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(&body, listingTail, html.EscapeString(server))
	return body.Bytes(), nil
}
