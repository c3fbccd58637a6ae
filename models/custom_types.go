package models

import (
	"bytes"
	"encoding/json"
	"net/url"
)

// LinkPath is a site-relative link into this API. It marshals without
// encoding/json's HTML escaping so the query reads as typed.
type LinkPath string

// WhoisLink is the WHOIS route for name, optionally with the force flag set.
// The name is path-escaped as a single segment.
func WhoisLink(name string, force bool) LinkPath {
	link := "/lookup/" + url.PathEscape(name) + "/whois"
	if force {
		link += "?force"
	}
	return LinkPath(link)
}

func (p LinkPath) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(string(p)); err != nil {
		return nil, err
	}
	// Encode terminates every value with a newline.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
