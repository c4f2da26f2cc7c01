package upstream

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
)

const (
	// IndexDocument is the synthetic aggregate listing. It appears in the
	// upstream index but has no document of its own in the mirror.
	IndexDocument = "pep-0000" + DocumentExt

	// DocumentExt is the suffix of every mirrored document.
	DocumentExt = ".rst"
)

// Proposal is one index entry's metadata, as served by peps.json.
type Proposal struct {
	Number        int     `json:"number"`
	Title         string  `json:"title"`
	Authors       string  `json:"authors"`
	DiscussionsTo *string `json:"discussions_to"`
	Status        string  `json:"status"`
	Type          string  `json:"type"`
	Topic         string  `json:"topic"`
	Created       *string `json:"created"`
	PythonVersion *string `json:"python_version"`
	PostHistory   *string `json:"post_history"`
	Resolution    *string `json:"resolution"`
	Requires      *string `json:"requires"`
	Replaces      *string `json:"replaces"`
	SupersededBy  *string `json:"superseded_by"`
	URL           string  `json:"url"`
}

// Entry pairs an index key with its proposal metadata.
type Entry struct {
	ID       string
	Proposal Proposal
}

// Index is the upstream mapping in document order. A plain map would lose
// the order the entries appeared in, which the resolver preserves.
type Index struct {
	entries []Entry
}

func (x *Index) Entries() []Entry {
	return x.entries
}

func (x *Index) Len() int {
	return len(x.entries)
}

// ParseIndex decodes a peps.json object, keeping entries in the order they
// appear in the document.
func ParseIndex(r io.Reader) (*Index, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("index: expected object, got %v", tok)
	}

	var idx Index
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("index: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("index: expected string key, got %v", keyTok)
		}

		var p Proposal
		if err := dec.Decode(&p); err != nil {
			return nil, fmt.Errorf("index entry %q: %w", key, err)
		}

		idx.entries = append(idx.entries, Entry{ID: key, Proposal: p})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("index: %w", err)
	}

	return &idx, nil
}

// DocumentNames derives one local document name per entry, in index order,
// and drops the synthetic index listing when present.
func (x *Index) DocumentNames() []string {
	names := make([]string, 0, len(x.entries))
	for _, e := range x.entries {
		names = append(names, DocumentName(e.Proposal.URL))
	}

	for i, name := range names {
		if name == IndexDocument {
			names = append(names[:i], names[i+1:]...)
			break
		}
	}

	return names
}

// DocumentName derives the mirror file name from a canonical PEP URL.
// Unparseable URLs fall back to the raw string, so one bad entry yields a
// best-effort name instead of sinking the batch.
func DocumentName(rawURL string) string {
	path := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		path = u.Path
		if path == "" && u.Opaque != "" {
			path = u.Opaque
		}
	}

	return strings.Trim(path, "/") + DocumentExt
}
