// Package history models clipboard history records as the backend reports
// them and provides the grouping, labelling and search helpers the list
// view is built from.
package history

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// ContentType classifies a clipboard record.
type ContentType string

const (
	PlainText ContentType = "plain_text"
	RichText  ContentType = "rich_text"
	Image     ContentType = "image"
	File      ContentType = "file"
	Link      ContentType = "link"
)

// Item is one clipboard history record.
type Item struct {
	ID          string      `json:"id"`
	ContentType ContentType `json:"content_type"`
	PlainText   string      `json:"plain_text"`
	Preview     string      `json:"preview,omitempty"`
	SizeBytes   int64       `json:"content_size"`
	UpdatedAt   string      `json:"updated_at"`
	Favorite    bool        `json:"is_favorited,omitempty"`
	SourceApp   string      `json:"source_app,omitempty"`
}

// Detail is the full preview record for an item.
type Detail struct {
	Item
	RichContent string `json:"rich_content,omitempty"`
	ImagePath   string `json:"image_path,omitempty"`
	FilePath    string `json:"file_path,omitempty"`
	FileName    string `json:"file_name,omitempty"`
}

// Timestamp layouts accepted from the backend. Zone-less values are UTC.
const (
	storageLayout = "2006-01-02 15:04:05"
	isoLayout     = "2006-01-02T15:04:05"
)

// ParseTimestamp parses a backend timestamp. Values without a zone are
// interpreted as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range []string{storageLayout, isoLayout} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("history: unrecognized timestamp %q", s)
}

// Updated returns the parsed UpdatedAt, or the zero time when unparseable.
func (it Item) Updated() time.Time {
	t, _ := ParseTimestamp(it.UpdatedAt)
	return t
}

// Text returns the best single-string representation of the item.
func (it Item) Text() string {
	if it.Preview != "" {
		return it.Preview
	}
	return it.PlainText
}

// Hostname returns the host of a link item, or "" when the text is not a URL.
func (it Item) Hostname() string {
	u, err := url.Parse(strings.TrimSpace(it.PlainText))
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Hostname()
}

// FormatSize renders a byte count in IEC units.
func FormatSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}
