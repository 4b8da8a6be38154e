package entry

import (
	"encoding/json"
	"fmt"
)

// Link is a hyperlink to a page on the site or an external URL.
type Link struct {
	Meta
	Text string   `json:"text"`
	Href LinkHref `json:"href"`
}

func (b *Link) validate() error { return b.Href.validate() }

const (
	HrefInternal = "internal"
	HrefExternal = "external"
)

// LinkHref targets either an internal page (Path and friends) or an
// external URL.
type LinkHref struct {
	Type           string    `json:"type"`
	Path           string    `json:"path,omitempty"`
	Hash           string    `json:"hash,omitempty"`
	HashPreEncoded *bool     `json:"hashPreEncoded,omitempty"`
	Subhashes      []Subhash `json:"subhashes,omitzero"`
	Hover          *Hover    `json:"hover,omitempty"`
	URL            string    `json:"url,omitempty"`
}

func (h LinkHref) validate() error {
	switch h.Type {
	case HrefInternal:
		if h.Path == "" {
			return fmt.Errorf("internal href needs a path")
		}
	case HrefExternal:
		if h.URL == "" {
			return fmt.Errorf("external href needs a url")
		}
	default:
		return fmt.Errorf("href type %q is not internal or external", h.Type)
	}
	return nil
}

type Subhash struct {
	Key        string   `json:"key"`
	Value      string   `json:"value,omitempty"`
	Values     []string `json:"values,omitzero"`
	PreEncoded *bool    `json:"preEncoded,omitempty"`
}

// Hover names the page and source used for hover previews.
type Hover struct {
	Page           string `json:"page"`
	Source         string `json:"source"`
	Hash           string `json:"hash,omitempty"`
	HashPreEncoded *bool  `json:"hashPreEncoded,omitempty"`
}

// MediaHref locates an image: Path for internal media, URL for external.
type MediaHref struct {
	Type string `json:"type"`
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Location returns whichever of Path or URL applies.
func (h MediaHref) Location() string {
	if h.Type == HrefExternal {
		return h.URL
	}
	return h.Path
}

func (h MediaHref) validate() error {
	return LinkHref{Type: h.Type, Path: h.Path, URL: h.URL}.validate()
}

type Image struct {
	Meta
	Href           MediaHref   `json:"href"`
	HrefThumbnail  *MediaHref  `json:"hrefThumbnail,omitempty"`
	Title          string      `json:"title,omitempty"`
	AltText        string      `json:"altText,omitempty"`
	ImageType      string      `json:"imageType,omitempty"` // "map"
	MapRegions     []MapRegion `json:"mapRegions,omitzero"`
	Width          *int64      `json:"width,omitempty"`
	Height         *int64      `json:"height,omitempty"`
	MaxWidth       *int64      `json:"maxWidth,omitempty"`
	MaxHeight      *int64      `json:"maxHeight,omitempty"`
	MaxWidthUnits  string      `json:"maxWidthUnits,omitempty"`
	MaxHeightUnits string      `json:"maxHeightUnits,omitempty"`
	Style          string      `json:"style,omitempty"` // comic-speaker-left, comic-speaker-right
}

func (b *Image) validate() error { return b.Href.validate() }

// MapRegion is a clickable region of a map image. Points are kept as raw
// JSON.
type MapRegion struct {
	Area   string          `json:"area,omitempty"`
	Points json.RawMessage `json:"points"`
}

type Gallery struct {
	Meta
	Images []Image `json:"images"`
}

func (b *Gallery) validate() error {
	for i := range b.Images {
		if err := b.Images[i].validate(); err != nil {
			return fmt.Errorf("images[%d]: %w", i, err)
		}
	}
	return nil
}
