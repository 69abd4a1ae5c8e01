// Package catalog retrieves and filters the remote feed of preview-able videos.
package catalog

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Item is a single entry of the catalog feed. It is never modified after decoding.
type Item struct {
	ID           string `json:"id" jsonschema:"description=Unique identifier of the video"`
	Title        string `json:"title" jsonschema:"description=Display title"`
	Author       string `json:"author" jsonschema:"description=Channel or uploader name"`
	ThumbnailURL string `json:"thumbnailUrl" jsonschema:"description=Still image shown while idle"`
	VideoURL     string `json:"videoUrl" jsonschema:"description=Media reference handed to the player"`
	Duration     string `json:"duration" jsonschema:"description=Nominal length in M:SS form"`
	Views        Views  `json:"views" jsonschema:"type=integer,minimum=0,description=View counter"`
	UploadTime   string `json:"uploadTime" jsonschema:"description=Human readable upload date"`
}

// Views is a non-negative view counter.
// The feed carries it as a number or a numeric string; anything else decodes as zero.
type Views uint64

func (v *Views) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	raw = strings.Trim(raw, `"`)
	raw = strings.ReplaceAll(raw, ",", "")

	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		*v = Views(n)
		return nil
	}

	if f, err := strconv.ParseFloat(raw, 64); err == nil && f >= 0 && f < math.MaxUint64 {
		*v = Views(f)
		return nil
	}

	*v = 0
	return nil
}

func (v Views) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint64(v))
}

func (v Views) String() string {
	return strconv.FormatUint(uint64(v), 10)
}

// Subtitle renders the "N views • uploadTime" line of the card.
func (i *Item) Subtitle() string {
	return i.Views.String() + " views • " + i.UploadTime
}

// FilterValue implements list.Item and fuzzy targets.
func (i *Item) FilterValue() string {
	return i.Title + " " + i.Author
}
