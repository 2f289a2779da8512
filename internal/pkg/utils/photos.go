package utils

import (
	"encoding/json"
	"strings"
)

// EncodePhotos packs a list of photo URLs into a JSON string for a
// single text column.
func EncodePhotos(photos []string) string {
	if len(photos) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(photos)
	return string(data)
}

// DecodePhotos is the inverse of EncodePhotos. Legacy rows hold
// comma-separated values, so fall back to splitting on comma.
func DecodePhotos(s string) []string {
	if s == "" || s == "[]" {
		return []string{}
	}
	var photos []string
	if err := json.Unmarshal([]byte(s), &photos); err != nil {
		return strings.Split(s, ",")
	}
	return photos
}
