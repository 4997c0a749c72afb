package validator

import (
	"strings"
	"unicode/utf8"
)

const (
	MinSummaryLength = 10
	MaxSummaryLength = 2000
)

var imageContentTypes = []string{
	"image/png",
	"image/jpeg",
	"image/gif",
	"image/webp",
}

func ReportRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

func ReportSummary(summary string) bool {
	length := utf8.RuneCountInString(strings.TrimSpace(summary))
	return length >= MinSummaryLength && length <= MaxSummaryLength
}

// ImageContentType accepts the content types browsers send for photo uploads.
func ImageContentType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	for _, allowed := range imageContentTypes {
		if contentType == allowed {
			return true
		}
	}
	return false
}
