package constants

import (
	"fmt"
	"math"
	"slices"
	"strconv"
)

var EventCategories = []string{
	"wedding",
	"birthday",
	"conference",
	"music",
	"sports",
	"art",
	"corporate",
	"other",
}

var eventCategoryLabels = map[string]string{
	"wedding":    "Boda",
	"birthday":   "Cumpleaños",
	"conference": "Conferencia",
	"music":      "Música",
	"sports":     "Deportes",
	"art":        "Arte",
	"corporate":  "Corporativo",
	"other":      "Otro",
}

var eventCategoryIcons = map[string]string{
	"wedding":    "💒",
	"birthday":   "🎂",
	"conference": "🎤",
	"music":      "🎵",
	"sports":     "⚽",
	"art":        "🎨",
	"corporate":  "💼",
	"other":      "📅",
}

var AllowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

var AllowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// Sort keys accepted by the list endpoints.
var (
	EventSortFields = []string{"date", "createdAt", "name", "participantCount", "imageCount"}
	ImageSortFields = []string{"uploadedAt", "likeCount", "commentCount", "title"}
)

func IsValidEventCategory(value string) bool {
	return slices.Contains(EventCategories, value)
}

func IsValidImageType(mimeType string) bool {
	return slices.Contains(AllowedImageTypes, mimeType)
}

// CategoryLabel returns the display label, or the category itself when unknown.
func CategoryLabel(category string) string {
	if label, ok := eventCategoryLabels[category]; ok {
		return label
	}
	return category
}

func CategoryIcon(category string) string {
	if icon, ok := eventCategoryIcons[category]; ok {
		return icon
	}
	return "📅"
}

// FormatFileSize renders a byte count with a binary unit, e.g. "1.5 MB".
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	value := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return fmt.Sprintf("%s %s", strconv.FormatFloat(value, 'f', -1, 64), sizes[i])
}
