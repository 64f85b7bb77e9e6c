package models

import (
	"math"
	"strconv"
	"strings"
)

// Trail document fields as stored in the "trilhas" collection.
const (
	TrailCollection = "trilhas"

	FieldGuideName   = "guideName"
	FieldTrailName   = "trailName"
	FieldLocation    = "location"
	FieldDifficulty  = "difficulty"
	FieldDate        = "date"
	FieldDescription = "description"
	FieldImageIndex  = "imageIndex"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
)

// Trail is a guided trail listing.
type Trail struct {
	ID          string `json:"id"`
	GuideName   string `json:"guideName,omitempty"`
	TrailName   string `json:"trailName"`
	Location    string `json:"location"`
	Difficulty  string `json:"difficulty,omitempty"`
	Date        string `json:"date"`
	Description string `json:"description,omitempty"`
	ImageIndex  int    `json:"imageIndex"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// TrailInput carries the fields supplied for a create or update. A nil field
// was not supplied. ImageIndex accepts numbers and numeric strings.
type TrailInput struct {
	GuideName   *string `json:"guideName"`
	TrailName   *string `json:"trailName"`
	Location    *string `json:"location"`
	Difficulty  *string `json:"difficulty"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	ImageIndex  any     `json:"imageIndex"`
}

// Fields returns the supplied input fields keyed by their document names.
// imageIndex is normalized against bannerCount.
func (in TrailInput) Fields(bannerCount int) map[string]any {
	fields := make(map[string]any)
	set := func(key string, v *string) {
		if v != nil {
			fields[key] = strings.TrimSpace(*v)
		}
	}
	set(FieldGuideName, in.GuideName)
	set(FieldTrailName, in.TrailName)
	set(FieldLocation, in.Location)
	set(FieldDifficulty, in.Difficulty)
	set(FieldDate, in.Date)
	set(FieldDescription, in.Description)
	if in.ImageIndex != nil {
		fields[FieldImageIndex] = NormalizeImageIndex(in.ImageIndex, bannerCount)
	}
	return fields
}

// TrailFromDocument builds a Trail from raw document fields.
func TrailFromDocument(id string, data map[string]any, bannerCount int) Trail {
	return Trail{
		ID:          id,
		GuideName:   StringField(data, FieldGuideName),
		TrailName:   StringField(data, FieldTrailName),
		Location:    StringField(data, FieldLocation),
		Difficulty:  StringField(data, FieldDifficulty),
		Date:        StringField(data, FieldDate),
		Description: StringField(data, FieldDescription),
		ImageIndex:  NormalizeImageIndex(data[FieldImageIndex], bannerCount),
		CreatedAt:   StringField(data, FieldCreatedAt),
		UpdatedAt:   StringField(data, FieldUpdatedAt),
	}
}

// NormalizeImageIndex turns a stored image index into a valid banner index.
// Missing or non-numeric values yield 0; numbers are truncated and clamped
// into [0, bannerCount-1].
func NormalizeImageIndex(v any, bannerCount int) int {
	if bannerCount <= 0 {
		return 0
	}
	n, ok := parseIndex(v)
	if !ok {
		return 0
	}
	return clamp(n, 0, bannerCount-1)
}

func parseIndex(v any) (int, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		return t, true
	case int32:
		return int(t), true
	case int64:
		return clampInt64(t), true
	case float32:
		return truncFloat(float64(t))
	case float64:
		return truncFloat(t)
	case string:
		return leadingInt(t)
	default:
		return 0, false
	}
}

func truncFloat(f float64) (int, bool) {
	if math.IsNaN(f) {
		return 0, false
	}
	if f >= math.MaxInt32 {
		return math.MaxInt32, true
	}
	if f <= math.MinInt32 {
		return math.MinInt32, true
	}
	return int(f), true
}

func clampInt64(n int64) int {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	if n < math.MinInt32 {
		return math.MinInt32
	}
	return int(n)
}

// leadingInt parses the optional sign and leading digits of s, so "7" and
// "7th" both give 7 while "abc" fails.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// overflow: keep the sign
		if strings.HasPrefix(s, "-") {
			return math.MinInt32, true
		}
		return math.MaxInt32, true
	}
	return clampInt64(n), true
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// StringField reads a string field, returning "" for missing or non-string values.
func StringField(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

// Known difficulty colours. Labels are matched case-insensitively.
const DefaultDifficultyColor = "#6b7280"

var difficultyColors = map[string]string{
	"fácil":    "#10b981",
	"facil":    "#10b981",
	"easy":     "#10b981",
	"moderada": "#f59e0b",
	"moderate": "#f59e0b",
	"difícil":  "#dc2626",
	"dificil":  "#dc2626",
	"hard":     "#dc2626",
}

// DifficultyColor maps a free-text difficulty label to its badge colour.
func DifficultyColor(difficulty string) string {
	if c, ok := difficultyColors[strings.ToLower(strings.TrimSpace(difficulty))]; ok {
		return c
	}
	return DefaultDifficultyColor
}
