package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

type NoteCategory string

const (
	CategoryPersonal  NoteCategory = "personal"
	CategoryWork      NoteCategory = "work"
	CategoryEducation NoteCategory = "education"
	CategoryHealth    NoteCategory = "health"
	CategoryFinance   NoteCategory = "finance"
	CategoryTravel    NoteCategory = "travel"
	CategoryOther     NoteCategory = "other"
)

var Categories = []NoteCategory{
	CategoryPersonal,
	CategoryWork,
	CategoryEducation,
	CategoryHealth,
	CategoryFinance,
	CategoryTravel,
	CategoryOther,
}

func (c NoteCategory) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

const DefaultColor = "#ffffff"

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidColor reports whether s is a #RRGGBB hex color (case-insensitive).
func ValidColor(s string) bool {
	return colorPattern.MatchString(s)
}

// AiProvenance marks which fields were produced by the AI proxy.
type AiProvenance struct {
	Summary  bool
	Category bool
	Tags     bool
}

type Note struct {
	Id          uuid.UUID
	UserId      uuid.UUID
	Title       string
	Content     string
	Summary     string
	Category    NoteCategory
	Tags        []string
	IsPinned    bool
	IsArchived  bool
	AiGenerated AiProvenance
	Color       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

// NormalizeTags applies the canonical tag transform: trim, lowercase, drop
// empties, dedupe keeping first occurrence order. Runs on every write path.
func NormalizeTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		cleaned = append(cleaned, t)
	}
	return cleaned
}

const wordsPerMinute = 200

// ReadingTime is the approximate minutes to read the content, rounded up.
func (n *Note) ReadingTime() int {
	words := len(strings.Fields(n.Content))
	if words == 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// FormattedDate is the display form of the creation timestamp, computed at
// serialization time and never stored.
func (n *Note) FormattedDate() string {
	return n.CreatedAt.Format("Jan 2, 2006 15:04")
}
