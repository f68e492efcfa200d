package importer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/podium/internal/domain/model"
)

// OfflineWarning is attached to every heuristic parse made by Fallback.
const OfflineWarning = "Running in Offline Mode (No API Key). Parsing was done via simple regex. Format as 'Name - Points - Class'."

// ClassUnknown is the class label used when a line has none.
const ClassUnknown = "N/A"

var (
	listItemStart  = regexp.MustCompile(`\d+\.\s+`)
	listItemPrefix = regexp.MustCompile(`^\d+\.\s*`)
	fieldSeparator = regexp.MustCompile(`\s*[-–—]\s*`)
	nonDigits      = regexp.MustCompile(`[^0-9]`)
)

// HeuristicParser reads lines shaped like "Name - Points - Class". Several
// numbered items on one line ("1. A - 5 2. B - 4") are split apart.
type HeuristicParser struct {
	newID func() string
}

// HeuristicOption configures a HeuristicParser.
type HeuristicOption func(*HeuristicParser)

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(f func() string) HeuristicOption {
	return func(p *HeuristicParser) {
		if f != nil {
			p.newID = f
		}
	}
}

// NewHeuristicParser returns an offline parser.
func NewHeuristicParser(opts ...HeuristicOption) *HeuristicParser {
	p := &HeuristicParser{newID: uuid.NewString}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse implements Parser. Lines that cannot be read produce a warning.
func (p *HeuristicParser) Parse(_ context.Context, raw string) (Result, error) {
	if err := CheckText(raw); err != nil {
		return Result{Students: []model.Student{}, Warnings: []string{TooShortWarning}}, err
	}

	res := Result{Students: []model.Student{}, Warnings: []string{}}
	for _, block := range splitListItems(raw) {
		for _, line := range strings.Split(block, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			s, ok := p.parseLine(line)
			if !ok {
				res.Warnings = append(res.Warnings, fmt.Sprintf("Skipped line: %q", line))
				continue
			}
			res.Students = append(res.Students, s)
		}
	}
	return res, nil
}

func (p *HeuristicParser) parseLine(line string) (model.Student, bool) {
	parts := fieldSeparator.Split(line, -1)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 2 {
		return model.Student{}, false
	}

	name := strings.TrimSpace(listItemPrefix.ReplaceAllString(parts[0], ""))
	digits := nonDigits.ReplaceAllString(parts[1], "")
	if name == "" || digits == "" {
		return model.Student{}, false
	}
	points, err := strconv.Atoi(digits)
	if err != nil {
		return model.Student{}, false
	}

	class := ClassUnknown
	if len(parts) >= 3 {
		class = strings.Join(parts[2:], "-")
	}

	last, first := model.SplitFullName(name)
	return model.Student{
		ID:         p.newID(),
		FirstName:  first,
		LastName:   last,
		FullName:   name,
		Points:     points,
		ClassLabel: class,
	}, true
}

// splitListItems cuts text in front of every numbered list marker.
func splitListItems(text string) []string {
	idx := listItemStart.FindAllStringIndex(text, -1)
	blocks := make([]string, 0, len(idx)+1)
	prev := 0
	for _, m := range idx {
		if m[0] == prev {
			continue
		}
		blocks = append(blocks, text[prev:m[0]])
		prev = m[0]
	}
	return append(blocks, text[prev:])
}
