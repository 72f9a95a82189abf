package extract

import (
	"regexp"
	"strings"
)

const (
	BlockBegin = "---BEGIN STRUCTURED DATA---"
	BlockEnd   = "---END STRUCTURED DATA---"
)

var (
	beginRegex = regexp.MustCompile(`(?i)^-{3,}\s*BEGIN\s+STRUCTURED\s+DATA\s*-{3,}$`)
	endRegex   = regexp.MustCompile(`(?i)^-{3,}\s*END\s+STRUCTURED\s+DATA\s*-{3,}$`)
)

// Values a rewrite model writes when it has nothing to say.
var placeholderValues = map[string]bool{
	"":              true,
	"-":             true,
	"--":            true,
	"n/a":           true,
	"na":            true,
	"nil":           true,
	"null":          true,
	"none":          true,
	"not mentioned": true,
	"not specified": true,
	"not available": true,
	"not provided":  true,
	"unknown":       true,
}

// BlockLine is a surviving "LABEL: value" line.
type BlockLine struct {
	Field Field
	Value string
}

// Block is the outcome of validating a StructuredDataBlock.
type Block struct {
	Present bool
	Lines   []BlockLine
	// Dropped holds the raw lines removed by the pollution guard.
	Dropped []string
}

// Valid reports whether at least one recognized field survived validation.
func (b Block) Valid() bool {
	return b.Present && len(b.Lines) > 0
}

// Value returns the first value for a field.
func (b Block) Value(f Field) string {
	for _, l := range b.Lines {
		if l.Field == f {
			return l.Value
		}
	}
	return ""
}

// ValidateBlock finds the StructuredDataBlock in text, drops polluted lines
// and reassembles the block from the survivors. Text outside the sentinels is
// returned untouched. A missing end sentinel closes the block at the end of
// the text.
func ValidateBlock(text string) (string, Block) {
	var (
		block   Block
		out     []string
		inBlock bool
	)
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case !inBlock && beginRegex.MatchString(trimmed):
			inBlock = true
			block.Present = true
			out = append(out, BlockBegin)
			continue
		case inBlock && endRegex.MatchString(trimmed):
			inBlock = false
			out = append(out, BlockEnd)
			continue
		case !inBlock:
			out = append(out, line)
			continue
		}

		if trimmed == "" {
			continue
		}
		m := blockLineRegex.FindStringSubmatch(trimmed)
		if m == nil {
			block.Dropped = append(block.Dropped, trimmed)
			continue
		}
		field, known := BlockField(m[1])
		value := strings.TrimSpace(m[2])
		if !known {
			// unknown labels are kept in the text but never extracted
			out = append(out, trimmed)
			continue
		}
		if IsPolluted(field, value) {
			block.Dropped = append(block.Dropped, trimmed)
			continue
		}
		out = append(out, trimmed)
		if v := cleanValue(value); !isPlaceholder(v) {
			block.Lines = append(block.Lines, BlockLine{Field: field, Value: v})
		}
	}
	if inBlock {
		out = append(out, BlockEnd)
	}
	return strings.Join(out, "\n"), block
}

func isPlaceholder(v string) bool {
	return placeholderValues[strings.ToLower(strings.TrimSpace(v))]
}

// inBlockRanges marks which lines of text sit between sentinels, sentinels
// included.
func inBlockRanges(lines []string) []bool {
	marks := make([]bool, len(lines))
	inBlock := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inBlock && beginRegex.MatchString(trimmed) {
			inBlock = true
		}
		marks[i] = inBlock
		if inBlock && endRegex.MatchString(trimmed) {
			inBlock = false
		}
	}
	return marks
}
