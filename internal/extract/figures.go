package extract

import "regexp"

// figureRegex matches a run of digits with the separators amounts, dates and
// phone numbers use inside them.
var figureRegex = regexp.MustCompile(`\d(?:[\d,./:-]*\d)?`)

// Figures returns the numeric tokens of s in order.
func Figures(s string) []string {
	return figureRegex.FindAllString(s, -1)
}

// FigureSet collects the numeric tokens of all values.
func FigureSet(values ...string) map[string]bool {
	set := map[string]bool{}
	for _, v := range values {
		for _, f := range Figures(v) {
			set[f] = true
		}
	}
	return set
}

// Ungrounded returns the block lines carrying a figure that source does not
// contain as a whole token. A rewrite may reword text but never its numbers.
func Ungrounded(b Block, source string) []BlockLine {
	have := FigureSet(source)
	var out []BlockLine
	for _, l := range b.Lines {
		for _, f := range Figures(l.Value) {
			if !have[f] {
				out = append(out, l)
				break
			}
		}
	}
	return out
}
