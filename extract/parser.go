// Copyright (c) 2026 Amara Diallo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Line layers, tried in order. Scanned DR forms come back from OCR in
// wildly inconsistent shapes; each layer handles one common one:
//
//	JOHN MENSAH ............ 1,234   (dotted leader)
//	John Mensah: 1234                (label separator)
//	John Mensah - 1 234              (dash separator)
//	JOHN MENSAH 1234                 (bare trailing number)
var (
	dottedLine    = regexp.MustCompile(`^(.*?[A-Za-z].*?)\s*\.{2,}\s*([0-9][0-9,. ]*)$`)
	separatorLine = regexp.MustCompile(`^(.*?[A-Za-z].*?)\s*[:\-=]\s*([0-9][0-9,. ]*)$`)
	plainLine     = regexp.MustCompile(`^([A-Za-z][A-Za-z .'()/&]*?)\s+([0-9][0-9,. ]*)$`)
)

// Voter-statistic labels. Checked against the label side of a matched
// line; female/male before total so "Total Female Voters" counts as
// female, not total.
var (
	femaleRe = regexp.MustCompile(`(?i)\b(female|women)\b`)
	maleRe   = regexp.MustCompile(`(?i)\b(male|men)\b`)
	wastedRe = regexp.MustCompile(`(?i)\b(wasted|rejected|spoilt|spoiled|invalid)\b`)
	totalRe  = regexp.MustCompile(`(?i)\b(total|turnout|cast)\b`)
)

// labeledCount is one "label number" pair pulled out of the raw text
type labeledCount struct {
	label string
	count int
}

// ParseTallyText runs the layered heuristics over raw OCR text and maps
// the recognized counts onto the registered candidate list. The returned
// results slice has one entry per requested candidate, in order, with
// Matched=false for candidates the text never mentioned. ok is true when
// at least one candidate count was recognized.
func ParseTallyText(text string, candidates []string) (results []CandidateVotes, stats VoterStats, ok bool) {
	pairs := scanLines(text)

	results = make([]CandidateVotes, len(candidates))
	for i, name := range candidates {
		results[i] = CandidateVotes{Name: name}
	}

	for _, p := range pairs {
		switch {
		case femaleRe.MatchString(p.label):
			stats.Female = p.count
		case maleRe.MatchString(p.label):
			stats.Male = p.count
		case wastedRe.MatchString(p.label):
			stats.Wasted = p.count
		case totalRe.MatchString(p.label):
			stats.Total = p.count
		default:
			if i := matchCandidate(p.label, candidates); i >= 0 && !results[i].Matched {
				results[i].Votes = p.count
				results[i].Matched = true
				ok = true
			}
		}
	}

	// Sheets often omit the total line, and OCR sometimes mangles it
	// below the sum of its parts. Either way the parts win.
	if sum := stats.Male + stats.Female; stats.Total < sum {
		stats.Total = sum
	}

	return results, stats, ok
}

// scanLines extracts label/number pairs line by line, first layer wins
func scanLines(text string) []labeledCount {
	var pairs []labeledCount

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var m []string
		for _, re := range []*regexp.Regexp{dottedLine, separatorLine, plainLine} {
			if m = re.FindStringSubmatch(line); m != nil {
				break
			}
		}
		if m == nil {
			continue
		}

		count, err := parseCount(m[2])
		if err != nil || count < 0 {
			continue
		}

		pairs = append(pairs, labeledCount{label: m[1], count: count})
	}

	return pairs
}

// parseCount reads a count that may carry thousands separators,
// including the space and period separators some OCR output uses
func parseCount(s string) (int, error) {
	s = strings.TrimSpace(s)
	for _, sep := range []string{",", ".", " "} {
		s = strings.ReplaceAll(s, sep, "")
	}
	return strconv.Atoi(s)
}

// matchCandidate finds the registered candidate a label refers to.
// Tries exact match, then containment either way, then surname.
func matchCandidate(label string, candidates []string) int {
	label = normalizeName(label)
	if label == "" {
		return -1
	}

	for i, c := range candidates {
		if normalizeName(c) == label {
			return i
		}
	}

	for i, c := range candidates {
		n := normalizeName(c)
		if strings.Contains(label, n) || strings.Contains(n, label) {
			return i
		}
	}

	// OCR frequently drops first names; surname alone is good enough
	for i, c := range candidates {
		parts := strings.Fields(normalizeName(c))
		if len(parts) == 0 {
			continue
		}
		surname := parts[len(parts)-1]
		for _, tok := range strings.Fields(label) {
			if tok == surname {
				return i
			}
		}
	}

	return -1
}

// normalizeName lowercases and strips everything but letters and spaces
func normalizeName(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
