// Package persona implements the Experience Card sub-feature: parsing the
// generation service's delimited persona text, the HTTP client for the
// persona endpoints, and local persistence of fetched cards.
package persona

import (
	"regexp"
	"strings"

	"github.com/gtri-thrive/toolkit/internal/types"
)

// sectionTag matches the <SectionName> delimiters the service emits.
var sectionTag = regexp.MustCompile(`<(\w+)>`)

var knownSections = map[string]bool{
	"PersonalInfo":               true,
	"QualificationsAndEducation": true,
	"Skills":                     true,
	"Goals":                      true,
	"Strengths":                  true,
	"LifeExperiences":            true,
	"ValueProposition":           true,
	"NextSteps":                  true,
}

// Parse reconstructs a PersonaData from the semi-structured text blob the
// generation service emits: sections delimited by <SectionName> tags, items
// as "- " bullet lines, with Name: and Summary: carried inside PersonalInfo.
// Unknown tags are ignored and every section defaults to empty rather than
// absent.
func Parse(text string) types.PersonaData {
	sections := splitSections(text)

	var p types.PersonaData
	for _, item := range sections["PersonalInfo"] {
		if rest, ok := strings.CutPrefix(item, "Name:"); ok {
			p.Name = strings.TrimSpace(rest)
		} else if rest, ok := strings.CutPrefix(item, "Summary:"); ok {
			p.Summary = strings.TrimSpace(rest)
		}
	}
	p.QualificationsAndEducation = sections["QualificationsAndEducation"]
	p.Skills = sections["Skills"]
	p.Goals = sections["Goals"]
	p.Strengths = sections["Strengths"]
	p.LifeExperiences = sections["LifeExperiences"]
	p.ValueProposition = sections["ValueProposition"]
	p.NextSteps = sections["NextSteps"]
	p.Normalize()
	return p
}

// splitSections walks the tag delimiters and collects the bullet lines that
// follow each known section tag, up to the next tag.
func splitSections(text string) map[string][]string {
	out := make(map[string][]string)

	matches := sectionTag.FindAllStringSubmatchIndex(text, -1)
	for i, m := range matches {
		name := text[m[2]:m[3]]
		if !knownSections[name] {
			continue
		}
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		out[name] = append(out[name], parseItems(text[m[1]:end])...)
	}
	return out
}

// parseItems splits a section body into trimmed items, dropping blank lines,
// closing tags and bullet markers.
func parseItems(body string) []string {
	var items []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isClosingTag(line) {
			continue
		}
		items = append(items, strings.TrimLeft(line, "- "))
	}
	return items
}

func isClosingTag(line string) bool {
	return strings.HasPrefix(line, "</") && strings.HasSuffix(line, ">")
}
