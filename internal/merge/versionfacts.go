package merge

import "regexp"

var versionAttr = regexp.MustCompile(`assembly\s*:\s*Assembly(\w*)Version\s*\(\s*"(.*?)"\s*\)`)

// ExtractVersionFacts returns "Assembly<Word>Version: <value>" for every
// version attribute in text, in order of appearance.
func ExtractVersionFacts(text string) []string {
	matches := versionAttr.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	facts := make([]string, 0, len(matches))
	for _, m := range matches {
		facts = append(facts, "Assembly"+m[1]+"Version: "+m[2])
	}
	return facts
}
