package outparse

import "regexp"

var versionPatterns = []*regexp.Regexp{
	// "version 1.2.3" or "v1.2.3"
	regexp.MustCompile(`(?i)(?:version|v)\s*(\d+(?:\.\d+)*(?:[-\w]+)?)`),
	// bare "1.2.3"
	regexp.MustCompile(`(\d+\.\d+(?:\.\d+)*(?:[-\w]+)?)`),
}

// ExtractVersion searches text for the first pattern that looks like a
// version number, preferring an explicit "version"/"v" prefix over a bare
// dotted number. It returns "" when nothing matches.
func ExtractVersion(text string) string {
	for _, pattern := range versionPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return ""
}
