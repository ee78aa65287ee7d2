package lmod

import "regexp"

var (
	helpPattern   = regexp.MustCompile(`(?s)help\(\[==\[(.*?)\]==\]\)`)
	whatisPattern = regexp.MustCompile(`(?s)whatis\(\[==\[(.*?)\]==\]\)`)
	// loadPattern also matches try_load and always_load but not unload.
	loadPattern   = regexp.MustCompile(`(?m)(?:^|\W|\btry_|\balways_)load\("([^"]*)"\)`)
	setenvPattern = regexp.MustCompile(`\bsetenv\("([^"]+)",\s*"([^"]+)"\)`)
	rootPattern   = regexp.MustCompile(`local root = "(.*?)"`)
)

func submatches(re *regexp.Regexp, src string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(src, -1) {
		out = append(out, m[1])
	}
	return out
}

// scanStatic runs the regular-expression pass over src and merges literal
// setenv pairs into env.
func scanStatic(src string, facts *Facts, env *envTable) {
	facts.Help = submatches(helpPattern, src)
	facts.Whatis = submatches(whatisPattern, src)
	facts.Loads = submatches(loadPattern, src)

	for _, m := range setenvPattern.FindAllStringSubmatch(src, -1) {
		env.set(m[1], m[2])
	}

	if m := rootPattern.FindStringSubmatch(src); m != nil {
		facts.Root = m[1]
	}
}
