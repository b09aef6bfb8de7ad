// Package namesgen resolves service names on registration: caller names
// are sanitized to a url-safe form, and missing or colliding names fall
// back to generated adjective_scientist names.
package namesgen

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
)

const minNameLen = 3

var invalidChars = regexp.MustCompile(`[^a-z0-9_]+`)

var adjectives = []string{
	"admiring", "adoring", "agitated", "amazing", "backstabbing",
	"boring", "clever", "cocky", "compassionate", "condescending",
	"determined", "dreamy", "ecstatic", "elated", "furious",
	"gigantic", "goofy", "happy", "hopeful", "hungry",
	"insane", "jolly", "lonely", "modest", "naughty",
	"pedantic", "prickly", "romantic", "serene", "sleepy",
	"stoic", "suspicious", "tender", "thirsty", "trusting",
}

var scientists = []string{
	"albattani", "archimedes", "banach", "bell", "blackwell",
	"bohr", "brahmagupta", "curie", "darwin", "dijkstra",
	"einstein", "euclid", "fermat", "franklin", "galileo",
	"hamilton", "hopper", "hypatia", "kepler", "khorana",
	"lamarr", "leakey", "lovelace", "mclean", "meitner",
	"mirzakhani", "newton", "noether", "pasteur", "ramanujan",
	"ride", "shannon", "turing", "wozniak", "yalow",
}

// SaneName returns a lowercase url-safe version of name: invalid runs
// become single underscores and surrounding underscores are trimmed.
// Names shorter than three characters sanitize to the empty string.
func SaneName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = invalidChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if len(name) < minNameLen {
		return ""
	}
	return name
}

// RandomName generates a service name in the adjective_scientist form.
// With retry set, a numeric suffix is appended for more uniqueness after
// a first collision.
func RandomName(retry bool) string {
	name := adjectives[rand.IntN(len(adjectives))] + "_" + scientists[rand.IntN(len(scientists))]
	if retry {
		name = fmt.Sprintf("%s%d", name, rand.IntN(100))
	}
	return name
}
