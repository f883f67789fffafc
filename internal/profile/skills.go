package profile

import "strings"

// skillAliases maps common skill name variants to canonical names.
// Every canonical value maps to itself so canonicalization is idempotent.
var skillAliases = map[string]string{
	"golang":       "Go",
	"go lang":      "Go",
	"javascript":   "JavaScript",
	"js":           "JavaScript",
	"typescript":   "TypeScript",
	"ts":           "TypeScript",
	"k8s":          "Kubernetes",
	"kubernetes":   "Kubernetes",
	"react.js":     "React",
	"reactjs":      "React",
	"vue.js":       "Vue",
	"vuejs":        "Vue",
	"node.js":      "Node.js",
	"nodejs":       "Node.js",
	"node":         "Node.js",
	"postgres":     "PostgreSQL",
	"postgresql":   "PostgreSQL",
	"c sharp":      "C#",
	"c#":           "C#",
	"python3":      "Python",
	"amazon aws":   "AWS",
	"aws":          "AWS",
	"gcp":          "Google Cloud",
	"google cloud": "Google Cloud",
}

// canonicalSkill returns the canonical spelling of a skill, or the trimmed
// input when no alias is known.
func canonicalSkill(name string) string {
	trimmed := strings.TrimSpace(name)
	if canonical, ok := skillAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// coerceSkill resolves a single skill entry. Objects prefer .name, then
// .skill, then the generic scalar rules.
func coerceSkill(v any) string {
	if obj, ok := asObject(v); ok {
		if s := coerceString(obj["name"]); s != "" {
			return s
		}
		if s := coerceString(obj["skill"]); s != "" {
			return s
		}
	}
	return coerceString(v)
}

// normalizeSkillList coerces a skills-like array into plain strings.
// Empty entries are dropped. The result is never nil.
func normalizeSkillList(v any, opts Options) []string {
	out := []string{}
	seen := make(map[string]bool)

	for _, el := range asArray(v) {
		skill := coerceSkill(el)
		if strings.TrimSpace(skill) == "" {
			continue
		}
		if opts.CanonicalizeSkills {
			skill = canonicalSkill(skill)
			key := strings.ToLower(skill)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, skill)
	}
	return out
}
