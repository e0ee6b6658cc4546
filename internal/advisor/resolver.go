// Package advisor matches the free-text salesperson name printed on an order
// to a known profile.
package advisor

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/cvo-backend/internal/domain"
	"github.com/heartmarshall/cvo-backend/internal/normalize"
)

// Step names the cascade step that produced a match.
type Step string

const (
	StepNone       Step = ""
	StepExactName  Step = "exact_name"
	StepTokenPair  Step = "token_pair"
	StepNamePrefix Step = "name_prefix"
	StepAlias      Step = "alias"
	StepContains   Step = "contains"
	StepFallback   Step = "fallback"
)

// Resolution is the advisor attached to a sale. ID is nil when no profile matched.
type Resolution struct {
	Alias    string
	FullName string
	ID       *uuid.UUID
	Step     Step
}

type candidate struct {
	profile domain.AdvisorProfile
	name    string
	tokens  []string
	alias   string
}

// Resolve runs the matching cascade and returns the first hit:
// exact full name, then the first two tokens, then a full name starting with
// the first token, then alias, then a full name containing the input.
// Comparisons ignore case and accents. Without a hit the first token of the
// input becomes the alias and the input the name.
func Resolve(name string, profiles []domain.AdvisorProfile) Resolution {
	raw := strings.Join(strings.Fields(name), " ")
	if raw == "" {
		return Resolution{}
	}

	input := normalize.Fold(raw)
	tokens := strings.Fields(input)

	candidates := make([]candidate, 0, len(profiles))
	for _, p := range profiles {
		folded := normalize.Fold(p.FullName)
		candidates = append(candidates, candidate{
			profile: p,
			name:    folded,
			tokens:  strings.Fields(folded),
			alias:   normalize.Fold(p.Alias),
		})
	}

	steps := []struct {
		step  Step
		match func(c candidate) bool
	}{
		{StepExactName, func(c candidate) bool { return c.name != "" && c.name == input }},
		{StepTokenPair, func(c candidate) bool {
			return len(tokens) >= 2 && len(c.tokens) >= 2 &&
				c.tokens[0] == tokens[0] && c.tokens[1] == tokens[1]
		}},
		{StepNamePrefix, func(c candidate) bool { return strings.HasPrefix(c.name, tokens[0]) }},
		{StepAlias, func(c candidate) bool { return c.alias != "" && c.alias == input }},
		{StepContains, func(c candidate) bool { return strings.Contains(c.name, input) }},
	}

	for _, s := range steps {
		for _, c := range candidates {
			if s.match(c) {
				return matched(c.profile, s.step)
			}
		}
	}

	return Resolution{
		Alias:    strings.Fields(raw)[0],
		FullName: raw,
		Step:     StepFallback,
	}
}

func matched(p domain.AdvisorProfile, step Step) Resolution {
	alias := strings.TrimSpace(p.Alias)
	if alias == "" {
		if fields := strings.Fields(p.FullName); len(fields) > 0 {
			alias = fields[0]
		}
	}
	id := p.ID
	return Resolution{
		Alias:    alias,
		FullName: p.FullName,
		ID:       &id,
		Step:     step,
	}
}
