// Package quiz implements the quiz engine: question generation, session
// scoring, and challenge comparison. Everything here is pure — no storage,
// no transport, randomness only through an injected source.
package quiz

import (
	"math/rand/v2"

	"github.com/roamio/globetrotter/internal/globetrotter"
)

// Generator builds questions from a destination catalog. All randomness flows
// through the injected rand.Rand, so a seeded source yields a reproducible
// question sequence.
type Generator struct {
	rnd *rand.Rand
}

func NewGenerator(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Generate picks a destination uniformly at random from catalog and builds a
// question around it: 1 or 2 of its clues (50/50, without replacement, in
// random order) and 4 options — the correct answer plus 3 distractors drawn
// from distinct other cities — shuffled so the correct option is equally
// likely to land in any slot.
//
// excludeCity, when non-empty, skips that city on the destination pick so the
// same place is not asked twice in a row. It is ignored if it would leave
// nothing to pick from.
func (g *Generator) Generate(catalog []globetrotter.Destination, excludeCity string) (globetrotter.Question, error) {
	if len(catalog) == 0 {
		return globetrotter.Question{}, globetrotter.ErrEmptyCatalog
	}

	candidates := catalog
	if excludeCity != "" {
		filtered := make([]globetrotter.Destination, 0, len(catalog))
		for _, d := range catalog {
			if d.City != excludeCity {
				filtered = append(filtered, d)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		}
	}
	dest := candidates[g.rnd.IntN(len(candidates))]

	clues := g.pickClues(dest)

	distractors, err := g.pickDistractors(catalog, dest)
	if err != nil {
		return globetrotter.Question{}, err
	}

	options := append([]string{dest.Answer()}, distractors...)
	g.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	return globetrotter.Question{
		Destination: dest,
		Clues:       clues,
		Options:     options,
	}, nil
}

// FunFact returns a random fun fact for the destination, or "" if it has none.
func (g *Generator) FunFact(d globetrotter.Destination) string {
	if len(d.FunFacts) == 0 {
		return ""
	}
	return d.FunFacts[g.rnd.IntN(len(d.FunFacts))]
}

func (g *Generator) pickClues(d globetrotter.Destination) []string {
	count := 1 + g.rnd.IntN(2)
	if count > len(d.Clues) {
		count = len(d.Clues)
	}

	clues := make([]string, 0, count)
	for _, i := range g.rnd.Perm(len(d.Clues))[:count] {
		clues = append(clues, d.Clues[i])
	}
	return clues
}

// pickDistractors samples 3 answer strings from catalog entries whose city
// differs from dest's, at most one per city, without replacement.
func (g *Generator) pickDistractors(catalog []globetrotter.Destination, dest globetrotter.Destination) ([]string, error) {
	seen := map[string]bool{dest.City: true}
	var pool []string
	for _, d := range catalog {
		if seen[d.City] {
			continue
		}
		seen[d.City] = true
		pool = append(pool, d.Answer())
	}
	if len(pool) < 3 {
		return nil, globetrotter.ErrNotEnoughDistractors
	}

	distractors := make([]string, 0, 3)
	for _, i := range g.rnd.Perm(len(pool))[:3] {
		distractors = append(distractors, pool[i])
	}
	return distractors, nil
}
