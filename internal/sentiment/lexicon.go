package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// LexiconProvider is the default polarity source: prose tokenization scored
// against a small hand-curated polarity lexicon. Deterministic and local.
type LexiconProvider struct{}

func NewLexiconProvider() *LexiconProvider {
	return &LexiconProvider{}
}

var lexicon = map[string]float64{
	"love":        0.9,
	"amazing":     0.9,
	"awesome":     0.9,
	"excellent":   0.9,
	"excited":     0.8,
	"great":       0.8,
	"best":        0.8,
	"fun":         0.6,
	"enjoy":       0.6,
	"happy":       0.6,
	"good":        0.5,
	"interesting": 0.5,
	"cool":        0.5,
	"like":        0.4,
	"want":        0.2,
	"eager":       0.7,

	"confused":    -0.8,
	"frustrated":  -0.8,
	"overwhelmed": -0.8,
	"hate":        -0.9,
	"worst":       -0.9,
	"lost":        -0.6,
	"stuck":       -0.6,
	"struggling":  -0.6,
	"boring":      -0.5,
	"hard":        -0.4,
	"difficult":   -0.4,
	"bad":         -0.5,
	"fail":        -0.6,
	"failing":     -0.6,
}

var negators = map[string]bool{
	"not":   true,
	"no":    true,
	"never": true,
	"dont":  true,
	"don't": true,
	"cant":  true,
	"can't": true,
	"won't": true,
	"wont":  true,
}

// Polarity averages the lexicon scores of matched tokens, flipping the sign
// of a sentiment word directly preceded by a negator. Text with no lexicon
// hits scores 0.
func (p *LexiconProvider) Polarity(_ context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithTagging(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to tokenize text: %w", err)
	}

	var sum float64
	var hits int
	negated := false

	for _, tok := range doc.Tokens() {
		word := strings.ToLower(tok.Text)

		if negators[word] {
			negated = true
			continue
		}

		if score, ok := lexicon[word]; ok {
			if negated {
				score = -score
			}
			sum += score
			hits++
		}

		negated = false
	}

	if hits == 0 {
		return 0, nil
	}

	return sum / float64(hits), nil
}
