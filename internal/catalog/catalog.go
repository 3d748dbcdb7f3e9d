package catalog

import (
	"strings"

	"github.com/learnify/backend/internal/classify"
	"github.com/learnify/backend/internal/storage/models"
)

type entry struct {
	title       string
	url         string
	description string
}

// Static topic-keyed resource data. The "programming" bucket doubles as the
// guaranteed default for unknown topics.
var resources = map[string][]entry{
	"python": {
		{"Python Basics - W3Schools", "https://w3schools.com/python", "Learn Python basics step by step"},
		{"Python Projects", "https://freecodecamp.org", "Hands-on Python projects to build"},
		{"Real Python Tutorials", "https://realpython.com", "Intermediate and advanced Python articles"},
	},
	"ai": {
		{"Google AI", "https://ai.google", "AI basics and machine learning training"},
		{"DeepLearning.AI", "https://deeplearning.ai", "Neural network courses from basics to advanced"},
		{"Fast.ai Practical Deep Learning", "https://fast.ai", "Hands-on deep learning course with projects"},
	},
	"web": {
		{"MDN Web Docs", "https://developer.mozilla.org", "HTML CSS and JavaScript fundamentals"},
		{"The Odin Project", "https://theodinproject.com", "Full stack web development with projects"},
	},
	"cloud": {
		{"AWS Skill Builder", "https://skillbuilder.aws", "Cloud fundamentals and AWS certification courses"},
		{"Google Cloud Training", "https://cloud.google.com/learn", "Cloud basics and hands-on labs"},
	},
	"dsa": {
		{"NeetCode", "https://neetcode.io", "Algorithm practice roadmap with video solutions"},
		{"GeeksForGeeks DSA", "https://geeksforgeeks.org", "Data structures and algorithm tutorials"},
	},
	classify.DefaultTopic: {
		{"GeeksForGeeks", "https://geeksforgeeks.org", "Programming and DSA tutorials"},
		{"FreeCodeCamp", "https://freecodecamp.org", "Full stack curriculum with projects"},
	},
}

type Catalog struct{}

func New() *Catalog {
	return &Catalog{}
}

// Lookup returns the candidates for a topic, falling back to the default
// bucket when the topic is unknown. Topic matching is case-insensitive.
func (c *Catalog) Lookup(topic string) []models.Candidate {
	entries, ok := resources[strings.ToLower(topic)]
	if !ok {
		entries = resources[classify.DefaultTopic]
	}

	candidates := make([]models.Candidate, 0, len(entries))
	for _, e := range entries {
		text := e.title + " " + e.description
		candidates = append(candidates, models.Candidate{
			Title:       e.title,
			URL:         e.url,
			Description: e.description,
			Level:       string(classify.DetectLevel(text)),
			Category:    string(classify.DetectCategory(text)),
			Platform:    classify.DetectPlatform(text),
		})
	}

	return candidates
}

// Has reports whether a dedicated (non-default) bucket exists for topic.
func (c *Catalog) Has(topic string) bool {
	if strings.EqualFold(topic, classify.DefaultTopic) {
		return true
	}
	_, ok := resources[strings.ToLower(topic)]
	return ok
}
