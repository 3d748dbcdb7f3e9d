package classify

import "strings"

// Level is the inferred difficulty band of a query or resource.
type Level string

const (
	LevelBasics       Level = "Basics"
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
	LevelProjects     Level = "Projects"
)

type Category string

const (
	CategoryAI          Category = "AI"
	CategoryPython      Category = "Python"
	CategoryWeb         Category = "Web"
	CategoryCloud       Category = "Cloud"
	CategoryDSA         Category = "DSA"
	CategoryProgramming Category = "Programming"
)

type Intent string

const (
	IntentLearn    Intent = "learn"
	IntentProjects Intent = "projects"
	IntentRoadmap  Intent = "roadmap"
	IntentCourse   Intent = "course"
)

// Profile is the signal tuple inferred from one free-text query. Derived
// once per request and never mutated afterwards.
type Profile struct {
	Topic    string   `json:"topic"`
	Level    Level    `json:"level"`
	Category Category `json:"category"`
	Intent   Intent   `json:"intent"`
}

// Keyword rules are evaluated in declaration order; the first matching rule
// wins for its field. Matching is case-insensitive substring containment.
type keywordRule[T any] struct {
	keywords []string
	value    T
}

var levelRules = []keywordRule[Level]{
	{[]string{"basic", "intro", "fundamental"}, LevelBasics},
	{[]string{"intermediate", "mid"}, LevelIntermediate},
	{[]string{"advanced", "expert", "deep"}, LevelAdvanced},
	{[]string{"project", "hands-on", "build"}, LevelProjects},
	{[]string{"beginner"}, LevelBeginner},
}

var categoryRules = []keywordRule[Category]{
	{[]string{"ai", "machine learning"}, CategoryAI},
	{[]string{"python"}, CategoryPython},
	{[]string{"html", "css", "javascript", "react"}, CategoryWeb},
	{[]string{"cloud", "aws"}, CategoryCloud},
	{[]string{"dsa", "algorithm"}, CategoryDSA},
}

var intentRules = []keywordRule[Intent]{
	{[]string{"project"}, IntentProjects},
	{[]string{"roadmap"}, IntentRoadmap},
	{[]string{"course"}, IntentCourse},
}

var platformRules = []keywordRule[string]{
	{[]string{"udemy"}, "Udemy"},
	{[]string{"coursera"}, "Coursera"},
	{[]string{"youtube", "youtu"}, "YouTube"},
	{[]string{"google"}, "Google"},
}

// Topic keywords checked in priority order before falling back to the last
// token of the query.
var topicKeywords = []string{"python", "ai", "web", "cloud", "dsa", "javascript", "react", "sql", "java", "go"}

const DefaultTopic = "programming"

// Extract derives the full signal profile from raw query text. Pure and
// deterministic; absent signals resolve to documented defaults, never an
// error.
func Extract(text string) Profile {
	return Profile{
		Topic:    DetectTopic(text),
		Level:    DetectLevel(text),
		Category: DetectCategory(text),
		Intent:   DetectIntent(text),
	}
}

// DetectTopic returns the first matching known topic keyword, otherwise the
// last whitespace-delimited token lowercased, otherwise "programming".
// The result is always non-empty.
func DetectTopic(text string) string {
	t := strings.ToLower(text)
	for _, keyword := range topicKeywords {
		if strings.Contains(t, keyword) {
			return keyword
		}
	}

	fields := strings.Fields(t)
	if len(fields) > 0 {
		return fields[len(fields)-1]
	}
	return DefaultTopic
}

func DetectLevel(text string) Level {
	t := strings.ToLower(text)
	for _, rule := range levelRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(t, keyword) {
				return rule.value
			}
		}
	}
	return LevelBeginner
}

func DetectCategory(text string) Category {
	t := strings.ToLower(text)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(t, keyword) {
				return rule.value
			}
		}
	}
	return CategoryProgramming
}

func DetectIntent(text string) Intent {
	t := strings.ToLower(text)
	for _, rule := range intentRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(t, keyword) {
				return rule.value
			}
		}
	}
	return IntentLearn
}

// DetectPlatform labels where a resource is hosted, from its title or
// description text. Returns "Unknown" when nothing matches.
func DetectPlatform(text string) string {
	t := strings.ToLower(text)
	for _, rule := range platformRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(t, keyword) {
				return rule.value
			}
		}
	}
	return "Unknown"
}
