package classify

import "testing"

func TestDetectTopic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"known keyword", "I want to learn Python", "python"},
		{"keyword priority order", "python or javascript", "python"},
		{"case insensitive", "AI roadmap please", "ai"},
		{"fallback to last token", "teach me rust", "rust"},
		{"empty text", "", DefaultTopic},
		{"whitespace only", "   ", DefaultTopic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectTopic(tt.text); got != tt.want {
				t.Errorf("DetectTopic(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectLevel(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Level
	}{
		{"basics keyword", "python basics please", LevelBasics},
		{"intermediate keyword", "intermediate sql", LevelIntermediate},
		{"advanced wins over project", "I want an advanced AI project", LevelAdvanced},
		{"hands-on maps to projects", "hands-on practice", LevelProjects},
		{"explicit beginner", "beginner friendly stuff", LevelBeginner},
		{"default", "hello", LevelBeginner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectLevel(tt.text); got != tt.want {
				t.Errorf("DetectLevel(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
	}{
		{"machine learning phrase", "machine learning roadmap", CategoryAI},
		{"python", "learn python", CategoryPython},
		{"react", "react hooks tutorial", CategoryWeb},
		{"aws", "aws certification", CategoryCloud},
		{"algorithm", "sorting algorithm help", CategoryDSA},
		{"default", "show me recursion", CategoryProgramming},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCategory(tt.text); got != tt.want {
				t.Errorf("DetectCategory(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectIntent(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Intent
	}{
		{"project", "build a project", IntentProjects},
		{"roadmap", "give me a roadmap", IntentRoadmap},
		{"course", "python course", IntentCourse},
		{"project wins over course", "project based course", IntentProjects},
		{"default", "hello", IntentLearn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectIntent(tt.text); got != tt.want {
				t.Errorf("DetectIntent(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Complete Udemy Bootcamp", "Udemy"},
		{"Coursera specialization", "Coursera"},
		{"watch on youtube", "YouTube"},
		{"random site", "Unknown"},
	}

	for _, tt := range tests {
		if got := DetectPlatform(tt.text); got != tt.want {
			t.Errorf("DetectPlatform(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtract(t *testing.T) {
	got := Extract("I want an advanced AI project")

	want := Profile{
		Topic:    "ai",
		Level:    LevelAdvanced,
		Category: CategoryAI,
		Intent:   IntentProjects,
	}

	if got != want {
		t.Errorf("Extract() = %+v, want %+v", got, want)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	text := "confused about javascript basics"
	first := Extract(text)
	for i := 0; i < 10; i++ {
		if got := Extract(text); got != first {
			t.Fatalf("Extract(%q) changed between calls: %+v vs %+v", text, got, first)
		}
	}
}
