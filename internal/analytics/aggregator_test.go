package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/learnify/backend/internal/storage/models"
)

var testNow = time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

func record(topic, mood string, polarity float64, createdAt time.Time) models.InteractionRecord {
	return models.InteractionRecord{
		QueryText: "learn " + topic,
		Topic:     topic,
		Mood:      mood,
		Polarity:  polarity,
		CreatedAt: createdAt,
	}
}

func TestComputeEmptySnapshot(t *testing.T) {
	agg := Compute(nil, ScopeUser, testNow)

	if agg.TotalRecords != 0 {
		t.Errorf("TotalRecords = %d, want 0", agg.TotalRecords)
	}
	if agg.TopTopic != "None" || agg.TopMood != "None" {
		t.Errorf("top values = %q/%q, want None/None", agg.TopTopic, agg.TopMood)
	}
	if agg.AveragePolarity != 0 {
		t.Errorf("AveragePolarity = %v, want 0", agg.AveragePolarity)
	}
	if agg.Achievements == nil || len(agg.Achievements) != 0 {
		t.Errorf("Achievements = %v, want empty slice", agg.Achievements)
	}
	if len(agg.WeeklyActivity) != 7 {
		t.Fatalf("WeeklyActivity has %d slots, want 7", len(agg.WeeklyActivity))
	}
	for _, slot := range agg.WeeklyActivity {
		if slot.Count != 0 {
			t.Errorf("empty snapshot has activity on %s", slot.Day)
		}
	}
}

func TestComputeWeekWindow(t *testing.T) {
	agg := Compute(nil, ScopeUser, testNow)

	if agg.WeeklyActivity[0].Day != "2026-01-04" {
		t.Errorf("first slot = %s, want 2026-01-04", agg.WeeklyActivity[0].Day)
	}
	if agg.WeeklyActivity[6].Day != "2026-01-10" {
		t.Errorf("last slot = %s, want 2026-01-10", agg.WeeklyActivity[6].Day)
	}
}

func TestComputeUserSnapshot(t *testing.T) {
	records := []models.InteractionRecord{
		record("python", "Excited", 0.5, testNow),
		record("python", "Excited", 0.5, testNow),
		record("python", "Excited", 0.5, testNow),
		record("python", "Neutral", 0.0, testNow.AddDate(0, 0, -1)),
		record("python", "Neutral", 0.0, testNow.AddDate(0, 0, -9)),
	}

	agg := Compute(records, ScopeUser, testNow)

	if agg.TotalRecords != 5 {
		t.Errorf("TotalRecords = %d, want 5", agg.TotalRecords)
	}
	if agg.TopTopic != "python" {
		t.Errorf("TopTopic = %q, want python", agg.TopTopic)
	}
	if agg.TopMood != "Excited" {
		t.Errorf("TopMood = %q, want Excited", agg.TopMood)
	}
	if math.Abs(agg.AveragePolarity-0.3) > 1e-9 {
		t.Errorf("AveragePolarity = %v, want 0.3", agg.AveragePolarity)
	}

	want := []string{"First Step", "Learner Lv.1"}
	if !reflect.DeepEqual(agg.Achievements, want) {
		t.Errorf("Achievements = %v, want %v", agg.Achievements, want)
	}

	// Three today, one yesterday. The record 9 days back is outside the
	// window but still counted in totals.
	if agg.WeeklyActivity[6].Count != 3 {
		t.Errorf("today count = %d, want 3", agg.WeeklyActivity[6].Count)
	}
	if agg.WeeklyActivity[5].Count != 1 {
		t.Errorf("yesterday count = %d, want 1", agg.WeeklyActivity[5].Count)
	}
	total := 0
	for _, slot := range agg.WeeklyActivity {
		total += slot.Count
	}
	if total != 4 {
		t.Errorf("weekly total = %d, want 4", total)
	}
}

func TestComputeTieBreaksByFirstSeen(t *testing.T) {
	records := []models.InteractionRecord{
		record("python", "Excited", 0.5, testNow),
		record("ai", "Confused", -0.5, testNow),
	}

	agg := Compute(records, ScopeUser, testNow)

	if agg.TopTopic != "python" {
		t.Errorf("TopTopic = %q, want first-seen python", agg.TopTopic)
	}
	if agg.TopMood != "Excited" {
		t.Errorf("TopMood = %q, want first-seen Excited", agg.TopMood)
	}
}

func TestComputeDefaultsBlankFields(t *testing.T) {
	records := []models.InteractionRecord{
		record("", "", 0.0, testNow),
	}

	agg := Compute(records, ScopeUser, testNow)

	if agg.TopTopic != "unknown" {
		t.Errorf("TopTopic = %q, want unknown", agg.TopTopic)
	}
	if agg.TopMood != "Neutral" {
		t.Errorf("TopMood = %q, want Neutral", agg.TopMood)
	}
}

func TestComputeGlobalAchievements(t *testing.T) {
	records := make([]models.InteractionRecord, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, record("python", "Neutral", 0.0, testNow))
	}

	global := Compute(records, ScopeGlobal, testNow)
	wantGlobal := []string{"First Step", "Learner Lv.1", "Explorer Lv.2", "Community Milestone"}
	if !reflect.DeepEqual(global.Achievements, wantGlobal) {
		t.Errorf("global Achievements = %v, want %v", global.Achievements, wantGlobal)
	}

	user := Compute(records, ScopeUser, testNow)
	for _, a := range user.Achievements {
		if a == "Community Milestone" {
			t.Error("user scope must not award Community Milestone")
		}
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	records := []models.InteractionRecord{
		record("python", "Excited", 0.8, testNow),
		record("ai", "Confused", -0.4, testNow.AddDate(0, 0, -2)),
		record("web", "Neutral", 0.1, testNow.AddDate(0, 0, -5)),
	}

	first := Compute(records, ScopeUser, testNow)
	second := Compute(records, ScopeUser, testNow)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Compute diverged:\n%+v\n%+v", first, second)
	}
}
