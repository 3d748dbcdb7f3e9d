package analytics

import (
	"math"
	"time"

	"github.com/learnify/backend/internal/storage/models"
)

// Scope selects which achievement set applies to an aggregation run.
type Scope int

const (
	ScopeUser Scope = iota
	ScopeGlobal
)

// Achievement thresholds are fixed count cutoffs over the scanned records.
const (
	achievementFirstStep   = "First Step"
	achievementLearner     = "Learner Lv.1"
	achievementExplorer    = "Explorer Lv.2"
	achievementCommunity   = "Community Milestone"
	thresholdFirstStep     = 1
	thresholdLearner       = 5
	thresholdExplorer      = 15
	thresholdCommunity     = 20
	weeklyWindowDays       = 7
)

// KeyCount is one slice of a distribution, ordered by first appearance in
// the scanned records so ties resolve deterministically.
type KeyCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// DayCount is one slot of the rolling activity series.
type DayCount struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// Aggregate is the derived dashboard view over a snapshot of interaction
// records. Never persisted; recomputed from the full history on every read.
type Aggregate struct {
	TotalRecords    int        `json:"total_records"`
	TopicCounts     []KeyCount `json:"topic_counts"`
	MoodCounts      []KeyCount `json:"mood_counts"`
	WeeklyActivity  []DayCount `json:"weekly_activity"`
	TopTopic        string     `json:"top_topic"`
	TopMood         string     `json:"top_mood"`
	AveragePolarity float64    `json:"average_polarity"`
	Achievements    []string   `json:"achievements"`
}

// counter accumulates counts while remembering first-insertion order, so
// the top key on a tie is always the first one encountered.
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) slices() []KeyCount {
	out := make([]KeyCount, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, KeyCount{Key: key, Count: c.counts[key]})
	}
	return out
}

func (c *counter) top() string {
	top := "None"
	best := 0
	for _, key := range c.order {
		if c.counts[key] > best {
			best = c.counts[key]
			top = key
		}
	}
	return top
}

// Compute reduces a record snapshot into dashboard statistics. Pure: the
// same records and now always produce the same result, and the input is
// never mutated. An empty snapshot yields a zeroed aggregate.
//
// The weekly series is a rolling 7-calendar-day window anchored at now,
// oldest day first, labeled by date. Records outside the window still count
// toward totals and distributions.
func Compute(records []models.InteractionRecord, scope Scope, now time.Time) Aggregate {
	agg := Aggregate{
		TotalRecords:    len(records),
		TopTopic:        "None",
		TopMood:         "None",
		WeeklyActivity:  emptyWeek(now),
		AveragePolarity: 0.0,
		Achievements:    []string{},
	}

	if len(records) == 0 {
		return agg
	}

	topics := newCounter()
	moods := newCounter()
	var polaritySum float64

	dayIndex := make(map[string]int, weeklyWindowDays)
	for i, slot := range agg.WeeklyActivity {
		dayIndex[slot.Day] = i
	}

	for _, r := range records {
		topic := r.Topic
		if topic == "" {
			topic = "unknown"
		}
		mood := r.Mood
		if mood == "" {
			mood = "Neutral"
		}

		topics.add(topic)
		moods.add(mood)
		polaritySum += r.Polarity

		day := r.CreatedAt.UTC().Format("2006-01-02")
		if i, ok := dayIndex[day]; ok {
			agg.WeeklyActivity[i].Count++
		}
	}

	agg.TopicCounts = topics.slices()
	agg.MoodCounts = moods.slices()
	agg.TopTopic = topics.top()
	agg.TopMood = moods.top()
	agg.AveragePolarity = math.Round(polaritySum/float64(len(records))*100) / 100
	agg.Achievements = achievementsFor(len(records), scope)

	return agg
}

func emptyWeek(now time.Time) []DayCount {
	week := make([]DayCount, 0, weeklyWindowDays)
	start := now.UTC().AddDate(0, 0, -(weeklyWindowDays - 1))
	for i := 0; i < weeklyWindowDays; i++ {
		week = append(week, DayCount{Day: start.AddDate(0, 0, i).Format("2006-01-02")})
	}
	return week
}

func achievementsFor(count int, scope Scope) []string {
	achievements := []string{}
	if count >= thresholdFirstStep {
		achievements = append(achievements, achievementFirstStep)
	}
	if count >= thresholdLearner {
		achievements = append(achievements, achievementLearner)
	}
	if count >= thresholdExplorer {
		achievements = append(achievements, achievementExplorer)
	}
	if scope == ScopeGlobal && count >= thresholdCommunity {
		achievements = append(achievements, achievementCommunity)
	}
	return achievements
}
