package recommend

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/learnify/backend/internal/classify"
	"github.com/learnify/backend/internal/metrics"
	"github.com/learnify/backend/internal/ranking"
	"github.com/learnify/backend/internal/sentiment"
	"github.com/learnify/backend/internal/storage/models"
	"github.com/learnify/backend/pkg/logger"
)

// videoSearchTimeout bounds the external video call so a slow API cannot
// stall the whole request.
const videoSearchTimeout = 10 * time.Second

// ActivityStore is the append-only interaction log the pipeline writes to.
type ActivityStore interface {
	InsertInteraction(record *models.InteractionRecord) error
}

// Catalog serves static resource candidates keyed by topic.
type Catalog interface {
	Lookup(topic string) []models.Candidate
	Has(topic string) bool
}

// VideoSearcher is the external video search collaborator. Errors are
// expected and downgraded to an empty candidate list.
type VideoSearcher interface {
	Search(ctx context.Context, query string) ([]models.Candidate, error)
}

// ArticleSearcher is the optional fallback source for topics the catalog
// only covers via its default bucket. May be nil.
type ArticleSearcher interface {
	Search(ctx context.Context, query string) ([]models.Candidate, error)
}

type Request struct {
	Text     string
	Username string
}

type Result struct {
	ID        string              `json:"id"`
	Query     string              `json:"query"`
	Profile   classify.Profile    `json:"profile"`
	Sentiment sentiment.Result    `json:"sentiment"`
	Resources []models.Candidate  `json:"resources"`
	Videos    []models.Candidate  `json:"videos"`
	LatencyMS int                 `json:"latency_ms"`
}

type Pipeline struct {
	store    ActivityStore
	catalog  Catalog
	videos   VideoSearcher
	articles ArticleSearcher
	scorer   *sentiment.Scorer
}

func NewPipeline(store ActivityStore, catalog Catalog, videos VideoSearcher, articles ArticleSearcher, scorer *sentiment.Scorer) *Pipeline {
	return &Pipeline{
		store:    store,
		catalog:  catalog,
		videos:   videos,
		articles: articles,
		scorer:   scorer,
	}
}

// Recommend runs the full pipeline: classify, gather, score, rank, persist.
// Every external failure degrades to a defined default; the only way this
// returns a useless result is an empty query, which handlers reject first.
func (p *Pipeline) Recommend(ctx context.Context, req Request) *Result {
	start := time.Now()
	requestID := uuid.New().String()

	logger.Info("Processing recommendation",
		zap.String("request_id", requestID),
		zap.String("username", req.Username),
	)

	// Sentiment and signal extraction are independent of each other; the
	// video search only needs the topic, so it overlaps with sentiment.
	profile := classify.Extract(req.Text)

	var (
		wg       sync.WaitGroup
		sent     sentiment.Result
		videos   []models.Candidate
		videoErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sent = p.scorer.Score(ctx, req.Text)
	}()
	go func() {
		defer wg.Done()
		videoCtx, cancel := context.WithTimeout(ctx, videoSearchTimeout)
		defer cancel()
		videos, videoErr = p.videos.Search(videoCtx, profile.Topic+" tutorial")
	}()
	wg.Wait()

	if videoErr != nil {
		logger.Warn("Video search failed, continuing without videos",
			zap.String("request_id", requestID),
			zap.Error(videoErr),
		)
		metrics.VideoSearchFailures.Inc()
		videos = nil
	}

	resources := p.catalog.Lookup(profile.Topic)
	if p.articles != nil && !p.catalog.Has(profile.Topic) {
		if extra, err := p.articles.Search(ctx, profile.Topic+" tutorial"); err != nil {
			logger.Warn("Article search failed, using catalog only", zap.Error(err))
		} else {
			resources = append(resources, extra...)
		}
	}

	ranking.Rank(resources, profile)
	ranking.Rank(videos, profile)
	metrics.CandidatesRanked.Observe(float64(len(resources) + len(videos)))

	if req.Username != "" {
		p.persist(req, profile, sent)
	}

	latency := int(time.Since(start).Milliseconds())
	metrics.RecommendDuration.Observe(time.Since(start).Seconds())
	metrics.MoodTotal.WithLabelValues(string(sent.Mood)).Inc()

	logger.Info("Recommendation ready",
		zap.String("request_id", requestID),
		zap.String("topic", profile.Topic),
		zap.String("mood", string(sent.Mood)),
		zap.Int("resources", len(resources)),
		zap.Int("videos", len(videos)),
		zap.Int("latency_ms", latency),
	)

	return &Result{
		ID:        requestID,
		Query:     req.Text,
		Profile:   profile,
		Sentiment: sent,
		Resources: resources,
		Videos:    videos,
		LatencyMS: latency,
	}
}

// persist appends the interaction record. Failure is logged and counted but
// never surfaces to the caller; the recommendation already succeeded.
func (p *Pipeline) persist(req Request, profile classify.Profile, sent sentiment.Result) {
	record := &models.InteractionRecord{
		QueryText: req.Text,
		Topic:     profile.Topic,
		Mood:      string(sent.Mood),
		Polarity:  sent.Polarity,
		Username:  req.Username,
		CreatedAt: time.Now().UTC(),
	}

	if err := p.store.InsertInteraction(record); err != nil {
		logger.Error("Failed to persist interaction",
			zap.String("username", req.Username),
			zap.Error(err),
		)
		metrics.PersistenceFailures.Inc()
		return
	}

	metrics.InteractionsPersisted.Inc()
}
