package service

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// MockRosterSize is the fixed squad size the preview response rate assumes.
const MockRosterSize = 30

// AnalyticsSummary is the shape shown on preview dashboards.
type AnalyticsSummary struct {
	TotalResponses       int                `json:"totalResponses"`
	AnonymousResponses   int                `json:"anonymousResponses"`
	ResponseRate         int                `json:"responseRate"`
	AvgPerformanceRating float64            `json:"avgPerformanceRating"`
	Insights             []string           `json:"insights"`
	QuestionAnalysis     []QuestionAnalysis `json:"questionAnalysis"`
}

type QuestionAnalysis struct {
	Question  string  `json:"question"`
	AvgRating float64 `json:"avgRating"`
	Responses int     `json:"responses"`
}

var mockInsights = []string{
	"Most players rated their match performance above average",
	"Team communication is the most frequently mentioned area for improvement",
	"Anonymous responses tend to include more detailed written feedback",
	"Energy levels dip noticeably in back-to-back fixtures",
}

var mockQuestionLabels = []string{
	"Overall Performance",
	"Team Communication",
	"Effort and Energy",
}

// AnalyticsService produces synthetic summaries for preview surfaces. The
// values are random and not derived from stored responses.
type AnalyticsService interface {
	GenerateSummary() AnalyticsSummary
}

type analyticsService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewAnalyticsService uses rng as its only randomness source. A nil rng is
// seeded from the clock.
func NewAnalyticsService(rng *rand.Rand) AnalyticsService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &analyticsService{rng: rng}
}

func (a *analyticsService) GenerateSummary() AnalyticsSummary {
	a.mu.Lock()
	defer a.mu.Unlock()

	total := 15 + a.rng.Intn(20)
	anonymous := int(math.Floor(float64(total) * (0.3 + a.rng.Float64()*0.5)))

	analysis := make([]QuestionAnalysis, 0, len(mockQuestionLabels))
	for _, label := range mockQuestionLabels {
		analysis = append(analysis, QuestionAnalysis{
			Question:  label,
			AvgRating: a.rating(),
			Responses: total,
		})
	}

	return AnalyticsSummary{
		TotalResponses:       total,
		AnonymousResponses:   anonymous,
		ResponseRate:         int(math.Floor(float64(total) / MockRosterSize * 100)),
		AvgPerformanceRating: a.rating(),
		Insights:             append([]string(nil), mockInsights...),
		QuestionAnalysis:     analysis,
	}
}

// rating draws from [6.5, 9.5) and truncates to one decimal.
func (a *analyticsService) rating() float64 {
	v := 6.5 + a.rng.Float64()*3
	return math.Floor(v*10) / 10
}
