package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/mindfulai/backend/internal/assessment"
	"github.com/mindfulai/backend/internal/chat"
	"gorm.io/gorm"
)

type LabelStat struct {
	Label    string  `json:"label"`
	Count    int64   `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

type SeverityStat struct {
	Severity string  `json:"severity"`
	Count    int64   `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

type TrendPoint struct {
	Date     string  `json:"date"`
	Label    string  `json:"label"`
	Count    int64   `json:"count"`
	AvgScore float64 `json:"avg_score"`
}

type Overview struct {
	TotalConversations  int64  `json:"total_conversations"`
	CrisisInterventions int64  `json:"crisis_interventions"`
	TotalAssessments    int64  `json:"total_assessments"`
	CrisisRate          string `json:"crisis_rate"`
}

type OverallSentiment struct {
	AvgScore       float64 `json:"avg_score"`
	AvgComparative float64 `json:"avg_comparative"`
}

type RecentExchange struct {
	Label     string    `json:"label"`
	Score     int       `json:"score"`
	IsCrisis  bool      `json:"is_crisis"`
	CreatedAt time.Time `json:"created_at"`
}

type Dashboard struct {
	Overview  Overview `json:"overview"`
	Sentiment struct {
		Distribution []LabelStat      `json:"distribution"`
		Overall      OverallSentiment `json:"overall"`
		Trends       []TrendPoint     `json:"trends"`
	} `json:"sentiment"`
	Assessments struct {
		SeverityDistribution []SeverityStat            `json:"severity_distribution"`
		Recent               []assessment.HistoryEntry `json:"recent"`
	} `json:"assessments"`
	RecentActivity struct {
		Conversations []RecentExchange `json:"conversations"`
	} `json:"recent_activity"`
}

// Service aggregates dashboard statistics over exchanges and assessments.
type Service struct {
	db        *gorm.DB
	exchanges *chat.Repo
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, exchanges: chat.NewRepo(db)}
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	var d Dashboard

	db := s.db.WithContext(ctx)

	if err := db.Model(&chat.Exchange{}).Count(&d.Overview.TotalConversations).Error; err != nil {
		return nil, fmt.Errorf("analytics: count conversations: %w", err)
	}
	if err := db.Model(&chat.Exchange{}).Where("is_crisis = ?", true).
		Count(&d.Overview.CrisisInterventions).Error; err != nil {
		return nil, fmt.Errorf("analytics: count crisis: %w", err)
	}
	if err := db.Model(&assessment.Assessment{}).Count(&d.Overview.TotalAssessments).Error; err != nil {
		return nil, fmt.Errorf("analytics: count assessments: %w", err)
	}
	d.Overview.CrisisRate = "0"
	if d.Overview.TotalConversations > 0 {
		rate := float64(d.Overview.CrisisInterventions) / float64(d.Overview.TotalConversations) * 100
		d.Overview.CrisisRate = fmt.Sprintf("%.2f", rate)
	}

	dist, err := s.SentimentDistribution(ctx)
	if err != nil {
		return nil, err
	}
	d.Sentiment.Distribution = dist

	var overall OverallSentiment
	if d.Overview.TotalConversations > 0 {
		if err := db.Model(&chat.Exchange{}).
			Select("AVG(sentiment_score) AS avg_score, AVG(sentiment_comparative) AS avg_comparative").
			Scan(&overall).Error; err != nil {
			return nil, fmt.Errorf("analytics: overall sentiment: %w", err)
		}
	}
	d.Sentiment.Overall = overall

	trends, err := s.sentimentTrends(ctx, 30)
	if err != nil {
		return nil, err
	}
	d.Sentiment.Trends = trends

	var severity []SeverityStat
	if err := db.Model(&assessment.Assessment{}).
		Select("severity, COUNT(*) AS count, AVG(total_score) AS avg_score").
		Group("severity").
		Scan(&severity).Error; err != nil {
		return nil, fmt.Errorf("analytics: severity distribution: %w", err)
	}
	d.Assessments.SeverityDistribution = severity

	var recentAssessments []assessment.Assessment
	if err := db.Order("created_at DESC, id DESC").Limit(10).
		Find(&recentAssessments).Error; err != nil {
		return nil, fmt.Errorf("analytics: recent assessments: %w", err)
	}
	for _, a := range recentAssessments {
		d.Assessments.Recent = append(d.Assessments.Recent, assessment.HistoryEntry{
			ID:       a.ID,
			Score:    a.TotalScore,
			Severity: a.Severity,
			Date:     a.CreatedAt,
		})
	}

	recentExchanges, err := s.exchanges.ListRecent(ctx, 50)
	if err != nil {
		return nil, fmt.Errorf("analytics: recent exchanges: %w", err)
	}
	for _, e := range recentExchanges {
		d.RecentActivity.Conversations = append(d.RecentActivity.Conversations, RecentExchange{
			Label:     e.Sentiment.Label,
			Score:     e.Sentiment.Score,
			IsCrisis:  e.IsCrisis,
			CreatedAt: e.CreatedAt,
		})
	}

	return &d, nil
}

func (s *Service) SentimentDistribution(ctx context.Context) ([]LabelStat, error) {
	var dist []LabelStat
	if err := s.db.WithContext(ctx).Model(&chat.Exchange{}).
		Select("sentiment_label AS label, COUNT(*) AS count, AVG(sentiment_score) AS avg_score").
		Group("sentiment_label").
		Scan(&dist).Error; err != nil {
		return nil, fmt.Errorf("analytics: sentiment distribution: %w", err)
	}
	return dist, nil
}

// sentimentTrends buckets the last N days of exchanges by day and label.
// Bucketing happens in Go so the query stays portable across sqlite/mysql.
func (s *Service) sentimentTrends(ctx context.Context, days int) ([]TrendPoint, error) {
	since := time.Now().AddDate(0, 0, -days)

	var rows []chat.Exchange
	if err := s.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("analytics: trend rows: %w", err)
	}

	type bucket struct {
		count int64
		sum   int64
	}
	buckets := make(map[string]map[string]*bucket)
	var dates []string
	for _, e := range rows {
		date := e.CreatedAt.Format("2006-01-02")
		if _, ok := buckets[date]; !ok {
			buckets[date] = make(map[string]*bucket)
			dates = append(dates, date)
		}
		b := buckets[date][e.Sentiment.Label]
		if b == nil {
			b = &bucket{}
			buckets[date][e.Sentiment.Label] = b
		}
		b.count++
		b.sum += int64(e.Sentiment.Score)
	}

	var out []TrendPoint
	for _, date := range dates {
		for _, label := range []string{"positive", "negative", "neutral"} {
			b := buckets[date][label]
			if b == nil {
				continue
			}
			out = append(out, TrendPoint{
				Date:     date,
				Label:    label,
				Count:    b.count,
				AvgScore: float64(b.sum) / float64(b.count),
			})
		}
	}
	return out, nil
}

// RecentConversations returns the newest exchanges with full fields.
func (s *Service) RecentConversations(ctx context.Context, limit int) ([]chat.Exchange, error) {
	out, err := s.exchanges.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: recent conversations: %w", err)
	}
	return out, nil
}
