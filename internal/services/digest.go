package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sashabaranov/go-openai"
	"github.com/yaas-media/reportdesk/internal/config"
	"github.com/yaas-media/reportdesk/internal/models"
	"github.com/yaas-media/reportdesk/internal/reporting"
	"github.com/yaas-media/reportdesk/pkg/logger"
	"gorm.io/gorm"
)

// DigestService builds the weekly admin summary: aggregate metrics, roster
// coverage, top editors by weekly score, and an optional AI-written narrative.
// One digest exists per week label; regenerating replaces it.
type DigestService struct {
	db            *gorm.DB
	aiConfig      *config.OpenAIConfig
	configService *SystemConfigService
	reports       *ReportService
}

func NewDigestService(db *gorm.DB, aiCfg *config.OpenAIConfig) *DigestService {
	return &DigestService{
		db:            db,
		aiConfig:      aiCfg,
		configService: NewSystemConfigService(db),
		reports:       NewReportService(db),
	}
}

// TopEditor is one name/score pair on a digest's leaderboard.
type TopEditor struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// List returns stored digests, newest first.
func (s *DigestService) List(limit int) ([]models.WeeklyDigest, error) {
	if limit <= 0 {
		limit = 12
	}
	var digests []models.WeeklyDigest
	if err := s.db.Order("created_at DESC").Limit(limit).Find(&digests).Error; err != nil {
		return nil, err
	}
	return digests, nil
}

// Get loads the digest for one week label.
func (s *DigestService) Get(weekLabel string) (*models.WeeklyDigest, error) {
	var digest models.WeeklyDigest
	if err := s.db.Where("week_label = ?", weekLabel).First(&digest).Error; err != nil {
		return nil, err
	}
	return &digest, nil
}

// Generate builds and stores the digest for the given week. An existing
// digest for the week is overwritten. The AI narrative is additive: when the
// model call fails or is disabled the digest still lands, just without it.
func (s *DigestService) Generate(ctx context.Context, weekLabel string) (*models.WeeklyDigest, error) {
	if strings.TrimSpace(weekLabel) == "" {
		return nil, fmt.Errorf("week label is required")
	}

	reports := s.reports.ReportsForWeek(weekLabel)
	stats := reporting.Aggregate(reports)

	var roster []models.EditorRegistry
	if err := s.db.Order("name").Find(&roster).Error; err != nil {
		logger.Error().Err(err).Msg("failed to load roster for digest")
	}
	statuses := reporting.Join(roster, reports)

	digest := &models.WeeklyDigest{WeekLabel: weekLabel}
	if stats != nil {
		digest.TotalReports = stats.TotalReports
		digest.AvgHygiene = stats.AvgHygiene
		digest.TotalSF = stats.TotalSF
		digest.TotalLF = stats.TotalLF
		digest.TotalApproved = stats.TotalApproved
		digest.TotalMinutes = stats.TotalMinutes
	}

	top := topEditors(statuses, 5)
	for _, st := range statuses {
		if !st.HasSubmitted {
			digest.MissingCount++
		}
	}
	if b, err := json.Marshal(top); err == nil {
		digest.TopEditors = string(b)
	}

	if s.aiEnabled() && s.aiConfig.APIKey != "" {
		summary, err := s.narrate(ctx, digest, top)
		if err != nil {
			logger.Warn().Err(err).Str("week", weekLabel).Msg("digest narrative failed, storing without it")
		} else {
			digest.AISummary = summary
			digest.AIModelUsed = s.aiConfig.Model
		}
	}

	var existing models.WeeklyDigest
	err := s.db.Where("week_label = ?", weekLabel).First(&existing).Error
	switch {
	case err == nil:
		digest.ID = existing.ID
		digest.CreatedAt = existing.CreatedAt
		if err := s.db.Save(digest).Error; err != nil {
			return nil, err
		}
	case err == gorm.ErrRecordNotFound:
		if err := s.db.Create(digest).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	LogInfo("digest", "generate", "weekly digest generated", nil, "", map[string]interface{}{
		"week_label":    weekLabel,
		"total_reports": digest.TotalReports,
		"missing":       digest.MissingCount,
	})
	return digest, nil
}

func (s *DigestService) aiEnabled() bool {
	return s.configService.GetWithDefault("digest_ai_enabled", "false") == "true"
}

// narrate asks the configured model for a short prose summary of the week.
func (s *DigestService) narrate(ctx context.Context, digest *models.WeeklyDigest, top []TopEditor) (string, error) {
	clientConfig := openai.DefaultConfig(s.aiConfig.APIKey)
	if s.aiConfig.BaseURL != "" {
		clientConfig.BaseURL = s.aiConfig.BaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	var names []string
	for _, t := range top {
		names = append(names, fmt.Sprintf("%s (%.1f)", t.Name, t.Score))
	}

	prompt := fmt.Sprintf(
		"Write a short factual summary (3-4 sentences) of a content editing team's week for %s. "+
			"Reports submitted: %d. Editors missing a report: %d. Average hygiene score: %s. "+
			"Short-form output: %.0f. Long-form output: %.0f. Approved: %.0f. "+
			"Top editors by output: %s. No headings, no bullet points.",
		digest.WeekLabel, digest.TotalReports, digest.MissingCount, digest.AvgHygiene,
		digest.TotalSF, digest.TotalLF, digest.TotalApproved, strings.Join(names, ", "))

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.aiConfig.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// topEditors ranks submitted editors by weekly score, descending, ties by
// name for stable output.
func topEditors(statuses []reporting.EditorStatus, n int) []TopEditor {
	var top []TopEditor
	for _, st := range statuses {
		if st.HasSubmitted {
			top = append(top, TopEditor{Name: st.Name, Score: st.WeeklyScore})
		}
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].Score != top[j].Score {
			return top[i].Score > top[j].Score
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// StartDigestScheduler generates last week's digest on the configured cron
// schedule, Monday mornings by default. Disabled via the digest_enabled
// config key.
func StartDigestScheduler(db *gorm.DB, aiCfg *config.OpenAIConfig) *cron.Cron {
	svc := NewDigestService(db, aiCfg)
	spec := svc.configService.GetWithDefault("digest_cron", "0 9 * * 1")

	c := cron.New()
	if _, err := c.AddFunc(spec, func() {
		if svc.configService.GetWithDefault("digest_enabled", "true") != "true" {
			return
		}
		lastWeek := time.Now().AddDate(0, 0, -7)
		labels := reporting.LabelFor(lastWeek.Format(reporting.DateLayout))
		if labels.WeekLabel == "" {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := svc.Generate(ctx, labels.WeekLabel); err != nil {
			logger.Error().Err(err).Str("week", labels.WeekLabel).Msg("scheduled digest failed")
		}
	}); err != nil {
		logger.Error().Err(err).Str("spec", spec).Msg("invalid digest cron spec")
	}
	c.Start()
	return c
}
