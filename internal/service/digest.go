package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/templui/habits/internal/calendar"
	"github.com/templui/habits/internal/markdown"
	"github.com/templui/habits/internal/model"
)

//go:embed templates/digest.md
var digestSource string

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.Format(calendar.DateFormat) },
}).Parse(digestSource))

type DigestService struct {
	habitService *HabitService
	parser       *markdown.Parser
	appName      string
}

func NewDigestService(habitService *HabitService, parser *markdown.Parser, appName string) *DigestService {
	return &DigestService{
		habitService: habitService,
		parser:       parser,
		appName:      appName,
	}
}

// Render builds the digest for recorded days between from and to, both
// inclusive calendar days.
func (s *DigestService) Render(ctx context.Context, from, to time.Time) (*model.Digest, error) {
	loc := s.habitService.Location()
	from = calendar.StartOfDay(from, loc)
	to = calendar.StartOfDay(to, loc)
	if to.Before(from) {
		from, to = to, from
	}

	summary, err := s.habitService.Summary(ctx)
	if err != nil {
		return nil, err
	}

	digest := &model.Digest{
		From: from,
		To:   to,
	}
	for _, day := range summary {
		date := calendar.StartOfDay(day.Date, loc)
		if date.Before(from) || date.After(to) {
			continue
		}

		line := model.DigestLine{
			Date:      date,
			WeekDay:   date.Weekday().String(),
			Completed: int(day.Completed),
			Amount:    int(day.Amount),
		}
		if line.Amount > 0 {
			line.Percent = line.Completed * 100 / line.Amount
		}

		digest.Lines = append(digest.Lines, line)
		digest.Completed += line.Completed
		digest.Amount += line.Amount
	}

	var source bytes.Buffer
	err = digestTemplate.Execute(&source, struct {
		*model.Digest
		AppName string
	}{digest, s.appName})
	if err != nil {
		return nil, fmt.Errorf("failed to execute digest template: %w", err)
	}

	html, meta, err := s.parser.ParseWithFrontmatter(source.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to render digest: %w", err)
	}

	subject, _ := meta["subject"].(string)
	if subject == "" {
		subject = fmt.Sprintf("%s digest", s.appName)
	}

	digest.Subject = subject
	digest.HTML = string(html)
	digest.Text = strings.TrimSpace(string(markdown.Body(source.Bytes())))

	return digest, nil
}
