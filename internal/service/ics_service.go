package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
)

const (
	icsFloatingLayout = "20060102T150405"
	icsEventLength    = 30 * time.Minute
	icsSummaryLength  = 60
)

// ICSService renders a session's posts as an iCalendar feed.
type ICSService interface {
	Export(ctx context.Context, sessionID string) (string, error)
}

type icsService struct {
	ss  SessionService
	now func() time.Time
}

func NewICSService(ss SessionService) ICSService {
	return &icsService{ss: ss, now: time.Now}
}

// Export emits one VEVENT per post. Post times carry no zone, so they are written
// as floating local times.
func (s *icsService) Export(ctx context.Context, sessionID string) (string, error) {
	st, err := s.ss.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//postcal//scheduled posts//EN")
	cal.SetName("Scheduled posts")

	stamp := s.now().UTC()
	for i, p := range st.Posts.All() {
		ev := cal.AddEvent(fmt.Sprintf("%s-%d@postcal", sessionID, i))
		ev.SetDtStampTime(stamp)
		ev.SetProperty(ics.ComponentPropertyDtStart, p.ScheduledAt.Format(icsFloatingLayout))
		ev.SetProperty(ics.ComponentPropertyDtEnd, p.ScheduledAt.Add(icsEventLength).Format(icsFloatingLayout))
		ev.SetSummary(fmt.Sprintf("[%s] %s", p.Platform, summarize(p.Content)))
		ev.SetDescription(p.Content)
		if p.Link != "" {
			ev.SetURL(p.Link)
		}
		if p.Category != "" {
			ev.SetProperty(ics.ComponentPropertyCategories, p.Category)
		}
	}

	return cal.Serialize(), nil
}

func summarize(content string) string {
	line := strings.TrimSpace(strings.SplitN(content, "\n", 2)[0])
	r := []rune(line)
	if len(r) > icsSummaryLength {
		return string(r[:icsSummaryLength]) + "…"
	}
	if line == "" {
		return "(no content)"
	}
	return line
}
