package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/postcal/internal/models"
	"github.com/maheshrc27/postcal/internal/postcsv"
	"github.com/maheshrc27/postcal/internal/repository"
	"github.com/maheshrc27/postcal/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/teambition/rrule-go"
)

const (
	FilterAll           = "all"
	maxRecurringCount   = 52
	exportArchivePrefix = "exports"
)

type PostService interface {
	AddPost(ctx context.Context, sessionID string, pc *transfer.PostCreation) (int, *transfer.ScheduleView, error)
	UpdatePost(ctx context.Context, sessionID string, index int, pc *transfer.PostCreation) (*transfer.ScheduleView, error)
	AddRecurring(ctx context.Context, sessionID string, rc *transfer.RecurringCreation) ([]int, *transfer.ScheduleView, error)
	GetPost(ctx context.Context, sessionID string, index int) (*models.Post, error)
	ListPosts(ctx context.Context, sessionID string, filter string) (*transfer.ScheduleView, error)
	SelectDate(ctx context.Context, sessionID string, date string) (*transfer.ScheduleView, error)
	ExportCSV(ctx context.Context, sessionID string) (*transfer.CSVExport, error)
	ImportCSV(ctx context.Context, sessionID string, data []byte) (*transfer.ImportResult, error)
}

type postService struct {
	ss  SessionService
	r2  *R2Service
	now func() time.Time
}

// NewPostService builds the post command handlers. r2 may be nil, which disables
// archiving of CSV exports.
func NewPostService(ss SessionService, r2 *R2Service) PostService {
	return &postService{
		ss:  ss,
		r2:  r2,
		now: time.Now,
	}
}

func (s *postService) today() time.Time {
	return naiveDate(s.now())
}

func (s *postService) AddPost(ctx context.Context, sessionID string, pc *transfer.PostCreation) (int, *transfer.ScheduleView, error) {
	st, err := s.ss.Get(ctx, sessionID)
	if err != nil {
		return 0, nil, err
	}

	post, err := s.buildPost(st.Session, pc, nil)
	if err != nil {
		slog.Info(err.Error())
		return 0, nil, err
	}

	index := st.Posts.Add(post)
	view := s.view(st, post.ScheduledAt.Format(dateLayout))
	view.Message = "Post scheduled successfully!"
	return index, view, nil
}

// UpdatePost replaces the post at index. A date, weekday or time the request
// leaves out keeps the post's current value.
func (s *postService) UpdatePost(ctx context.Context, sessionID string, index int, pc *transfer.PostCreation) (*transfer.ScheduleView, error) {
	st, err := s.ss.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	current, err := st.Posts.Get(index)
	if err != nil {
		slog.Error(err.Error(), "session_id", sessionID)
		return nil, err
	}

	post, err := s.buildPost(st.Session, pc, &current)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if err := st.Posts.Update(index, post); err != nil {
		slog.Error(err.Error(), "session_id", sessionID)
		return nil, err
	}

	view := s.view(st, post.ScheduledAt.Format(dateLayout))
	view.Message = "Post updated successfully!"
	return view, nil
}

// AddRecurring schedules rc.Count posts on rc.Weekday, one every rc.Interval weeks,
// starting from the next occurrence of that weekday.
func (s *postService) AddRecurring(ctx context.Context, sessionID string, rc *transfer.RecurringCreation) ([]int, *transfer.ScheduleView, error) {
	if rc == nil || rc.Weekday == nil {
		return nil, nil, validationError("weekday is required for recurring posts")
	}
	if rc.Count < 1 || rc.Count > maxRecurringCount {
		return nil, nil, validationError("count must be between 1 and %d", maxRecurringCount)
	}
	interval := rc.Interval
	if interval == 0 {
		interval = 1
	}
	if interval < 0 {
		return nil, nil, validationError("interval must be positive")
	}

	st, err := s.ss.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	first := rc.PostCreation
	first.Date = ""
	template, err := s.buildPost(st.Session, &first, nil)
	if err != nil {
		slog.Info(err.Error())
		return nil, nil, err
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Interval:  interval,
		Count:     rc.Count,
		Dtstart:   template.ScheduledAt,
		Byweekday: []rrule.Weekday{rruleWeekdays[*rc.Weekday]},
	})
	if err != nil {
		return nil, nil, validationError("recurrence: %v", err)
	}

	occurrences := rule.All()
	posts := make([]models.Post, 0, len(occurrences))
	for _, at := range occurrences {
		p := template
		p.ScheduledAt = at
		posts = append(posts, p)
	}

	end := st.Posts.AppendAll(posts)
	indices := make([]int, len(posts))
	for i := range indices {
		indices[i] = end - len(posts) + i
	}

	view := s.view(st, FilterAll)
	view.Message = fmt.Sprintf("%d recurring posts scheduled", len(posts))
	return indices, view, nil
}

var rruleWeekdays = []rrule.Weekday{rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA, rrule.SU}

func (s *postService) GetPost(ctx context.Context, sessionID string, index int) (*models.Post, error) {
	st, err := s.ss.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	post, err := st.Posts.Get(index)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListPosts shows the posts of filter: a YYYY-MM-DD date, FilterAll, or, when
// empty, the session's selected date.
func (s *postService) ListPosts(ctx context.Context, sessionID string, filter string) (*transfer.ScheduleView, error) {
	st, err := s.ss.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if filter != "" && filter != FilterAll {
		if _, err := parseDate(filter); err != nil {
			return nil, err
		}
	}
	return s.view(st, filter), nil
}

func (s *postService) SelectDate(ctx context.Context, sessionID string, date string) (*transfer.ScheduleView, error) {
	st, err := s.ss.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	d, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	st.Session.SelectDate(d)
	return s.view(st, ""), nil
}

// ExportCSV serializes every post of the session. When R2 is configured a copy
// of the file is archived; archive failures are logged and do not fail the export.
func (s *postService) ExportCSV(ctx context.Context, sessionID string) (*transfer.CSVExport, error) {
	st, err := s.ss.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := postcsv.Encode(&buf, st.Posts.All()); err != nil {
		slog.Error(err.Error())
		return nil, fmt.Errorf("error encoding csv: %w", err)
	}

	export := &transfer.CSVExport{Data: buf.Bytes()}
	if s.r2 != nil && s.r2.Enabled() {
		export.ArchiveURL = s.archive(ctx, sessionID, export.Data)
	}
	return export, nil
}

// archive uploads data and returns its public URL, if the bucket has one.
func (s *postService) archive(ctx context.Context, sessionID string, data []byte) string {
	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return ""
	}
	key := fmt.Sprintf("%s/%s/%s-%s.csv", exportArchivePrefix, sessionID, s.now().Format("20060102-150405"), id)
	if err := s.r2.UploadToR2(ctx, key, data, "text/csv"); err != nil {
		slog.Error("export archive failed", "key", key, "err", err)
		return ""
	}
	url := s.r2.ObjectURL(key)
	slog.Info("export archived", "key", key, "url", url)
	return url
}

// ImportCSV appends every row of data to the session's posts. Either all rows are
// appended or none are.
func (s *postService) ImportCSV(ctx context.Context, sessionID string, data []byte) (*transfer.ImportResult, error) {
	st, err := s.ss.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if kind, _ := filetype.Match(data); kind != types.Unknown {
		err := validationError("uploaded file is %s, not csv", kind.MIME.Value)
		slog.Info(err.Error())
		return nil, err
	}

	posts, err := postcsv.Decode(bytes.NewReader(data))
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	for i := range posts {
		posts[i].NormalizeText()
		posts[i].Platform = strings.TrimSpace(posts[i].Platform)
		if !models.IsValidPlatform(posts[i].Platform) {
			// +2: header is record 1 and records are 1-based.
			err := validationError("record %d: unknown platform %q", i+2, posts[i].Platform)
			slog.Info(err.Error())
			return nil, err
		}
	}

	st.Posts.AppendAll(posts)

	view := s.view(st, FilterAll)
	view.Message = fmt.Sprintf("%d posts imported successfully!", len(posts))
	return &transfer.ImportResult{Imported: len(posts), View: view}, nil
}

// buildPost turns a request into a post. current is the post being edited, nil on
// create; its schedule is kept for whatever the request leaves out.
func (s *postService) buildPost(session *models.Session, pc *transfer.PostCreation, current *models.Post) (models.Post, error) {
	if pc == nil {
		return models.Post{}, errors.New("post creation data is nil")
	}

	platform := strings.TrimSpace(pc.Platform)
	if platform == "" {
		return models.Post{}, validationError("platform is required")
	}
	if !models.IsValidPlatform(platform) {
		return models.Post{}, validationError("unknown platform %q, want one of %s", platform, strings.Join(models.Platforms, ", "))
	}

	scheduledAt, err := s.resolveSchedule(session, pc, current)
	if err != nil {
		return models.Post{}, err
	}

	settings := session.Settings()
	category := pc.Category
	if category == "" {
		category = settings.Category
	}

	post := models.Post{
		Platform:          platform,
		Content:           pc.Content,
		ScheduledAt:       scheduledAt,
		Link:              pc.Link,
		ImageURL:          pc.ImageURL,
		VideoURL:          pc.VideoURL,
		PinTitle:          pc.PinTitle,
		Category:          category,
		Watermark:         pc.Watermark,
		HashtagGroup:      pc.HashtagGroup,
		VideoThumbnailURL: pc.VideoThumbnailURL,
		CTAGroup:          pc.CTAGroup,
		Email:             pc.Email,
		Notes:             pc.Notes,
		Hashtags:          pc.Hashtags,
	}
	post.NormalizeText()
	return post, nil
}

func (s *postService) resolveSchedule(session *models.Session, pc *transfer.PostCreation, current *models.Post) (time.Time, error) {
	today := s.today()

	var date time.Time
	var err error
	switch {
	case pc.Date != "":
		date, err = parseDate(pc.Date)
	case pc.Weekday != nil:
		date, err = nextWeekday(today, *pc.Weekday)
	case current != nil:
		date = naiveDate(current.ScheduledAt)
	default:
		date = session.SelectedDate(today)
	}
	if err != nil {
		return time.Time{}, err
	}

	if pc.Time == "" && current != nil {
		h, m, sec := current.ScheduledAt.Clock()
		return combine(date, h, m, sec), nil
	}

	clock := pc.Time
	if clock == "" {
		clock = session.Settings().PostingTime
	}
	if clock == "" {
		return time.Time{}, validationError("time is required")
	}
	h, m, sec, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return combine(date, h, m, sec), nil
}

// view renders the posts for filter; see ListPosts.
func (s *postService) view(st *repository.SessionState, filter string) *transfer.ScheduleView {
	selected := st.Session.SelectedDate(s.today())

	var date time.Time
	switch filter {
	case FilterAll:
	case "":
		date = selected
		filter = selected.Format(dateLayout)
	default:
		date, _ = time.Parse(dateLayout, filter)
	}

	listed := st.Posts.ListForDate(date)
	entries := make([]transfer.PostEntry, 0, len(listed))
	for _, p := range listed {
		entries = append(entries, transfer.PostEntry{
			Index:       p.Index,
			ScheduledAt: p.Post.ScheduledAt.Format(models.ScheduledAtLayout),
			Post:        p.Post,
		})
	}

	return &transfer.ScheduleView{
		SelectedDate: selected.Format(dateLayout),
		Filter:       filter,
		Total:        st.Posts.Len(),
		Posts:        entries,
	}
}
