package transfer

import "github.com/maheshrc27/postcal/internal/models"

// PostCreation is the body of create and update requests. The schedule comes from
// Date, else from Weekday (next occurrence after today), else from the selected date.
// Time falls back to the session's default posting time.
type PostCreation struct {
	Platform          string `json:"platform" form:"platform"`
	Content           string `json:"content" form:"content"`
	Date              string `json:"date" form:"date"`       // YYYY-MM-DD
	Weekday           *int   `json:"weekday" form:"weekday"` // 0=Monday .. 6=Sunday
	Time              string `json:"time" form:"time"`       // HH:MM or HH:MM:SS
	Link              string `json:"link" form:"link"`
	ImageURL          string `json:"image_url" form:"image_url"`
	VideoURL          string `json:"video_url" form:"video_url"`
	PinTitle          string `json:"pin_title" form:"pin_title"`
	Category          string `json:"category" form:"category"`
	Watermark         string `json:"watermark" form:"watermark"`
	HashtagGroup      string `json:"hashtag_group" form:"hashtag_group"`
	VideoThumbnailURL string `json:"video_thumbnail_url" form:"video_thumbnail_url"`
	CTAGroup          string `json:"cta_group" form:"cta_group"`
	Email             string `json:"email" form:"email"`
	Notes             string `json:"notes" form:"notes"`
	Hashtags          string `json:"hashtags" form:"hashtags"`
}

// RecurringCreation schedules Count weekly posts starting at the next Weekday.
type RecurringCreation struct {
	PostCreation
	Count    int `json:"count" form:"count"`
	Interval int `json:"interval" form:"interval"` // weeks between posts, default 1
}

type PostEntry struct {
	Index       int         `json:"index"`
	ScheduledAt string      `json:"scheduled_at"`
	Post        models.Post `json:"post"`
}

// ScheduleView is what every post command returns for re-rendering.
type ScheduleView struct {
	SelectedDate string      `json:"selected_date"`
	Filter       string      `json:"filter"`
	Total        int         `json:"total"`
	Posts        []PostEntry `json:"posts"`
	Message      string      `json:"message,omitempty"`
}

type SelectDate struct {
	Date string `json:"date" form:"date"`
}

type ImportResult struct {
	Imported int           `json:"imported"`
	View     *ScheduleView `json:"view"`
}

// CSVExport is a CSV download. ArchiveURL is set when a copy was archived to a
// public bucket.
type CSVExport struct {
	Data       []byte
	ArchiveURL string
}
