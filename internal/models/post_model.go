package models

import (
	"strings"
	"time"
)

// ScheduledAtLayout is the wire format of Post.ScheduledAt in CSV files and JSON views.
const ScheduledAtLayout = "2006-01-02 15:04:05"

type Post struct {
	Platform          string    `csv:"platform" json:"platform"`
	Content           string    `csv:"content" json:"content"`
	ScheduledAt       time.Time `csv:"scheduled_at" json:"scheduled_at"`
	Link              string    `csv:"link" json:"link,omitempty"`
	ImageURL          string    `csv:"image_url" json:"image_url,omitempty"`
	VideoURL          string    `csv:"video_url" json:"video_url,omitempty"`
	PinTitle          string    `csv:"pin_title" json:"pin_title,omitempty"`
	Category          string    `csv:"category" json:"category,omitempty"`
	Watermark         string    `csv:"watermark" json:"watermark,omitempty"`
	HashtagGroup      string    `csv:"hashtag_group" json:"hashtag_group,omitempty"`
	VideoThumbnailURL string    `csv:"video_thumbnail_url" json:"video_thumbnail_url,omitempty"`
	CTAGroup          string    `csv:"cta_group" json:"cta_group,omitempty"`
	Email             string    `csv:"email" json:"email,omitempty"`
	Notes             string    `csv:"notes" json:"notes,omitempty"`
	Hashtags          string    `csv:"hashtags" json:"hashtags,omitempty"`
}

const (
	PlatformTwitter   = "Twitter"
	PlatformFacebook  = "Facebook"
	PlatformLinkedIn  = "LinkedIn"
	PlatformInstagram = "Instagram"
)

// Platforms lists the recognized platforms in display order.
var Platforms = []string{PlatformTwitter, PlatformFacebook, PlatformLinkedIn, PlatformInstagram}

var validPlatforms = map[string]bool{
	PlatformTwitter:   true,
	PlatformFacebook:  true,
	PlatformLinkedIn:  true,
	PlatformInstagram: true,
}

func IsValidPlatform(p string) bool {
	return validPlatforms[p]
}

var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// NormalizeNewlines rewrites CRLF and lone CR line breaks as LF.
func NormalizeNewlines(s string) string {
	return newlines.Replace(s)
}

// NormalizeText applies NormalizeNewlines to every text field, so stored posts
// survive a CSV export and re-import unchanged.
func (p *Post) NormalizeText() {
	for _, f := range []*string{
		&p.Platform, &p.Content, &p.Link, &p.ImageURL, &p.VideoURL, &p.PinTitle,
		&p.Category, &p.Watermark, &p.HashtagGroup, &p.VideoThumbnailURL,
		&p.CTAGroup, &p.Email, &p.Notes, &p.Hashtags,
	} {
		*f = NormalizeNewlines(*f)
	}
}
