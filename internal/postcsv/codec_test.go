package postcsv

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/maheshrc27/postcal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSinglePost(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, []models.Post{{
		Platform:    "Twitter",
		Content:     "Hello",
		ScheduledAt: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
	}})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(Header(), ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Twitter,Hello,2024-06-10 09:00:00,"))
}

func TestHeaderOrder(t *testing.T) {
	assert.Equal(t, []string{
		"platform", "content", "scheduled_at", "link", "image_url", "video_url",
		"pin_title", "category", "watermark", "hashtag_group", "video_thumbnail_url",
		"cta_group", "email", "notes", "hashtags",
	}, Header())
}

func TestRoundTrip(t *testing.T) {
	in := []models.Post{
		{
			Platform:          "Instagram",
			Content:           "Line one\nline \"two\", with comma",
			ScheduledAt:       time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC),
			Link:              "https://example.com/a?b=1,2",
			ImageURL:          "https://example.com/i.png",
			VideoURL:          "https://example.com/v.mp4",
			PinTitle:          "Pin",
			Category:          "News",
			Watermark:         "GM",
			HashtagGroup:      "#moto,#ride",
			VideoThumbnailURL: "https://example.com/t.png",
			CTAGroup:          "Shop now",
			Email:             "ops@example.com",
			Notes:             "check copy",
			Hashtags:          "a,b,c",
		},
		{
			Platform:    "LinkedIn",
			ScheduledAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))

	out, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeColumnOrderIndependent(t *testing.T) {
	data := "content,scheduled_at,extra,platform\n" +
		"hi,2024-06-10 09:00:00,ignored,Facebook\n"

	out, err := Decode(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, models.Post{
		Platform:    "Facebook",
		Content:     "hi",
		ScheduledAt: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
	}, out[0])
}

func TestDecodeLegacyDatetimeColumn(t *testing.T) {
	data := "platform,content,datetime,email,notes,hashtags\n" +
		"Twitter,old,2023-01-02 03:04:05,me@example.com,n,\"#a,#b\"\n"

	out, err := Decode(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC), out[0].ScheduledAt)
	assert.Equal(t, "#a,#b", out[0].Hashtags)
	assert.Empty(t, out[0].Link)
}

func TestDecodeMissingRequiredColumn(t *testing.T) {
	_, err := Decode(strings.NewReader("content,scheduled_at\nx,2024-06-10 09:00:00\n"))
	require.ErrorIs(t, err, ErrParse)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "platform", pe.Column)
	assert.Equal(t, 1, pe.Line)
}

func TestDecodeMalformedDatetimeFailsWholeFile(t *testing.T) {
	data := "platform,content,scheduled_at\n" +
		"Twitter,ok,2024-06-10 09:00:00\n" +
		"Twitter,bad,2024-06-10T09:00\n"

	out, err := Decode(strings.NewReader(data))
	assert.Nil(t, out)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Line)
	assert.Equal(t, "scheduled_at", pe.Column)
}

func TestDecodeEmptyInput(t *testing.T) {
	_, err := Decode(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrParse)
}

func TestDecodeHeaderOnly(t *testing.T) {
	out, err := Decode(strings.NewReader(strings.Join(Header(), ",") + "\n"))
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRoundTripLineBreaks(t *testing.T) {
	at := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"a\r\nb":     "a\nb",
		"a\rb":       "a\nb",
		"trailing\r": "trailing\n",
		"a\nb":       "a\nb",
		" lead":      " lead",
	}
	for in, want := range cases {
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, []models.Post{{Platform: "Twitter", Content: in, Notes: in, ScheduledAt: at}}))

		out, err := Decode(&buf)
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.Equal(t, want, out[0].Content, "content %q", in)
		assert.Equal(t, want, out[0].Notes, "notes %q", in)

		// once normalized, a second round trip is exact
		var again bytes.Buffer
		require.NoError(t, Encode(&again, out))
		back, err := Decode(&again)
		require.NoError(t, err)
		assert.Equal(t, out, back)
	}
}

func TestDecodeErrorLineCountsPhysicalLines(t *testing.T) {
	data := "platform,content,scheduled_at\n" +
		"Twitter,\"first\nsecond\nthird\",2024-06-10 09:00:00\n" +
		"Twitter,bad,someday\n"

	_, err := Decode(strings.NewReader(data))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 5, pe.Line)
	assert.Equal(t, "scheduled_at", pe.Column)
}

func TestDecodeFieldCountErrorLine(t *testing.T) {
	data := "platform,content,scheduled_at\n" +
		"Twitter,\"multi\nline\",2024-06-10 09:00:00\n" +
		"Twitter,short\n"

	_, err := Decode(strings.NewReader(data))
	require.ErrorIs(t, err, ErrParse)

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 4, pe.Line)
}
