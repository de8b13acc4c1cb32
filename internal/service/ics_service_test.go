package service

import (
	"context"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"
	"github.com/maheshrc27/postcal/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICSExport(t *testing.T) {
	ps, sid := newTestPostService(t)
	ctx := context.Background()

	_, _, err := ps.AddPost(ctx, sid, &transfer.PostCreation{
		Platform: "Twitter",
		Content:  "Summer sale starts now\nsecond line",
		Date:     "2024-06-12",
		Time:     "09:15",
		Link:     "https://example.com/sale",
	})
	require.NoError(t, err)

	out, err := NewICSService(ps.ss).Export(ctx, sid)
	require.NoError(t, err)

	cal, err := ics.ParseCalendar(strings.NewReader(out))
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "[Twitter] Summer sale starts now", ev.GetProperty(ics.ComponentPropertySummary).Value)
	assert.Equal(t, "20240612T091500", ev.GetProperty(ics.ComponentPropertyDtStart).Value)
	assert.Equal(t, "20240612T094500", ev.GetProperty(ics.ComponentPropertyDtEnd).Value)
	assert.Equal(t, sid+"-0@postcal", ev.Id())
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "(no content)", summarize(""))
	long := strings.Repeat("a", 80)
	assert.Equal(t, strings.Repeat("a", 60)+"…", summarize(long))
}
