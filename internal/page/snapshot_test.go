package page_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leedz/internal/page"
)

const sampleDoc = `{
  "tag": "html",
  "children": [
    {
      "tag": "div",
      "attrs": {"id": "main", "class": "thread expanded"},
      "children": [
        {
          "tag": "span",
          "attrs": {"email": "jane@ex.com", "class": "sender"},
          "text": "Doe, Jane"
        },
        {
          "tag": "blockquote",
          "attrs": {"class": "quoted"},
          "children": [
            {"tag": "span", "attrs": {"email": "old@ex.com"}, "text": "Old Sender"}
          ]
        }
      ]
    }
  ]
}`

func loadSample(t *testing.T) *page.Snapshot {
	t.Helper()

	snap, err := page.LoadSnapshot("https://mail.google.com/mail/u/0/#inbox/abc", strings.NewReader(sampleDoc))
	require.NoError(t, err)

	return snap
}

func TestSnapshot_Query(t *testing.T) {
	snap := loadSample(t)

	tests := []struct {
		name     string
		selector string
		want     int
	}{
		{name: "by tag", selector: "span", want: 2},
		{name: "by id", selector: "#main", want: 1},
		{name: "by class", selector: ".sender", want: 1},
		{name: "by attribute presence", selector: "[email]", want: 2},
		{name: "by attribute value", selector: "[email=jane@ex.com]", want: 1},
		{name: "descendant chain", selector: "blockquote span", want: 1},
		{name: "compound", selector: "div.thread.expanded", want: 1},
		{name: "comma list", selector: ".sender, .quoted", want: 2},
		{name: "no match", selector: "table", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, snap.Query(tt.selector), tt.want)
		})
	}
}

func TestSnapshot_ElementAccessors(t *testing.T) {
	snap := loadSample(t)

	sender, ok := snap.QueryOne(".sender")
	require.True(t, ok)

	assert.Equal(t, "span", sender.Tag())
	assert.Equal(t, "Doe, Jane", sender.Text())

	email, ok := sender.Attr("email")
	require.True(t, ok)
	assert.Equal(t, "jane@ex.com", email)

	parent, ok := sender.Parent()
	require.True(t, ok)
	attr, _ := parent.Attr("id")
	assert.Equal(t, "main", attr)
}

func TestSnapshot_SubtreeText(t *testing.T) {
	snap := loadSample(t)

	main, ok := snap.QueryOne("#main")
	require.True(t, ok)

	assert.Equal(t, "Doe, Jane Old Sender", main.Text())
}

func TestSnapshot_WaitForElement(t *testing.T) {
	snap := loadSample(t)
	ctx := context.Background()

	el, err := snap.WaitForElement(ctx, ".sender", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Doe, Jane", el.Text())

	_, err = snap.WaitForElement(ctx, ".missing", 200*time.Millisecond)
	assert.Error(t, err)
}

func TestSnapshot_WaitForElementSeesMutation(t *testing.T) {
	snap := page.NewSnapshot("https://calendar.google.com/", &page.Node{TagName: "html"})

	go func() {
		time.Sleep(150 * time.Millisecond)
		snap.ReplaceRoot(&page.Node{
			TagName: "html",
			Children: []*page.Node{
				{TagName: "div", Attrs: map[string]string{"role": "dialog"}, OwnText: "Event"},
			},
		})
	}()

	el, err := snap.WaitForElement(context.Background(), "[role=dialog]", 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, "Event", el.Text())
}

func TestSnapshot_PostToHost(t *testing.T) {
	snap := loadSample(t)

	require.NoError(t, snap.PostToHost("ping"))
	require.NoError(t, snap.PostToHost("pong"))

	assert.Equal(t, []any{"ping", "pong"}, snap.Posted())
}
