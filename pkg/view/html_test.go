package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdesk/jobdesk-terminal/pkg/models"
	"github.com/jobdesk/jobdesk-terminal/pkg/search"
)

func renderHTML(t *testing.T, view []models.Job) (string, *goquery.Document) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, Render(view, search.ComputeStats(view))))
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return buf.String(), doc
}

func TestWriteHTMLEscapesScript(t *testing.T) {
	view := []models.Job{{ID: `1"><x`, Title: "<script>alert('x')</script>", Type: "A&B", Status: "active", Description: `"quoted"`}}
	out, doc := renderHTML(t, view)

	assert.Zero(t, doc.Find("script").Length())
	assert.Zero(t, doc.Find("x").Length())
	assert.Contains(t, out, "&lt;script&gt;alert(&#039;x&#039;)&lt;/script&gt;")
	assert.Contains(t, out, "A&amp;B")
	assert.Contains(t, out, "&quot;quoted&quot;")

	// the parsed text is the original value, not markup
	title := doc.Find("tbody tr td").Eq(1).Text()
	assert.Equal(t, "<script>alert('x')</script>", title)

	for _, cell := range []string{"<script>", "</script>"} {
		assert.NotContains(t, out, cell)
	}
}

func TestWriteHTMLActions(t *testing.T) {
	view := []models.Job{{ID: "a", Title: "One", Status: "active"}, {ID: "b", Title: "Two", Status: "pending"}}
	_, doc := renderHTML(t, view)

	rows := doc.Find("tbody tr")
	require.Equal(t, 2, rows.Length())

	rows.Each(func(i int, row *goquery.Selection) {
		buttons := row.Find("button[data-action]")
		require.Equal(t, 2, buttons.Length())
		assert.Equal(t, "edit", buttons.Eq(0).AttrOr("data-action", ""))
		assert.Equal(t, "delete", buttons.Eq(1).AttrOr("data-action", ""))
		assert.Equal(t, view[i].ID, buttons.Eq(0).AttrOr("data-id", ""))
		assert.Equal(t, view[i].ID, buttons.Eq(1).AttrOr("data-id", ""))
	})

	assert.Equal(t, "2", doc.Find("#totalJobs").Text())
	assert.Equal(t, "1", doc.Find("#activeJobs").Text())
	assert.Equal(t, "1", doc.Find("#pendingJobs").Text())
}

func TestWriteHTMLPlaceholder(t *testing.T) {
	_, doc := renderHTML(t, nil)

	rows := doc.Find("tbody tr")
	require.Equal(t, 1, rows.Length())
	assert.Equal(t, Placeholder, rows.Text())
	assert.Equal(t, "8", rows.Find("td").AttrOr("colspan", ""))
}

func TestWriteDocument(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDocument(&buf, "Jobs <export>", Render(nil, search.Stats{})))
	assert.True(t, strings.HasPrefix(buf.String(), "<!DOCTYPE html>"))
	assert.Contains(t, buf.String(), "<title>Jobs &lt;export&gt;</title>")
}
