package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobdesk/jobdesk-terminal/internal/apitest"
	"github.com/jobdesk/jobdesk-terminal/pkg/files"
	"github.com/jobdesk/jobdesk-terminal/pkg/models"
)

func seedJobs() []models.Job {
	return []models.Job{
		{ID: "1", Title: "Baker", Type: "Full-time", Status: "active", Applications: 4, Description: "Early mornings"},
		{ID: "2", Title: "Clerk", Type: "Part-time", Status: "pending"},
		{ID: "3", Title: "Driver", Type: "Contract", Status: "closed", Duration: "6 months"},
	}
}

// execute runs the command tree against srv with the given stdin
func execute(t *testing.T, srv *apitest.Server, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(files.EnvAPIBase, "")
	t.Setenv(files.EnvLogFile, "")
	t.Setenv(files.EnvRPS, "")
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)
	t.Setenv("HOME", cache)

	root := NewRootCommand("test")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	if srv != nil {
		args = append(args, "--api", srv.BaseURL())
	}
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
		excludes []string
	}{
		{
			name:     "all jobs as a table",
			args:     []string{"list"},
			contains: []string{"Baker", "Clerk", "Driver", "Early mornings", "Total: 3  Active: 1  Pending: 1"},
		},
		{
			name:     "type filter",
			args:     []string{"list", "--type", "Contract"},
			contains: []string{"Driver", "6 months", "Total: 1  Active: 0  Pending: 0"},
			excludes: []string{"Baker", "Clerk"},
		},
		{
			name:     "query and search combine",
			args:     []string{"list", "--query", "status:active", "--search", "BAK"},
			contains: []string{"Baker"},
			excludes: []string{"Clerk", "Driver"},
		},
		{
			name:     "no matches",
			args:     []string{"list", "--status", "archived"},
			contains: []string{"No jobs found"},
			excludes: []string{"Total:"},
		},
		{
			name:     "yaml output",
			args:     []string{"list", "--query", "status:pending", "-o", "yaml"},
			contains: []string{"title: Clerk", "count: 1", "pending: 1"},
			excludes: []string{"Baker"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.NewServer(t, seedJobs()...)
			out, err := execute(t, srv, "", tt.args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestListCommandJSON(t *testing.T) {
	srv := apitest.NewServer(t, seedJobs()...)
	srv.UseEnvelope(true)

	out, err := execute(t, srv, "", "list", "--type", "Contract", "-o", "json")
	require.NoError(t, err)

	var result ListResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 1, result.Count)
	assert.Equal(t, "Contract", result.Criteria.Type)
	require.Len(t, result.Jobs, 1)
	assert.Equal(t, "3", result.Jobs[0].ID)
}

func TestListCommandErrors(t *testing.T) {
	t.Run("invalid output format", func(t *testing.T) {
		srv := apitest.NewServer(t)
		_, err := execute(t, srv, "", "list", "-o", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid output format")
		assert.Zero(t, srv.Count())
	})

	t.Run("load failure", func(t *testing.T) {
		srv := apitest.NewServer(t, seedJobs()...)
		srv.FailNext(http.MethodGet, http.StatusServiceUnavailable, "maintenance")
		_, err := execute(t, srv, "", "list")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load jobs")
		assert.Contains(t, err.Error(), "maintenance")
	})
}

func TestShowCommand(t *testing.T) {
	srv := apitest.NewServer(t, seedJobs()...)
	srv.SetField("1", "company", "Acme")

	out, err := execute(t, srv, "", "show", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Title:        Baker")
	assert.Contains(t, out, "Applications: 4")
	assert.Contains(t, out, `company: "Acme"`)
	assert.Contains(t, out, "Early mornings")

	_, err = execute(t, srv, "", "show", "99")
	require.Error(t, err)
	assert.Equal(t, "Job not found: 99", err.Error())
}

func TestCreateCommand(t *testing.T) {
	srv := apitest.NewServer(t, seedJobs()...)

	out, err := execute(t, srv, "", "create", "--title", "  Welder ", "--status", "active", "--applications", "2", "--type", "Contract")
	require.NoError(t, err)
	assert.Contains(t, out, "Created job 4: Welder")

	stored, ok := srv.Job("4")
	require.True(t, ok)
	assert.Equal(t, "Welder", stored["title"])
	assert.Equal(t, float64(2), stored["applications"])
	assert.Equal(t, "", stored["description"], "every form field is sent")
	assert.Equal(t, []string{"POST /api/jobs"}, srv.Calls())
}

func TestCreateCommandValidation(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing status", []string{"create", "--title", "Welder"}, "Title and Status are required. (missing: status)"},
		{"blank title", []string{"create", "--title", "   ", "--status", "active"}, "Title and Status are required. (missing: title)"},
		{"bad applications", []string{"create", "--title", "Welder", "--status", "active", "--applications", "lots"}, "invalid applications count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := apitest.NewServer(t)
			_, err := execute(t, srv, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Zero(t, srv.Count(), "nothing reaches the server")
		})
	}
}

func TestUpdateCommand(t *testing.T) {
	srv := apitest.NewServer(t, seedJobs()...)
	srv.SetField("2", "company", "Acme")

	out, err := execute(t, srv, "", "update", "2", "--status", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated job 2: Clerk")

	stored, ok := srv.Job("2")
	require.True(t, ok)
	assert.Equal(t, "active", stored["status"])
	assert.Equal(t, "Clerk", stored["title"], "unchanged flags keep their values")
	assert.Equal(t, "Part-time", stored["type"])
	assert.Equal(t, "Acme", stored["company"])
	assert.Equal(t, []string{"GET /api/jobs", "PUT /api/jobs/2"}, srv.Calls())
}

func TestUpdateCommandUnknownID(t *testing.T) {
	srv := apitest.NewServer(t, seedJobs()...)

	_, err := execute(t, srv, "", "update", "99", "--status", "active")
	require.Error(t, err)
	assert.Equal(t, "Job not found: 99", err.Error())
	assert.Equal(t, []string{"GET /api/jobs"}, srv.Calls())
}

func TestUpdateCommandServerError(t *testing.T) {
	srv := apitest.NewServer(t, seedJobs()...)
	srv.FailNext(http.MethodPut, http.StatusConflict, "stale version")

	_, err := execute(t, srv, "", "update", "1", "--title", "Head Baker")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update 1 failed (409): stale version")

	stored, _ := srv.Job("1")
	assert.Equal(t, "Baker", stored["title"])
}

func TestDeleteCommand(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		srv := apitest.NewServer(t, seedJobs()...)
		out, err := execute(t, srv, "n\n", "delete", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "Delete job 'Baker' (1)?")
		assert.Contains(t, out, "Deletion cancelled")
		assert.Equal(t, []string{"GET /api/jobs"}, srv.Calls())
	})

	t.Run("no answer means no", func(t *testing.T) {
		srv := apitest.NewServer(t, seedJobs()...)
		_, err := execute(t, srv, "", "delete", "1")
		require.NoError(t, err)
		assert.NotContains(t, srv.Calls(), "DELETE /api/jobs/1")
	})

	t.Run("confirmed", func(t *testing.T) {
		srv := apitest.NewServer(t, seedJobs()...)
		out, err := execute(t, srv, "y\n", "delete", "1")
		require.NoError(t, err)
		assert.Contains(t, out, "Deleted job 1: Baker")
		assert.Contains(t, srv.Calls(), "DELETE /api/jobs/1")
		_, ok := srv.Job("1")
		assert.False(t, ok)
	})

	t.Run("yes flag skips the prompt", func(t *testing.T) {
		srv := apitest.NewServer(t, seedJobs()...)
		out, err := execute(t, srv, "", "delete", "2", "--yes")
		require.NoError(t, err)
		assert.NotContains(t, out, "cannot be undone")
		assert.Contains(t, srv.Calls(), "DELETE /api/jobs/2")
	})

	t.Run("unknown id", func(t *testing.T) {
		srv := apitest.NewServer(t, seedJobs()...)
		_, err := execute(t, srv, "y\n", "delete", "99")
		require.Error(t, err)
		assert.Equal(t, "Job not found: 99", err.Error())
	})
}

func TestExportCommand(t *testing.T) {
	seed := append(seedJobs(), models.Job{ID: "4", Title: "<script>alert(1)</script>", Status: "pending"})

	t.Run("stdout", func(t *testing.T) {
		srv := apitest.NewServer(t, seed...)
		out, err := execute(t, srv, "", "export", "--title", "Q3 <jobs>")
		require.NoError(t, err)

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "Q3 <jobs>", doc.Find("title").Text())
		assert.Equal(t, 4, doc.Find("#jobTable tbody tr").Length())
		assert.Equal(t, "4", doc.Find("#totalJobs").Text())
		assert.Zero(t, doc.Find("body script").Length())
		assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	})

	t.Run("filtered to a file", func(t *testing.T) {
		srv := apitest.NewServer(t, seed...)
		path := filepath.Join(t.TempDir(), "pending.html")

		out, err := execute(t, srv, "", "export", "--status", "pending", "--out", path)
		require.NoError(t, err)
		assert.Contains(t, out, "Exported 2 jobs to")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 2, doc.Find("#jobTable tbody tr").Length())
		assert.Equal(t, "2", doc.Find("#pendingJobs").Text())
	})
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, nil, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "jobdesk version test\n", out)
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "jobdesk.yaml")

	out, err := execute(t, nil, "", "init", "--config", path, "--api", "https://jobs.example.com/api/")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	settings, err := files.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "https://jobs.example.com/api", settings.API.BaseURL)
	assert.True(t, settings.UI.ConfirmDelete)

	_, err = execute(t, nil, "", "init", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execute(t, nil, "", "init", "--config", path, "--force")
	require.NoError(t, err)
}
