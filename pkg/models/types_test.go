package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobUnmarshalLenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Job
	}{
		{
			name:  "string id and full fields",
			input: `{"id":"a1","title":"Baker","type":"Full-time","status":"active","applications":3,"duration":"6 months","description":"Bread"}`,
			want:  Job{ID: "a1", Title: "Baker", Type: "Full-time", Status: "active", Applications: 3, Duration: "6 months", Description: "Bread"},
		},
		{
			name:  "numeric id keeps its literal",
			input: `{"id":42,"title":"Clerk","status":"pending"}`,
			want:  Job{ID: "42", Title: "Clerk", Status: "pending"},
		},
		{
			name:  "missing and null optional fields",
			input: `{"id":"x","title":null,"status":"closed","applications":null}`,
			want:  Job{ID: "x", Status: "closed"},
		},
		{
			name:  "applications as numeric string",
			input: `{"id":"x","applications":"7"}`,
			want:  Job{ID: "x", Applications: 7},
		},
		{
			name:  "invalid applications become zero",
			input: `{"id":"x","applications":"lots"}`,
			want:  Job{ID: "x"},
		},
		{
			name:  "negative applications become zero",
			input: `{"id":"x","applications":-4}`,
			want:  Job{ID: "x"},
		},
		{
			name:  "fractional applications truncate",
			input: `{"id":"x","applications":"2.9"}`,
			want:  Job{ID: "x", Applications: 2},
		},
		{
			name:  "huge applications become zero",
			input: `{"id":"x","applications":1e300}`,
			want:  Job{ID: "x"},
		},
		{
			name:  "applications just past int64 become zero",
			input: `{"id":"x","applications":1e19}`,
			want:  Job{ID: "x"},
		},
		{
			name:  "infinite applications become zero",
			input: `{"id":"x","applications":"Infinity"}`,
			want:  Job{ID: "x"},
		},
		{
			name:  "NaN applications become zero",
			input: `{"id":"x","applications":"NaN"}`,
			want:  Job{ID: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Job
			require.NoError(t, json.Unmarshal([]byte(tt.input), &got))
			got.Extra = nil
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJobKeepsUnknownFields(t *testing.T) {
	var job Job
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","title":"T","status":"active","company":"Acme"}`), &job))
	require.Contains(t, job.Extra, "company")

	out, err := json.Marshal(job)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "Acme", back["company"])
	assert.Equal(t, "1", back["id"])
}

func TestDraftBodyShape(t *testing.T) {
	body, err := json.Marshal(Draft{Title: "Baker", Status: "active", Applications: 3})
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(body, &fields))
	assert.Len(t, fields, 6)
	for _, key := range []string{"title", "type", "status", "applications", "duration", "description"} {
		assert.Contains(t, fields, key)
	}
}

func TestDraftNormalize(t *testing.T) {
	d := Draft{Title: "  Baker ", Duration: " 3m ", Description: "\n text \t", Type: " keep "}.Normalize()
	assert.Equal(t, "Baker", d.Title)
	assert.Equal(t, "3m", d.Duration)
	assert.Equal(t, "text", d.Description)
	assert.Equal(t, " keep ", d.Type)
}
