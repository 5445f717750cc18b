package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Recognised status values. Anything else is passed through untouched.
const (
	StatusActive  = "active"
	StatusPending = "pending"
)

// Job is a job record as returned by the remote API
type Job struct {
	ID           string `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Type         string `json:"type" yaml:"type"`
	Status       string `json:"status" yaml:"status"`
	Applications int    `json:"applications" yaml:"applications"`
	Duration     string `json:"duration" yaml:"duration"`
	Description  string `json:"description" yaml:"description"`

	// Extra holds fields the server sent that the console does not know about
	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// Draft holds the form values sent on create and update
type Draft struct {
	Title        string `json:"title" validate:"required"`
	Type         string `json:"type"`
	Status       string `json:"status" validate:"required"`
	Applications int    `json:"applications" validate:"min=0"`
	Duration     string `json:"duration"`
	Description  string `json:"description"`
}

// Normalize trims the free-text fields the same way the form does
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Duration = strings.TrimSpace(d.Duration)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

// DraftFrom builds a draft carrying the editable fields of a job
func DraftFrom(job Job) Draft {
	return Draft{
		Title:        job.Title,
		Type:         job.Type,
		Status:       job.Status,
		Applications: job.Applications,
		Duration:     job.Duration,
		Description:  job.Description,
	}
}

var knownJobFields = map[string]bool{
	"id": true, "title": true, "type": true, "status": true,
	"applications": true, "duration": true, "description": true,
}

// UnmarshalJSON decodes a job leniently. Ids may be strings or numbers,
// applications may be missing, null, numeric strings or garbage (all of
// which become 0), and unknown fields are kept in Extra.
func (j *Job) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode job: %w", err)
	}

	*j = Job{
		ID:           scalarString(raw["id"]),
		Title:        scalarString(raw["title"]),
		Type:         scalarString(raw["type"]),
		Status:       scalarString(raw["status"]),
		Applications: lenientInt(raw["applications"]),
		Duration:     scalarString(raw["duration"]),
		Description:  scalarString(raw["description"]),
	}

	for k, v := range raw {
		if knownJobFields[k] {
			continue
		}
		if j.Extra == nil {
			j.Extra = make(map[string]json.RawMessage)
		}
		j.Extra[k] = v
	}
	return nil
}

// MarshalJSON writes the known fields followed by any extra server fields
func (j Job) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(knownJobFields)+len(j.Extra))
	for k, v := range j.Extra {
		out[k] = v
	}
	if j.ID != "" {
		out["id"] = j.ID
	}
	out["title"] = j.Title
	out["type"] = j.Type
	out["status"] = j.Status
	out["applications"] = j.Applications
	out["duration"] = j.Duration
	out["description"] = j.Description
	return json.Marshal(out)
}

// scalarString renders a JSON scalar as text. Null and missing values are
// empty; numbers keep their literal form so numeric ids survive intact.
func scalarString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

func lenientInt(raw json.RawMessage) int {
	s := scalarString(raw)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}
