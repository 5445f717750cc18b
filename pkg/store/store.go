// Package store owns the authoritative job collection and is the only
// place that issues mutating calls to the API. The collection changes
// strictly in response to confirmed server responses.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/jobdesk/jobdesk-terminal/pkg/models"
)

// API is the subset of the REST client the store needs
type API interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
	CreateJob(ctx context.Context, draft models.Draft) (models.Job, error)
	UpdateJob(ctx context.Context, id string, draft models.Draft) (models.Job, error)
	DeleteJob(ctx context.Context, id string) error
}

// State describes where the collection came from
type State int

const (
	StateEmpty State = iota
	StateLoading
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "empty"
	}
}

// Store holds the authoritative collection
type Store struct {
	mu       sync.RWMutex
	api      API
	jobs     []models.Job
	state    State
	validate *validator.Validate
}

// New creates an empty store backed by the given API
func New(client API) *Store {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &Store{
		api:      client,
		jobs:     []models.Job{},
		validate: v,
	}
}

// Jobs returns a copy of the collection in display order
func (s *Store) Jobs() []models.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Job(nil), s.jobs...)
}

// Len returns the number of jobs in the collection
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}

// Find looks a job up by id
func (s *Store) Find(id string) (models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.jobs[i], true
	}
	return models.Job{}, false
}

// State reports the load state
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Validate checks a draft the way Create and Update do
func (s *Store) Validate(draft models.Draft) error {
	err := s.validate.Struct(draft.Normalize())
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		ve := &ValidationError{}
		for _, fe := range fieldErrs {
			ve.Fields = append(ve.Fields, fe.Field())
		}
		return ve
	}
	return &ValidationError{}
}

// Load replaces the collection with the server's. On failure the
// collection is left empty and the state is StateFailed.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.mu.Unlock()

	jobs, err := s.api.ListJobs(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.jobs = []models.Job{}
		s.state = StateFailed
		log.Printf("store: failed to load jobs: %v", err)
		return &LoadError{remote("load", "", err)}
	}
	s.jobs = sanitize(jobs)
	s.state = StateReady
	log.Printf("store: loaded %d jobs", len(s.jobs))
	return nil
}

// Create validates the draft, posts it, and inserts the server's record at
// the front of the collection.
func (s *Store) Create(ctx context.Context, draft models.Draft) (models.Job, error) {
	draft = draft.Normalize()
	if err := s.Validate(draft); err != nil {
		return models.Job{}, err
	}

	created, err := s.api.CreateJob(ctx, draft)
	if err != nil {
		log.Printf("store: create failed: %v", err)
		return models.Job{}, &CreateError{remote("create", "", err)}
	}
	if created.ID == "" {
		err := fmt.Errorf("server returned a job without an id")
		log.Printf("store: create failed: %v", err)
		return models.Job{}, &CreateError{RemoteError{Op: "create", Err: err}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(created.ID); i >= 0 {
		s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
	}
	s.jobs = append([]models.Job{created}, s.jobs...)
	return created, nil
}

// Update validates the draft, puts it, and replaces the matching record
// with the server's response. A response whose id matches nothing local
// still becomes the record for the id that was edited.
func (s *Store) Update(ctx context.Context, id string, draft models.Draft) (models.Job, error) {
	draft = draft.Normalize()
	if err := s.Validate(draft); err != nil {
		return models.Job{}, err
	}

	updated, err := s.api.UpdateJob(ctx, id, draft)
	if err != nil {
		log.Printf("store: update %s failed: %v", id, err)
		return models.Job{}, &UpdateError{remote("update", id, err)}
	}
	if updated.ID == "" {
		updated.ID = id
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch i := s.indexOf(updated.ID); {
	case i >= 0:
		s.jobs[i] = updated
		if updated.ID != id {
			log.Printf("store: update %s answered with existing id %s", id, updated.ID)
		}
	default:
		if j := s.indexOf(id); j >= 0 {
			s.jobs[j] = updated
		} else {
			s.jobs = append([]models.Job{updated}, s.jobs...)
		}
	}
	return updated, nil
}

// Delete removes a job after the user confirmed it. Without confirmation
// no request is made and ErrNotConfirmed is returned.
func (s *Store) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := s.api.DeleteJob(ctx, id); err != nil {
		log.Printf("store: delete %s failed: %v", id, err)
		return &DeleteError{remote("delete", id, err)}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
	}
	return nil
}

func (s *Store) indexOf(id string) int {
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			return i
		}
	}
	return -1
}

// sanitize drops records the server sent without an id and keeps only the
// first record for each id.
func sanitize(jobs []models.Job) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	seen := make(map[string]bool, len(jobs))
	for _, job := range jobs {
		switch {
		case job.ID == "":
			log.Printf("store: dropping job without id (title %q)", job.Title)
			continue
		case seen[job.ID]:
			log.Printf("store: dropping duplicate job id %s", job.ID)
			continue
		}
		seen[job.ID] = true
		out = append(out, job)
	}
	return out
}
