package dataset

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

var ErrLoadInProgress = errors.New("dataset load already in progress")

// Store owns the raw dataset. It is written once per load and swapped
// atomically; readers never observe a partially loaded dataset.
type Store struct {
	mu       sync.RWMutex
	state    domain.LoadState
	dataset  domain.Dataset
	version  uint64
	source   string
	loadedAt *time.Time
	lastErr  string
	done     chan struct{}
	now      func() time.Time

	categories []string
	regions    []string
}

func NewStore() *Store {
	return &Store{
		state: domain.LoadStateUninitialized,
		done:  make(chan struct{}),
		now:   time.Now,
	}
}

// Load runs loader synchronously. A failed load leaves the store empty in the
// failed state; it is not retried.
func (s *Store) Load(ctx context.Context, loader Loader) error {
	if err := s.begin(loader.Source()); err != nil {
		return err
	}
	ds, err := loader.Load(ctx)
	s.finish(ctx, ds, err)
	return err
}

// LoadAsync starts loader in the background and returns immediately. The
// returned channel is closed once the load resolved.
func (s *Store) LoadAsync(ctx context.Context, loader Loader) (<-chan struct{}, error) {
	if err := s.begin(loader.Source()); err != nil {
		return nil, err
	}

	s.mu.RLock()
	done := s.done
	s.mu.RUnlock()

	go func() {
		ds, err := loader.Load(ctx)
		s.finish(ctx, ds, err)
	}()
	return done, nil
}

// Wait blocks until the current load resolved or ctx is done.
func (s *Store) Wait(ctx context.Context) error {
	s.mu.RLock()
	done := s.done
	s.mu.RUnlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) begin(source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == domain.LoadStateLoading {
		return ErrLoadInProgress
	}
	if s.state == domain.LoadStateLoaded || s.state == domain.LoadStateFailed {
		s.done = make(chan struct{})
		// the published dataset is replaced by an empty one until finish
		s.version++
	}
	s.state = domain.LoadStateLoading
	s.source = source
	s.dataset = domain.Dataset{}
	s.categories, s.regions = nil, nil
	s.lastErr = ""
	return nil
}

func (s *Store) finish(ctx context.Context, ds domain.Dataset, err error) {
	logger := zerolog.Ctx(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	if err != nil {
		s.state = domain.LoadStateFailed
		s.dataset = domain.Dataset{}
		s.lastErr = err.Error()
		logger.Error().Err(err).Str("source", s.source).Msg("failed to load dataset")
	} else {
		loadedAt := s.now()
		s.state = domain.LoadStateLoaded
		s.dataset = ds
		s.loadedAt = &loadedAt
		s.categories = ds.Categories()
		s.regions = ds.Regions()
		logger.Info().Str("source", s.source).Int("rows", ds.Len()).Msg("dataset loaded")
	}
	close(s.done)
}

// Dataset returns the raw dataset and its version. The dataset is empty
// until a load succeeded.
func (s *Store) Dataset() (domain.Dataset, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset, s.version
}

func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == domain.LoadStateLoaded
}

func (s *Store) Status() domain.DatasetStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.DatasetStatus{
		State:      s.state,
		Version:    s.version,
		Rows:       s.dataset.Len(),
		Source:     s.source,
		LoadedAt:   s.loadedAt,
		Error:      s.lastErr,
		Categories: s.categories,
		Regions:    s.regions,
	}
}
