package dataset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() domain.Dataset {
	return domain.Dataset{
		Columns: domain.RequiredColumns,
		Transactions: []domain.Transaction{
			{OrderID: "1", Category: "Furniture", Region: "East", Sales: 100},
			{OrderID: "2", Category: "Technology", Region: "West", Sales: 300},
			{OrderID: "3", Category: "Furniture", Region: "West", Sales: 50},
		},
	}
}

func TestStore_InitialState(t *testing.T) {
	s := NewStore()

	status := s.Status()
	assert.Equal(t, domain.LoadStateUninitialized, status.State)
	assert.True(t, status.IsLoading())
	assert.False(t, s.Loaded())

	ds, version := s.Dataset()
	assert.True(t, ds.IsEmpty())
	assert.Equal(t, uint64(0), version)
}

func TestStore_Load(t *testing.T) {
	s := NewStore()
	loader := NewLoaderFunc("memory", func(ctx context.Context) (domain.Dataset, error) {
		return sampleDataset(), nil
	})

	require.NoError(t, s.Load(context.Background(), loader))

	status := s.Status()
	assert.Equal(t, domain.LoadStateLoaded, status.State)
	assert.False(t, status.IsLoading())
	assert.Equal(t, 3, status.Rows)
	assert.Equal(t, "memory", status.Source)
	assert.NotNil(t, status.LoadedAt)
	assert.Equal(t, []string{"Furniture", "Technology"}, status.Categories)
	assert.Equal(t, []string{"East", "West"}, status.Regions)

	ds, version := s.Dataset()
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, uint64(1), version)
}

func TestStore_LoadFailureLeavesEmptyDataset(t *testing.T) {
	s := NewStore()
	boom := errors.New("connection reset")
	loader := NewLoaderFunc("memory", func(ctx context.Context) (domain.Dataset, error) {
		return domain.Dataset{}, boom
	})

	err := s.Load(context.Background(), loader)
	assert.ErrorIs(t, err, boom)

	status := s.Status()
	assert.Equal(t, domain.LoadStateFailed, status.State)
	assert.False(t, status.IsLoading())
	assert.Equal(t, "connection reset", status.Error)
	assert.Empty(t, status.Categories)

	ds, version := s.Dataset()
	assert.True(t, ds.IsEmpty())
	assert.Equal(t, uint64(1), version)
}

func TestStore_LoadAsync(t *testing.T) {
	s := NewStore()
	release := make(chan struct{})
	loader := NewLoaderFunc("slow", func(ctx context.Context) (domain.Dataset, error) {
		<-release
		return sampleDataset(), nil
	})

	done, err := s.LoadAsync(context.Background(), loader)
	require.NoError(t, err)

	assert.Equal(t, domain.LoadStateLoading, s.Status().State)
	ds, _ := s.Dataset()
	assert.True(t, ds.IsEmpty())

	_, err = s.LoadAsync(context.Background(), loader)
	assert.ErrorIs(t, err, ErrLoadInProgress)

	close(release)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("load did not resolve")
	}

	require.NoError(t, s.Wait(context.Background()))
	assert.True(t, s.Loaded())
	ds, version := s.Dataset()
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, uint64(1), version)
}

func TestStore_Reload(t *testing.T) {
	s := NewStore()
	calls := 0
	loader := NewLoaderFunc("memory", func(ctx context.Context) (domain.Dataset, error) {
		calls++
		return sampleDataset(), nil
	})

	require.NoError(t, s.Load(context.Background(), loader))
	require.NoError(t, s.Load(context.Background(), loader))

	_, version := s.Dataset()
	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(3), version)
	require.NoError(t, s.Wait(context.Background()))
}

func TestStore_ReloadPublishesEmptyDatasetWhileLoading(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	require.NoError(t, s.Load(ctx, NewLoaderFunc("memory", func(context.Context) (domain.Dataset, error) {
		return sampleDataset(), nil
	})))
	_, before := s.Dataset()

	started := make(chan struct{})
	release := make(chan struct{})
	done, err := s.LoadAsync(ctx, NewLoaderFunc("memory", func(context.Context) (domain.Dataset, error) {
		close(started)
		<-release
		return sampleDataset(), nil
	}))
	require.NoError(t, err)
	<-started

	ds, during := s.Dataset()
	assert.True(t, ds.IsEmpty())
	assert.Greater(t, during, before)
	assert.Equal(t, domain.LoadStateLoading, s.Status().State)

	close(release)
	<-done
	ds, after := s.Dataset()
	assert.Equal(t, 3, ds.Len())
	assert.Greater(t, after, during)
}

func TestStore_WaitHonoursContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Wait(ctx), context.Canceled)
}
