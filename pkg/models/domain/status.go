package domain

import "time"

type LoadState string

const (
	LoadStateUninitialized LoadState = "uninitialized"
	LoadStateLoading       LoadState = "loading"
	LoadStateLoaded        LoadState = "loaded"
	LoadStateFailed        LoadState = "failed"
)

type DatasetStatus struct {
	State      LoadState
	Version    uint64
	Rows       int
	Source     string
	LoadedAt   *time.Time
	Error      string
	Categories []string
	Regions    []string
}

func (s DatasetStatus) IsLoading() bool {
	return s.State == LoadStateLoading || s.State == LoadStateUninitialized
}
