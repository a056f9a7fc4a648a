// Package types contains result types shared by the pipeline and its callers
package types

import "time"

// NullEntry is one row of the residual null report
type NullEntry struct {
	Column    string `json:"column"`
	NullCount int    `json:"null_count"`
	DataType  string `json:"data_type"`
}

// StageSummary describes what one pipeline stage did
type StageSummary struct {
	Stage    string         `json:"stage"`
	Changed  map[string]int `json:"changed,omitempty"`
	Failed   map[string]int `json:"failed,omitempty"`
	Duration time.Duration  `json:"duration"`
}

// RunSummary describes a cleaning run
type RunSummary struct {
	RunID      string         `json:"run_id"`
	Rows       int            `json:"rows"`
	Duplicates int            `json:"duplicates"`
	Output     string         `json:"output"`
	Stages     []StageSummary `json:"stages"`
}

// Total returns the number of cells the stage gave a value.
func (s StageSummary) Total() int {
	n := 0
	for _, v := range s.Changed {
		n += v
	}
	return n
}

// Changed returns the number of cells filled across all stages.
func (r RunSummary) Changed() int {
	n := 0
	for _, s := range r.Stages {
		n += s.Total()
	}
	return n
}

// Unparseable returns the number of present cells that failed to parse.
func (r RunSummary) Unparseable() int {
	n := 0
	for _, s := range r.Stages {
		for _, v := range s.Failed {
			n += v
		}
	}
	return n
}
