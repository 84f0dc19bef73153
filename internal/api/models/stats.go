package models

import "time"

// ServerStatsResponse contains server runtime statistics.
type ServerStatsResponse struct {
	Uptime        string                 `json:"uptime"`
	UptimeClock   string                 `json:"uptime_clock"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	StartTime     time.Time              `json:"start_time"`
	BuildTime     *time.Time             `json:"build_time,omitempty"`
	GoRoutines    int                    `json:"goroutines"`
	MemoryAllocMB float64                `json:"memory_alloc_mb"`
	NumCPU        int                    `json:"num_cpu"`
	Sampler       SamplerStatsResponse   `json:"sampler"`
	Recorder      *RecorderStatsResponse `json:"recorder,omitempty"`
	History       *HistoryStatsResponse  `json:"history,omitempty"`
}

// SamplerStatsResponse describes the configured tick source.
type SamplerStatsResponse struct {
	Source     string `json:"source"`
	Interval   string `json:"interval"`
	OffsetMs   int    `json:"offset_ms"`
	Wraps      uint64 `json:"wraps"`
	HasSampled bool   `json:"has_sampled"`
}

// HistoryStatsResponse is present when sample history is enabled.
type HistoryStatsResponse struct {
	SamplesStored int64 `json:"samples_stored"`
	MaxSamples    int   `json:"max_samples"`
}

// RecorderStatsResponse contains sample persistence statistics.
type RecorderStatsResponse struct {
	SamplesTotal uint64  `json:"samples_total"`
	WritesTotal  uint64  `json:"writes_total"`
	WrapsSeen    uint64  `json:"wraps_seen"`
	RecordErrors uint64  `json:"record_errors"`
	Checkpoints  uint64  `json:"checkpoints"`
	PrunedTotal  uint64  `json:"pruned_total"`
	AvgWriteMs   float64 `json:"avg_write_ms"`
}
