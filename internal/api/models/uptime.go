package models

import "time"

// UptimeResponse is the accumulator snapshot with its rendered forms.
type UptimeResponse struct {
	TotalSeconds        uint64          `json:"total_seconds"`
	CumulativeSeconds   uint64          `json:"cumulative_seconds"`
	LastObservedSeconds uint32          `json:"last_observed_seconds"`
	Wraps               uint64          `json:"wraps"`
	Clock               string          `json:"clock"`
	Period              string          `json:"period"`
	Dense               string          `json:"dense"`
	LastSample          *SampleResponse `json:"last_sample,omitempty"`
}

// SampleResponse is one sampler reading.
type SampleResponse struct {
	At           time.Time `json:"at"`
	RawTickMs    uint32    `json:"raw_tick_ms"`
	Seconds      uint32    `json:"seconds"`
	TotalSeconds uint64    `json:"total_seconds"`
	Wrapped      bool      `json:"wrapped"`
}

// HistoryResponse lists recent samples, newest first.
type HistoryResponse struct {
	Samples []SampleResponse `json:"samples"`
	Count   int              `json:"count"`
}

// FormatResponse renders a second count with every formatter.
// EpochDate is only set when the value fits a 32-bit epoch.
type FormatResponse struct {
	Seconds   uint64 `json:"seconds"`
	Clock     string `json:"clock"`
	Period    string `json:"period"`
	Dense     string `json:"dense"`
	EpochDate string `json:"epoch_date,omitempty"`
}
