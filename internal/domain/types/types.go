// Package types contains common types used across the application
package types

// Submission carries the form fields of one quote on the way in. The
// timestamp is stamped by the service, never by the caller. When
// DecimalOdds is set the implied probability is derived from it and
// ImpliedProbability is ignored.
type Submission struct {
	Date               string
	Player             string
	Event              string
	Quote              string
	ImpliedProbability float64
	DecimalOdds        float64
}

// Quote mirrors the read shape returned by history queries.
type Quote struct {
	TimestampUTC       string  `json:"timestamp_utc"`
	Date               string  `json:"date"`
	Player             string  `json:"player"`
	Event              string  `json:"event"`
	Quote              string  `json:"quote"`
	ImpliedProbability float64 `json:"implied_probability"`
}
