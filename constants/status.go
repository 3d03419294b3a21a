package constants

// SkipReason explains why a candidate file produced no sample.
type SkipReason string

// Stable values, also used on the wire by the gRPC API.
const (
	SkipNone          SkipReason = ""
	SkipExtractFailed SkipReason = "EXTRACT_FAILED" // text extraction errored or panicked
	SkipNoMatch       SkipReason = "NO_MATCH"       // text had no value for the metric label
)
