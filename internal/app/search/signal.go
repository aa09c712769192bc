package search

// SignalKind labels the matching strategy that produced a signal.
type SignalKind string

// Signal kinds, strongest to weakest.
const (
	SignalCode        SignalKind = "code"
	SignalSubjectCode SignalKind = "subjectCode"
	SignalContent     SignalKind = "content"
	SignalInstructor  SignalKind = "instructor"
	SignalSubjectName SignalKind = "subjectName"
	SignalFallback    SignalKind = "fallback"
)

// MatchedOnAll is the matched-on label attached to every result in pure
// browse mode, where the fallback signal admits all eligible offerings.
const MatchedOnAll = "all"

// signalKindOrder fixes the display order of matched-on labels.
var signalKindOrder = []SignalKind{
	SignalCode,
	SignalSubjectCode,
	SignalContent,
	SignalInstructor,
	SignalSubjectName,
	SignalFallback,
}

// Signal is one ephemeral per-request match tuple. Never persisted.
type Signal struct {
	OfferingID int64
	Score      float64
	Kind       SignalKind
}
