package domain

// Match represents a single retrieval hit.
type Match struct {
	// Document is the matched corpus document.
	Document Document

	// Similarity is the cosine similarity score (0-1, higher is closer).
	Similarity float64
}

// Answer is the result of one completed conversation turn.
type Answer struct {
	// SessionID identifies the conversation the turn belongs to.
	SessionID string

	// Question is the user's original question, exactly as asked.
	Question string

	// StandaloneQuestion is the history-independent rewrite that drove
	// retrieval. It is never shown to the answer stage.
	StandaloneQuestion string

	// Text is the generated answer, unparsed model output.
	Text string

	// Matches are the retrieved documents, closest first.
	Matches []Match
}
