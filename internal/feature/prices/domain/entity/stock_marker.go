package entity

// StockMarker tracks whether a traded symbol is known to the external
// quote provider. Exists is nil until the ingest job has tried the
// symbol at least once, then true or false depending on the answer.
// Symbols flagged false are skipped on later ingest runs.
type StockMarker struct {
	Symbol string
	Exists *bool
}
