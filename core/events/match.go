package events

// MatchEvent is published when a scoring pass for a load completes.
type MatchEvent struct {
	LoadID     int64
	PoolSize   int
	Candidates int
	TopScore   float64
	MeanScore  float64
}
