package pipeline

// Output column names.
const (
	KeyPrice         = "price"
	KeyFiltered      = "filtered"
	KeyInPhase       = "inPhase"
	KeyQuadrature    = "quadrature"
	KeyPeriod        = "period"
	KeyDominantCycle = "dominantCycle"
	KeyWindow        = "window"
	KeyTrigger       = "trigger"
)
