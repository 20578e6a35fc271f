// Package crosscheck compares capacity readings from independent probers
// and checks readings against their invariants.
package crosscheck

// ValidationStatus indicates how well probers agree on a metric.
type ValidationStatus string

const (
	StatusValid    ValidationStatus = "valid"
	StatusSuspect  ValidationStatus = "suspect"
	StatusConflict ValidationStatus = "conflict"
)

// DefaultFreeTolerance is how far free space may drift between two back to
// back probes of one filesystem before the readings are suspect.
const DefaultFreeTolerance uint64 = 64 << 20

// Source is one prober's reading of a metric, in bytes.
type Source struct {
	Name    string `json:"name"`
	Value   uint64 `json:"value"`
	RawData string `json:"raw_data,omitempty"`
}

// ValidationResult holds the cross-check outcome for a metric.
type ValidationResult struct {
	Metric    string           `json:"metric"`
	Sources   []Source         `json:"sources"`
	Min       uint64           `json:"min"`
	Max       uint64           `json:"max"`
	Spread    uint64           `json:"spread"`
	Tolerance uint64           `json:"tolerance"`
	Status    ValidationStatus `json:"status"`
}

// Validator decides whether prober readings agree.
type Validator struct {
	// FreeTolerance bounds the spread of free and used bytes for a valid
	// result; four times it marks a conflict.
	FreeTolerance uint64
}

// NewValidator creates a validator with DefaultFreeTolerance.
func NewValidator() *Validator {
	return &Validator{FreeTolerance: DefaultFreeTolerance}
}

// CheckExact requires every source to report the same value. Probers
// reading one filesystem agree on its block count, so any difference in
// total size is a conflict.
func (v *Validator) CheckExact(metric string, sources []Source) ValidationResult {
	return evaluate(metric, sources, 0)
}

// CheckWithin allows sources to differ by up to the validator's tolerance.
func (v *Validator) CheckWithin(metric string, sources []Source) ValidationResult {
	return evaluate(metric, sources, v.FreeTolerance)
}

func evaluate(metric string, sources []Source, tolerance uint64) ValidationResult {
	result := ValidationResult{
		Metric:    metric,
		Sources:   sources,
		Tolerance: tolerance,
		Status:    StatusValid,
	}
	if len(sources) == 0 {
		return result
	}

	result.Min, result.Max = sources[0].Value, sources[0].Value
	for _, s := range sources[1:] {
		result.Min = min(result.Min, s.Value)
		result.Max = max(result.Max, s.Value)
	}
	result.Spread = result.Max - result.Min

	switch {
	case result.Spread <= tolerance:
	case tolerance > 0 && result.Spread <= 4*tolerance:
		result.Status = StatusSuspect
	default:
		result.Status = StatusConflict
	}
	return result
}
