package models

import (
	"database/sql"
	"encoding/json"
	"math"
)

// Metric is a feature value that may be missing. The missing sentinel is
// NaN inside the pipeline; it marshals as JSON null and is stored as SQL
// NULL so batch extraction over many subjects never aborts on degenerate
// records.
type Metric float64

// Missing reports whether the value is the missing sentinel
func (m Metric) Missing() bool {
	return math.IsNaN(float64(m))
}

// MarshalJSON encodes missing values as null
func (m Metric) MarshalJSON() ([]byte, error) {
	if m.Missing() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(m))
}

// UnmarshalJSON decodes null as the missing sentinel
func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Metric(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*m = Metric(f)
	return nil
}

// NullFloat64 converts the metric to its SQL representation
func (m Metric) NullFloat64() sql.NullFloat64 {
	if m.Missing() {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: float64(m), Valid: true}
}

// MetricFromNull converts a SQL value back into a metric
func MetricFromNull(v sql.NullFloat64) Metric {
	if !v.Valid {
		return Metric(math.NaN())
	}
	return Metric(v.Float64)
}
