package bench

import (
	"encoding/json"
	"io"
)

// WriteJSON writes the results as a machine-readable document for trend
// tracking across runs. An undefined improvement is exported as null.
func WriteJSON(w io.Writer, results *Results) error {
	doc := struct {
		*Results
		HeapAvgSeconds      float64  `json:"heapAvgSeconds"`
		LargePageAvgSeconds float64  `json:"largePageAvgSeconds"`
		ImprovementPct      *float64 `json:"improvementPct"`
	}{
		Results:             results,
		HeapAvgSeconds:      results.HeapAvg(),
		LargePageAvgSeconds: results.LargePageAvg(),
	}

	if pct, ok := Improvement(results.Heap.Seconds, results.LargePage.Seconds); ok {
		doc.ImprovementPct = &pct
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "\t")

	return encoder.Encode(doc)
}
