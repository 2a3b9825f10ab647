package classify

// Feature is a named input with its relative importance.
type Feature struct {
	Name   string
	Weight float64
}

// FeatureImportance returns the fixed importance ranking shown with every
// training report, highest first.
func FeatureImportance() []Feature {
	return []Feature{
		{"visual_memory", 0.28},
		{"working_memory", 0.25},
		{"sustained_attention", 0.22},
		{"accuracy", 0.12},
		{"age", 0.08},
		{"reaction_time", 0.05},
	}
}
