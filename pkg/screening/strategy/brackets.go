package strategy

// Fixed size brackets. Total functions: nil or non-positive inputs map to
// the unknown bracket, never an error.

const BracketUnknown = "unknown"

var employeeBrackets = []string{"under_10", "under_50", "under_250", "under_1000", "over_1000"}

var employeeThresholds = []int{10, 50, 250, 1000}

// EmployeeBracket buckets a headcount into one of five fixed brackets.
func EmployeeBracket(count *int) string {
	if count == nil || *count <= 0 {
		return BracketUnknown
	}
	return employeeBrackets[bracketIndex(*count)]
}

func bracketIndex(count int) int {
	for i, limit := range employeeThresholds {
		if count < limit {
			return i
		}
	}
	return len(employeeThresholds)
}

var turnoverBrackets = []struct {
	limit float64
	label string
}{
	{100_000, "under_100k"},
	{1_000_000, "under_1m"},
	{10_000_000, "under_10m"},
	{100_000_000, "under_100m"},
}

// TurnoverBracket buckets annual turnover into order-of-magnitude bands.
func TurnoverBracket(turnover *float64) string {
	if turnover == nil || *turnover <= 0 {
		return BracketUnknown
	}
	for _, b := range turnoverBrackets {
		if *turnover < b.limit {
			return b.label
		}
	}
	return "over_100m"
}
