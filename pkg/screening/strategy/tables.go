package strategy

import "strings"

// Static lookup tables mapping profile vocabulary onto corpus vocabulary.
// Unmapped keys fall back to broad defaults, never an error.

const (
	DefaultClassification = "General"
	DefaultGeoExtent      = "United Kingdom"
	StatusInForce         = "in_force"
)

var sectorClassifications = map[string]string{
	"construction":     "Construction",
	"building":         "Construction",
	"health":           "Health and Social Care",
	"healthcare":       "Health and Social Care",
	"social care":      "Health and Social Care",
	"manufacturing":    "Manufacturing",
	"engineering":      "Manufacturing",
	"agriculture":      "Agriculture and Food",
	"farming":          "Agriculture and Food",
	"food":             "Agriculture and Food",
	"transport":        "Transport and Logistics",
	"logistics":        "Transport and Logistics",
	"finance":          "Financial Services",
	"financial":        "Financial Services",
	"insurance":        "Financial Services",
	"education":        "Education",
	"retail":           "Retail and Consumer",
	"hospitality":      "Hospitality and Leisure",
	"energy":           "Energy and Utilities",
	"utilities":        "Energy and Utilities",
	"technology":       "Information Technology",
	"software":         "Information Technology",
	"telecoms":         "Telecommunications",
	"waste":            "Environment and Waste",
	"environmental":    "Environment and Waste",
	"mining":           "Mining and Quarrying",
	"chemicals":        "Chemicals",
	"legal":            "Professional Services",
	"consulting":       "Professional Services",
}

var regionExtents = map[string]string{
	"england":          "England",
	"scotland":         "Scotland",
	"wales":            "Wales",
	"northern ireland": "Northern Ireland",
	"great britain":    "Great Britain",
	"uk":               "United Kingdom",
	"united kingdom":   "United Kingdom",
	"london":           "England",
	"south east":       "England",
	"south west":       "England",
	"midlands":         "England",
	"north east":       "England",
	"north west":       "England",
	"yorkshire":        "England",
	"highlands":        "Scotland",
	"glasgow":          "Scotland",
	"edinburgh":        "Scotland",
	"cardiff":          "Wales",
	"belfast":          "Northern Ireland",
}

// ClassificationFor maps an industry sector onto a regulation family.
// Unknown sectors map to the broad default classification.
func ClassificationFor(sector string) string {
	if c, ok := sectorClassifications[normalize(sector)]; ok {
		return c
	}
	return DefaultClassification
}

// ExtentFor maps a declared region onto a geographic extent. Unknown
// regions map to the nationwide extent.
func ExtentFor(region string) string {
	if e, ok := regionExtents[normalize(region)]; ok {
		return e
	}
	return DefaultGeoExtent
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
