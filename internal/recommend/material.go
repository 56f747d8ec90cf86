package recommend

import (
	"sort"
	"strings"
)

const (
	// HourlyRate is the labor cost per normalized hour, in rupees.
	HourlyRate = 50
	// HandmadePremium is the multiplier applied to reflect artisanal production.
	HandmadePremium = 1.3
	// QualityThresholdHours is the effort level above which the quality bonus applies.
	QualityThresholdHours = 20.0
	// QualityMultiplier is the bonus applied once effort exceeds the threshold.
	QualityMultiplier = 1.15
	// BandLow and BandHigh derive the recommended range from the midpoint price.
	BandLow  = 0.85
	BandHigh = 1.15
	// HoursPerDay converts declared days of work into a nominal workday count.
	HoursPerDay = 8.0
	// FloorBasePrice is the base price used for materials outside the known set.
	FloorBasePrice = 200
)

// materialBasePrices maps a canonical material to its base price in rupees.
// The tables below are fixed at build time; nothing mutates them at runtime.
var materialBasePrices = map[string]int{
	"cotton": 300,
	"silk":   800,
	"wool":   500,
	"jute":   250,
	"linen":  400,
	"khadi":  450,
	"wood":   350,
	"clay":   250,
	"metal":  600,
}

// materialDescriptors maps a canonical material to the phrase used in captions.
// Every descriptor contains the material word so captions always reference it.
var materialDescriptors = map[string]string{
	"cotton": "soft, breathable cotton",
	"silk":   "lustrous silk",
	"wool":   "warm, hand-spun wool",
	"jute":   "earthy, eco-friendly jute",
	"linen":  "elegant linen",
	"khadi":  "authentic hand-spun khadi",
	"wood":   "richly grained wood",
	"clay":   "hand-moulded clay",
	"metal":  "gleaming hand-beaten metal",
}

func normalizeMaterial(material string) string {
	return strings.ToLower(strings.TrimSpace(material))
}

// NormalizeMaterial lowercases and trims a material identifier to the
// canonical form used by the lookup tables and stored on products.
func NormalizeMaterial(material string) string {
	return normalizeMaterial(material)
}

// BasePrice returns the base price for a material, falling back to
// FloorBasePrice when the material is outside the known set.
func BasePrice(material string) int {
	if price, ok := materialBasePrices[normalizeMaterial(material)]; ok {
		return price
	}
	return FloorBasePrice
}

// KnownMaterial reports whether the material resolves to a configured entry.
func KnownMaterial(material string) bool {
	_, ok := materialBasePrices[normalizeMaterial(material)]
	return ok
}

// Materials returns the known material identifiers in sorted order, for
// dropdowns and validation hints.
func Materials() []string {
	out := make([]string, 0, len(materialBasePrices))
	for m := range materialBasePrices {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func descriptorFor(material string) string {
	normalized := normalizeMaterial(material)
	if desc, ok := materialDescriptors[normalized]; ok {
		return desc
	}
	if normalized == "" {
		return "traditional handwoven fibre"
	}
	return "handcrafted " + normalized
}
