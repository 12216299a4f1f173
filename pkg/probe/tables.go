package probe

import "strings"

// DefaultSpecialtyRisk is returned for specialties not in the map.
const DefaultSpecialtyRisk = 2.5

// specialtyRiskMap is the static per-specialty baseline risk (ICD-10
// aligned), used by the risk probe before any training data exists.
// Loaded once, never mutated.
var specialtyRiskMap = map[string]float64{
	// Critical: wrong answer carries immediate death risk.
	"emergency": 5.0, "anesthesiology": 4.8, "toxicology": 4.7,
	"critical_care": 4.9, "cardiology": 4.6, "neurosurgery": 4.8,
	// High: wrong answer risks serious organ damage.
	"nephrology": 4.2, "pulmonology": 4.0, "oncology": 4.3,
	"hematology": 3.8, "infectious_disease": 3.9, "surgery": 4.1,
	"endocrinology": 3.7, "gastroenterology": 3.6,
	// Moderate: wrong answer delays treatment.
	"internal_medicine": 3.2, "neurology": 3.5, "rheumatology": 3.0,
	"pediatrics": 3.8, "obstetrics": 3.9, "urology": 2.8,
	// Lower: informational.
	"dermatology": 2.3, "psychiatry": 2.5, "ophthalmology": 2.2,
	"preventive": 1.8, "rehabilitation": 1.5, "general": 2.0,
}

// SpecialtyRisk looks up the baseline risk for a specialty,
// case-insensitively, defaulting to DefaultSpecialtyRisk.
func SpecialtyRisk(specialty string) float64 {
	if r, ok := specialtyRiskMap[strings.ToLower(specialty)]; ok {
		return r
	}
	return DefaultSpecialtyRisk
}

// KnownViolations maps drugs to the indication patterns they are the
// established first-line answer for. Reference data for reviewers and
// downstream tooling; not consumed by any probe computation.
var KnownViolations = map[string][]string{
	"epinephrine":       {"anaphylaxis_first_line"},
	"nac":               {"acetaminophen_antidote"},
	"naloxone":          {"opioid_reversal"},
	"atropine":          {"bradycardia_treatment"},
	"calcium_gluconate": {"hyperkalemia_first"},
	"tpa":               {"stroke_thrombolytic"},
	"insulin":           {"dka_treatment"},
	"nitroglycerin":     {"angina_treatment"},
}
