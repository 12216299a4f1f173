package sample

import (
	"strings"
)

const (
	// SentinelEntity is assigned when no vocabulary term matches the text.
	SentinelEntity = "general_medical"

	entityCutset = ".,;:!?()\"'"
)

// medicalTerms is the closed vocabulary used for fallback entity extraction.
// Stand-in for a real clinical NER pass.
var medicalTerms = map[string]bool{
	"stemi": true, "nstemi": true, "copd": true, "gerd": true, "dvt": true,
	"pe": true, "cad": true, "chf": true, "acs": true, "mi": true,
	"tia": true, "cva": true, "ards": true, "dic": true, "aki": true,
	"ckd": true, "sepsis": true, "anaphylaxis": true, "hyperkalemia": true,
	"hyponatremia": true, "pneumonia": true, "meningitis": true,
	"appendicitis": true, "pancreatitis": true,
	"epinephrine": true, "morphine": true, "aspirin": true, "heparin": true,
	"warfarin": true, "metformin": true, "insulin": true, "lisinopril": true,
	"amiodarone": true, "acetaminophen": true, "naloxone": true,
	"atropine": true, "dopamine": true, "norepinephrine": true,
	"nitroglycerin": true, "furosemide": true, "mannitol": true,
	"nac": true, "tpa": true, "alteplase": true, "clopidogrel": true,
	"enoxaparin": true,
	"spo2": true, "ecg": true, "ekg": true, "ct": true, "mri": true,
	"cbc": true, "bmp": true, "abg": true, "troponin": true, "bnp": true,
	"creatinine": true, "potassium": true, "sodium": true,
	"antacids": true, "charcoal": true, "diphenhydramine": true,
	"steroids": true,
}

// Sample is a single clinical Q&A record to be scored.
// TrueLabel and TrueSeverity carry ground truth for training and benchmarks.
type Sample struct {
	Text         string   `json:"text"`
	Entities     []string `json:"entities"`
	TrueLabel    int      `json:"true_label"`
	TrueSeverity float64  `json:"true_severity"`
	Specialty    string   `json:"specialty"`
	ModelName    string   `json:"model_name,omitempty"`
}

// New creates a sample, deriving entities from the text when none are given.
// The returned sample always has at least one entity.
func New(text string, entities []string, label int, severity float64, specialty string) *Sample {
	s := &Sample{
		Text:         text,
		Entities:     entities,
		TrueLabel:    label,
		TrueSeverity: severity,
		Specialty:    specialty,
	}
	s.Normalize()
	return s
}

// Normalize restores the never-empty-entities invariant, e.g. after
// decoding a sample from JSON.
func (s *Sample) Normalize() {
	if len(s.Entities) == 0 {
		s.Entities = ExtractEntities(s.Text)
	}
	if s.Specialty == "" {
		s.Specialty = "general"
	}
}

// ExtractEntities matches lowercased, punctuation-trimmed words against the
// closed medical vocabulary. Returns the sentinel entity when nothing matches.
func ExtractEntities(text string) []string {
	var found []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, entityCutset)
		if medicalTerms[w] {
			found = append(found, w)
		}
	}
	if len(found) == 0 {
		return []string{SentinelEntity}
	}
	return found
}
