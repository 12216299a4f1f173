package sample

import (
	"golang.org/x/exp/rand"
)

type demoRecord struct {
	text      string
	entities  []string
	label     int
	severity  float64
	specialty string
}

// Built-in USMLE-style records: 10 correct answers and 10 hallucinated ones.
// Fully offline substitute for an external labeled corpus.
var demoRecords = []demoRecord{
	// Correct answers (label=0, severity=0).
	{
		text:      "Q: What is the first-line treatment for anaphylaxis?\nA: Intramuscular epinephrine (0.3-0.5mg of 1:1000) is the first-line treatment for anaphylaxis.",
		entities:  []string{"anaphylaxis", "epinephrine"},
		specialty: "emergency",
	},
	{
		text:      "Q: What is the antidote for acetaminophen overdose?\nA: N-Acetylcysteine (NAC) is the specific antidote for acetaminophen overdose, ideally given within 8 hours.",
		entities:  []string{"acetaminophen", "nac"},
		specialty: "toxicology",
	},
	{
		text:      "Q: How should you manage acute STEMI?\nA: Immediate PCI (percutaneous coronary intervention) within 90 minutes, with dual antiplatelet therapy (aspirin + P2Y12 inhibitor), anticoagulation, and hemodynamic support as needed.",
		entities:  []string{"stemi", "aspirin", "clopidogrel"},
		specialty: "cardiology",
	},
	{
		text:      "Q: Target SpO2 for COPD patients on oxygen?\nA: Target SpO2 88-92% to avoid suppressing hypoxic respiratory drive. High-flow oxygen targeting 95-100% can cause hypercapnic respiratory failure.",
		entities:  []string{"copd", "spo2"},
		specialty: "pulmonology",
	},
	{
		text:      "Q: First step in hyperkalemia with ECG changes?\nA: IV calcium gluconate to stabilize the cardiac membrane, followed by insulin+glucose, sodium bicarbonate, and kayexalate.",
		entities:  []string{"hyperkalemia", "calcium_gluconate", "insulin"},
		specialty: "nephrology",
	},
	{
		text:      "Q: Treatment for diabetic ketoacidosis (DKA)?\nA: IV fluids (normal saline), IV insulin drip, potassium replacement, and monitoring of anion gap closure.",
		entities:  []string{"insulin", "potassium", "sodium"},
		specialty: "endocrinology",
	},
	{
		text:      "Q: What is the first-line treatment for community-acquired pneumonia (CAP) in outpatients?\nA: Amoxicillin or doxycycline for previously healthy adults; respiratory fluoroquinolone for comorbidities.",
		entities:  []string{"pneumonia"},
		specialty: "pulmonology",
	},
	{
		text:      "Q: Management of suspected bacterial meningitis?\nA: Empiric IV antibiotics (ceftriaxone + vancomycin) immediately, with dexamethasone before or with first antibiotic dose. Do not delay for imaging.",
		entities:  []string{"meningitis"},
		specialty: "infectious_disease",
	},
	{
		text:      "Q: Initial management of acute ischemic stroke?\nA: IV alteplase (tPA) within 4.5 hours of symptom onset if no contraindications, or mechanical thrombectomy for large vessel occlusion within 24 hours.",
		entities:  []string{"tpa", "alteplase"},
		specialty: "neurology",
	},
	{
		text:      "Q: What is the reversal agent for heparin overdose?\nA: Protamine sulfate is the specific reversal agent for unfractionated heparin.",
		entities:  []string{"heparin"},
		specialty: "hematology",
	},

	// Hallucinated answers (label=1, severity varies).
	{
		text:      "Q: What is the first-line drug for anaphylaxis?\nA: Give diphenhydramine (Benadryl) and IV steroids first. If the patient doesn't respond within 15-20 minutes, then consider epinephrine.",
		entities:  []string{"anaphylaxis", "diphenhydramine", "steroids", "epinephrine"},
		label:     1,
		severity:  24.0,
		specialty: "emergency",
	},
	{
		text:      "Q: Antidote for acetaminophen overdose?\nA: Activated charcoal is the specific antidote for acetaminophen toxicity. Give 1g/kg orally.",
		entities:  []string{"acetaminophen", "charcoal"},
		label:     1,
		severity:  22.0,
		specialty: "toxicology",
	},
	{
		text:      "Q: How do you treat acute STEMI?\nA: Give antacids and observe. This is likely GERD presenting as chest pain. Discharge with PPI prescription.",
		entities:  []string{"stemi", "antacids", "gerd"},
		label:     1,
		severity:  25.0,
		specialty: "cardiology",
	},
	{
		text:      "Q: COPD patient SpO2 84% — what oxygen target?\nA: Normalize SpO2 to 95-100% with high-flow oxygen immediately. All patients deserve normal oxygen saturation.",
		entities:  []string{"copd", "spo2"},
		label:     1,
		severity:  20.0,
		specialty: "pulmonology",
	},
	{
		text:      "Q: Hyperkalemia K+ 7.2 with ECG changes — first step?\nA: Start furosemide IV first to remove potassium renally. This is the fastest way to lower serum potassium.",
		entities:  []string{"hyperkalemia", "furosemide", "potassium"},
		label:     1,
		severity:  21.0,
		specialty: "nephrology",
	},
	{
		text:      "Q: Treatment for DKA?\nA: Start oral metformin immediately. DKA is caused by insulin resistance so oral hypoglycemics are first-line.",
		entities:  []string{"metformin", "insulin"},
		label:     1,
		severity:  23.0,
		specialty: "endocrinology",
	},
	{
		text:      "Q: Management of suspected meningitis?\nA: First obtain a CT scan of the head, then lumbar puncture. Only start antibiotics after CSF culture results are back in 48-72 hours.",
		entities:  []string{"meningitis"},
		label:     1,
		severity:  22.0,
		specialty: "infectious_disease",
	},
	{
		text:      "Q: Acute ischemic stroke management?\nA: Give aspirin 325mg and observe for 24 hours. tPA is too risky and should be avoided in most patients.",
		entities:  []string{"aspirin", "tpa"},
		label:     1,
		severity:  19.0,
		specialty: "neurology",
	},
	{
		text:      "Q: Opioid overdose with respiratory depression?\nA: Start IV fluids and observe. Naloxone should only be given if the patient has a confirmed prescription for opioids.",
		entities:  []string{"naloxone"},
		label:     1,
		severity:  24.0,
		specialty: "emergency",
	},
	{
		text:      "Q: Patient with PE (pulmonary embolism) — treatment?\nA: Start oral warfarin only. Heparin bridge is no longer recommended. Reassess INR in one week.",
		entities:  []string{"warfarin", "heparin"},
		label:     1,
		severity:  18.0,
		specialty: "pulmonology",
	},
	{
		text:      "Q: Sepsis management — what are the first steps?\nA: Start broad-spectrum antibiotics within 6-8 hours. There is no rush for fluid resuscitation.",
		entities:  []string{"sepsis"},
		label:     1,
		severity:  20.0,
		specialty: "critical_care",
	},
}

// LoadDemo resamples the built-in corpus into n samples, balanced 50/50
// clean vs hallucinated and shuffled. Deterministic for a given seed.
func LoadDemo(n int, seed uint64) []*Sample {
	rng := rand.New(rand.NewSource(seed))

	var correct, hallucinated []demoRecord
	for _, r := range demoRecords {
		if r.label == 0 {
			correct = append(correct, r)
		} else {
			hallucinated = append(hallucinated, r)
		}
	}

	samples := make([]*Sample, 0, n)
	nEach := n / 2

	for i := 0; i < nEach; i++ {
		samples = append(samples, correct[rng.Intn(len(correct))].toSample())
	}
	for i := 0; i < nEach; i++ {
		samples = append(samples, hallucinated[rng.Intn(len(hallucinated))].toSample())
	}

	rng.Shuffle(len(samples), func(i, j int) {
		samples[i], samples[j] = samples[j], samples[i]
	})
	return samples
}

func (r demoRecord) toSample() *Sample {
	entities := make([]string, len(r.entities))
	copy(entities, r.entities)
	return New(r.text, entities, r.label, r.severity, r.specialty)
}
