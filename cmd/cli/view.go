package main

import (
	"fmt"
	"strings"

	"github.com/Roxrite0509/medguard/pkg/data"
	"github.com/Roxrite0509/medguard/pkg/qhi"
)

const scoreBarLen = 25

var gateIcons = map[qhi.Gate]string{
	qhi.GateAutoUse: "✅",
	qhi.GateReview:  "⚠️",
	qhi.GateBlock:   "🚫",
}

func renderScore(s *qhi.Score) string {
	filled := int(s.QHI / qhi.QHIMax * scoreBarLen)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", scoreBarLen-filled)

	icon, ok := gateIcons[s.Gate]
	if !ok {
		icon = "?"
	}

	var b strings.Builder
	line := strings.Repeat("=", 60)
	fmt.Fprintf(&b, "\n%s\n", line)
	fmt.Fprintf(&b, "  QHI Score : %.2f / 25   [%s]\n", s.QHI, bar)
	fmt.Fprintf(&b, "  Gate      : %s  %s\n", icon, s.Gate)
	fmt.Fprintf(&b, "  ├─ Uncertainty  : %.4f\n", s.Uncertainty)
	fmt.Fprintf(&b, "  ├─ Risk Score   : %.4f\n", s.RiskScore)
	fmt.Fprintf(&b, "  └─ Violation    : %.4f\n", s.ViolationProb)
	fmt.Fprintf(&b, "  Inference : %.2f ms  (CPU)\n", s.InferenceMS)
	fmt.Fprintf(&b, "%s", line)
	return b.String()
}

func renderTrain(m *qhi.TrainMetrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "training metrics (%d samples: %d hallucinated, %d clean)\n",
		m.NTrain, m.NHallucinated, m.NClean)
	fmt.Fprintf(&b, "  uncertainty : auc_roc=%.4f accuracy=%.4f\n",
		m.Uncertainty.AUCROC, m.Uncertainty.Accuracy)
	fmt.Fprintf(&b, "  risk        : mae=%.4f r2=%.4f\n", m.Risk.MAE, m.Risk.R2)
	fmt.Fprintf(&b, "  violation   : auc_roc=%.4f sparsity=%.4f\n",
		m.Violation.AUCROC, m.Violation.Sparsity)
	return b.String()
}

func renderBenchmark(m *qhi.BenchmarkMetrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "benchmark metrics (%d samples)\n", m.NTest)
	fmt.Fprintf(&b, "  auc_roc        : %.4f\n", m.AUCROC)
	fmt.Fprintf(&b, "  avg_precision  : %.4f\n", m.AvgPrecision)
	fmt.Fprintf(&b, "  f1_score       : %.4f\n", m.F1Score)
	fmt.Fprintf(&b, "  pearson_r      : %.4f\n", m.PearsonR)
	fmt.Fprintf(&b, "  avg_latency_ms : %.3f\n", m.AvgLatencyMS)
	fmt.Fprintf(&b, "  p95_latency_ms : %.3f\n", m.P95LatencyMS)
	fmt.Fprintf(&b, "  gates          : ")
	for i, g := range []qhi.Gate{qhi.GateAutoUse, qhi.GateReview, qhi.GateBlock} {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%s=%.1f%%", g, m.GateDistribution[g])
	}
	b.WriteString("\n")
	return b.String()
}

func renderRuns(runs []*data.RunRecord) string {
	if len(runs) == 0 {
		return "no runs recorded\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %-22s %7s %6s %8s %8s %8s %9s\n",
		"id", "created", "train", "test", "auc", "f1", "pearson", "p95 ms")
	for _, r := range runs {
		fmt.Fprintf(&b, "%-4d %-22s %7d %6d %8.4f %8.4f %8.4f %9.3f\n",
			r.ID, r.CreatedAt, r.NTrain, r.NTest, r.AUCROC, r.F1Score,
			r.PearsonR, r.P95LatencyMS)
	}
	return b.String()
}
