// Package metrics holds the statistical aggregates shared by probe training
// and the benchmark report. Degenerate inputs (single-class labels, constant
// series) never fail; they yield the documented neutral sentinels so the
// benchmark stays runnable on tiny or adversarial sets.
package metrics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

const (
	// SentinelAUC is reported when ROC-AUC is undefined (single-class labels).
	SentinelAUC = 0.5
	// SentinelAP is reported when average precision is undefined (no positives).
	SentinelAP = 0.0
	// SentinelR is reported when Pearson correlation is undefined.
	SentinelR = 0.0
)

// ROCAUC computes the area under the ROC curve of scores against binary
// labels. Returns SentinelAUC when labels are single-class or empty.
func ROCAUC(scores []float64, labels []int) float64 {
	if len(scores) == 0 || len(scores) != len(labels) {
		return SentinelAUC
	}

	pos := 0
	y := make([]float64, len(scores))
	classes := make([]bool, len(labels))
	for i, l := range labels {
		y[i] = scores[i]
		classes[i] = l == 1
		if l == 1 {
			pos++
		}
	}
	if pos == 0 || pos == len(labels) {
		return SentinelAUC
	}

	stat.SortWeightedLabeled(y, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

// AveragePrecision computes area under the precision-recall curve via the
// running-precision-at-each-positive formulation. Returns SentinelAP when
// there are no positive labels.
func AveragePrecision(scores []float64, labels []int) float64 {
	if len(scores) == 0 || len(scores) != len(labels) {
		return SentinelAP
	}

	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] > scores[idx[b]]
	})

	var tp, sum float64
	for rank, i := range idx {
		if labels[i] == 1 {
			tp++
			sum += tp / float64(rank+1)
		}
	}
	if tp == 0 {
		return SentinelAP
	}
	return sum / tp
}

// F1 computes the F1 score of binary predictions against binary truth.
// Zero-division cases (no predicted or no actual positives) return 0.
func F1(pred, truth []int) float64 {
	var tp, fp, fn float64
	for i := range pred {
		switch {
		case pred[i] == 1 && truth[i] == 1:
			tp++
		case pred[i] == 1 && truth[i] == 0:
			fp++
		case pred[i] == 0 && truth[i] == 1:
			fn++
		}
	}
	if tp == 0 {
		return 0
	}
	precision := tp / (tp + fp)
	recall := tp / (tp + fn)
	return 2 * precision * recall / (precision + recall)
}

// Accuracy is the fraction of predictions matching truth.
func Accuracy(pred, truth []int) float64 {
	if len(pred) == 0 {
		return 0
	}
	correct := 0
	for i := range pred {
		if pred[i] == truth[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(pred))
}

// PearsonR computes the Pearson correlation of two series, with SentinelR
// for constant or degenerate inputs.
func PearsonR(x, y []float64) float64 {
	if len(x) < 2 || len(x) != len(y) {
		return SentinelR
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return SentinelR
	}
	return r
}

// MAE is the mean absolute error of predictions against truth.
func MAE(pred, truth []float64) float64 {
	if len(pred) == 0 {
		return 0
	}
	var sum float64
	for i := range pred {
		sum += math.Abs(pred[i] - truth[i])
	}
	return sum / float64(len(pred))
}

// R2 is the coefficient of determination. Constant truth yields 0.
func R2(pred, truth []float64) float64 {
	if len(pred) == 0 {
		return 0
	}
	mean := stat.Mean(truth, nil)
	var ssRes, ssTot float64
	for i := range pred {
		ssRes += (truth[i] - pred[i]) * (truth[i] - pred[i])
		ssTot += (truth[i] - mean) * (truth[i] - mean)
	}
	if ssTot == 0 {
		return 0
	}
	return 1 - ssRes/ssTot
}

// Mean of a series; 0 for an empty one.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	return stat.Mean(vals, nil)
}

// Quantile returns the p-th empirical quantile of vals (p in [0,1]).
func Quantile(p float64, vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}
