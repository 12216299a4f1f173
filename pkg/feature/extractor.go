package feature

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
	"strings"
	"sync"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Roxrite0509/medguard/pkg/sample"
)

const (
	// Dim is the feature vector width shared by every probe.
	Dim = 256

	// Guards against a degenerate all-zero draw.
	normEpsilon = 1e-8

	textLengthScale  = 500.0
	entityCountScale = 10.0
)

// Vectorizer turns a bag of entities plus the raw text into a fixed-width
// feature vector. The hash-seeded Extractor below is a stand-in for real
// hidden-state extraction; a production embedding backend plugs in here.
type Vectorizer interface {
	Vectorize(entities []string, text string) []float64
}

// Extractor derives a deterministic pseudo hidden-state vector per entity:
// SHA-256 of the lowercased entity seeds a normal draw, unit-normalized.
// Identical entity strings always yield identical vectors, across instances.
type Extractor struct {
	seed uint64

	mu    sync.RWMutex
	cache map[string][]float64
}

func NewExtractor(seed uint64) *Extractor {
	return &Extractor{
		seed:  seed,
		cache: make(map[string][]float64),
	}
}

// Extract builds the feature vector for a single sample: mean of the
// per-entity vectors, with slot 0 carrying a saturating text-length signal
// and slot 1 a saturating entity-count signal.
func (e *Extractor) Extract(s *sample.Sample) []float64 {
	return e.Vectorize(s.Entities, s.Text)
}

// ExtractBatch produces one row per sample, identical to per-sample Extract.
func (e *Extractor) ExtractBatch(samples []*sample.Sample) [][]float64 {
	rows := make([][]float64, len(samples))
	for i, s := range samples {
		rows[i] = e.Extract(s)
	}
	return rows
}

// Vectorize implements Vectorizer.
func (e *Extractor) Vectorize(entities []string, text string) []float64 {
	if len(entities) == 0 {
		// Unreachable for normalized samples, kept as a defensive path.
		return e.noise()
	}

	vec := make([]float64, Dim)
	for _, ent := range entities {
		floats.Add(vec, e.entityVector(ent))
	}
	floats.Scale(1/float64(len(entities)), vec)

	vec[0] = math.Tanh(float64(len(text)) / textLengthScale)
	vec[1] = math.Tanh(float64(len(entities)) / entityCountScale)
	return vec
}

// entityVector returns the cached vector for an entity, computing and
// memoizing it on first use. Concurrent writers racing on the same key are
// benign: every writer computes the identical value.
func (e *Extractor) entityVector(entity string) []float64 {
	key := strings.ToLower(entity)

	e.mu.RLock()
	v, ok := e.cache[key]
	e.mu.RUnlock()
	if ok {
		return v
	}

	v = hashVector(key)

	e.mu.Lock()
	e.cache[key] = v
	e.mu.Unlock()
	return v
}

func hashVector(entity string) []float64 {
	h := sha256.Sum256([]byte(entity))
	seed := binary.BigEndian.Uint32(h[:4])

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(uint64(seed))}
	v := make([]float64, Dim)
	for i := range v {
		v[i] = normal.Rand()
	}

	floats.Scale(1/(floats.Norm(v, 2)+normEpsilon), v)
	return v
}

// noise returns a low-magnitude vector for the no-entities case.
func (e *Extractor) noise() []float64 {
	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(e.seed)}
	v := make([]float64, Dim)
	for i := range v {
		v[i] = normal.Rand() * 0.01
	}
	return v
}

// CacheSize reports the number of memoized entity vectors.
func (e *Extractor) CacheSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}
