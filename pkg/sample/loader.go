package sample

import (
	"bufio"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Generous line limit, clinical answers can run long.
const maxLineBytes = 1024 * 1024

// LoadJSONL reads labeled samples from a JSONL file, one record per line.
// Blank lines are skipped. Each sample is normalized after decoding so the
// entities invariant holds regardless of what the file carries.
func LoadJSONL(path string) ([]*Sample, error) {
	if path == "" {
		return nil, errors.New("path not specified")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening sample file: %s", path)
	}
	defer f.Close()

	var samples []*Sample
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	line := 0
	for scanner.Scan() {
		line++
		b := scanner.Bytes()
		if len(b) == 0 {
			continue
		}
		s := &Sample{}
		if err := json.Unmarshal(b, s); err != nil {
			return nil, errors.Wrapf(err, "error parsing sample on line %d of %s", line, path)
		}
		s.Normalize()
		samples = append(samples, s)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "error reading sample file: %s", path)
	}

	log.Debugf("loaded %d samples from %s", len(samples), path)
	return samples, nil
}
