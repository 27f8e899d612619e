package sample

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// WriteJSONL writes one dataset record per line.
func WriteJSONL(w io.Writer, samples []Sample) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i, s := range samples {
		if err := enc.Encode(s.ToRecord()); err != nil {
			return fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return bw.Flush()
}

// ReadJSONL reads dataset records back into samples, skipping blank
// lines. Malformed lines abort with a line-numbered error.
func ReadJSONL(r io.Reader) ([]Sample, error) {
	var samples []Sample
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		samples = append(samples, Sample{Output: rec.Output, Meta: rec.Meta})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return samples, nil
}

// LoadJSONL reads a JSONL dataset file.
func LoadJSONL(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSONL(f)
}

// SaveJSONL writes samples to a JSONL dataset file, replacing it.
func SaveJSONL(path string, samples []Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteJSONL(f, samples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
