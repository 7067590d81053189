package record

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Read decodes one record per line from r. Blank lines are skipped.
// The first malformed line stops decoding with an error that wraps
// ErrMalformed and names the line number.
func Read(r io.Reader) (Dataset, error) {
	var data Dataset
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		rec, err := ParseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		data = append(data, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading records: %w", err)
	}
	return data, nil
}

// Write encodes data to w, one record per line.
func Write(w io.Writer, data Dataset) error {
	bw := bufio.NewWriter(w)
	for _, rec := range data {
		if _, err := bw.WriteString(rec.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// LoadFile reads a dataset from the named file.
func LoadFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()
	data, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// SaveFile writes data to the named file, replacing any existing
// content.
func SaveFile(path string, data Dataset) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dataset file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(f, data)
}
