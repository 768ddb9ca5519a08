package cache

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DiskTier stores one columnar CSV file per fingerprint. Metadata rides on
// "#"-prefixed header lines before the CSV content; the filename is derived
// solely from the fingerprint, so concurrent writers of the same entry
// overwrite each other harmlessly.
type DiskTier struct {
	dir string
}

// NewDiskTier ensures the cache directory exists.
func NewDiskTier(dir string) (*DiskTier, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &DiskTier{dir: dir}, nil
}

func (d *DiskTier) Name() string { return "disk" }

func (d *DiskTier) path(fingerprint string) string {
	return filepath.Join(d.dir, fingerprint+".csv")
}

func (d *DiskTier) Get(_ context.Context, fingerprint string) (*Entry, error) {
	f, err := os.Open(d.path(fingerprint))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("open cache file: %w", err)
	}
	defer f.Close()

	e := &Entry{Fingerprint: fingerprint, Meta: map[string]string{}}

	br := bufio.NewReader(f)
	for {
		peek, err := br.Peek(1)
		if err != nil || peek[0] != '#' {
			break
		}
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("read cache header: %w", err)
		}
		parseMetaLine(strings.TrimSpace(strings.TrimPrefix(line, "#")), e)
	}

	records, err := csv.NewReader(br).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse cache file: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("cache file %s has no data rows", fingerprint)
	}

	header := records[0]
	e.Columns = make([]Column, len(header))
	for i, name := range header {
		e.Columns[i] = Column{Name: name, Values: make([]float64, 0, len(records)-1)}
	}
	for _, row := range records[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("cache file %s has a ragged row", fingerprint)
		}
		for i, cell := range row {
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("cache file %s: %w", fingerprint, err)
			}
			e.Columns[i].Values = append(e.Columns[i].Values, v)
		}
	}
	return e, nil
}

func (d *DiskTier) Put(_ context.Context, e *Entry) error {
	if len(e.Columns) == 0 {
		return fmt.Errorf("refusing to cache entry %s with no columns", e.Fingerprint)
	}

	// Write to a temp file first so a crashed writer never leaves a
	// truncated entry behind; rename is atomic within the directory.
	tmp, err := os.CreateTemp(d.dir, e.Fingerprint+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	fmt.Fprintf(w, "# kind=%s\n", e.Kind)
	fmt.Fprintf(w, "# annual_yield=%s\n", strconv.FormatFloat(e.AnnualYield, 'g', -1, 64))
	for k, v := range e.Meta {
		fmt.Fprintf(w, "# meta.%s=%s\n", k, v)
	}

	cw := csv.NewWriter(w)
	header := make([]string, len(e.Columns))
	rows := len(e.Columns[0].Values)
	for i, c := range e.Columns {
		header[i] = c.Name
		if len(c.Values) != rows {
			return fmt.Errorf("entry %s has ragged columns", e.Fingerprint)
		}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write cache header: %w", err)
	}

	row := make([]string, len(e.Columns))
	for r := 0; r < rows; r++ {
		for i, c := range e.Columns {
			row[i] = strconv.FormatFloat(c.Values[r], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write cache row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush cache file: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache file: %w", err)
	}

	if err := os.Rename(tmp.Name(), d.path(e.Fingerprint)); err != nil {
		return fmt.Errorf("publish cache file: %w", err)
	}
	return nil
}

func parseMetaLine(line string, e *Entry) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return
	}
	switch {
	case key == "kind":
		e.Kind = value
	case key == "annual_yield":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			e.AnnualYield = v
		}
	case strings.HasPrefix(key, "meta."):
		e.Meta[strings.TrimPrefix(key, "meta.")] = value
	}
}
