// Package csvurls manages the url-list file feeding batch archiving: a CSV
// of source links with their capture status.
package csvurls

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/arcreach/sfarc/internal/atomicfile"
)

// Statuses tracked per record.
const (
	StatusPending  = "pending"
	StatusArchived = "archived"
	StatusFailed   = "failed"
)

// Record is one row of the url list.
type Record struct {
	URL    string
	Title  string
	Status string
	Saved  string // base filename of the stored capture, when archived
}

var header = []string{"url", "title", "status", "saved"}

// Load reads the url list at path. A missing file is an empty list. Files
// exported from other tools that only carry a url column load fine; absent
// columns default to empty and the status to pending.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open url list: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse url list %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	cols := headerIndex(rows[0])
	start := 0
	if cols != nil {
		start = 1
	} else {
		// Headerless single-column exports: every row is a url.
		cols = map[string]int{"url": 0}
	}

	var records []Record
	for _, row := range rows[start:] {
		rec := Record{
			URL:    field(row, cols, "url"),
			Title:  field(row, cols, "title"),
			Status: field(row, cols, "status"),
			Saved:  field(row, cols, "saved"),
		}
		rec.URL = strings.TrimSpace(rec.URL)
		if rec.URL == "" {
			continue
		}
		if rec.Status == "" {
			rec.Status = StatusPending
		}
		records = append(records, rec)
	}
	return records, nil
}

// headerIndex maps column names to positions when the first row looks like a
// header, or returns nil for headerless files.
func headerIndex(row []string) map[string]int {
	cols := make(map[string]int, len(row))
	for i, cell := range row {
		cols[strings.ToLower(strings.TrimSpace(cell))] = i
	}
	if _, ok := cols["url"]; !ok {
		return nil
	}
	return cols
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Save writes the url list atomically with the canonical header.
func Save(path string, records []Record) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		status := rec.Status
		if status == "" {
			status = StatusPending
		}
		if err := w.Write([]string{rec.URL, rec.Title, status, rec.Saved}); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("encode url list: %w", err)
	}
	return atomicfile.WriteFile(path, buf.Bytes(), 0o644)
}

// Validate rejects entries that cannot be archived: only absolute http(s)
// urls with a host are accepted.
func Validate(raw string) error {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", raw)
	}
	return nil
}

// Canonical normalizes a url for dedup: scheme and host lowercased, default
// ports and trailing slashes dropped, twitter.com folded to x.com.
func Canonical(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	u.Scheme = strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")
	switch u.Scheme {
	case "http":
		host = strings.TrimSuffix(host, ":80")
	case "https":
		host = strings.TrimSuffix(host, ":443")
	}
	if host == "twitter.com" {
		host = "x.com"
	}
	u.Host = host
	u.Path = strings.TrimRight(u.Path, "/")
	u.Fragment = ""
	return u.String()
}

// Merge appends urls to records, skipping duplicates by canonical form.
// It returns the merged list and how many urls were actually added.
func Merge(records []Record, urls []string) ([]Record, int) {
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		seen[Canonical(rec.URL)] = struct{}{}
	}

	added := 0
	for _, raw := range urls {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		key := Canonical(raw)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		records = append(records, Record{URL: raw, Status: StatusPending})
		added++
	}
	return records, added
}

// Pending filters records still waiting for a capture.
func Pending(records []Record) []Record {
	var out []Record
	for _, rec := range records {
		if rec.Status == StatusPending || rec.Status == StatusFailed {
			out = append(out, rec)
		}
	}
	return out
}

// MarkArchived flags the record for url as stored under saved.
func MarkArchived(records []Record, rawURL, saved string) {
	key := Canonical(rawURL)
	for i := range records {
		if Canonical(records[i].URL) == key {
			records[i].Status = StatusArchived
			records[i].Saved = saved
			return
		}
	}
}

// MarkFailed flags the record for url as failed.
func MarkFailed(records []Record, rawURL string) {
	key := Canonical(rawURL)
	for i := range records {
		if Canonical(records[i].URL) == key {
			records[i].Status = StatusFailed
			return
		}
	}
}
