// Package audit keeps copies of fetched import documents on disk.
package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

type Auditor struct {
	AuditDir string
}

func NewAuditor(auditDir string) *Auditor {
	return &Auditor{
		AuditDir: auditDir,
	}
}

// SaveSnapshot writes a raw source document under a UUID4 filename.
// Invalid JSON is stored as-is so a failed decode can still be inspected.
func (a *Auditor) SaveSnapshot(raw []byte) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return a.write(raw)
	}
	return a.write(buf.Bytes())
}

// SaveJSON saves the provided data as JSON to a file with UUID4 filename
func (a *Auditor) SaveJSON(data any) (string, error) {
	if err := a.ensureAuditDir(); err != nil {
		return "", fmt.Errorf("failed to ensure audit directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal data to JSON: %w", err)
	}

	return a.write(jsonData)
}

// Snapshots lists saved filenames, oldest first.
func (a *Auditor) Snapshots() ([]string, error) {
	entries, err := os.ReadDir(a.AuditDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	type snapshot struct {
		name    string
		modTime int64
	}
	var files []snapshot
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, snapshot{name: e.Name(), modTime: info.ModTime().UnixNano()})
	}
	sort.SliceStable(files, func(i, j int) bool { return files[i].modTime < files[j].modTime })

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.name)
	}
	return names, nil
}

// Prune keeps the newest keep snapshots and removes the rest.
func (a *Auditor) Prune(keep int) (int, error) {
	names, err := a.Snapshots()
	if err != nil {
		return 0, err
	}
	if keep < 0 || len(names) <= keep {
		return 0, nil
	}

	removed := 0
	for _, name := range names[:len(names)-keep] {
		if err := os.Remove(filepath.Join(a.AuditDir, name)); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", name, err)
		}
		removed++
	}
	return removed, nil
}

func (a *Auditor) write(data []byte) (string, error) {
	filename := fmt.Sprintf("%s.json", uuid.New().String())
	path := filepath.Join(a.AuditDir, filename)

	log.Printf("Saving audit file: %s", path)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write audit file: %w", err)
	}
	return filename, nil
}

// ensureAuditDir creates the audit directory if it doesn't exist
func (a *Auditor) ensureAuditDir() error {
	if _, err := os.Stat(a.AuditDir); os.IsNotExist(err) {
		if err := os.MkdirAll(a.AuditDir, 0755); err != nil {
			return fmt.Errorf("failed to create audit directory: %w", err)
		}
	}
	return nil
}
