// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vault loads bibliographic entries from a directory of markdown
// files with YAML frontmatter and writes check logs back. Writes touch
// only the check_log frontmatter key; every other key and the markdown
// body are preserved.
package vault

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/refcheck/pkg/types"
)

const frontmatterDelim = "---"

// checkLogKey is the frontmatter key owned by the check engine.
const checkLogKey = "check_log"

// Vault is a directory of markdown entry files.
type Vault struct {
	dir     string
	paths   map[string]string // entry id → file path
	entries []types.EntryMetadata
}

// Open scans dir for *.md files and indexes them by entry id. The id is
// the frontmatter id key when present, the filename stem otherwise.
func Open(dir string) (*Vault, error) {
	v := &Vault{dir: dir, paths: make(map[string]string)}
	if _, err := v.load(); err != nil {
		return nil, err
	}
	return v, nil
}

// Entries returns every entry in the vault, sorted by id for stable
// batch ordering. The slice loaded by Open is reused; WriteCheckLog
// invalidates it so the next call reflects the write.
func (v *Vault) Entries() ([]types.EntryMetadata, error) {
	if v.entries != nil {
		return v.entries, nil
	}
	return v.load()
}

func (v *Vault) load() ([]types.EntryMetadata, error) {
	files, err := filepath.Glob(filepath.Join(v.dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("scanning vault directory %s: %w", v.dir, err)
	}

	var entries []types.EntryMetadata
	for _, path := range files {
		entry, err := readEntry(path)
		if err != nil {
			return nil, fmt.Errorf("reading entry %s: %w", path, err)
		}
		v.paths[entry.ID] = path
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	v.entries = entries
	return entries, nil
}

// readEntry parses one markdown file's frontmatter into an entry.
func readEntry(path string) (types.EntryMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.EntryMetadata{}, err
	}

	front, _, ok := splitFrontmatter(data)
	if !ok {
		return types.EntryMetadata{}, fmt.Errorf("no YAML frontmatter")
	}

	var entry types.EntryMetadata
	if err := yaml.Unmarshal(front, &entry); err != nil {
		return types.EntryMetadata{}, fmt.Errorf("parsing frontmatter: %w", err)
	}

	if entry.ID == "" {
		entry.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return entry, nil
}

// WriteCheckLog rewrites the check_log key in the entry's frontmatter,
// preserving all other keys in their original order and the markdown
// body byte for byte.
func (v *Vault) WriteCheckLog(entryID string, log *types.CheckLog) error {
	path, ok := v.paths[entryID]
	if !ok {
		return fmt.Errorf("unknown entry %q", entryID)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	front, body, ok := splitFrontmatter(data)
	if !ok {
		return fmt.Errorf("%s has no YAML frontmatter", path)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(front, &doc); err != nil {
		return fmt.Errorf("parsing frontmatter of %s: %w", path, err)
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("%s frontmatter is not a mapping", path)
	}

	var logNode yaml.Node
	if err := logNode.Encode(log); err != nil {
		return fmt.Errorf("encoding check log: %w", err)
	}
	setMappingKey(doc.Content[0], checkLogKey, &logNode)

	var buf bytes.Buffer
	buf.WriteString(frontmatterDelim + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc.Content[0]); err != nil {
		return fmt.Errorf("encoding frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding frontmatter: %w", err)
	}
	buf.WriteString(frontmatterDelim + "\n")
	buf.Write(body)

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	v.entries = nil
	return nil
}

// setMappingKey replaces the value of key in a mapping node, appending
// the pair when absent.
func setMappingKey(mapping *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			mapping.Content[i+1] = value
			return
		}
	}
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Value: key}
	mapping.Content = append(mapping.Content, keyNode, value)
}

// splitFrontmatter separates a "---" delimited YAML frontmatter block
// from the markdown body. The closing delimiter must be a line of
// exactly three dashes, so longer dash runs (markdown thematic breaks)
// never terminate the block.
func splitFrontmatter(data []byte) (front, body []byte, ok bool) {
	text := string(data)
	if !strings.HasPrefix(text, frontmatterDelim+"\n") {
		return nil, nil, false
	}
	rest := text[len(frontmatterDelim)+1:]

	closer := "\n" + frontmatterDelim + "\n"
	if idx := strings.Index(rest, closer); idx >= 0 {
		return []byte(rest[:idx+1]), []byte(rest[idx+len(closer):]), true
	}
	if strings.HasSuffix(rest, "\n"+frontmatterDelim) {
		return []byte(rest[:len(rest)-len(frontmatterDelim)]), nil, true
	}
	return nil, nil, false
}
