package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"
)

// Helpers for hooks that read-modify-write editor settings files. Missing
// or malformed files are treated as an empty document; the write side
// always produces a well-formed one.

// readJSONC parses a JSONC settings file into a hujson AST, preserving
// comments. Absent or unparsable content yields an empty object.
func readJSONC(path string) *hujson.Value {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		data = []byte("{}")
	}
	root, err := hujson.Parse(data)
	if err != nil {
		root, _ = hujson.Parse([]byte("{}"))
	}
	return &root
}

// jsoncSet sets <key>.<entry> to the raw JSON value, creating the
// top-level key object when needed. Setting an existing entry replaces it.
func jsoncSet(root *hujson.Value, key, entry, valueJSON string) error {
	topPtr := "/" + jsonPointerEscape(key)
	if root.Find(topPtr) == nil {
		patch := fmt.Sprintf(`[{"op":"add","path":%q,"value":{}}]`, topPtr)
		if err := root.Patch([]byte(patch)); err != nil {
			return fmt.Errorf("creating settings key %q: %w", key, err)
		}
	}

	entryPtr := topPtr + "/" + jsonPointerEscape(entry)
	op := "add"
	if root.Find(entryPtr) != nil {
		op = "replace"
	}
	patch := fmt.Sprintf(`[{"op":%q,"path":%q,"value":%s}]`, op, entryPtr, valueJSON)
	if err := root.Patch([]byte(patch)); err != nil {
		return fmt.Errorf("writing settings entry %q: %w", entry, err)
	}
	return nil
}

// jsoncRemove deletes <key>.<entry>. Removing an absent entry is a no-op.
func jsoncRemove(root *hujson.Value, key, entry string) error {
	entryPtr := "/" + jsonPointerEscape(key) + "/" + jsonPointerEscape(entry)
	if root.Find(entryPtr) == nil {
		return nil
	}
	patch := fmt.Sprintf(`[{"op":"remove","path":%q}]`, entryPtr)
	if err := root.Patch([]byte(patch)); err != nil {
		return fmt.Errorf("removing settings entry %q: %w", entry, err)
	}
	return nil
}

// writeJSONC formats the AST and writes it atomically, creating parent
// directories.
func writeJSONC(path string, root *hujson.Value) error {
	root.Format()
	return writeFileAtomic(path, root.Pack())
}

// writeFileAtomic writes content via a temp file and rename, creating
// parent directories.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// jsonPointerEscape escapes a string for use as a JSON Pointer token (RFC 6901).
func jsonPointerEscape(s string) string {
	result := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			result = append(result, '~', '0')
		case '/':
			result = append(result, '~', '1')
		default:
			result = append(result, s[i])
		}
	}
	return string(result)
}

// projectRelative returns path relative to root with forward slashes, or
// the path unchanged when it lies outside the root.
func projectRelative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(rel)
}
