package harness

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// GoldenManager handles golden file operations.
type GoldenManager struct {
	baseDir string
	tmpDir  string
	update  bool
}

// NewGoldenManager creates a golden file manager. Occurrences of tmpDir in
// compared output are replaced with a placeholder.
func NewGoldenManager(baseDir, tmpDir string) *GoldenManager {
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	return &GoldenManager{
		baseDir: baseDir,
		tmpDir:  tmpDir,
		update:  update,
	}
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// Normalize removes dynamic content (temp paths, colors, trailing spaces).
func (g *GoldenManager) Normalize(output string) string {
	output = ansiEscape.ReplaceAllString(output, "")
	if g.tmpDir != "" {
		output = strings.ReplaceAll(output, g.tmpDir, "$TMP")
	}

	lines := strings.Split(output, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// Compare compares output against golden file.
func (g *GoldenManager) Compare(t *testing.T, name string, actual string) {
	t.Helper()

	if g.baseDir == "" {
		t.Skip("golden directory not configured")
		return
	}

	goldenPath := filepath.Join(g.baseDir, name+".golden")
	normalized := g.Normalize(actual)

	if g.update {
		g.write(t, goldenPath, normalized)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nActual output:\n%s", goldenPath, err, normalized)
	}

	if string(expected) != normalized {
		t.Errorf("output mismatch for %s\n\nExpected:\n%s\n\nActual:\n%s",
			name, string(expected), normalized)
	}
}

func (g *GoldenManager) write(t *testing.T, goldenPath, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(goldenPath), 0755); err != nil {
		t.Fatalf("failed to create golden dir: %v", err)
	}
	if err := os.WriteFile(goldenPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write golden file: %v", err)
	}
	t.Logf("Updated golden file: %s", goldenPath)
}

// IsUpdateMode returns true if golden files should be updated.
func (g *GoldenManager) IsUpdateMode() bool {
	return g.update
}
