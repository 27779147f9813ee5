package console

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/assert"
)

// UpdateSnapshotsEnv rewrites golden files instead of comparing them when
// set to a non-empty value.
const UpdateSnapshotsEnv = "UPDATE_SNAPSHOTS"

// SnapshotDir is where golden files live, relative to the test's package.
const SnapshotDir = "testdata/snapshots"

// AssertSnapshot compares the capture with SnapshotDir/{name}.txt, the
// output without escapes, and SnapshotDir/{name}.raw.txt, the output as
// written. A mismatch fails t with a unified diff.
func (c *Capture) AssertSnapshot(t testing.TB, name string) bool {
	t.Helper()
	plain := checkSnapshot(t, filepath.Join(SnapshotDir, name+".txt"), c.PlainText()+"\n")
	raw := checkSnapshot(t, filepath.Join(SnapshotDir, name+".raw.txt"), c.RawText()+"\n")
	return plain && raw
}

// checkSnapshot compares got with the golden file at path. A missing file
// is written and reported, so a new snapshot can be inspected and kept.
func checkSnapshot(t testing.TB, path, got string) bool {
	t.Helper()
	got = strings.ReplaceAll(got, "\r\n", "\n")

	if os.Getenv(UpdateSnapshotsEnv) != "" {
		if err := writeSnapshot(path, got); err != nil {
			t.Errorf("failed to update snapshot %s: %v", path, err)
			return false
		}
		t.Logf("updated snapshot %s", path)
		return true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if werr := writeSnapshot(path, got); werr != nil {
			t.Errorf("snapshot %s is missing and could not be created: %v", path, werr)
			return false
		}
		t.Errorf("snapshot %s did not exist; created it from the current output, check it and re-run", path)
		return false
	}

	want := strings.ReplaceAll(string(data), "\r\n", "\n")
	if want == got {
		return true
	}
	diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: path,
		ToFile:   "captured",
		Context:  3,
	})
	t.Errorf("output does not match snapshot %s (set %s=1 to update):\n%s", path, UpdateSnapshotsEnv, diff)
	return false
}

func writeSnapshot(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}

// Matches reports whether the plain output matches the regular expression
// pattern. An invalid pattern never matches.
func (c *Capture) Matches(pattern string) bool {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(c.PlainText())
}

// ContainsAll reports whether the plain output contains every one of ss.
func (c *Capture) ContainsAll(ss ...string) bool {
	text := c.PlainText()
	for _, s := range ss {
		if !strings.Contains(text, s) {
			return false
		}
	}
	return true
}

// AssertLineCount fails t unless exactly n lines were captured.
func (c *Capture) AssertLineCount(t testing.TB, n int) bool {
	t.Helper()
	return assert.Len(t, c.Lines(), n, "captured lines:\n%s", c.PlainText())
}
