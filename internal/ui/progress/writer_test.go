package progress

import "testing"

func TestParseGitProgress(t *testing.T) {
	cases := []struct {
		line    string
		percent float64
		detail  string
	}{
		{"Receiving objects:  67% (156/233)", 67, "Receiving objects: 156/233"},
		{"Resolving deltas: 100% (45/45), done.", 100, "Resolving deltas: 45/45"},
		{"Compressing objects:  50% (5/10)", 50, "Compressing objects: 5/10"},
		{"Counting objects: 100% (233/233), done.", 100, "Counting objects: 233/233"},
		{"Cloning into '/tmp/@some-mod'...", -1, ""},
		{"", -1, ""},
	}

	for _, tc := range cases {
		percent, detail := parseGitProgress(tc.line)
		if percent != tc.percent || detail != tc.detail {
			t.Errorf("parseGitProgress(%q) = %v, %q, want %v, %q",
				tc.line, percent, detail, tc.percent, tc.detail)
		}
	}
}

func TestGitProgressWriterWithoutProgram(t *testing.T) {
	w := NewGitProgressWriter(nil)

	line := []byte("Receiving objects:  50% (10/20)")
	n, err := w.Write(line)
	if err != nil || n != len(line) {
		t.Errorf("Write = %d, %v, want %d, nil", n, err, len(line))
	}
}
