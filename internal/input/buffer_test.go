package input

import (
	"math/rand/v2"
	"testing"
)

func filled(s string) *Buffer {
	b := NewBuffer()
	b.Replace(0, 0, s)
	return b
}

func TestBuffer_Replace(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end int
		text       string
		want       string
	}{
		{"insert into empty", "", 0, 0, "a", "a"},
		{"insert at start", "bc", 0, 0, "a", "abc"},
		{"insert in middle", "ac", 1, 1, "b", "abc"},
		{"append at end", "ab", 2, 2, "c", "abc"},
		{"replace range", "hello", 1, 4, "ipp", "hippo"},
		{"reversed range", "hello", 4, 1, "ipp", "hippo"},
		{"delete range", "hello", 0, 5, "", ""},
		{"stale index past end appends", "ab", 7, 7, "c", "abc"},
		{"negative clamps to start", "bc", -3, -3, "a", "abc"},
		{"multibyte", "héllo", 1, 2, "e", "hello"},
	}

	for _, tt := range tests {
		b := filled(tt.initial)
		b.Replace(tt.start, tt.end, tt.text)
		if got := b.String(); got != tt.want {
			t.Errorf("%s: Replace(%d, %d, %q) on %q = %q, want %q",
				tt.name, tt.start, tt.end, tt.text, tt.initial, got, tt.want)
		}
	}
}

func TestBuffer_DeleteBackward(t *testing.T) {
	tests := []struct {
		initial string
		index   int
		ok      bool
		want    string
	}{
		{"abc", 3, true, "ab"},
		{"abc", 1, true, "bc"},
		{"abc", 0, false, "abc"},
		{"abc", -1, false, "abc"},
		{"abc", 4, false, "abc"},
		{"", 0, false, ""},
		{"", 1, false, ""},
	}

	for _, tt := range tests {
		b := filled(tt.initial)
		ok := b.DeleteBackward(tt.index)
		if ok != tt.ok {
			t.Errorf("DeleteBackward(%d) on %q = %v, want %v", tt.index, tt.initial, ok, tt.ok)
		}
		if got := b.String(); got != tt.want {
			t.Errorf("DeleteBackward(%d) on %q left %q, want %q", tt.index, tt.initial, got, tt.want)
		}
	}
}

func TestBuffer_DeleteForward(t *testing.T) {
	tests := []struct {
		initial string
		index   int
		ok      bool
		want    string
	}{
		{"abc", 0, true, "bc"},
		{"abc", 2, true, "ab"},
		{"abc", 3, false, "abc"},
		{"abc", -1, false, "abc"},
		{"", 0, false, ""},
	}

	for _, tt := range tests {
		b := filled(tt.initial)
		ok := b.DeleteForward(tt.index)
		if ok != tt.ok {
			t.Errorf("DeleteForward(%d) on %q = %v, want %v", tt.index, tt.initial, ok, tt.ok)
		}
		if got := b.String(); got != tt.want {
			t.Errorf("DeleteForward(%d) on %q left %q, want %q", tt.index, tt.initial, got, tt.want)
		}
	}
}

func TestBuffer_DeleteRange(t *testing.T) {
	b := filled("abcdefg")
	if !b.DeleteRange(6, 2) {
		t.Fatal("DeleteRange(6, 2) rejected")
	}
	if got := b.String(); got != "abg" {
		t.Errorf("after DeleteRange(6, 2) = %q, want %q", got, "abg")
	}

	for _, r := range [][2]int{{1, 1}, {-1, 2}, {0, 4}} {
		if b.DeleteRange(r[0], r[1]) {
			t.Errorf("DeleteRange(%d, %d) should be rejected", r[0], r[1])
		}
	}
	if got := b.String(); got != "abg" {
		t.Errorf("rejected DeleteRange changed buffer to %q", got)
	}
}

func TestBuffer_InsertText(t *testing.T) {
	b := filled("ac")
	if !b.InsertText(1, "b") {
		t.Fatal("InsertText(1) rejected")
	}
	if !b.InsertSpace(3) {
		t.Fatal("InsertSpace(3) rejected")
	}
	if got := b.String(); got != "abc " {
		t.Errorf("buffer = %q, want %q", got, "abc ")
	}

	if b.InsertText(5, "x") || b.InsertText(-1, "x") || b.InsertSpace(9) {
		t.Error("out of range inserts should be rejected")
	}
	if got := b.String(); got != "abc " {
		t.Errorf("rejected inserts changed buffer to %q", got)
	}
}

func TestBuffer_CommitTwice(t *testing.T) {
	b := filled("echo hi")
	if got := b.Commit(); got != "echo hi" {
		t.Errorf("Commit() = %q, want %q", got, "echo hi")
	}
	if got := b.Commit(); got != "" {
		t.Errorf("second Commit() = %q, want empty", got)
	}
	if b.Len() != 0 {
		t.Errorf("Len() = %d after commits, want 0", b.Len())
	}
}

func TestBuffer_Slice(t *testing.T) {
	b := filled("echo hi")
	if got := b.Slice(7, 4); got != " hi" {
		t.Errorf("Slice(7, 4) = %q, want %q", got, " hi")
	}
	if got := b.Slice(-2, 99); got != "echo hi" {
		t.Errorf("Slice(-2, 99) = %q, want %q", got, "echo hi")
	}
}

// model is a plain string implementation of the buffer operations.
type model []rune

func (m model) replace(start, end int, text string) model {
	lo, hi := min(start, end), max(start, end)
	out := append(model{}, m[:lo]...)
	out = append(out, []rune(text)...)
	return append(out, m[hi:]...)
}

func TestBuffer_MatchesModel(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []rune("ab cdé✓")

	for run := 0; run < 200; run++ {
		b := NewBuffer()
		var m model

		for step := 0; step < 50; step++ {
			n := len(m)
			switch rng.IntN(4) {
			case 0:
				start, end := rng.IntN(n+1), rng.IntN(n+1)
				text := string(alphabet[rng.IntN(len(alphabet))])
				b.Replace(start, end, text)
				m = m.replace(start, end, text)
			case 1:
				idx := rng.IntN(n+1) + 1
				if ok := b.DeleteBackward(idx); ok != (idx <= n && n > 0) {
					t.Fatalf("run %d: DeleteBackward(%d) = %v on len %d", run, idx, ok, n)
				}
				if idx <= n && n > 0 {
					m = m.replace(idx-1, idx, "")
				}
			case 2:
				idx := rng.IntN(n + 1)
				if ok := b.DeleteForward(idx); ok != (idx < n) {
					t.Fatalf("run %d: DeleteForward(%d) = %v on len %d", run, idx, ok, n)
				}
				if idx < n {
					m = m.replace(idx, idx+1, "")
				}
			case 3:
				idx := rng.IntN(n+3) - 1
				text := string(alphabet[rng.IntN(len(alphabet))])
				ok := b.InsertText(idx, text)
				if ok != (idx >= 0 && idx <= n) {
					t.Fatalf("run %d: InsertText(%d) = %v on len %d", run, idx, ok, n)
				}
				if ok {
					m = m.replace(idx, idx, text)
				}
			}

			if got, want := b.String(), string(m); got != want {
				t.Fatalf("run %d step %d: buffer = %q, model = %q", run, step, got, want)
			}
		}
	}
}
