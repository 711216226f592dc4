package extract

import "testing"

func TestRebuildConfusableCorrection(t *testing.T) {
	b := NewRebuilder("", nil)
	// Suffix "O1IllO111" carries every confusable: O->0, I->1, l->1.
	token := "1ZGW0159" + "O1IllO111"
	got := b.Rebuild(token)
	want := "1ZGW0159" + "011110111"
	if got != want {
		t.Errorf("Rebuild(%q) = %q, want %q", token, got, want)
	}
	// Nine corrected suffix chars leave the result one short of canonical.
	if len(got) >= b.CanonicalLength() {
		t.Errorf("len = %d, expected below canonical %d", len(got), b.CanonicalLength())
	}
}

func TestRebuildTable(t *testing.T) {
	b := NewRebuilder("", nil)
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"clean 18", "1Z9999999999999999", "1ZGW01599999999999"},
		{"overlong suffix truncated", "1Z333333333333333333333333", "1ZGW01593333333333"},
		{"prefix region replaced", "IZABCDEF9999999999", "1ZGW01599999999999"},
		{"exactly 8 chars", "1Z999999", "1ZGW0159"},
		{"shorter than 8", "1Z99", "1ZGW0159"},
		{"nine chars", "1Z999999O", "1ZGW01590"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Rebuild(tt.token); got != tt.want {
				t.Errorf("Rebuild(%q) = %q, want %q", tt.token, got, tt.want)
			}
		})
	}
}

func TestRebuilderDefaults(t *testing.T) {
	b := NewRebuilder("", nil)
	if b.CanonicalLength() != 18 {
		t.Errorf("CanonicalLength = %d, want 18", b.CanonicalLength())
	}
	got := b.Rebuild("1Z9999999999999999")
	if got[:8] != DefaultCarrierPrefix {
		t.Errorf("prefix = %q, want %q", got[:8], DefaultCarrierPrefix)
	}
}

func TestRebuilderCustomConfusables(t *testing.T) {
	// Retargeted font that also confuses S for 5.
	b := NewRebuilder("1ZAB1234", map[rune]rune{'S': '5'})
	got := b.Rebuild("1ZXXXXXX" + "S1S1S1S1S1")
	want := "1ZAB1234" + "5151515151"
	if got != want {
		t.Errorf("Rebuild = %q, want %q", got, want)
	}
}
