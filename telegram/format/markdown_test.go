package format

import "testing"

func TestEscapeMarkdownV1(t *testing.T) {
	got, err := EscapeMarkdown("a*b_c[d`e", MarkdownV1)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\\*b\\_c\\[d\\`e"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEscapeMarkdownV2(t *testing.T) {
	got, err := EscapeMarkdown("a.b!c(d)", MarkdownV2)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\\.b\\!c\\(d\\)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEscapeMarkdownUnsupportedVersion(t *testing.T) {
	if _, err := EscapeMarkdown("x", 3); err == nil {
		t.Error("expected error for unsupported version")
	}
}
