package render

import (
	"strings"
	"testing"
)

func TestHTML_ConvertsHeadingsAndBullets(t *testing.T) {
	out, err := HTML("# 📝 Study Notes\n\n## Key Points\n\n- first point\n- second point\n")
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	if !strings.Contains(out, "<h1>") {
		t.Errorf("expected <h1> in output, got %q", out)
	}
	if !strings.Contains(out, "<li>first point</li>") {
		t.Errorf("expected list item in output, got %q", out)
	}
}

func TestHTML_EmptyInput(t *testing.T) {
	out, err := HTML("")
	if err != nil {
		t.Fatalf("HTML() error: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}
