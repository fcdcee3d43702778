package scoring

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/spigell/rolecolor/internal/framework"
)

func TestResultDumpToTmpFile(t *testing.T) {
	result, err := ScoreResume("Architected scalable APIs and mentored the team.", framework.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name, err := result.DumpToTmpFile()
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	t.Cleanup(func() { os.Remove(name) })

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}

	var decoded Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode dump: %v", err)
	}

	if decoded.DominantRole != result.DominantRole {
		t.Fatalf("expected dominant role %q, got %q", result.DominantRole, decoded.DominantRole)
	}
	if decoded.TotalKeywordsMatched != result.TotalKeywordsMatched {
		t.Fatalf("expected %d matches, got %d", result.TotalKeywordsMatched, decoded.TotalKeywordsMatched)
	}
}

func TestResultTop(t *testing.T) {
	t.Parallel()

	r := &Result{Matches: map[string][]Match{
		framework.Builder: {{Keyword: "a"}, {Keyword: "b"}, {Keyword: "c"}},
	}}

	if got := r.Top(framework.Builder, 2); len(got) != 2 || got[0].Keyword != "a" {
		t.Fatalf("unexpected top matches: %+v", got)
	}
	if got := r.Top(framework.Builder, 0); len(got) != 3 {
		t.Fatalf("expected all matches for n=0, got %d", len(got))
	}
	if got := r.Top(framework.Enabler, 3); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}
