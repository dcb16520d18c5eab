package nlp

import "testing"

func TestRuleAnalyzerBatch(t *testing.T) {
	var a RuleAnalyzer
	results := a.Analyze([]string{"First input", "Second input"})
	if len(results) != 2 {
		t.Fatalf("Expected 2 analyses, got %d", len(results))
	}
}

func TestHasVerb(t *testing.T) {
	var a RuleAnalyzer
	tests := []struct {
		input    string
		expected bool
	}{
		{"The committee approved the budget.", true},
		{"Revenue Recognition Policy", false},
		{"The system was configured for testing.", true},
		{"Introduction", false},
	}

	for _, tt := range tests {
		got := a.Analyze([]string{tt.input})[0].HasVerb()
		if got != tt.expected {
			t.Errorf("HasVerb(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestAllFunctionWords(t *testing.T) {
	var a RuleAnalyzer
	if !a.Analyze([]string{"and the of"})[0].AllFunctionWords() {
		t.Error("'and the of' should be all function words")
	}
	if a.Analyze([]string{"the budget"})[0].AllFunctionWords() {
		t.Error("'the budget' contains a content word")
	}
}

func TestSentenceCount(t *testing.T) {
	var a RuleAnalyzer
	res := a.Analyze([]string{"One. Two. Version 1.2 stays."})[0]
	if res.Sentences != 3 {
		t.Errorf("Sentences = %d, want 3", res.Sentences)
	}
}

func TestProperNounEntities(t *testing.T) {
	var a RuleAnalyzer
	res := a.Analyze([]string{"the European Commission report"})[0]
	if len(res.Entities) < 2 {
		t.Errorf("Expected European and Commission as entities, got %v", res.Entities)
	}
}
