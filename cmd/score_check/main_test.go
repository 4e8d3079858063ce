package main

import (
	"testing"

	"creator-quiz/internal/content"
	"creator-quiz/internal/domain"
	"creator-quiz/internal/scoring"
)

func TestParseAnswers(t *testing.T) {
	got, err := parseAnswers(" 1, 2,3 ,,5 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 2, 3, 5}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	if _, err := parseAnswers("1,x,3"); err == nil {
		t.Fatalf("expected error for non numeric answer")
	}
}

func TestBuiltinScenariosClassify(t *testing.T) {
	cat, err := content.LoadFile("../../data/quiz.yaml")
	if err != nil {
		t.Fatalf("load content: %v", err)
	}
	classifier := scoring.NewClassifier(cat)

	scenarios := builtinScenarios(cat)
	if len(scenarios) != 3+4 {
		t.Fatalf("expected 7 scenarios, got %d", len(scenarios))
	}
	for _, sc := range scenarios {
		if _, err := classifier.Classify(sc.Answers); err != nil {
			t.Fatalf("%s: %v", sc.Name, err)
		}
	}

	high := scenarios[3]
	if high.Name != "high creativity" {
		t.Fatalf("expected first dimension scenario to be creativity, got %q", high.Name)
	}
	cl, _ := classifier.Classify(high.Answers)
	if cl.Normalized[domain.Dimension("creativity")] != 10 {
		t.Fatalf("expected creativity to saturate, got %v", cl.Normalized["creativity"])
	}
}
