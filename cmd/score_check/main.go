package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"creator-quiz/internal/config"
	"creator-quiz/internal/content"
	"creator-quiz/internal/domain"
	"creator-quiz/internal/scoring"
)

const (
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

type Scenario struct {
	Name    string
	Answers []int
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	contentPath := flag.String("content", cfg.ContentPath, "questionnaire file (.yaml or .json)")
	answersFlag := flag.String("answers", "", "comma separated answers; empty runs the built-in scenarios")
	asJSON := flag.Bool("json", false, "print the full classification as JSON")
	flag.Parse()

	catalog, err := content.LoadFile(*contentPath)
	if err != nil {
		log.Fatalf("load content: %v", err)
	}
	classifier := scoring.NewClassifier(catalog)

	var scenarios []Scenario
	if strings.TrimSpace(*answersFlag) != "" {
		answers, err := parseAnswers(*answersFlag)
		if err != nil {
			log.Fatalf("parse answers: %v", err)
		}
		scenarios = []Scenario{{Name: "custom", Answers: answers}}
	} else {
		scenarios = builtinScenarios(catalog)
	}

	for _, sc := range scenarios {
		cl, err := classifier.Classify(sc.Answers)
		if err != nil {
			log.Fatalf("%s: %v", sc.Name, err)
		}
		if *asJSON {
			out := struct {
				Scenario       string                `json:"scenario"`
				Classification domain.Classification `json:"classification"`
				Report         domain.ReportText     `json:"report"`
			}{sc.Name, cl, classifier.Report(cl)}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				log.Fatalf("encode: %v", err)
			}
			continue
		}
		printSummary(sc.Name, cl, classifier.Report(cl))
	}
}

func parseAnswers(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("answer %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// builtinScenarios arma respuestas sinteticas: neutro, extremos y un eje dominante por dimension.
func builtinScenarios(cat *scoring.Catalog) []Scenario {
	scale := cat.Scale()
	questions := cat.Questions()
	fill := func(v int) []int {
		out := make([]int, len(questions))
		for i := range out {
			out[i] = v
		}
		return out
	}

	scenarios := []Scenario{
		{Name: "neutral", Answers: fill(int(scale.Midpoint()))},
		{Name: "all max", Answers: fill(scale.Max)},
		{Name: "all min", Answers: fill(scale.Min)},
	}
	seen := map[domain.Dimension]bool{}
	for _, q := range questions {
		if seen[q.Dimension] {
			continue
		}
		seen[q.Dimension] = true
		answers := fill(int(scale.Midpoint()))
		for i, other := range questions {
			if other.Dimension != q.Dimension {
				continue
			}
			if other.Direction == domain.DirectionNegative {
				answers[i] = scale.Min
			} else {
				answers[i] = scale.Max
			}
		}
		scenarios = append(scenarios, Scenario{Name: "high " + string(q.Dimension), Answers: answers})
	}
	return scenarios
}

func printSummary(name string, cl domain.Classification, rep domain.ReportText) {
	fmt.Printf("%s== %s ==%s\n", colorCyan, name, colorReset)
	fmt.Printf("primary:   %s%s%s (%s)\n", colorGreen, cl.Primary, colorReset, rep.Name)
	fmt.Printf("secondary: %s%s%s (%s)\n", colorGreen, cl.Secondary, colorReset, rep.SubName)

	sims := append([]domain.ProfileMatch(nil), cl.Similarities...)
	sort.SliceStable(sims, func(i, j int) bool { return sims[i].Similarity > sims[j].Similarity })
	for _, m := range sims {
		fmt.Printf("  %-14s %.4f\n", m.Type, m.Similarity)
	}
	for _, d := range cl.Dimensions {
		fmt.Printf("  %-14s raw=%6.2f  norm=%5.2f\n", d, cl.Raw[d], cl.Normalized[d])
	}
	fmt.Println()
}
