package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"repo-insight/internal/adapter/gemini"
	"repo-insight/internal/adapter/github"
	"repo-insight/internal/service"

	"github.com/joho/godotenv"
)

// Debug harness: run one analysis from the terminal without the HTTP
// surface. Usage: go run ./cmd/debug <github-repo-url>
func main() {
	if len(os.Args) < 2 {
		fmt.Println("usage: debug <github-repo-url>")
		os.Exit(1)
	}
	repoURL := os.Args[1]

	_ = godotenv.Load()
	githubToken := os.Getenv("GITHUB_TOKEN")
	geminiKey := os.Getenv("GEMINI_API_KEY")

	ctx := context.Background()

	fetcher := github.NewFetcher(githubToken)
	summarizer, err := gemini.NewGeminiSummarizer(ctx, geminiKey)
	if err != nil {
		log.Fatalf("❌ gemini init failed: %v", err)
	}
	defer summarizer.Close()

	// No store needed for a one-shot analysis.
	svc := service.NewInsightService(fetcher, summarizer, nil)

	fmt.Printf("🔍 analyzing %s ...\n", repoURL)
	report, err := svc.AnalyzeRepository(ctx, repoURL)
	if err != nil {
		log.Fatalf("❌ analysis failed: %v", err)
	}

	fmt.Println("\n================ [ README SUMMARY ] ================")
	fmt.Println(report.ReadmeSummary)
	fmt.Println("\n================ [ STRUCTURE ANALYSIS ] ============")
	fmt.Println(report.StructureAnalysis)
	fmt.Println("\n================ [ SETUP GUIDE ] ===================")
	fmt.Println(report.SetupGuide)
}
