package service

import "fmt"

// Prompt templates for the three generated documents. Kept verbatim so
// output quality stays comparable across model upgrades.

func readmeSummaryPrompt(readme string) string {
	return "As a senior software engineer, analyze the following README and provide a concise summary " +
		"in Markdown format, including project purpose, key features, and technology stack.\n---" + readme
}

func structureAnalysisPrompt(fileStructure string) string {
	return "You are a principal software architect. Based on the file structure, provide a high-level " +
		"analysis in Markdown format, including likely architecture, key components, and code organization.\n---" + fileStructure
}

func setupGuidePrompt(readme, fileStructure string) string {
	return fmt.Sprintf(
		"Based on the README and file structure, provide a step-by-step setup guide in Markdown format."+
			"\n---README---\n%s\n---FILE STRUCTURE---\n%s",
		readme, fileStructure,
	)
}
