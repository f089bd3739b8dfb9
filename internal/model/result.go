package model

import "time"

// Language is a human-readable label for the dominant language of a sample.
type Language string

const (
	LanguageEnglish   Language = "English"
	LanguageTamil     Language = "Tamil"
	LanguageHindi     Language = "Hindi"
	LanguageTelugu    Language = "Telugu"
	LanguageKannada   Language = "Kannada"
	LanguageMalayalam Language = "Malayalam"
	LanguageUnknown   Language = "Unknown"

	// LanguageInsufficient marks samples too short for reliable detection,
	// distinct from Unknown (which means detection ran and failed).
	LanguageInsufficient Language = "Not enough text"
)

// Verdict is the binary classification of a text sample.
type Verdict string

const (
	VerdictReal Verdict = "REAL"
	VerdictFake Verdict = "FAKE"
)

// VerificationTips is the static guidance shown alongside every verdict.
var VerificationTips = []string{
	"Check trusted news websites",
	"Verify using official sources",
	"Avoid sensational claims",
	"Cross-check using Google News",
}

// AnalysisResult is the outcome of one analysis request. It is request-scoped:
// never persisted, never cached, never shared between requests.
type AnalysisResult struct {
	Input       NormalizedText `json:"input"`
	Language    Language       `json:"language"`
	Verdict     Verdict        `json:"verdict"`
	Explanation string         `json:"explanation"`
	Tips        []string       `json:"verification_tips"`
	AnalyzedAt  time.Time      `json:"analyzed_at"`
}
