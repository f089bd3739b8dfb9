// Package language identifies the dominant language of a text sample and
// maps it to a small set of human-readable labels.
package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/skanaga/veracity/internal/model"
)

// minTokens guards against running detection on fragments, where the
// statistical result is not worth reporting.
const minTokens = 5

// labels maps ISO 639-3 codes to the supported display labels. Codes
// outside the table are rendered as their uppercased code string.
var labels = map[string]model.Language{
	"eng": model.LanguageEnglish,
	"tam": model.LanguageTamil,
	"hin": model.LanguageHindi,
	"tel": model.LanguageTelugu,
	"kan": model.LanguageKannada,
	"mal": model.LanguageMalayalam,
}

// Detector performs best-effort language identification.
type Detector struct{}

// NewDetector creates a new language detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns a language label for text. It is total: every input,
// including empty and symbols-only strings, maps to a label and no error
// or panic ever reaches the caller.
func (d *Detector) Detect(text string) model.Language {
	if len(strings.Fields(text)) < minTokens {
		return model.LanguageInsufficient
	}

	info := whatlanggo.Detect(text)
	code := whatlanggo.LangToString(info.Lang)
	if code == "" {
		return model.LanguageUnknown
	}

	if label, ok := labels[code]; ok {
		return label
	}
	return model.Language(strings.ToUpper(code))
}
