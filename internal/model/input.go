package model

// InputKind identifies which extraction path an analysis request takes.
type InputKind string

const (
	InputText  InputKind = "text"
	InputURL   InputKind = "url"
	InputImage InputKind = "image"
)

// RawInput is a tagged union of the three accepted input forms. Exactly one
// variant is populated per request; use the constructors below.
type RawInput struct {
	Kind  InputKind
	Text  string
	URL   string
	Image []byte
}

// TextInput wraps pasted article text.
func TextInput(text string) RawInput {
	return RawInput{Kind: InputText, Text: text}
}

// URLInput wraps a user-supplied article URL.
func URLInput(url string) RawInput {
	return RawInput{Kind: InputURL, URL: url}
}

// ImageInput wraps an uploaded PNG/JPEG screenshot or scan.
func ImageInput(data []byte) RawInput {
	return RawInput{Kind: InputImage, Image: data}
}

// NormalizedText is the plain-text output of extraction, tagged with the
// path that produced it. Empty Text means extraction failed or produced
// nothing usable; it is never a truncated stand-in for partial success.
type NormalizedText struct {
	Text   string    `json:"text"`
	Source InputKind `json:"source"`
}
