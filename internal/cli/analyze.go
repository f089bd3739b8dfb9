package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/skanaga/veracity/internal/model"
	"github.com/skanaga/veracity/internal/pipeline"
	"github.com/skanaga/veracity/internal/verdict"
)

var (
	analyzeURL    string
	analyzeImage  string
	fetchTimeout  time.Duration
	userAgent     string
	respectRobots bool
	llmBaseURL    string
	llmModel      string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [text]",
	Short: "Classify a news sample as REAL or FAKE",
	Long: `Analyze classifies one news sample:
- pasted text (positional argument)
- an article URL (--url), fetched and stripped to readable text
- a news image (--image), read with multi-script OCR

Exactly one input source must be provided.

Example:
  veracity analyze "Scientists confirmed the new vaccine reduces transmission in trials."
  veracity analyze --url https://example.com/article
  veracity analyze --image forward.jpg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeURL, "url", "", "article URL to fetch and analyze")
	analyzeCmd.Flags().StringVar(&analyzeImage, "image", "", "path to a PNG/JPEG news image")
	analyzeCmd.Flags().DurationVar(&fetchTimeout, "timeout", 8*time.Second, "URL fetch timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "Mozilla/5.0", "HTTP User-Agent for URL fetches")
	analyzeCmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "honor robots.txt before fetching the URL")
	analyzeCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "reasoning service base URL (default: Groq)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "reasoning service model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input, err := resolveInput(args)
	if err != nil {
		return err
	}

	cfg := model.DefaultConfig()
	cfg.HTTP.Timeout = fetchTimeout
	cfg.HTTP.UserAgent = userAgent
	cfg.HTTP.RespectRobots = respectRobots
	if llmBaseURL != "" {
		cfg.LLM.BaseURL = llmBaseURL
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}

	cfg.LLM.APIKey = os.Getenv("GROQ_API_KEY")
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	p := pipeline.New(cfg, verdict.NewClient(cfg.LLM))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing %s input...\n", input.Kind)
	}

	result, err := p.Analyze(ctx, input)
	if errors.Is(err, pipeline.ErrInvalidInput) {
		fmt.Println("⚠ Please provide valid news content (not greetings or very short text).")
		return nil
	}
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	printResult(result)
	return nil
}

// resolveInput maps flags and args onto exactly one RawInput variant.
func resolveInput(args []string) (model.RawInput, error) {
	sources := 0
	if len(args) == 1 {
		sources++
	}
	if analyzeURL != "" {
		sources++
	}
	if analyzeImage != "" {
		sources++
	}
	if sources != 1 {
		return model.RawInput{}, fmt.Errorf("provide exactly one of: text argument, --url, --image")
	}

	switch {
	case analyzeURL != "":
		return model.URLInput(analyzeURL), nil
	case analyzeImage != "":
		data, err := os.ReadFile(analyzeImage)
		if err != nil {
			return model.RawInput{}, fmt.Errorf("read image: %w", err)
		}
		return model.ImageInput(data), nil
	default:
		return model.TextInput(args[0]), nil
	}
}

func printResult(result *model.AnalysisResult) {
	fmt.Println()
	fmt.Printf("Detected Language: %s\n", result.Language)

	if result.Verdict == model.VerdictFake {
		fmt.Println("Verdict: 🚨 FAKE NEWS")
	} else {
		fmt.Println("Verdict: ✅ REAL NEWS")
	}

	fmt.Println()
	fmt.Println("Explanation:")
	fmt.Println(result.Explanation)

	fmt.Println()
	fmt.Println("Verification Tips:")
	for _, tip := range result.Tips {
		fmt.Printf("- %s\n", tip)
	}
}
