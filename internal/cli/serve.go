package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/skanaga/veracity/internal/model"
	"github.com/skanaga/veracity/internal/pipeline"
	"github.com/skanaga/veracity/internal/server"
	"github.com/skanaga/veracity/internal/verdict"
)

var serveAddr string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the analysis HTTP API",
	Long: `Serve exposes the analysis pipeline over HTTP for a browser UI:

  POST /api/v1/analyze   JSON {"text": ...} or {"url": ...}, or a
                         multipart upload with an "image" file
  GET  /api/v1/health    liveness
  GET  /metrics          prometheus metrics`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Server.Addr = serveAddr

	cfg.LLM.APIKey = os.Getenv("GROQ_API_KEY")
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("GROQ_API_KEY environment variable not set")
	}

	logger, err := newLogger()
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	p := pipeline.New(cfg, verdict.NewClient(cfg.LLM))
	return server.New(p, logger, cfg.Server).ListenAndServe()
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
