// Copyright 2026 Wanderlens Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"bufio"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"github.com/wanderlens/wanderlens"
	"github.com/wanderlens/wanderlens/ai"
	"github.com/wanderlens/wanderlens/api"
	"github.com/wanderlens/wanderlens/core"
)

func main() {
	app := &cli.App{
		Name:  "wanderlens",
		Usage: "Extract and chat about places recommended in travel videos",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{
						Name:    "listen",
						Usage:   "Address to listen on",
						Value:   ":8080",
						EnvVars: []string{"WANDERLENS_LISTEN"},
					},
					&cli.StringFlag{
						Name:    "cache",
						Usage:   "Path to the transcript cache directory (empty disables caching)",
						EnvVars: []string{"WANDERLENS_CACHE"},
					},
				),
			},
			{
				Name:      "ingest",
				Usage:     "Ingest one or more videos and print the extracted places",
				ArgsUsage: "<video-id-or-url>...",
				Action:    ingestCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Provider to use (openai, anthropic)",
					},
					&cli.StringFlag{
						Name:    "cache",
						Usage:   "Path to the transcript cache directory (empty disables caching)",
						EnvVars: []string{"WANDERLENS_CACHE"},
					},
				),
			},
			{
				Name:      "chat",
				Usage:     "Ingest videos then chat about them interactively",
				ArgsUsage: "<video-id-or-url>...",
				Action:    chatCommand,
				Flags: append(providerFlags(),
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Provider to use (openai, anthropic)",
					},
					&cli.StringFlag{
						Name:    "cache",
						Usage:   "Path to the transcript cache directory (empty disables caching)",
						EnvVars: []string{"WANDERLENS_CACHE"},
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func providerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "openai-key",
			Usage:   "OpenAI API key",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "openai-base-url",
			Usage:   "OpenAI-compatible base URL (Ollama, vLLM, ...)",
			EnvVars: []string{"OPENAI_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    "openai-model",
			Usage:   "OpenAI model name",
			Value:   "gpt-4o",
			EnvVars: []string{"WANDERLENS_OPENAI_MODEL"},
		},
		&cli.StringFlag{
			Name:    "anthropic-key",
			Usage:   "Anthropic API key",
			EnvVars: []string{"ANTHROPIC_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "anthropic-model",
			Usage:   "Anthropic model name",
			Value:   "claude-3-5-haiku-latest",
			EnvVars: []string{"WANDERLENS_ANTHROPIC_MODEL"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Per-call provider timeout",
			Value:   60 * time.Second,
			EnvVars: []string{"WANDERLENS_TIMEOUT"},
		},
	}
}

func newEngine(c *cli.Context) (*wanderlens.Engine, error) {
	config := ai.NewConfig(
		ai.WithOpenAIKey(c.String("openai-key")),
		ai.WithOpenAIBaseURL(c.String("openai-base-url")),
		ai.WithOpenAIModel(c.String("openai-model")),
		ai.WithAnthropicKey(c.String("anthropic-key")),
		ai.WithAnthropicModel(c.String("anthropic-model")),
		ai.WithTimeout(c.Duration("timeout")),
	)

	opts := []wanderlens.EngineOption{wanderlens.WithAIConfig(config)}
	if cache := c.String("cache"); cache != "" {
		opts = append(opts, wanderlens.WithCachePath(cache))
	}
	return wanderlens.NewEngine(opts...)
}

func serveCommand(c *cli.Context) error {
	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	addr := c.String("listen")
	slog.Info("starting server", "addr", addr, "providers", engine.Providers())

	server := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(engine),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return server.ListenAndServe()
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one video id or URL is required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	report, err := engine.Ingest(c.Context, "", resolveProvider(c, engine), c.Args().Slice())
	if err != nil {
		return err
	}

	printReport(report)
	return nil
}

// resolveProvider returns the --provider flag value, falling back to the
// first registered provider so a single-provider setup needs no flag.
func resolveProvider(c *cli.Context, engine *wanderlens.Engine) string {
	if p := c.String("provider"); p != "" {
		return p
	}
	if providers := engine.Providers(); len(providers) > 0 {
		return providers[0]
	}
	return ""
}

func chatCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one video id or URL is required")
	}

	engine, err := newEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	provider := resolveProvider(c, engine)
	report, err := engine.Ingest(c.Context, "", provider, c.Args().Slice())
	if err != nil {
		return err
	}
	printReport(report)

	fmt.Println("Ask about the places found (empty line to quit):")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		message := strings.TrimSpace(scanner.Text())
		if message == "" {
			break
		}

		reply, err := engine.Chat(c.Context, report.SessionID, provider, message)
		if err != nil {
			fmt.Fprintf(os.Stderr, "chat failed: %v\n", err)
			continue
		}
		fmt.Println(reply.Answer)
		for _, src := range reply.Sources {
			fmt.Printf("  source: %s (%s)\n", src.Title, src.VideoID)
		}
		if reply.Degraded {
			fmt.Println("  (best-effort answer: tool round limit reached)")
		}
	}
	return scanner.Err()
}

func printReport(report *core.IngestReport) {
	fmt.Printf("session: %s\n", report.SessionID)
	for _, v := range report.Videos {
		fmt.Printf("  %s: %s (%d places)\n", v.VideoID, v.Title, v.PlacesCount)
		if v.Summary != "" {
			fmt.Printf("    %s\n", v.Summary)
		}
	}
	for videoID, msg := range report.Errors {
		fmt.Printf("  %s: failed: %s\n", videoID, msg)
	}
	fmt.Printf("total places: %d\n", report.TotalPlaces)
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
