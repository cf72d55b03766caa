// Copyright 2025 Poiesic Systems
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
	"context"
	"fmt"
	"log"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/poiesic/pitchcraft"
	"github.com/poiesic/pitchcraft/ai"
	"github.com/poiesic/pitchcraft/ai/openai"
	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/ingestion"
	"github.com/poiesic/pitchcraft/reindex"
	"github.com/poiesic/pitchcraft/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "pitchcraft",
		Usage: "Pitch deck builder with document-grounded assistance",
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
				Name:  "deck",
				Usage: "Manage pitch decks",
				Subcommands: []*cli.Command{
					{
						Name:   "create",
						Usage:  "Create a new pitch deck",
						Action: deckCreateCommand,
						Flags: []cli.Flag{
							dbFlag(),
							&cli.StringFlag{
								Name:     "user",
								Aliases:  []string{"u"},
								Usage:    "Owner user ID",
								Required: true,
							},
							&cli.StringFlag{
								Name:     "title",
								Aliases:  []string{"t"},
								Usage:    "Deck title",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "company",
								Usage: "Company name",
							},
							&cli.StringFlag{
								Name:  "industry",
								Usage: "Industry",
							},
							&cli.StringFlag{
								Name:  "funding-stage",
								Usage: "Funding stage (e.g. seed, series-a)",
							},
							&cli.StringFlag{
								Name:  "funding-goal",
								Usage: "Funding goal (e.g. $2M)",
							},
						},
					},
					{
						Name:   "list",
						Usage:  "List a user's pitch decks",
						Action: deckListCommand,
						Flags: []cli.Flag{
							dbFlag(),
							&cli.StringFlag{
								Name:     "user",
								Aliases:  []string{"u"},
								Usage:    "Owner user ID",
								Required: true,
							},
						},
					},
				},
			},
			{
				Name:      "ingest",
				Usage:     "Ingest source documents into a deck",
				ArgsUsage: "FILE [FILE...]",
				Action:    ingestCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					deckFlag(),
				}, aiFlags()...),
			},
			{
				Name:      "search",
				Usage:     "Search a deck's ingested documents",
				ArgsUsage: "QUERY...",
				Action:    searchCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					deckFlag(),
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of hits",
						Value: 5,
					},
				}, aiFlags()...),
			},
			{
				Name:   "chat",
				Usage:  "Chat with the assistant about a deck",
				Action: chatCommand,
				Flags: append([]cli.Flag{
					dbFlag(),
					deckFlag(),
				}, aiFlags()...),
			},
			{
				Name:   "reindex",
				Usage:  "Reembed a deck's stored chunks with new embeddings",
				Action: reindexCommand,
				Flags: []cli.Flag{
					dbFlag(),
					deckFlag(),
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "Embedding service host URL",
						Value: "http://localhost:11434/v1",
					},
					&cli.StringFlag{
						Name:     "embedding-model",
						Usage:    "Embedding model name",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of batches processed concurrently",
						Value: 2,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to BadgerDB database directory",
		Required: true,
	}
}

func deckFlag() cli.Flag {
	return &cli.Uint64Flag{
		Name:     "deck",
		Usage:    "Deck ID",
		Required: true,
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "host",
			Usage: "OpenAI-compatible service host URL",
			Value: "http://localhost:11434/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "embeddinggemma",
		},
		&cli.StringFlag{
			Name:  "assistant-model",
			Usage: "Assistant model name for chat and extraction",
			Value: "qwen2.5:3b",
		},
	}
}

// openWorkspace builds a workspace from the shared --db and AI flags.
func openWorkspace(c *cli.Context) (*pitchcraft.Workspace, error) {
	config := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithAssistantModel(c.String("assistant-model")),
	)
	return pitchcraft.Open(c.String("db"), pitchcraft.WithAIConfig(config))
}

func deckCreateCommand(c *cli.Context) error {
	repos, err := badger.NewRepositories(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	deck, err := repos.Decks.AddDeck(context.Background(), &core.Deck{
		UserId:       c.String("user"),
		Title:        c.String("title"),
		CompanyName:  c.String("company"),
		Industry:     c.String("industry"),
		FundingStage: c.String("funding-stage"),
		FundingGoal:  c.String("funding-goal"),
	})
	if err != nil {
		return fmt.Errorf("failed to create deck: %w", err)
	}

	fmt.Printf("Created deck %d: %s\n", deck.Id, deck.Title)
	return nil
}

func deckListCommand(c *cli.Context) error {
	repos, err := badger.NewRepositories(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	decks, err := repos.Decks.GetDecksByUser(context.Background(), c.String("user"))
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}

	if len(decks) == 0 {
		fmt.Println("No decks found")
		return nil
	}

	for _, deck := range decks {
		fmt.Printf("%d\t%s\t%s\tv%d\t%s\n",
			deck.Id, deck.Title, deck.Status, deck.Version,
			deck.InsertedAt.Format(time.DateTime))
	}
	return nil
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one file is required")
	}

	ws, err := openWorkspace(c)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer ws.Close()

	files := make([]ingestion.File, 0, c.NArg())
	for _, path := range c.Args().Slice() {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, ingestion.File{
			Name:         filepath.Base(path),
			DeclaredType: declaredMediaType(path),
			Data:         data,
		})
	}

	pipeline, err := ws.NewIngestionPipeline(
		ingestion.WithProgress(func(message string) {
			fmt.Fprintln(os.Stderr, message)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	reports := pipeline.Process(context.Background(), core.ID(c.Uint64("deck")), files)
	for _, report := range reports {
		if report.Success {
			if report.Error != "" {
				fmt.Printf("ok    %s (%s)\n", report.FileName, report.Error)
			} else {
				fmt.Printf("ok    %s\n", report.FileName)
			}
			continue
		}
		fmt.Printf("fail  %s: %s\n", report.FileName, report.Error)
	}

	summary := ingestion.Summarize(reports)
	fmt.Printf("Ingested %d of %d files\n", summary.Succeeded, len(reports))
	return nil
}

// declaredMediaType resolves the declared type from the file extension,
// without the parameters mime attaches to text types.
func declaredMediaType(path string) string {
	mediaType := mime.TypeByExtension(filepath.Ext(path))
	if base, _, found := strings.Cut(mediaType, ";"); found {
		return strings.TrimSpace(base)
	}
	return mediaType
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("a query is required")
	}
	query := strings.Join(c.Args().Slice(), " ")

	ws, err := openWorkspace(c)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer ws.Close()

	searcher, err := ws.NewSearcher()
	if err != nil {
		return fmt.Errorf("failed to create searcher: %w", err)
	}

	results, err := searcher.FindSimilar(context.Background(), core.ID(c.Uint64("deck")), query, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' (%s #%d)[%0.3f]\n", i, hit.Record.Content,
			hit.Record.Metadata.Source, hit.Record.Metadata.Chunk, hit.Score)
	}
	return nil
}

func chatCommand(c *cli.Context) error {
	ws, err := openWorkspace(c)
	if err != nil {
		return fmt.Errorf("failed to open workspace: %w", err)
	}
	defer ws.Close()

	conversation, err := ws.NewConversation(core.ID(c.Uint64("deck")))
	if err != nil {
		return fmt.Errorf("failed to start conversation: %w", err)
	}

	fmt.Println("Type a message and press enter. 'exit' quits.")
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line != "" {
			if err := conversation.Send(ctx, line); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
			} else {
				turns := conversation.Turns()
				fmt.Println(turns[len(turns)-1].Text)
			}
		}
		fmt.Print("> ")
	}
	return scanner.Err()
}

func reindexCommand(c *cli.Context) error {
	ctx := context.Background()

	repos, err := badger.NewRepositories(c.String("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repos.Close()

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
	)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}

	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	config := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		Workers:        c.Int("workers"),
	}

	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	reindexer, err := reindex.NewReindexer(repos.Embeddings, repos.Checkpoints, embedder, config, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to create reindexer: %w", err)
	}
	defer reindexer.Release()

	fmt.Fprintf(os.Stderr, "Database: %s\n", c.String("db"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", c.String("embedding-host"))
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", c.String("embedding-model"))
	fmt.Fprintln(os.Stderr)

	if err := reindexer.Run(ctx, core.ID(c.Uint64("deck"))); err != nil {
		return fmt.Errorf("reindexing failed: %w", err)
	}

	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
