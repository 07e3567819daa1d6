// Command train runs the self-learning loop over a transcript dump: for each
// extracted conversation pair it predicts a reply with the live template, then
// revises the template from the diff against the real consultant reply.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/issa-compass/assistant/internal/config"
	"github.com/issa-compass/assistant/internal/editor"
	"github.com/issa-compass/assistant/internal/llm"
	"github.com/issa-compass/assistant/internal/reply"
	"github.com/issa-compass/assistant/internal/store"
	"github.com/issa-compass/assistant/internal/transcript"
)

func main() {
	_ = godotenv.Load()

	var (
		path  = flag.String("conversations", "conversations.json", "path to the transcript dump")
		limit = flag.Int("limit", 0, "max pairs to train on (0 = all)")
		delay = flag.Duration("delay", time.Second, "pause between pairs, for provider rate limits")
	)
	flag.Parse()

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx := context.Background()

	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL, slog.Default())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	client, _, err := llm.Detect(ctx, cfg, slog.Default())
	if err != nil {
		slog.Error("failed to select LLM provider", "error", err)
		os.Exit(1)
	}

	renderer := reply.NewRenderer(db, client, cfg.ReplyMaxTokens, slog.Default())
	ed := editor.New(db, client, nil, cfg.EditorMaxTokens, slog.Default())

	convs, err := transcript.Load(*path)
	if err != nil {
		slog.Error("failed to load conversations", "path", *path, "error", err)
		os.Exit(1)
	}

	pairs := transcript.Segment(convs)
	if *limit > 0 && len(pairs) > *limit {
		pairs = pairs[:*limit]
	}

	slog.Info("training", "conversations", len(convs), "pairs", len(pairs))

	var improved, failed int
	for i, pair := range pairs {
		clientMsg := transcript.JoinClientSequence(pair.ClientSequence)
		historyText := transcript.FormatHistory(pair.ChatHistory)
		consultantReply := strings.Join(pair.ConsultantReply, "\n")

		slog.Info("training pair", "n", i+1, "of", len(pairs), "scenario", pair.Scenario)

		predicted, err := renderer.GenerateReply(ctx, clientMsg, historyText)
		if err != nil {
			slog.Error("prediction failed", "n", i+1, "error", err)
			failed++
			continue
		}

		res := ed.ReviseFromExample(ctx, clientMsg, historyText, consultantReply, predicted)
		if res.Success {
			slog.Info("template improved", "n", i+1, "changes", res.ChangesMade)
			improved++
		} else {
			slog.Warn("no improvement", "n", i+1, "error", res.Err)
			failed++
		}

		if *delay > 0 && i < len(pairs)-1 {
			time.Sleep(*delay)
		}
	}

	slog.Info("training complete", "improved", improved, "failed", failed)
}
