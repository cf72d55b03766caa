package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/pitchcraft/core"
	"github.com/poiesic/pitchcraft/storage/badger"
)

// canonicalSections is the standard pitch-deck outline. IDs are derived
// from the names, so reseeding an existing database is safe.
var canonicalSections = []*core.Section{
	{Name: "Problem", Description: "The pain point your customers face today", SuggestedOrder: 1},
	{Name: "Solution", Description: "How your product removes that pain", SuggestedOrder: 2},
	{Name: "Market Size", Description: "TAM, SAM, and SOM for the opportunity", SuggestedOrder: 3},
	{Name: "Product", Description: "What the product is and how it works", SuggestedOrder: 4},
	{Name: "Traction", Description: "Evidence of growth: revenue, users, engagement", SuggestedOrder: 5},
	{Name: "Business Model", Description: "How the company makes money", SuggestedOrder: 6},
	{Name: "Competition", Description: "The landscape and your differentiation", SuggestedOrder: 7},
	{Name: "Team", Description: "Founders and key hires, and why they win", SuggestedOrder: 8},
	{Name: "Financials", Description: "Projections, burn, and runway", SuggestedOrder: 9},
	{Name: "Ask", Description: "How much you're raising and what it buys", SuggestedOrder: 10},
}

var dbPath = flag.String("db", "./pitchcraft_db", "path to BadgerDB database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	repos, err := badger.NewRepositories(*dbPath)
	if err != nil {
		panic(err)
	}
	defer repos.Close()

	added, err := repos.Sections.AddSections(context.Background(), canonicalSections...)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Seeded %d canonical sections\n", len(added))
	for _, section := range added {
		fmt.Printf("%2d. %s\n", section.SuggestedOrder, section.Name)
	}
}
