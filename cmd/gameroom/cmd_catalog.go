package main

import (
	"context"
	"errors"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/ryanm101/gameroom/internal/game"
)

var gameHeaders = []string{"platform", "id", "title", "genre", "rating"}

func runCatalog(ctx context.Context) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	result := a.service.Catalog(ctx)
	if outputCfg.JSON {
		PrintResult(result)
		return nil
	}

	var rows [][]string
	for _, platform := range a.service.Platforms() {
		rows = append(rows, gameRows(platform, result[platform])...)
	}
	PrintTable(gameHeaders, rows)
	return nil
}

func runSearch(ctx context.Context, args []string) error {
	query, platform, err := parseSearchArgs(args)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	games, err := a.service.Search(ctx, query, platform)
	if err != nil {
		return err
	}
	if outputCfg.JSON {
		PrintResult(games)
		return nil
	}
	PrintTable(gameHeaders, gameRows(platform, games))
	return nil
}

func runWarm(ctx context.Context) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	platforms := a.service.Platforms()
	var bar *progressbar.ProgressBar
	if !outputCfg.Quiet && !outputCfg.JSON {
		bar = progressbar.Default(int64(len(platforms)), "Warming")
	}

	counts := make(map[string]int, len(platforms))
	for _, p := range platforms {
		games, _ := a.service.Platform(ctx, p)
		counts[p] = len(games)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if outputCfg.JSON {
		PrintResult(counts)
		return nil
	}
	for _, p := range platforms {
		PrintInfo("  %-12s %d games\n", p, counts[p])
	}
	return nil
}

// parseSearchArgs splits "<query words...> [--platform p]".
func parseSearchArgs(args []string) (query, platform string, err error) {
	var words []string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--platform", "-p":
			if i+1 >= len(args) {
				return "", "", errors.New("--platform needs a value")
			}
			platform = args[i+1]
			i++
		default:
			words = append(words, args[i])
		}
	}
	if len(words) == 0 {
		return "", "", errors.New("search needs a query")
	}
	return strings.Join(words, " "), platform, nil
}

func gameRows(platform string, games []game.Game) [][]string {
	rows := make([][]string, 0, len(games))
	for _, g := range games {
		rows = append(rows, []string{platform, g.ID, g.Title, g.Genre, g.Rating})
	}
	return rows
}
