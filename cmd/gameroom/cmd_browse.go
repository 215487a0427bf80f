package main

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ryanm101/gameroom/internal/browse"
)

func runBrowse(ctx context.Context) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	p := tea.NewProgram(browse.New(a.service.Platforms(), a.service.Catalog),
		tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}
