// Package cli implements a small interactive console for inspecting a
// running server: customers, the answer library, the obligation timeline,
// and snapshot export/import.
package cli

import (
	"context"
	"io"
	"os"
)

type App struct {
	config *Config
	client *Client
	in     io.Reader
	out    io.Writer
}

func NewApp(c *Config) (*App, error) {
	return &App{
		config: c,
		client: NewClient(c.ServerAddr, c.RequestTimeout),
		in:     os.Stdin,
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
