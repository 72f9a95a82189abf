package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"agri-updates/internal/ai"
	"agri-updates/internal/config"
	"agri-updates/internal/database"
	"agri-updates/internal/generator"
	"agri-updates/internal/sanitize"
)

// readInput returns the first argument's file contents, or stdin.
func readInput(c *cli.Context) (string, error) {
	var (
		data []byte
		err  error
	)
	if path := c.Args().First(); path != "" && path != "-" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(c.App.Reader)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("input is empty")
	}
	return string(data), nil
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	return config.Load(c.String("config"))
}

func newPolisher(cfg *config.Config) (ai.Polisher, error) {
	return ai.New(ai.Settings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
		Timeout:  cfg.LLM.Timeout(),
	})
}

func GenerateAction(c *cli.Context) error {
	raw, err := readInput(c)
	if err != nil {
		return err
	}

	opts := []generator.Option{}
	if c.Bool("polish") {
		cfg, err := loadConfig(c)
		if err != nil {
			return err
		}
		p, err := newPolisher(cfg)
		if err != nil {
			return fmt.Errorf("failed to set up polisher: %w", err)
		}
		opts = append(opts,
			generator.WithPolisher(p),
			generator.WithMarkers(generator.DefaultMarkers().Extend(cfg.GenericMarkers)),
		)
	}

	res := generator.New(opts...).Run(c.Context, raw)
	post := res.Post
	if post.Content, err = sanitize.Clean(post.Content); err != nil {
		return fmt.Errorf("failed to sanitize content: %w", err)
	}

	out, err := json.MarshalIndent(post, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(out))

	if c.Bool("trace") {
		states := make([]string, len(res.Trace))
		for i, s := range res.Trace {
			states[i] = string(s)
		}
		fmt.Fprintf(c.App.ErrWriter, "source=%s retried=%t trace=%s\n",
			res.Source, res.Retried, strings.Join(states, " → "))
	}
	return nil
}

func PolishAction(c *cli.Context) error {
	raw, err := readInput(c)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	p, err := newPolisher(cfg)
	if err != nil {
		return fmt.Errorf("failed to set up polisher: %w", err)
	}

	out, err := p.Polish(c.Context, raw)
	if err != nil {
		return fmt.Errorf("polish failed: %w", err)
	}
	fmt.Fprintln(c.App.Writer, out)
	return nil
}

func DBPingAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	store, err := database.Open(c.Context, cfg.Database.Driver, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	if err := store.Ping(c.Context); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	n, err := store.CountDrafts(c.Context)
	if err != nil {
		return fmt.Errorf("failed to count drafts: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "✅ %s store reachable, %d draft(s) pending\n", cfg.Database.Driver, n)
	return nil
}
