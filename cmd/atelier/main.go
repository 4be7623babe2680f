// Package main provides the atelier CLI: the client-side companion of the
// design service. It keeps the local gallery of generated brooches and the
// day's generation allowance; the server never tracks either.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"beadatelier/internal/designclient"
	"beadatelier/internal/gallery"
	"beadatelier/internal/quota"
	"beadatelier/pkg/domain"
)

const syncConcurrency = 4

func main() {
	app := &cli.App{
		Name:  "atelier",
		Usage: "Generate and manage custom beaded brooch designs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "Design service base URL",
				Value:   "http://localhost:8080",
				EnvVars: []string{"ATELIER_SERVER"},
			},
			&cli.StringFlag{
				Name:    "state-dir",
				Usage:   "Directory holding local gallery and quota state",
				EnvVars: []string{"ATELIER_STATE_DIR"},
			},
		},
		Commands: []*cli.Command{
			generateCommand(),
			galleryCommand(),
			quotaCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a custom brooch design",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "size", Usage: "Size: S, M, L or XL", Required: true},
			&cli.StringFlag{Name: "shape", Usage: "Shape tag, e.g. bee or butterfly", Required: true},
			&cli.StringSliceFlag{Name: "color", Usage: "Color token (hex or id), 1-4 times", Required: true},
			&cli.StringFlag{Name: "description", Usage: "Free-text style description", Required: true},
		},
		Action: generateAction,
	}
}

func generateAction(c *cli.Context) error {
	tracker, err := openTracker(c)
	if err != nil {
		return err
	}
	// The allowance is consulted before the request so exhausted days never
	// waste a provider call.
	if !tracker.CanGenerate() {
		return errors.New("daily generation limit reached, try again tomorrow")
	}

	client := designclient.NewClient(c.String("server"))
	artifact, err := client.Generate(domain.GenerateParams{
		Size:        c.String("size"),
		Shape:       c.String("shape"),
		Colors:      c.StringSlice("color"),
		Description: c.String("description"),
	})
	if err != nil {
		var apiErr *designclient.APIError
		if errors.As(err, &apiErr) && len(apiErr.Details) > 0 {
			for _, v := range apiErr.Details {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", v.Field, v.Reason)
			}
		}
		return err
	}

	// Only a completed generation consumes allowance and enters the gallery.
	if err := tracker.RecordGeneration(); err != nil {
		return err
	}
	mirror, err := openMirror(c)
	if err != nil {
		return err
	}
	if err := mirror.Append(artifact); err != nil {
		return err
	}

	fmt.Printf("generated %s (%s %s)\n", artifact.ID, artifact.Size, artifact.Shape)
	fmt.Printf("image: %s/api/generated/%s/image\n", c.String("server"), artifact.ID)
	fmt.Printf("remaining today: %d\n", tracker.Remaining())
	return nil
}

func galleryCommand() *cli.Command {
	return &cli.Command{
		Name:  "gallery",
		Usage: "Manage the local gallery of generated designs",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List gallery entries, newest first",
				Action: galleryListAction,
			},
			{
				Name:      "remove",
				Usage:     "Remove an entry from the local gallery",
				ArgsUsage: "<artifact-id>",
				Action:    galleryRemoveAction,
			},
			{
				Name:   "sync",
				Usage:  "Refresh gallery entries from the server",
				Action: gallerySyncAction,
			},
		},
	}
}

func galleryListAction(c *cli.Context) error {
	mirror, err := openMirror(c)
	if err != nil {
		return err
	}
	entries := mirror.List()
	if len(entries) == 0 {
		fmt.Println("gallery is empty")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("%s  %-3s %-12s %s\n", e.ID, e.Size, e.Shape, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func galleryRemoveAction(c *cli.Context) error {
	id := c.Args().First()
	if id == "" {
		return errors.New("artifact id required")
	}
	mirror, err := openMirror(c)
	if err != nil {
		return err
	}
	return mirror.Remove(id)
}

// gallerySyncAction refreshes local records from the server, keeping local
// copies of entries the server no longer remembers.
func gallerySyncAction(c *cli.Context) error {
	mirror, err := openMirror(c)
	if err != nil {
		return err
	}
	client := designclient.NewClient(c.String("server"))
	entries := mirror.List()

	refreshed := make([]domain.Artifact, len(entries))
	var g errgroup.Group
	g.SetLimit(syncConcurrency)
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			remote, err := client.GetGenerated(entry.ID)
			if err != nil {
				var apiErr *designclient.APIError
				if errors.As(err, &apiErr) && apiErr.Status == 404 {
					refreshed[i] = entry
					return nil
				}
				return err
			}
			refreshed[i] = remote
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// Re-append oldest first so the original ordering is preserved.
	for i := len(refreshed) - 1; i >= 0; i-- {
		if err := mirror.Append(refreshed[i]); err != nil {
			return err
		}
	}
	fmt.Printf("synced %d entries\n", len(refreshed))
	return nil
}

func quotaCommand() *cli.Command {
	return &cli.Command{
		Name:  "quota",
		Usage: "Show today's remaining generation allowance",
		Action: func(c *cli.Context) error {
			tracker, err := openTracker(c)
			if err != nil {
				return err
			}
			fmt.Printf("remaining today: %d\n", tracker.Remaining())
			return nil
		},
	}
}

func stateDir(c *cli.Context) (string, error) {
	if dir := c.String("state-dir"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".atelier"), nil
}

func openTracker(c *cli.Context) (*quota.DayTracker, error) {
	dir, err := stateDir(c)
	if err != nil {
		return nil, err
	}
	return quota.NewDayTracker(filepath.Join(dir, "quota.json"), quota.DefaultDailyLimit)
}

func openMirror(c *cli.Context) (*gallery.Mirror, error) {
	dir, err := stateDir(c)
	if err != nil {
		return nil, err
	}
	return gallery.New(filepath.Join(dir, "gallery.json"))
}
