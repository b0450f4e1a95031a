package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/eringen/pubgen"
)

const debounceDuration = 300 * time.Millisecond

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site locally and rebuild on changes",
	Long: `The serve command builds the site in memory, serves it over HTTP and
watches the content directory. Every change triggers a rebuild; if the rebuild
fails the previous site keeps being served.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		g := pubgen.New(appConfig, pubgen.WithLogger(logger))
		cache := pubgen.NewGeneratorCache(g)
		if _, err := cache.Site(ctx); err != nil {
			return err
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
		watchTree(watcher, g.Config.ContentDir)
		go watchLoop(ctx, watcher, cache)

		return pubgen.NewServer(g.Config, cache, logger).Start(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":1313", "address to listen on")
	_ = v.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	rootCmd.AddCommand(serveCmd)
}

// watchTree adds root and all of its subdirectories to w.
func watchTree(w *fsnotify.Watcher, root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("walk failed")
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("watch failed")
			}
		}
		return nil
	})
	if err != nil {
		logger.Warn().Err(err).Str("path", root).Msg("watch failed")
	}
}

func watchLoop(ctx context.Context, w *fsnotify.Watcher, cache *pubgen.SiteCache) {
	var timer *time.Timer
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				watchTree(w, event.Name)
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDuration, func() {
				cache.Invalidate()
				if _, err := cache.Site(ctx); err != nil {
					logger.Error().Err(err).Msg("rebuild failed")
				} else if err := cache.Err(); err != nil {
					logger.Warn().Err(err).Msg("rebuild failed, serving previous site")
				}
			})
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
