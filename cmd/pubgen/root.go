package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/pubgen"
)

var (
	cfgFile   string
	verbose   bool
	appConfig pubgen.SiteConfig
	logger    zerolog.Logger
	v         = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "pubgen",
	Short: "pubgen - a static blog generator built with Go, goldmark, and templ",
	Long: `pubgen turns a directory of Markdown posts with front matter into a
static blog: an index, one page per post, category listings, an RSS feed
and a sitemap.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose)
		return initializeConfig()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pubgen version",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "pubgen %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./pubgen.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("content", "content", "directory holding the Markdown posts")
	rootCmd.PersistentFlags().Int("workers", 1, "number of posts rendered concurrently")
	_ = v.BindPFlag("content_dir", rootCmd.PersistentFlags().Lookup("content"))
	_ = v.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))

	rootCmd.AddCommand(versionCmd)
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func initializeConfig() error {
	v.SetDefault("name", "Blog")
	v.SetDefault("url", "http://localhost:1313")
	v.SetDefault("description", "")
	v.SetDefault("author", "")
	v.SetDefault("content_dir", "content")
	v.SetDefault("output_dir", "public")
	v.SetDefault("archive_path", "")
	v.SetDefault("addr", ":1313")
	v.SetDefault("workers", 1)
	v.SetDefault("highlight", false)
	v.SetDefault("highlight_style", "github")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("pubgen")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PUBGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
		logger.Debug().Msg("no config file found, using defaults and environment")
	} else {
		logger.Debug().Str("file", v.ConfigFileUsed()).Msg("using config file")
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
