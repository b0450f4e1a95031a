package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/pubgen"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site into the output directory",
	Long: `The build command parses every Markdown file below the content directory,
renders the posts and writes the site to the output directory, replacing its
previous contents. Posts that cannot be parsed are skipped and reported; the
build fails only when there is nothing to publish.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		g := pubgen.New(appConfig, pubgen.WithLogger(logger))
		_, err := g.Publish(cmd.Context())
		return err
	},
}

func init() {
	buildCmd.Flags().String("output", "public", "directory the site is written to")
	buildCmd.Flags().String("archive", "", "also export the posts to this SQLite database")
	_ = v.BindPFlag("output_dir", buildCmd.Flags().Lookup("output"))
	_ = v.BindPFlag("archive_path", buildCmd.Flags().Lookup("archive"))
	rootCmd.AddCommand(buildCmd)
}
