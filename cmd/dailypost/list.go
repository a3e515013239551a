package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ziara/dailypost"
)

var (
	listCategory string
	listLimit    int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived posts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig().Resolved()
		if cfg.ArchivePath == "" {
			return fmt.Errorf("no archive configured (set DAILYPOST_ARCHIVE)")
		}
		arch, err := dailypost.NewArchive(cfg.ArchivePath)
		if err != nil {
			return fmt.Errorf("open archive: %w", err)
		}
		defer arch.Close()

		posts, err := arch.List(listCategory, listLimit)
		if err != nil {
			return err
		}
		return printPosts(cmd, posts)
	},
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Manage the SQLite post archive",
}

var archiveRebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the archive from posts-index.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := dailypost.New(loadConfig(), nil, dailypost.WithLogger(logger)).RebuildArchive()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "archived %d posts\n", n)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only posts in this category (case-insensitive)")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "Maximum number of posts, 0 for all")
	archiveCmd.AddCommand(archiveRebuildCmd)
}

func printPosts(cmd *cobra.Command, posts []dailypost.PostRecord) error {
	out := cmd.OutOrStdout()
	if len(posts) == 0 {
		fmt.Fprintln(out, "no posts")
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tCATEGORY\tTITLE\tFILE")
	for _, p := range posts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Date, p.Category, p.Title, p.Filename)
	}
	return w.Flush()
}
