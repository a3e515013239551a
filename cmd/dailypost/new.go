package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ziara/dailypost"
	"github.com/ziara/dailypost/scaffold"
	"github.com/ziara/dailypost/views"
)

var (
	newSiteURL     string
	newDescription string
)

var newCmd = &cobra.Command{
	Use:   "new <dir>",
	Short: "Create a new site skeleton",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

func init() {
	newCmd.Flags().StringVar(&newSiteURL, "url", "", "Canonical site URL, enables feed.xml and sitemap.xml")
	newCmd.Flags().StringVar(&newDescription, "description", "Notícias diárias do mercado de joias e semijoias", "Site description")
}

func runNew(cmd *cobra.Command, args []string) error {
	dir := args[0]
	prompts, err := yaml.Marshal(dailypost.DefaultPrompts())
	if err != nil {
		return fmt.Errorf("encode prompts: %w", err)
	}
	extra := map[string][]byte{
		"prompts.yaml":                       prompts,
		"templates/" + views.BaseTemplateName: views.DefaultTemplate(),
	}
	data := scaffold.Data{
		SiteName:    scaffold.ToTitle(filepath.Base(dir)),
		SiteURL:     newSiteURL,
		Description: newDescription,
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Creating new site: %s\n\n", dir)
	created, err := scaffold.Generate(dir, data, extra)
	for _, f := range created {
		fmt.Fprintf(out, "  created %s\n", f)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Done! Next steps:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  cd %s\n", dir)
	fmt.Fprintln(out, "  cp .env.example .env   # set GEMINI_API_KEY")
	fmt.Fprintln(out, "  dailypost")
	fmt.Fprintln(out, "  dailypost serve")
	return nil
}
