// Package dailypost generates one news article per run for a static site.
// A run emits the palette stylesheet, asks an LLM provider for the article,
// renders the post page with its banner (and optional chart and table), then
// appends the post to the JSON index read by the site front-end.
//
// The cmd/dailypost binary wires Config, the provider client and the optional
// preview server; everything else lives in this package.
package dailypost

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ziara/dailypost/llm"
	"github.com/ziara/dailypost/views"
)

// App runs the generation pipeline against one site root.
type App struct {
	Config Config

	client  llm.Client
	log     *zap.Logger
	now     func() time.Time
	prompts *Prompts
}

// Report summarizes one run.
type Report struct {
	Record   PostRecord
	Palette  Palette
	Fallback bool // the provider answer was unusable and fallback content was published
	Posts    int  // index size after the append
}

// New creates an App for cfg. Paths in cfg are resolved against its SiteRoot.
func New(cfg Config, client llm.Client, opts ...Option) *App {
	a := &App{
		Config: cfg.Resolved(),
		client: client,
		log:    zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	return a
}

// NewClient builds the provider client selected by cfg.Provider.
func NewClient(ctx context.Context, cfg Config) (llm.Client, error) {
	switch cfg.Provider {
	case "openai":
		return llm.NewOpenAI(cfg.BaseURL, cfg.APIKey, nil)
	case "", "gemini":
		return llm.NewGenAI(ctx, cfg.APIKey)
	default:
		return nil, fmt.Errorf("dailypost: unknown provider %q", cfg.Provider)
	}
}

// Run performs one full generation: stylesheet, content, post, index.
// Archive and feed failures are logged and do not fail the run.
func (a *App) Run(ctx context.Context) (Report, error) {
	if a.client == nil {
		return Report{}, llm.ErrNoAPIKey
	}
	cfg := a.Config
	now := a.now()

	palette := SelectPalette(cfg.PaletteMode, now)
	if err := EmitStylesheet(cfg.StylesheetPath, palette); err != nil {
		return Report{}, err
	}
	a.log.Info("stylesheet emitted", zap.String("path", cfg.StylesheetPath), zap.String("primary", palette.Primary))

	gen := NewContentGenerator(a.client, cfg.Model, a.loadPrompts(), a.log)
	res, err := gen.Generate(ctx)
	if err != nil {
		return Report{}, err
	}
	content := res.Content.withDefaults(now)

	tmpl, err := views.LoadTemplate(cfg.TemplateDir)
	if err != nil {
		return Report{}, err
	}
	renderer := NewRenderer(cfg.ImagesDir, a.relative(cfg.ImagesDir), palette, cfg.FontPath, a.log)
	rec, err := NewAssembler(renderer, tmpl, cfg.PostsDir, cfg.SiteName, a.log).Assemble(ctx, content, now)
	if err != nil {
		return Report{}, err
	}

	idx, err := NewIndexStore(cfg.IndexPath, a.log).Append(rec, now)
	if err != nil {
		return Report{}, err
	}

	a.archive(rec)
	if cfg.SiteURL != "" {
		info := FeedInfo{Name: cfg.SiteName, URL: cfg.SiteURL, Description: cfg.Description}
		if err := WriteFeeds(cfg.SiteRoot, info, idx.Posts, now); err != nil {
			a.log.Warn("feeds not written", zap.Error(err))
		}
	}

	a.log.Info("post published",
		zap.String("title", rec.Title),
		zap.String("file", rec.Filename),
		zap.Stringer("result", res.Kind))
	return Report{Record: rec, Palette: palette, Fallback: res.IsFallback(), Posts: len(idx.Posts)}, nil
}

// RebuildArchive replaces the archive content with the current index.
func (a *App) RebuildArchive() (int, error) {
	if a.Config.ArchivePath == "" {
		return 0, fmt.Errorf("dailypost: no archive configured")
	}
	idx, err := NewIndexStore(a.Config.IndexPath, a.log).Load()
	if err != nil {
		return 0, err
	}
	arch, err := NewArchive(a.Config.ArchivePath)
	if err != nil {
		return 0, fmt.Errorf("open archive: %w", err)
	}
	defer arch.Close()
	if err := arch.Rebuild(idx.Posts); err != nil {
		return 0, fmt.Errorf("rebuild archive: %w", err)
	}
	return len(idx.Posts), nil
}

func (a *App) archive(rec PostRecord) {
	if a.Config.ArchivePath == "" {
		return
	}
	arch, err := NewArchive(a.Config.ArchivePath)
	if err != nil {
		a.log.Warn("archive unavailable", zap.String("path", a.Config.ArchivePath), zap.Error(err))
		return
	}
	defer arch.Close()
	if err := arch.Save(rec); err != nil {
		a.log.Warn("post not archived", zap.Error(err))
	}
}

func (a *App) loadPrompts() Prompts {
	if a.prompts != nil {
		return *a.prompts
	}
	return LoadPrompts(a.Config.PromptsPath)
}

// relative returns p relative to the site root, slash separated.
func (a *App) relative(p string) string {
	rel, err := filepath.Rel(a.Config.SiteRoot, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}
