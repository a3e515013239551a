package dailypost

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Palette modes.
const (
	PaletteSeasonal = "seasonal"
	PaletteFixed    = "fixed"
)

// Config holds all configuration for a generator run. Relative paths are
// resolved against SiteRoot.
type Config struct {
	SiteRoot       string // Site root directory (default ".")
	PostsDir       string // Rendered posts (default "posts")
	ImagesDir      string // Banners and charts (default "assets/images")
	StylesheetPath string // Generated CSS (default "assets/css/style.css")
	IndexPath      string // Post index (default "posts-index.json")
	TemplateDir    string // Optional base.html override (default "templates")
	ArchivePath    string // SQLite archive, empty disables it
	FontPath       string // Preferred banner font

	PaletteMode string // "seasonal" (default) or "fixed"

	Provider string // "gemini" (default) or "openai"
	Model    string // default "gemini-2.5-flash"
	APIKey   string
	BaseURL  string // OpenAI-compatible endpoint base

	PromptsPath string // Optional prompts YAML (default "prompts.yaml")

	SiteName    string // Feed title (default "Ziara")
	SiteURL     string // Canonical URL, feeds are skipped when empty
	Description string

	Addr string // Preview server address (default ":8000")
}

const defaultFontPath = "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf"

func (c *Config) setDefaults() {
	if c.SiteRoot == "" {
		c.SiteRoot = "."
	}
	if c.PostsDir == "" {
		c.PostsDir = "posts"
	}
	if c.ImagesDir == "" {
		c.ImagesDir = filepath.Join("assets", "images")
	}
	if c.StylesheetPath == "" {
		c.StylesheetPath = filepath.Join("assets", "css", "style.css")
	}
	if c.IndexPath == "" {
		c.IndexPath = "posts-index.json"
	}
	if c.TemplateDir == "" {
		c.TemplateDir = "templates"
	}
	if c.FontPath == "" {
		c.FontPath = defaultFontPath
	}
	if c.PaletteMode == "" {
		c.PaletteMode = PaletteSeasonal
	}
	if c.Provider == "" {
		c.Provider = "gemini"
	}
	if c.Model == "" {
		c.Model = "gemini-2.5-flash"
	}
	if c.PromptsPath == "" {
		c.PromptsPath = "prompts.yaml"
	}
	if c.SiteName == "" {
		c.SiteName = "Ziara"
	}
	if c.Addr == "" {
		c.Addr = ":8000"
	}
}

// path resolves p against the site root unless it is absolute.
func (c *Config) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.SiteRoot, p)
}

// Resolved returns a copy with defaults applied and every path made relative
// to the site root.
func (c Config) Resolved() Config {
	c.setDefaults()
	c.PostsDir = c.path(c.PostsDir)
	c.ImagesDir = c.path(c.ImagesDir)
	c.StylesheetPath = c.path(c.StylesheetPath)
	c.IndexPath = c.path(c.IndexPath)
	c.TemplateDir = c.path(c.TemplateDir)
	c.ArchivePath = c.path(c.ArchivePath)
	c.PromptsPath = c.path(c.PromptsPath)
	return c
}

// LoadConfig builds a Config from a .env file (optional) and the environment.
func LoadConfig() Config {
	_ = godotenv.Load()

	cfg := Config{
		SiteRoot:       EnvOr("DAILYPOST_ROOT", "."),
		PostsDir:       os.Getenv("DAILYPOST_POSTS_DIR"),
		ImagesDir:      os.Getenv("DAILYPOST_IMAGES_DIR"),
		StylesheetPath: os.Getenv("DAILYPOST_STYLESHEET"),
		IndexPath:      os.Getenv("DAILYPOST_INDEX"),
		TemplateDir:    os.Getenv("DAILYPOST_TEMPLATES"),
		ArchivePath:    EnvOr("DAILYPOST_ARCHIVE", filepath.Join("data", "posts.db")),
		FontPath:       os.Getenv("DAILYPOST_FONT"),
		PaletteMode:    os.Getenv("DAILYPOST_PALETTE"),
		Provider:       os.Getenv("DAILYPOST_PROVIDER"),
		Model:          os.Getenv("DAILYPOST_MODEL"),
		BaseURL:        EnvOr("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		PromptsPath:    os.Getenv("DAILYPOST_PROMPTS"),
		SiteName:       os.Getenv("SITE_NAME"),
		SiteURL:        os.Getenv("SITE_URL"),
		Description:    os.Getenv("SITE_DESCRIPTION"),
		Addr:           os.Getenv("DAILYPOST_ADDR"),
	}
	if cfg.Provider == "openai" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	} else {
		cfg.APIKey = EnvOr("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY"))
	}
	return cfg
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Prompts are the two messages sent to the provider.
type Prompts struct {
	System string `yaml:"system"`
	User   string `yaml:"user"`
}

// LoadPrompts reads prompts from a YAML file. A missing or unreadable file, or
// one with empty fields, yields the built-in prompts for those fields.
func LoadPrompts(path string) Prompts {
	p := DefaultPrompts()
	data, err := os.ReadFile(path)
	if err != nil {
		return p
	}
	var fromFile Prompts
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return p
	}
	if fromFile.System != "" {
		p.System = fromFile.System
	}
	if fromFile.User != "" {
		p.User = fromFile.User
	}
	return p
}

// DefaultPrompts returns the built-in Portuguese prompts.
func DefaultPrompts() Prompts {
	return Prompts{
		System: "Você é um especialista em mercado de joias e semijoias, focado em atacadistas e comerciantes.",
		User: "Gere um título e um corpo de texto para uma notícia diária sobre o mundo de joias e semijoias, " +
			"focada em atacadistas e comerciantes. O conteúdo deve abordar tendências, altas do setor, " +
			"dicas de mercado ou informações relevantes para o negócio. O texto deve ser profissional, " +
			"informativo e ter aproximadamente 300-500 palavras, dividido em parágrafos. " +
			"Inclua um parágrafo de introdução (lead) e alguns parágrafos no corpo. " +
			"Formate a saída como um JSON com as chaves 'title', 'lead', 'body' (HTML formatado com tags <p> e talvez <h3> para subtítulos), " +
			"'category' e 'image_description' (uma frase descrevendo uma imagem para o post). " +
			"Quando houver números relevantes, inclua também 'table_data' no formato {\"headers\": [...], \"rows\": [[...], ...]} " +
			"e/ou 'chart_data' no formato {\"title\": \"...\", \"x_label\": \"...\", \"y_label\": \"...\", \"labels\": [...], \"values\": [números]}, " +
			"e marque no 'body' onde devem aparecer com os marcadores " + TablePlaceholder + " e " + ChartPlaceholder + ". " +
			"Exemplo de categoria: 'Tendências de Mercado', 'Dicas para Atacadistas', 'Novidades do Setor'.",
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the logger used for progress and recovery paths.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithPrompts overrides the prompts read from PromptsPath.
func WithPrompts(p Prompts) Option {
	return func(a *App) {
		a.prompts = &p
	}
}
