package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"

	domainerr "quillpress/internal/domain/errors"
)

type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Build   BuildConfig   `yaml:"build"`
	Feed    FeedConfig    `yaml:"feed"`
	Tags    TagsConfig    `yaml:"tags"`
	Summary SummaryConfig `yaml:"summary"`
}

type SiteConfig struct {
	Name        string `yaml:"name" json:"name"`
	Author      string `yaml:"author" json:"author"`
	URL         string `yaml:"url" json:"url"`
	Locale      string `yaml:"locale" json:"locale"`
	HomeEntries int    `yaml:"home_entries" json:"home_entries"`
}

type BuildConfig struct {
	ContentDir       string    `yaml:"content_dir" json:"content_dir"`
	TemplateDir      string    `yaml:"template_dir" json:"template_dir"`
	OutputDir        string    `yaml:"output_dir" json:"output_dir"`
	StaticDir        string    `yaml:"static_dir" json:"static_dir"`
	ManifestPath     string    `yaml:"manifest_path" json:"manifest_path"`
	CodeStyle        string    `yaml:"code_style" json:"code_style"`
	IgnoreExtensions []string  `yaml:"ignore_extensions" json:"ignore_extensions"`
	Now              time.Time `yaml:"-" json:"-"`
}

type FeedConfig struct {
	RSSPath    string `yaml:"rss_path" json:"rss_path"`
	AtomPath   string `yaml:"atom_path" json:"atom_path"`
	MaxEntries int    `yaml:"max_entries" json:"max_entries"`
}

type TagsConfig struct {
	MaxStep int `yaml:"max_step" json:"max_step"`
}

type SummaryConfig struct {
	Words int `yaml:"words" json:"words"`
}

func Default() Config {
	return Config{
		Site: SiteConfig{
			Name:        "quillpress",
			Locale:      "en_US",
			HomeEntries: 10,
		},
		Build: BuildConfig{
			ContentDir:       "content",
			TemplateDir:      "templates",
			OutputDir:        "public",
			ManifestPath:     ".quillpress/manifest.db",
			CodeStyle:        "github",
			IgnoreExtensions: []string{".py"},
			Now:              time.Now(),
		},
		Feed: FeedConfig{
			RSSPath:    "feeds/all.rss.xml",
			AtomPath:   "feeds/all.atom.xml",
			MaxEntries: 10,
		},
		Tags: TagsConfig{
			MaxStep: 5,
		},
		Summary: SummaryConfig{
			Words: 100,
		},
	}
}

func (c Config) Validate() error {
	var ve domainerr.ValidationError

	collect("site", &ve, validation.ValidateStruct(&c.Site,
		validation.Field(&c.Site.Name, validation.Required),
		validation.Field(&c.Site.Author, validation.Required),
		validation.Field(&c.Site.URL, validation.Required, is.URL, validation.By(absoluteURL)),
		validation.Field(&c.Site.Locale, validation.Required),
		validation.Field(&c.Site.HomeEntries, validation.Min(1)),
	))
	collect("build", &ve, validation.ValidateStruct(&c.Build,
		validation.Field(&c.Build.ContentDir, validation.Required),
		validation.Field(&c.Build.TemplateDir, validation.Required),
		validation.Field(&c.Build.OutputDir, validation.Required),
		validation.Field(&c.Build.ManifestPath, validation.Required),
	))
	collect("feed", &ve, validation.ValidateStruct(&c.Feed,
		validation.Field(&c.Feed.RSSPath, validation.Required, validation.By(relativePath)),
		validation.Field(&c.Feed.AtomPath, validation.Required, validation.By(relativePath)),
		validation.Field(&c.Feed.MaxEntries, validation.Required, validation.Min(1)),
	))
	collect("tags", &ve, validation.ValidateStruct(&c.Tags,
		validation.Field(&c.Tags.MaxStep, validation.Required, validation.Min(1)),
	))
	collect("summary", &ve, validation.ValidateStruct(&c.Summary,
		validation.Field(&c.Summary.Words, validation.Required, validation.Min(1)),
	))

	if ve.HasAny() {
		return ve
	}
	return nil
}

// collect flattens ozzo's per-field errors into the field list, sorted for stable output.
func collect(prefix string, ve *domainerr.ValidationError, err error) {
	if err == nil {
		return
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		ve.Add(prefix, err.Error())
		return
	}
	keys := make([]string, 0, len(errs))
	for k := range errs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ve.Add(prefix+"."+k, errs[k].Error())
	}
}

func absoluteURL(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return errors.New("must be a valid absolute URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("must be a valid absolute URL")
	}
	if u.Host == "" {
		return errors.New("must be a valid absolute URL")
	}
	return nil
}

func relativePath(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if filepath.IsAbs(s) || strings.HasPrefix(filepath.Clean(s), "..") {
		return errors.New("must be relative to the output directory")
	}
	return nil
}

func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	// fields present in the file override the defaults, the rest are kept
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Build.Now.IsZero() {
		cfg.Build.Now = time.Now()
	}
	cfg.resolvePaths(filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// resolvePaths anchors relative directories at the config file's directory,
// so the binary can be run from anywhere.
func (c *Config) resolvePaths(base string) {
	for _, p := range []*string{
		&c.Build.ContentDir,
		&c.Build.TemplateDir,
		&c.Build.OutputDir,
		&c.Build.StaticDir,
		&c.Build.ManifestPath,
	} {
		if *p == "" || filepath.IsAbs(*p) {
			continue
		}
		*p = filepath.Join(base, *p)
	}
}

// Ignored reports whether files with the given extension are skipped by the loader.
func (c BuildConfig) Ignored(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range c.IgnoreExtensions {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" && !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if e == ext {
			return true
		}
	}
	return false
}
