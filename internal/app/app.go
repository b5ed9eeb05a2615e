package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/patrickprogramme/hearlingo/internal/config"
	"github.com/patrickprogramme/hearlingo/internal/fetch"
	"github.com/patrickprogramme/hearlingo/internal/player"
	"github.com/patrickprogramme/hearlingo/internal/trackcache"
	"github.com/patrickprogramme/hearlingo/internal/ui"
	"github.com/patrickprogramme/hearlingo/internal/yt"
)

// App orchestre les différentes dépendances (UI, source YouTube, config...)
type App struct {
	cfg    *config.Config
	ui     ui.Interface
	log    *zap.SugaredLogger
	source trackcache.Source
}

// New construit l'application. source nil -> client YouTube construit depuis cfg.
// Pour les tests, on injectera une source factice.
func New(cfg *config.Config, uiClient ui.Interface, log *zap.SugaredLogger, source trackcache.Source) *App {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if source == nil {
		source = NewSource(cfg)
	}
	return &App{cfg: cfg, ui: uiClient, log: log, source: source}
}

// NewSource construit le client YouTube "credentialed" décrit par la config.
func NewSource(cfg *config.Config) *yt.Client {
	fc := fetch.New(
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithMaxBytes(cfg.Fetch.MaxBytes),
		fetch.WithUserAgent(cfg.Fetch.UserAgent),
		fetch.WithAcceptLanguage(cfg.Fetch.AcceptLanguage),
		fetch.WithCookie(cfg.Fetch.Cookie),
	)
	return yt.NewClient(fc, cfg.Fetch.BaseURL)
}

func (a *App) Config() *config.Config {
	return a.cfg
}

func (a *App) UI() ui.Interface {
	return a.ui
}

// ResolveURL : priorité argument > clipboard > prompt
func (a *App) ResolveURL(ctx context.Context, arg string) (string, error) {
	if arg != "" {
		if !yt.IsYouTubeURL(arg) {
			return "", fmt.Errorf("%w: %q", ErrInvalidURL, arg)
		}
		return arg, nil
	}
	u, err := a.ui.GetYtURL(ctx)
	if err != nil {
		return "", fmt.Errorf("get url: %w", err)
	}
	return u, nil
}

// NewSession crée une session avec son propre cache, liée à ctx.
func (a *App) NewSession(ctx context.Context, surface player.Surface) *Session {
	cache := trackcache.New(a.source, trackcache.WithLogger(a.log), trackcache.WithContext(ctx))
	return NewSession(cache, surface,
		WithDefaultLanguage(a.cfg.DefaultLanguage),
		WithLogger(a.log),
	)
}

// Open résout l'URL, ouvre la vidéo et sélectionne la piste (lang vide -> défaut).
func (a *App) Open(ctx context.Context, urlArg, lang string, surface player.Surface) (*Session, error) {
	url, err := a.ResolveURL(ctx, urlArg)
	if err != nil {
		return nil, err
	}
	s := a.NewSession(ctx, surface)
	if _, err := s.Open(ctx, url, lang); err != nil {
		return nil, err
	}
	return s, nil
}
