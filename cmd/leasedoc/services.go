package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	leasedoc "github.com/alnah/go-leasedoc"
	"github.com/alnah/go-leasedoc/internal/assets"
	"github.com/alnah/go-leasedoc/internal/browserpdf"
	"github.com/alnah/go-leasedoc/internal/config"
	"github.com/alnah/go-leasedoc/internal/docx"
	"github.com/alnah/go-leasedoc/internal/logging"
	"github.com/alnah/go-leasedoc/internal/pdfdoc"
	"github.com/alnah/go-leasedoc/internal/translate"
)

// redisPingTimeout bounds the startup check of the translation cache.
const redisPingTimeout = 2 * time.Second

// services bundles what one render run needs. Close releases them.
type services struct {
	provider  logging.Provider
	assembler *leasedoc.Assembler
	assets    *assets.AssetResolver
	closers   []func() error
}

// Close releases the assembler and the translation cache connection.
func (s *services) Close() error {
	var errs []error
	if s.assembler != nil {
		errs = append(errs, s.assembler.Close())
	}
	for _, c := range s.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// buildProvider creates the go-logger provider. Quiet mode silences logs;
// verbose mode lowers the level to debug.
func buildProvider(cfg *config.Config, common commonFlags) (logging.Provider, error) {
	if common.quiet {
		return nil, nil
	}
	level := cfg.Log.Level
	if common.verbose {
		level = "debug"
	}
	return logging.NewProvider(logging.Config{Level: level, Format: cfg.Log.Format})
}

// buildServices wires the assembler from the resolved config.
func buildServices(ctx context.Context, cfg *config.Config, flags *renderFlags, timeout time.Duration) (*services, error) {
	provider, err := buildProvider(cfg, flags.common)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", config.ErrInvalidValue, err)
	}
	s := &services{provider: provider}

	resolver, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		return nil, err
	}
	s.assets = resolver

	bp, err := assets.LoadBoilerplateFrom(resolver)
	if err != nil {
		return nil, err
	}

	opts := []leasedoc.Option{
		leasedoc.WithBoilerplate(bp),
		leasedoc.WithLogger(logging.AssemblerLogger(provider)),
		leasedoc.WithWorkers(cfg.Translation.Workers),
		leasedoc.WithTranslationTimeout(timeout),
	}

	pdfOpt, err := buildPDFComposer(cfg, bp)
	if err != nil {
		return nil, err
	}
	opts = append(opts, pdfOpt)

	docxComposer, err := docx.NewComposer(docx.WithBoilerplate(bp))
	if err != nil {
		return nil, err
	}
	opts = append(opts, leasedoc.WithDOCXRenderer(docxComposer))

	if strings.EqualFold(cfg.PDF.UnicodeEngine, "chrome") {
		css, err := resolver.LoadStyle(assets.DefaultStyleName)
		if err != nil {
			return nil, err
		}
		engine, err := browserpdf.New(browserpdf.WithBoilerplate(bp), browserpdf.WithCSS(css))
		if err != nil {
			return nil, err
		}
		opts = append(opts, leasedoc.WithUnicodePDFRenderer(engine))
	}

	if len(cfg.Languages) > 0 {
		tr, err := s.buildTranslator(ctx, cfg)
		if err != nil {
			_ = s.Close()
			return nil, err
		}
		opts = append(opts, leasedoc.WithTranslator(tr))
	}

	asm, err := leasedoc.NewAssembler(opts...)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.assembler = asm
	return s, nil
}

// buildPDFComposer configures the core-font composer.
func buildPDFComposer(cfg *config.Config, bp *assets.Boilerplate) (leasedoc.Option, error) {
	fonts, ok := pdfdoc.FontSetByName(strings.ToLower(cfg.PDF.FontSet))
	if !ok {
		return nil, fmt.Errorf("%w: pdf.fontSet: %q", config.ErrInvalidValue, cfg.PDF.FontSet)
	}
	c, err := pdfdoc.NewComposer(
		pdfdoc.WithFontSet(fonts),
		pdfdoc.WithCompression(cfg.CompressPDF()),
		pdfdoc.WithBoilerplate(bp),
	)
	if err != nil {
		return nil, err
	}
	return leasedoc.WithPDFRenderer(c), nil
}

// buildTranslator selects the model client and wraps it with the
// configured cache.
func (s *services) buildTranslator(ctx context.Context, cfg *config.Config) (translate.Translator, error) {
	var tr translate.Translator
	if strings.EqualFold(cfg.LLM.Provider, "mock") {
		tr = &translate.MockTranslator{}
	} else {
		client, err := translate.NewOpenAITranslator(translate.OpenAIConfig{
			APIKey:  os.Getenv(cfg.LLM.APIKeyEnv),
			Model:   cfg.LLM.Model,
			BaseURL: cfg.LLM.BaseURL,
		})
		if err != nil {
			return nil, err
		}
		tr = client
	}

	logger := logging.TranslateLogger(s.provider)
	cache := cfg.Translation.Cache
	switch strings.ToLower(cache.Backend) {
	case "memory":
		return translate.NewCached(tr, translate.NewMemoryStore(cfg.CacheTTL()), logger), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cache.RedisAddr})
		s.closers = append(s.closers, client.Close)
		store := translate.NewRedisStore(client, cfg.CacheTTL())

		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		defer cancel()
		if err := store.Ping(pingCtx); err != nil {
			logger.Warn("translation cache unreachable, translating without it", "addr", cache.RedisAddr, "error", err)
			return tr, nil
		}
		return translate.NewCached(tr, store, logger), nil
	default:
		return tr, nil
	}
}
