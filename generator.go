package utilcss

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/yacobolo/utilcss/internal/modifier"
	"github.com/yacobolo/utilcss/internal/sanitize"
	"github.com/yacobolo/utilcss/internal/serialize"
	"github.com/yacobolo/utilcss/rule"
	"github.com/yacobolo/utilcss/variant"
)

// ValueChecker validates a CSS value before it is emitted.
type ValueChecker interface {
	Check(property, value string) error
}

// Generated is the result of running one token through the pipeline.
type Generated struct {
	Token      string
	Selector   string // final selector after variant rewrites
	CSS        string // "" when the token produced nothing
	Properties rule.Properties
	Layer      rule.Layer
	Priority   int
	Variants   []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		if log == nil {
			log = zap.NewNop()
		}
		g.log = log.Named("utilcss")
	}
}

// WithTheme sets the initial theme.
func WithTheme(theme rule.Theme) Option {
	return func(g *Generator) { g.theme = theme }
}

// WithVariants sets the initial variant registry.
func WithVariants(reg *variant.Registry) Option {
	return func(g *Generator) {
		if reg != nil {
			g.variants = reg
		}
	}
}

// WithPrefix requires every utility to carry prefix ("tw-" → "hover:tw-block").
func WithPrefix(prefix string) Option {
	return func(g *Generator) { g.prefix = prefix }
}

// WithCache enables or disables the generation cache. It is on by default.
func WithCache(enabled bool) Option {
	return func(g *Generator) {
		if enabled {
			g.cache = newResultCache()
		} else {
			g.cache = nil
		}
	}
}

// WithSanitizer replaces the value checker. A nil checker keeps the default.
func WithSanitizer(c ValueChecker) Option {
	return func(g *Generator) {
		if c != nil {
			g.checker = c
		}
	}
}

// WithAllowedFunctions extends the default sanitizer's CSS function
// allowlist. Repeated calls accumulate. It has no effect when WithSanitizer
// installs a custom checker, regardless of option order.
func WithAllowedFunctions(names ...string) Option {
	return func(g *Generator) {
		g.allowedFuncs = append(g.allowedFuncs, names...)
	}
}

// WithMinify minifies every generated rule.
func WithMinify(enabled bool) Option {
	return func(g *Generator) { g.minify = enabled }
}

// Generator turns utility tokens into CSS.
//
// The rule registry is immutable. Theme, variants and prefix can be swapped
// at run time; each swap invalidates the cache. A Generator is safe for
// concurrent use.
type Generator struct {
	rules   *rule.Registry
	checker ValueChecker
	log     *zap.Logger
	minify  bool
	cache   *resultCache

	allowedFuncs []string

	mu       sync.RWMutex
	theme    rule.Theme
	variants *variant.Registry
	prefix   string
	epoch    uint64
}

// New returns a Generator over rules. A nil registry matches nothing.
func New(rules *rule.Registry, opts ...Option) *Generator {
	if rules == nil {
		rules, _ = rule.NewBuilder().Build()
	}
	emptyVariants, _ := variant.NewBuilder().Build()

	g := &Generator{
		rules:    rules,
		log:      zap.NewNop(),
		cache:    newResultCache(),
		theme:    rule.Theme{},
		variants: emptyVariants,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.checker == nil {
		g.checker = sanitize.Default()
		if len(g.allowedFuncs) > 0 {
			g.checker = sanitize.New(sanitize.WithAllowedFunctions(g.allowedFuncs...))
		}
	}
	return g
}

// config is a consistent snapshot of the mutable configuration.
type config struct {
	theme    rule.Theme
	variants *variant.Registry
	prefix   string
	epoch    uint64
}

func (g *Generator) snapshot() config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return config{theme: g.theme, variants: g.variants, prefix: g.prefix, epoch: g.epoch}
}

// Match resolves a bare utility against the rule registry.
func (g *Generator) Match(utility string) (rule.Match, bool) {
	return g.rules.Match(utility)
}

// Theme returns the active theme.
func (g *Generator) Theme() rule.Theme {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.theme
}

// Prefix returns the active utility prefix.
func (g *Generator) Prefix() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.prefix
}

// SetTheme replaces the theme and invalidates the cache.
func (g *Generator) SetTheme(theme rule.Theme) {
	g.reconfigure("theme", func() { g.theme = theme })
}

// SetVariants replaces the variant registry and invalidates the cache.
func (g *Generator) SetVariants(reg *variant.Registry) {
	if reg == nil {
		reg, _ = variant.NewBuilder().Build()
	}
	g.reconfigure("variants", func() { g.variants = reg })
}

// SetPrefix replaces the utility prefix and invalidates the cache.
func (g *Generator) SetPrefix(prefix string) {
	g.reconfigure("prefix", func() { g.prefix = prefix })
}

func (g *Generator) reconfigure(what string, apply func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	apply()
	g.epoch++
	if g.cache != nil {
		g.cache.invalidate()
		g.log.Debug("cache invalidated", zap.String("reason", what))
	}
}

// IsCacheEnabled reports whether results are cached.
func (g *Generator) IsCacheEnabled() bool {
	return g.cache != nil
}

// GetCacheStats returns the cache counters. It is zero when caching is off.
func (g *Generator) GetCacheStats() CacheStats {
	if g.cache == nil {
		return CacheStats{}
	}
	return g.cache.stats()
}

// ClearCache empties the cache and resets its counters.
func (g *Generator) ClearCache() {
	if g.cache != nil {
		g.cache.reset()
	}
}

// GenerateClass returns the CSS for one token, or "" when nothing matches.
func (g *Generator) GenerateClass(token string) (string, error) {
	res, err := g.lookup(token)
	if err != nil {
		return "", err
	}
	return res.CSS, nil
}

// GenerateMultiple generates each distinct token in input order and joins
// the results with newlines. Unmatched tokens are skipped. Errors are
// collected per token; the CSS of the valid tokens is still returned.
func (g *Generator) GenerateMultiple(tokens []string) (string, error) {
	results, err := g.lookupAll(tokens)
	parts := make([]string, 0, len(results))
	for _, res := range results {
		parts = append(parts, res.CSS)
	}
	return strings.Join(parts, "\n"), err
}

// GenerateSheet generates tokens like GenerateMultiple but groups the
// output into @layer blocks (base, components, utilities). Within a layer
// rules are ordered by ascending priority, then by input order.
func (g *Generator) GenerateSheet(tokens []string) (string, error) {
	results, err := g.lookupAll(tokens)

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Layer.Order() != b.Layer.Order() {
			return a.Layer.Order() < b.Layer.Order()
		}
		return a.Priority < b.Priority
	})

	var b strings.Builder
	b.WriteString("@layer base, components, utilities;")
	for i := 0; i < len(results); {
		layer := results[i].Layer
		var body []string
		for ; i < len(results) && results[i].Layer == layer; i++ {
			body = append(body, results[i].CSS)
		}
		b.WriteString("\n\n@layer ")
		b.WriteString(string(layer))
		b.WriteString(" {\n")
		b.WriteString(serialize.Indent(strings.Join(body, "\n"), "  "))
		b.WriteString("\n}")
	}
	b.WriteString("\n")

	if g.minify {
		return serialize.Minify(b.String()), err
	}
	return b.String(), err
}

// Generate runs token through the pipeline, bypassing the cache. It
// reports false when the token does not produce CSS.
func (g *Generator) Generate(token string) (Generated, bool, error) {
	res, err := g.generate(token, g.snapshot())
	if err != nil {
		return Generated{}, false, err
	}
	return res, res.CSS != "", nil
}

// lookupAll returns the non-empty results of the distinct tokens in order.
func (g *Generator) lookupAll(tokens []string) ([]Generated, error) {
	seen := make(map[string]bool, len(tokens))
	results := make([]Generated, 0, len(tokens))
	var errs error
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true

		res, err := g.lookup(tok)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if res.CSS != "" {
			results = append(results, res)
		}
	}
	return results, errs
}

func (g *Generator) lookup(token string) (Generated, error) {
	if g.cache != nil {
		if res, ok := g.cache.get(token); ok {
			return res, nil
		}
	}

	cfg := g.snapshot()
	res, err := g.generate(token, cfg)
	if err != nil {
		return Generated{}, err
	}

	if g.cache != nil {
		// Skip the store when the configuration changed mid-generation.
		g.mu.RLock()
		if g.epoch == cfg.epoch {
			g.cache.set(token, res)
		}
		g.mu.RUnlock()
	}
	return res, nil
}

// generate is the uncached pipeline: parse, match, produce, modify,
// serialize (sanitized), then apply variants.
func (g *Generator) generate(token string, cfg config) (res Generated, err error) {
	res = Generated{Token: token}

	pc, ok := rule.ParseClass(token, cfg.prefix)
	if !ok {
		g.log.Debug("token does not parse", zap.String("token", token))
		return res, nil
	}
	m, pc, ok := g.rules.Resolve(pc)
	if !ok {
		g.log.Debug("no rule matches", zap.String("token", token))
		return res, nil
	}
	resolved, missing, ok := cfg.variants.FindAll(pc.Variants)
	if !ok {
		g.log.Debug("unknown variant", zap.String("token", token), zap.String("variant", missing))
		return res, nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = &TokenError{Token: token, Err: recovered(r, "rule "+m.Rule.Key())}
			g.log.Error("generation panicked", zap.String("token", token), zap.Error(err))
		}
	}()

	props := m.Rule.Produce(m, cfg.theme)
	if len(props) == 0 {
		return res, nil
	}
	if pc.Negative {
		props = modifier.Negate(props)
	}
	if pc.Opacity != "" {
		alpha, ok := modifier.Alpha(pc.Opacity)
		if !ok {
			g.log.Debug("invalid opacity modifier", zap.String("token", token), zap.String("opacity", pc.Opacity))
			return res, nil
		}
		props = modifier.Opacity(props, alpha)
	}
	if pc.Important {
		props = modifier.Important(props)
	}

	selector := serialize.ClassSelector(token)
	css, err := serialize.Serialize(selector, props, g.checker)
	if err != nil {
		if IsUnsafe(err) {
			g.log.Warn("value rejected", zap.String("token", token), zap.Error(err))
		}
		return res, &TokenError{Token: token, Err: err}
	}
	if css == "" {
		return res, nil
	}

	css, selector, err = variant.Apply(css, selector, resolved)
	if err != nil {
		return res, &TokenError{Token: token, Err: fmt.Errorf("applying variants: %w", err)}
	}
	if g.minify {
		css = serialize.Minify(css)
	}

	res.Selector = selector
	res.CSS = css
	res.Properties = props
	res.Layer = m.Rule.EffectiveLayer()
	res.Priority = m.Rule.Priority
	res.Variants = pc.Variants
	return res, nil
}
