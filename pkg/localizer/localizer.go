package localizer

import (
	"encoding/json"
	"errors"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is the platform's fallback language.
const DefaultLocale = "es"

// Option configures a Localizer.
type Option func(*Localizer) error

// WithBundle adds or merges a flat message bundle for a locale.
func WithBundle(locale string, messages map[string]string) Option {
	return func(l *Localizer) error {
		if locale == "" || len(messages) == 0 {
			return ErrInvalidBundle
		}
		l.merge(locale, messages)
		return nil
	}
}

// WithYAML loads bundles from YAML content shaped as locale -> key -> message.
func WithYAML(content []byte) Option {
	return func(l *Localizer) error {
		var bundles map[string]map[string]string
		if err := yaml.Unmarshal(content, &bundles); err != nil {
			return errors.Join(ErrInvalidBundle, err)
		}
		for locale, messages := range bundles {
			l.merge(locale, messages)
		}
		return nil
	}
}

// WithDefaultLocale overrides the fallback locale.
func WithDefaultLocale(locale string) Option {
	return func(l *Localizer) error {
		if locale != "" {
			l.fallback = locale
		}
		return nil
	}
}

// WithAfterChange registers a listener invoked after every locale change.
func WithAfterChange(fn func(locale string)) Option {
	return func(l *Localizer) error {
		if fn != nil {
			l.listeners = append(l.listeners, fn)
		}
		return nil
	}
}

// Localizer resolves message keys against per-locale bundles.
type Localizer struct {
	mu        sync.RWMutex
	bundles   map[string]map[string]string
	tags      []language.Tag
	matcher   language.Matcher
	fallback  string
	locale    string
	listeners []func(locale string)
}

// New creates a Localizer. At least one bundle is required.
func New(opts ...Option) (*Localizer, error) {
	l := &Localizer{
		bundles:  make(map[string]map[string]string),
		fallback: DefaultLocale,
	}

	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}

	if len(l.bundles) == 0 {
		return nil, ErrNoLocales
	}

	for locale := range l.bundles {
		if tag, err := language.Parse(locale); err == nil {
			l.tags = append(l.tags, tag)
		}
	}
	if len(l.tags) > 0 {
		l.matcher = language.NewMatcher(l.tags)
	}

	l.locale = l.fallback
	if _, exists := l.bundles[l.locale]; !exists {
		// Fallback locale has no bundle; settle on any loaded one.
		for locale := range l.bundles {
			l.locale = locale
			break
		}
	}

	return l, nil
}

func (l *Localizer) merge(locale string, messages map[string]string) {
	bundle, exists := l.bundles[locale]
	if !exists {
		bundle = make(map[string]string, len(messages))
		l.bundles[locale] = bundle
	}
	for key, message := range messages {
		bundle[key] = message
	}
}

// Locale returns the active locale.
func (l *Localizer) Locale() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.locale
}

// SetLocale switches the active locale, matching the requested tag against
// the loaded bundles ("es-UY" picks the "es" bundle). Unparseable input
// keeps the current locale. Listeners run synchronously after the change.
func (l *Localizer) SetLocale(locale string) {
	resolved := l.match(locale)
	if resolved == "" {
		return
	}

	l.mu.Lock()
	changed := l.locale != resolved
	l.locale = resolved
	listeners := l.listeners
	l.mu.Unlock()

	if !changed {
		return
	}
	for _, fn := range listeners {
		fn(resolved)
	}
}

func (l *Localizer) match(locale string) string {
	if locale == "" {
		return ""
	}
	if _, exists := l.bundles[locale]; exists {
		return locale
	}
	if l.matcher == nil {
		return ""
	}

	requested, err := language.Parse(locale)
	if err != nil {
		return ""
	}

	_, index, confidence := l.matcher.Match(requested)
	if confidence == language.No {
		return ""
	}

	base, _ := l.tags[index].Base()
	candidate := base.String()
	if _, exists := l.bundles[candidate]; exists {
		return candidate
	}
	return l.tags[index].String()
}

// T resolves key in the active locale, falling back to the default locale
// and finally to the key itself so missing translations stay visible.
func (l *Localizer) T(key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if message, ok := l.bundles[l.locale][key]; ok {
		return message
	}
	if message, ok := l.bundles[l.fallback][key]; ok {
		return message
	}
	return key
}

// UserLocale extracts the stored language preference from a raw user
// profile (property.lang), returning fallback when absent or malformed.
func UserLocale(profile json.RawMessage, fallback string) string {
	if fallback == "" {
		fallback = DefaultLocale
	}
	if len(profile) == 0 {
		return fallback
	}

	var raw struct {
		Property struct {
			Lang string `json:"lang"`
		} `json:"property"`
	}
	if err := json.Unmarshal(profile, &raw); err != nil || raw.Property.Lang == "" {
		return fallback
	}
	return raw.Property.Lang
}
