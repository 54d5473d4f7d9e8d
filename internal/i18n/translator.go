package i18n

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// FallbackLanguage is consulted when the active language is missing a key
const FallbackLanguage = "en-us"

// Translator resolves message keys against per-language string tables
// loaded from YAML files. Lookups fall back to en-us, then to the key
// itself, so a missing translation never blocks a reply.
type Translator struct {
	mu      sync.RWMutex
	tables  map[string]map[string]string
	current string
	logger  *slog.Logger
}

// NewTranslator loads every addarr.<lang>.yml table under dir and
// activates lang. An unknown lang is logged and replaced by the fallback.
func NewTranslator(dir, lang string, logger *slog.Logger) (*Translator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	t := &Translator{
		tables: make(map[string]map[string]string),
		logger: logger.With("component", "i18n"),
	}
	if err := t.loadDir(dir); err != nil {
		return nil, err
	}
	if len(t.tables) == 0 {
		return nil, fmt.Errorf("no translation tables found in %s", dir)
	}

	lang = strings.ToLower(lang)
	if _, ok := t.tables[lang]; !ok {
		t.logger.Warn("language not available, using fallback", "language", lang, "fallback", FallbackLanguage)
		lang = FallbackLanguage
	}
	t.current = lang
	t.logger.Info("translations loaded", "languages", len(t.tables), "active", lang)
	return t, nil
}

func (t *Translator) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading translations dir: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "addarr.") {
			continue
		}
		if !strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml") {
			continue
		}
		if err := t.loadFile(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

// loadFile parses one table. The document's single top-level key is the
// language code; nested maps flatten to dotted keys.
func (t *Translator) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}

	for lang, tree := range doc {
		table := make(map[string]string)
		flatten("", tree, table)
		t.tables[strings.ToLower(lang)] = table
	}
	return nil
}

func flatten(prefix string, node any, out map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			flatten(joinKey(prefix, key), child, out)
		}
	case []any:
		for i, child := range v {
			flatten(joinKey(prefix, fmt.Sprintf("%d", i)), child, out)
		}
	default:
		out[prefix] = fmt.Sprintf("%v", v)
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Get resolves key in the active language, falling back to en-us and
// finally to the key itself. Placeholders of the form %(name)s are
// replaced from args.
func (t *Translator) Get(key string, args map[string]string) string {
	t.mu.RLock()
	msg, ok := t.tables[t.current][key]
	if !ok {
		msg, ok = t.tables[FallbackLanguage][key]
	}
	t.mu.RUnlock()

	if !ok {
		return key
	}
	for name, value := range args {
		msg = strings.ReplaceAll(msg, "%("+name+")s", value)
	}
	return msg
}

// Language returns the active language code
func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// SetLanguage switches the active language. Unknown codes are rejected.
func (t *Translator) SetLanguage(lang string) error {
	lang = strings.ToLower(lang)
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.tables[lang]; !ok {
		return fmt.Errorf("language %q not loaded", lang)
	}
	t.current = lang
	return nil
}

// Languages returns the loaded language codes, sorted
func (t *Translator) Languages() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	langs := make([]string, 0, len(t.tables))
	for lang := range t.tables {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Validate reports, per language, the keys present in the fallback table
// but missing from that language's table. An empty map means every table
// is complete.
func (t *Translator) Validate() map[string][]string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	base, ok := t.tables[FallbackLanguage]
	if !ok {
		return map[string][]string{FallbackLanguage: {"(table missing)"}}
	}

	missing := make(map[string][]string)
	for lang, table := range t.tables {
		if lang == FallbackLanguage {
			continue
		}
		for key := range base {
			if _, ok := table[key]; !ok {
				missing[lang] = append(missing[lang], key)
			}
		}
		sort.Strings(missing[lang])
	}
	return missing
}
