package sections

import (
	"sort"
	"strings"
)

// DefaultSection is the name of the fallback section whose options are
// visible to every other section unless shadowed locally.
const DefaultSection = "DEFAULTS"

// StoreOption configures resolver collaborators on a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	functions    *FunctionRegistry
	evaluator    Evaluator
	programCache ProgramCache
	logger       ResolveLogger
	converters   *Converters
}

// WithFunctionRegistry attaches the capability table consulted by
// dynamic-callable resolution and expression evaluators.
func WithFunctionRegistry(registry *FunctionRegistry) StoreOption {
	return func(cfg *storeConfig) {
		if registry == nil {
			return
		}
		cfg.functions = registry.Clone()
	}
}

// WithEvaluator selects the expression engine used by View.Eval. The
// expr engine is constructed lazily when none is configured.
func WithEvaluator(e Evaluator) StoreOption {
	return func(cfg *storeConfig) {
		cfg.evaluator = e
	}
}

// WithProgramCache stores compiled expression programs between calls.
func WithProgramCache(cache ProgramCache) StoreOption {
	return func(cfg *storeConfig) {
		cfg.programCache = cache
	}
}

// WithResolveLogger records resolution events. Resolution itself never
// logs; the logger observes outcomes only.
func WithResolveLogger(logger ResolveLogger) StoreOption {
	return func(cfg *storeConfig) {
		if logger == nil {
			cfg.logger = noopResolveLogger{}
			return
		}
		cfg.logger = logger
	}
}

// WithConverters replaces the built-in conversion registry.
func WithConverters(converters *Converters) StoreOption {
	return func(cfg *storeConfig) {
		if converters == nil {
			return
		}
		cfg.converters = converters
	}
}

type optionMap struct {
	keys   []string
	values map[string]string
}

func newOptionMap() *optionMap {
	return &optionMap{values: make(map[string]string)}
}

func (m *optionMap) set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *optionMap) lookup(key string) (string, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m *optionMap) options() []string {
	return append([]string(nil), m.keys...)
}

// Store holds the raw, unresolved section/option/value document. It is
// built once by the embedding application (the document parser is an
// external collaborator) and treated as read-only by every resolver
// operation, so concurrent readers need no synchronisation.
type Store struct {
	names    []string
	sections map[string]*optionMap
	defaults *optionMap
	cfg      storeConfig
}

// NewStore constructs an empty store.
func NewStore(opts ...StoreOption) *Store {
	cfg := storeConfig{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.converters == nil {
		cfg.converters = defaultConverters
	}
	return &Store{
		sections: make(map[string]*optionMap),
		defaults: newOptionMap(),
		cfg:      cfg,
	}
}

// derive constructs an empty store sharing this store's collaborators
// (registry, evaluator, cache, logger). Component construction uses it
// to build per-component stores.
func (st *Store) derive() *Store {
	return &Store{
		sections: make(map[string]*optionMap),
		defaults: newOptionMap(),
		cfg:      st.cfg,
	}
}

func normalizeOption(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Set records a raw value. Option names are case-normalized; section
// names are case-sensitive and keep first-seen order. Setting under
// DefaultSection populates the fallback section.
func (st *Store) Set(section, option, value string) {
	key := normalizeOption(option)
	if section == DefaultSection {
		st.defaults.set(key, value)
		return
	}
	target, ok := st.sections[section]
	if !ok {
		target = newOptionMap()
		st.sections[section] = target
		st.names = append(st.names, section)
	}
	target.set(key, value)
}

// SetSection records every entry of options under section, sorted by
// key so repeated construction is deterministic.
func (st *Store) SetSection(section string, options map[string]string) {
	keys := make([]string, 0, len(options))
	for key := range options {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		st.Set(section, key, options[key])
	}
}

// AddSection registers an empty section so it participates in group
// traversal even before any option is set.
func (st *Store) AddSection(section string) {
	if section == DefaultSection {
		return
	}
	if _, ok := st.sections[section]; ok {
		return
	}
	st.sections[section] = newOptionMap()
	st.names = append(st.names, section)
}

// SectionNames returns every section name in insertion order, excluding
// DEFAULTS.
func (st *Store) SectionNames() []string {
	return append([]string(nil), st.names...)
}

// HasSection reports whether section exists. DEFAULTS always exists.
func (st *Store) HasSection(section string) bool {
	if section == DefaultSection {
		return true
	}
	_, ok := st.sections[section]
	return ok
}

// Section binds a lightweight view to section. Construction always
// succeeds; a missing section surfaces on first access.
func (st *Store) Section(section string) *View {
	return &View{store: st, name: section}
}

// Group binds a process-group view whose clients option enumerates the
// sections it owns.
func (st *Store) Group(section string) *Group {
	return &Group{View: st.Section(section)}
}

// Defaults returns the option names of the DEFAULTS section.
func (st *Store) Defaults() []string {
	return st.defaults.options()
}

// lookup walks the two-level fallback chain: section-local first, then
// DEFAULTS. source names the section that satisfied the lookup.
func (st *Store) lookup(section, option string) (value, source string, ok bool) {
	key := normalizeOption(option)
	if section != DefaultSection {
		if m, exists := st.sections[section]; exists {
			if v, found := m.lookup(key); found {
				return v, section, true
			}
		}
	}
	if v, found := st.defaults.lookup(key); found {
		return v, DefaultSection, true
	}
	return "", "", false
}

// optionNames returns the effective option names visible from section:
// local options in insertion order followed by unshadowed defaults.
func (st *Store) optionNames(section string) []string {
	var names []string
	seen := make(map[string]struct{})
	if m, ok := st.sections[section]; ok {
		for _, key := range m.keys {
			names = append(names, key)
			seen[key] = struct{}{}
		}
	}
	for _, key := range st.defaults.keys {
		if _, dup := seen[key]; dup {
			continue
		}
		names = append(names, key)
	}
	return names
}
