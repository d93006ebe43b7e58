// Package sections resolves typed configuration values from a
// hierarchical, section-based key/value document.
//
// A Store holds the raw document: ordered sections of option/value
// pairs plus one DEFAULTS section whose options every other section
// inherits unless shadowed. Values may embed %(reference)s
// placeholders; references are expanded recursively and may themselves
// be computed, so %(base.%(opt)s)s first resolves opt and then looks up
// the assembled name. Escaped %% yields a literal percent.
//
// Resolution happens on demand through section Views:
//
//	store := sections.NewStore()
//	store.Set(sections.DefaultSection, "base.path", "/tmp/demo")
//	store.Set("watch", "path", "%(base.path)s/watch")
//
//	path, err := store.Section("watch").Get("path") // "/tmp/demo/watch"
//
// Views expose typed accessors (Int, Bool, List, Set, Bytes, Date,
// Duration, Rate, Callback, ...) over a named-kind conversion registry;
// each call interpolates afresh and nothing is cached, so concurrent
// readers share one immutable Store safely. Group traversal walks the
// conventional clients option into further Views, and Components
// materialise prefix.name.key groupings with mixin support.
//
// Expressions embedded in option values can be evaluated through the
// expr engine by default, or CEL and (behind the js_eval build tag)
// goja alternatives.
package sections
