package sections

// ProgramCache stores compiled expression programs keyed by expression
// strings. Resolved option values are never cached; only compiled
// programs are.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}
