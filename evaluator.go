package sections

import "time"

// EvalContext carries the inputs for evaluating an expression against a
// section: the resolved option map plus caller-supplied arguments.
type EvalContext struct {
	Section  string
	Options  map[string]any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
}

func (ctx EvalContext) withDefaultNow() EvalContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx EvalContext) withDefaultMaps() EvalContext {
	if ctx.Options == nil {
		ctx.Options = map[string]any{}
	}
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx EvalContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx EvalContext) sectionLabel() string {
	if ctx.Section != "" {
		return ctx.Section
	}
	return "unknown"
}

// optionString returns the resolved option value as a string, or ""
// when absent. Accessor helpers in expression environments use it.
func (ctx EvalContext) optionString(name string) string {
	value, ok := ctx.Options[normalizeOption(name)]
	if !ok {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return ""
}

// Evaluator executes expressions against an evaluation context.
type Evaluator interface {
	Evaluate(ctx EvalContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx EvalContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// accessorEnv builds the typed option accessors shared by the expr and
// JS environments.
func accessorEnv(ctx EvalContext) map[string]any {
	return map[string]any{
		"get": func(name string) string {
			return ctx.optionString(name)
		},
		"getInt": func(name string) (int64, error) {
			return AsInt(ctx.optionString(name))
		},
		"getFloat": func(name string) (float64, error) {
			return AsFloat(ctx.optionString(name))
		},
		"getBool": func(name string) (bool, error) {
			return AsBool(ctx.optionString(name))
		},
	}
}
