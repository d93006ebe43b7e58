package sections

import (
	"fmt"
	"time"
)

// Eval resolves every option of the section and evaluates expression
// against the result using the store's configured engine (expr by
// default). Malformed options are left out of the environment so one
// bad value cannot poison unrelated expressions.
func (v *View) Eval(expression string) (any, error) {
	return v.EvalWith(v.evalContext(), expression)
}

// EvalOption reads option, interpolates it, and evaluates the resulting
// string as an expression. This is how computed options are declared in
// the document itself.
func (v *View) EvalOption(option string) (any, error) {
	expression, err := v.Get(option)
	if err != nil {
		return nil, err
	}
	return v.EvalWith(v.evalContext(), expression)
}

// EvalWith evaluates expression against a caller-assembled context,
// filling the section option map when ctx leaves it nil.
func (v *View) EvalWith(ctx EvalContext, expression string) (any, error) {
	if expression == "" {
		return nil, fmt.Errorf("sections: expression must not be empty")
	}
	evaluator := v.store.resolveEvaluator()
	if evaluator == nil {
		return nil, fmt.Errorf("sections: evaluator not configured")
	}
	if ctx.Options == nil {
		ctx = v.evalContext()
	}
	if ctx.Section == "" {
		ctx.Section = v.name
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()

	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, err := evaluator.Evaluate(ctx, expression)
	duration := time.Since(start)
	err = wrapEvaluationError(engine, expression, ctx.sectionLabel(), err)
	v.store.logger().LogResolve(ResolveEvent{
		Section:  v.name,
		Kind:     "expression",
		Engine:   engine,
		Duration: duration,
		Err:      err,
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// evalContext resolves the section's visible options into an expression
// environment. Options that fail to interpolate are skipped; errors
// stay scoped to direct accessors.
func (v *View) evalContext() EvalContext {
	options := make(map[string]any)
	for _, key := range v.Options() {
		value, err := v.store.resolveOption(v.name, key, nil)
		if err != nil {
			continue
		}
		options[key] = value
	}
	return EvalContext{Section: v.name, Options: options}
}

// resolveEvaluator returns the configured engine or assembles the
// default expr engine from the store's cache and registry.
func (st *Store) resolveEvaluator() Evaluator {
	if st.cfg.evaluator != nil {
		return st.cfg.evaluator
	}
	var exprOpts []ExprEvaluatorOption
	if st.cfg.programCache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(st.cfg.programCache))
	}
	if st.cfg.functions != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(st.cfg.functions))
	}
	return NewExprEvaluator(exprOpts...)
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*sections.exprEvaluator":
		return "expr"
	case "*sections.celEvaluator":
		return "cel"
	case "*sections.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
