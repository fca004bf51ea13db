package hir

// =============================================================================
// Effect Types Implementation and Utilities
// =============================================================================

// Effect type checking and inference utilities

// InferEffectType infers the effect type of an expression
func InferEffectType(expr HIRExpression) (*AdvancedEffectType, error) {
	// Implementation for effect type inference
	return nil, nil
}

// ComposeEffects composes multiple effects into a single effect type
func ComposeEffects(effects []AdvancedEffect) (*AdvancedEffectType, error) {
	// Implementation for effect composition
	return nil, nil
}

// CheckEffectConstraints validates effect constraints
func CheckEffectConstraints(constraints []EffectConstraint, context *EffectContext) error {
	// Implementation for effect constraint checking
	return nil
}

// HandleEffect applies an effect handler to transform effects
func HandleEffect(effect *AdvancedEffectType, handler *EffectHandler) (*AdvancedEffectType, error) {
	// Implementation for effect handling
	return nil, nil
}

// =============================================================================
// Effect Context Management
// =============================================================================

// EffectContext represents the context for effect type checking
type EffectContext struct {
	AvailableEffects []AdvancedEffect
	Handlers         map[string]*EffectHandler
	Capabilities     []Capability
	Restrictions     []EffectRestriction
	Scope            EffectScopeForContext
}

// EffectScopeForContext represents the scope of effect availability
type EffectScopeForContext struct {
	Level         int
	Parent        *EffectScopeForContext
	LocalBindings map[string]AdvancedEffect
}

// EffectRestriction represents restrictions on effect usage
type EffectRestriction struct {
	EffectName string
	Kind       RestrictionKind
	Condition  HIRExpression
	Message    string
}

// RestrictionKind represents kinds of effect restrictions
type RestrictionKind int

const (
	RestrictionForbidden RestrictionKind = iota
	RestrictionRequired
	RestrictionConditional
	RestrictionLimited
)

// CreateEffectContext creates a new effect checking context
func CreateEffectContext() *EffectContext {
	return &EffectContext{
		AvailableEffects: []AdvancedEffect{},
		Handlers:         make(map[string]*EffectHandler),
		Capabilities:     []Capability{},
		Restrictions:     []EffectRestriction{},
		Scope:            EffectScopeForContext{Level: 0, LocalBindings: make(map[string]AdvancedEffect)},
	}
}

// EnterEffectScope enters a new effect scope
func (ctx *EffectContext) EnterEffectScope() {
	newScope := EffectScopeForContext{
		Level:         ctx.Scope.Level + 1,
		Parent:        &ctx.Scope,
		LocalBindings: make(map[string]AdvancedEffect),
	}
	ctx.Scope = newScope
}

// ExitEffectScope exits the current effect scope
func (ctx *EffectContext) ExitEffectScope() {
	if ctx.Scope.Parent != nil {
		ctx.Scope = *ctx.Scope.Parent
	}
}

// AddEffectHandler adds an effect handler to the context
func (ctx *EffectContext) AddEffectHandler(name string, handler *EffectHandler) {
	ctx.Handlers[name] = handler
}

// LookupEffectHandler looks up an effect handler by name
func (ctx *EffectContext) LookupEffectHandler(name string) (*EffectHandler, bool) {
	handler, exists := ctx.Handlers[name]
	return handler, exists
}

// =============================================================================
// Effect Type Analysis
// =============================================================================

// AnalyzeEffectPurity analyzes the purity of an effect type
func AnalyzeEffectPurity(effectType *AdvancedEffectType) PurityLevel {
	// Implementation for purity analysis
	return PurityPure
}

// CheckEffectCompatibility checks if two effect types are compatible
func CheckEffectCompatibility(effect1, effect2 *AdvancedEffectType) bool {
	// Implementation for effect compatibility checking
	return false
}

// SimplifyEffectType simplifies an effect type by removing redundant effects
func SimplifyEffectType(effectType *AdvancedEffectType) *AdvancedEffectType {
	// Implementation for effect type simplification
	return effectType
}

// MergeEffectTypes merges multiple effect types into one
func MergeEffectTypes(effectTypes []*AdvancedEffectType) (*AdvancedEffectType, error) {
	// Implementation for effect type merging
	return nil, nil
}

// =============================================================================
// Effect Operation Implementation
// =============================================================================

// ExecuteEffectOperation executes an effect operation with given parameters
func ExecuteEffectOperation(op *EffectOperation, params []HIRExpression, context *EffectContext) (HIRExpression, error) {
	// Implementation for effect operation execution
	return nil, nil
}

// ValidateEffectOperation validates an effect operation
func ValidateEffectOperation(op *EffectOperation, context *EffectContext) error {
	// Implementation for effect operation validation
	return nil
}

// CompileEffectOperation compiles an effect operation to target code
func CompileEffectOperation(op *EffectOperation, target CompilationTarget) ([]byte, error) {
	// Implementation for effect operation compilation
	return nil, nil
}

// CompilationTarget represents different compilation targets
type CompilationTarget int

const (
	TargetLLVM CompilationTarget = iota
	TargetWASM
	TargetNative
	TargetInterpreted
)

// =============================================================================
// Effect Handler Implementation
// =============================================================================

// InstallEffectHandler installs an effect handler in the runtime
func InstallEffectHandler(handler *EffectHandler, context *EffectContext) error {
	// Implementation for effect handler installation
	return nil
}

// UninstallEffectHandler removes an effect handler from the runtime
func UninstallEffectHandler(handlerName string, context *EffectContext) error {
	// Implementation for effect handler removal
	return nil
}

// ComposeEffectHandlers composes multiple effect handlers
func ComposeEffectHandlers(handlers []*EffectHandler) (*EffectHandler, error) {
	// Implementation for effect handler composition
	return nil, nil
}

// TransformEffectHandler transforms an effect handler according to a transformation
func TransformEffectHandler(handler *EffectHandler, transform *HandlerTransform) (*EffectHandler, error) {
	// Implementation for effect handler transformation
	return nil, nil
}

// =============================================================================
// Effect Transformation Utilities
// =============================================================================

// ApplyEffectTransform applies an effect transformation
func ApplyEffectTransform(transform *EffectTransform, source []AdvancedEffect) ([]AdvancedEffect, error) {
	// Implementation for effect transformation application
	return nil, nil
}

// ValidateEffectTransform validates an effect transformation
func ValidateEffectTransform(transform *EffectTransform) error {
	// Implementation for effect transformation validation
	return nil
}

// OptimizeEffectTransform optimizes an effect transformation
func OptimizeEffectTransform(transform *EffectTransform) *EffectTransform {
	// Implementation for effect transformation optimization
	return transform
}

// CompileEffectTransform compiles an effect transformation
func CompileEffectTransform(transform *EffectTransform, target CompilationTarget) ([]byte, error) {
	// Implementation for effect transformation compilation
	return nil, nil
}
