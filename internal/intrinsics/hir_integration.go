package intrinsics

import (
	"fmt"
)

// Placeholder types for HIR integration (to be replaced with actual HIR types).
type CallExpression struct {
	Function  interface{}
	Arguments []interface{}
}

type NameExpression struct {
	Name string
}

type IRBuilder struct{}

type Value struct {
	typ  interface{}
	data interface{}
}

func (v *Value) Type() interface{} {
	return v.typ
}

// HIRIntrinsicIntegration handles integration of intrinsics with HIR.
type HIRIntrinsicIntegration struct {
	registry       *IntrinsicRegistry
	externRegistry *ExternRegistry
}

// NewHIRIntrinsicIntegration creates a new HIR intrinsic integration.
func NewHIRIntrinsicIntegration() *HIRIntrinsicIntegration {
	return &HIRIntrinsicIntegration{
		registry:       GlobalIntrinsicRegistry,
		externRegistry: GlobalExternRegistry,
	}
}

// ProcessIntrinsicCall processes an intrinsic function call in HIR.
func (hii *HIRIntrinsicIntegration) ProcessIntrinsicCall(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if call.Function == nil {
		return nil, fmt.Errorf("intrinsic call has no function")
	}

	// Get function name.
	funcName := ""
	if nameExpr, ok := call.Function.(*NameExpression); ok {
		funcName = nameExpr.Name
	} else {
		return nil, fmt.Errorf("intrinsic call function is not a name expression")
	}

	// Check if it's an intrinsic.
	if intrinsic, exists := hii.registry.Lookup(funcName); exists {
		return hii.processIntrinsic(intrinsic, call, builder)
	}

	// Check if it's an external function.
	if extern, exists := hii.externRegistry.Lookup(funcName); exists {
		return hii.processExtern(extern, call, builder)
	}

	return nil, fmt.Errorf("unknown intrinsic or extern function: %s", funcName)
}

// processIntrinsic processes a compiler intrinsic.
func (hii *HIRIntrinsicIntegration) processIntrinsic(
	intrinsic *IntrinsicInfo,
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	switch intrinsic.Kind {
	// Memory management intrinsics.
	case IntrinsicAlloc:
		return hii.processAllocIntrinsic(call, builder)
	case IntrinsicFree:
		return hii.processFreeIntrinsic(call, builder)
	case IntrinsicRealloc:
		return hii.processReallocIntrinsic(call, builder)
	case IntrinsicMemcpy:
		return hii.processMemcpyIntrinsic(call, builder)
	case IntrinsicMemset:
		return hii.processMemsetIntrinsic(call, builder)

	// Atomic operations.
	case IntrinsicAtomicLoad:
		return hii.processAtomicLoadIntrinsic(call, builder)
	case IntrinsicAtomicStore:
		return hii.processAtomicStoreIntrinsic(call, builder)
	case IntrinsicAtomicCAS:
		return hii.processAtomicCASIntrinsic(call, builder)

	// Bit operations.
	case IntrinsicCtlz:
		return hii.processCTLZIntrinsic(call, builder)
	case IntrinsicCttz:
		return hii.processCTTZIntrinsic(call, builder)
	case IntrinsicPopcount:
		return hii.processPopcountIntrinsic(call, builder)

	// Arithmetic with overflow.
	case IntrinsicAddOverflow:
		return hii.processAddOverflowIntrinsic(call, builder)
	case IntrinsicSubOverflow:
		return hii.processSubOverflowIntrinsic(call, builder)
	case IntrinsicMulOverflow:
		return hii.processMulOverflowIntrinsic(call, builder)

	// Compiler magic.
	case IntrinsicSizeof:
		return hii.processSizeofIntrinsic(call, builder)
	case IntrinsicAlignof:
		return hii.processAlignofIntrinsic(call, builder)
	case IntrinsicUnreachable:
		return hii.processUnreachableIntrinsic(call, builder)

	default:
		return nil, fmt.Errorf("unsupported intrinsic: %s", intrinsic.Name)
	}
}

// processExtern processes an external function call.
func (hii *HIRIntrinsicIntegration) processExtern(
	extern *ExternInfo,
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	// Create placeholder external call.
	// In real implementation, this would create HIR external call instruction.
	return &Value{typ: "extern_call", data: extern.Name}, nil
}

// Placeholder implementations for intrinsic processing.
func (hii *HIRIntrinsicIntegration) processAllocIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 1 {
		return nil, fmt.Errorf("alloc intrinsic requires exactly 1 argument")
	}

	return &Value{typ: "ptr", data: "alloc_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processFreeIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 1 {
		return nil, fmt.Errorf("free intrinsic requires exactly 1 argument")
	}

	return &Value{typ: "void", data: nil}, nil
}

func (hii *HIRIntrinsicIntegration) processReallocIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 2 {
		return nil, fmt.Errorf("realloc intrinsic requires exactly 2 arguments")
	}

	return &Value{typ: "ptr", data: "realloc_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processMemcpyIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 3 {
		return nil, fmt.Errorf("memcpy intrinsic requires exactly 3 arguments")
	}

	return &Value{typ: "ptr", data: "memcpy_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processMemsetIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 3 {
		return nil, fmt.Errorf("memset intrinsic requires exactly 3 arguments")
	}

	return &Value{typ: "ptr", data: "memset_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processAtomicLoadIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 1 {
		return nil, fmt.Errorf("atomic_load intrinsic requires exactly 1 argument")
	}

	return &Value{typ: "atomic_value", data: "atomic_load_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processAtomicStoreIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 2 {
		return nil, fmt.Errorf("atomic_store intrinsic requires exactly 2 arguments")
	}

	return &Value{typ: "void", data: nil}, nil
}

func (hii *HIRIntrinsicIntegration) processAtomicCASIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 3 {
		return nil, fmt.Errorf("atomic_cas intrinsic requires exactly 3 arguments")
	}

	return &Value{typ: "bool", data: "cas_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processCTLZIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 1 {
		return nil, fmt.Errorf("ctlz intrinsic requires exactly 1 argument")
	}

	return &Value{typ: "i32", data: "ctlz_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processCTTZIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 1 {
		return nil, fmt.Errorf("cttz intrinsic requires exactly 1 argument")
	}

	return &Value{typ: "i32", data: "cttz_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processPopcountIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 1 {
		return nil, fmt.Errorf("popcount intrinsic requires exactly 1 argument")
	}

	return &Value{typ: "i32", data: "popcount_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processAddOverflowIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 2 {
		return nil, fmt.Errorf("add_overflow intrinsic requires exactly 2 arguments")
	}

	return &Value{typ: "overflow_result", data: "add_overflow_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processSubOverflowIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 2 {
		return nil, fmt.Errorf("sub_overflow intrinsic requires exactly 2 arguments")
	}

	return &Value{typ: "overflow_result", data: "sub_overflow_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processMulOverflowIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 2 {
		return nil, fmt.Errorf("mul_overflow intrinsic requires exactly 2 arguments")
	}

	return &Value{typ: "overflow_result", data: "mul_overflow_result"}, nil
}

func (hii *HIRIntrinsicIntegration) processSizeofIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 1 {
		return nil, fmt.Errorf("sizeof intrinsic requires exactly 1 argument")
	}
	// Calculate size at compile time (placeholder).
	return &Value{typ: "usize", data: 8}, nil
}

func (hii *HIRIntrinsicIntegration) processAlignofIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 1 {
		return nil, fmt.Errorf("alignof intrinsic requires exactly 1 argument")
	}
	// Calculate alignment at compile time (placeholder).
	return &Value{typ: "usize", data: 8}, nil
}

func (hii *HIRIntrinsicIntegration) processUnreachableIntrinsic(
	call *CallExpression,
	builder *IRBuilder,
) (*Value, error) {
	if len(call.Arguments) != 0 {
		return nil, fmt.Errorf("unreachable intrinsic requires no arguments")
	}

	return &Value{typ: "never", data: nil}, nil
}

// IsIntrinsicCall checks if a call expression is an intrinsic.
func IsIntrinsicCall(call *CallExpression) bool {
	if call.Function == nil {
		return false
	}

	if nameExpr, ok := call.Function.(*NameExpression); ok {
		return IsIntrinsic(nameExpr.Name) || IsExtern(nameExpr.Name)
	}

	return false
}
