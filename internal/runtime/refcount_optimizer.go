// Package runtime provides reference counting optimization for memory management.
// This module implements sophisticated reference counting strategies to minimize
// overhead while maintaining memory safety in a garbage collection-free environment.
package runtime

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"
)

// RefCountOptimizer manages reference counting optimizations
type RefCountOptimizer struct {
	mutex            sync.RWMutex
	objects          map[ObjectID]*RefCountedObject // Tracked objects
	strategies       map[string]RefCountStrategy    // Available strategies
	statistics       RefCountStatistics             // Optimization statistics
	config           RefCountConfig                 // Configuration
	cycles           map[CycleID]*ReferenceCycle    // Detected cycles
	weakRefs         map[ObjectID][]*WeakRef        // Weak references
	cycleBuster      *CycleBreaker                  // Cycle breaking system
	optimizer        *CountOptimizer                // Count optimization engine
	enabled          bool                           // Optimizer enabled
	lastOptimization time.Time                      // Last optimization run
}

// RefCountedObject represents an object with reference counting
type RefCountedObject struct {
	ID                ObjectID            // Unique identifier
	Data              interface{}         // Object data
	RefCount          int64               // Atomic reference count
	WeakCount         int64               // Atomic weak reference count
	Type              *TypeInfo           // Object type information
	Size              uintptr             // Object size
	CreatedAt         time.Time           // Creation timestamp
	LastAccess        time.Time           // Last access timestamp
	Strategy          RefCountStrategy    // Reference counting strategy
	Flags             ObjectFlags         // Object flags
	Children          []*RefCountedObject // Child objects
	Parent            *RefCountedObject   // Parent object
	CycleInfo         *CycleInfo          // Cycle detection info
	OptimizationHints []OptimizationHint  // Optimization hints
	AccessPattern     AccessPattern       // Access pattern analysis
	Allocator         *RegionAllocator    // Allocator used
	Region            *Region             // Containing region
}

// RefCountStrategy defines different reference counting strategies
type RefCountStrategy interface {
	GetName() string                                                // Strategy name
	GetPriority() int                                               // Strategy priority
	CanOptimize(obj *RefCountedObject, pattern *AccessPattern) bool // Check if object can be optimized
	Optimize(obj *RefCountedObject, hint OptimizationHint) error    // Apply optimization
}

// ObjectFlags represents flags for reference counted objects
type ObjectFlags int64

const (
	FlagNone             ObjectFlags = 0
	FlagCyclic           ObjectFlags = 1 << 0  // Object is part of a cycle
	FlagWeak             ObjectFlags = 1 << 1  // Object has weak references
	FlagImmutable        ObjectFlags = 1 << 2  // Object is immutable
	FlagShared           ObjectFlags = 1 << 3  // Object is shared between threads
	FlagLargeObject      ObjectFlags = 1 << 4  // Large object (>64KB)
	FlagHotPath          ObjectFlags = 1 << 5  // Object used in hot code path
	FlagOptimized        ObjectFlags = 1 << 6  // Object has been optimized
	FlagSkipCycleCheck   ObjectFlags = 1 << 7  // Skip cycle detection
	FlagStackAllocatable ObjectFlags = 1 << 8  // Can be stack allocated
	FlagRegionAllocated  ObjectFlags = 1 << 9  // Allocated in region
	FlagDeferred         ObjectFlags = 1 << 10 // Deferred reference counting
)

// AccessPattern tracks object access patterns
type AccessPattern struct {
	ReadCount      int64     // Number of reads
	WriteCount     int64     // Number of writes
	RefIncrements  int64     // Reference increments
	RefDecrements  int64     // Reference decrements
	LastRead       time.Time // Last read timestamp
	LastWrite      time.Time // Last write timestamp
	LastRefChange  time.Time // Last reference change
	HotPathAccess  bool      // Accessed in hot path
	Frequency      float64   // Access frequency
	Predictability float64   // Access predictability
	CacheLocality  float64   // Cache locality score
}

// ReferenceCycle represents a detected reference cycle
type ReferenceCycle struct {
	ID       CycleID             // Unique identifier
	Objects  []*RefCountedObject // Objects in cycle
	Edges    []*ReferenceEdge    // Reference edges
	Strength float64             // Cycle strength
	Detected time.Time           // Detection timestamp
	Broken   bool                // Cycle has been broken
	Strategy CycleBreakStrategy  // Breaking strategy
	Cost     float64             // Breaking cost
}

// ReferenceEdge represents a reference between objects
type ReferenceEdge struct {
	ID       EdgeID            // Unique identifier
	From     *RefCountedObject // Source object
	To       *RefCountedObject // Target object
	Type     ReferenceType     // Type of reference
	Strength float64           // Reference strength
	Weak     bool              // Is weak reference
	Count    int64             // Reference count contribution
}

// WeakRef represents a weak reference to an object
type WeakRef struct {
	ID       WeakRefID         // Unique identifier
	Target   *RefCountedObject // Target object
	Callback WeakRefCallback   // Callback when target is deallocated
	Valid    bool              // Reference is still valid
	Created  time.Time         // Creation timestamp
}

// CycleInfo contains cycle detection information
type CycleInfo struct {
	InCycle        bool      // Object is part of a cycle
	CycleID        CycleID   // Cycle identifier
	CycleDepth     int       // Depth in cycle
	LastCheck      time.Time // Last cycle check
	CheckCount     int64     // Number of cycle checks
	BreakCandidate bool      // Candidate for cycle breaking
}

// OptimizationHint provides hints for optimization
type OptimizationHint struct {
	Type       HintType    // Type of hint
	Value      interface{} // Hint value
	Confidence float64     // Confidence in hint
	Source     string      // Source of hint
	Applicable bool        // Hint is applicable
}

// CycleBreaker handles reference cycle detection and breaking
type CycleBreaker struct {
	mutex         sync.RWMutex
	cycles        map[CycleID]*ReferenceCycle // Detected cycles
	strategies    []CycleBreakStrategy        // Breaking strategies
	detector      *CycleDetector              // Cycle detection engine
	statistics    CycleStatistics             // Cycle statistics
	config        CycleConfig                 // Configuration
	lastDetection time.Time                   // Last detection run
	enabled       bool                        // Cycle breaking enabled
}

// CountOptimizer optimizes reference counting operations
type CountOptimizer struct {
	mutex           sync.RWMutex
	optimizations   map[ObjectID]*CountOptimization // Applied optimizations
	deferredCounts  map[ObjectID]*DeferredCount     // Deferred count operations
	batchOperations *BatchOperations                // Batched operations
	statistics      OptimizationStatistics          // Optimization statistics
	config          OptimizationConfig              // Configuration
	enabled         bool                            // Optimizer enabled
}

// Type definitions
type (
	ObjectID        uint64                  // Object identifier
	CycleID         uint64                  // Cycle identifier
	WeakRefID       uint64                  // Weak reference identifier
	WeakRefCallback func(*RefCountedObject) // Weak reference callback
)

// Reference counting types
type RefReferenceType int

const (
	StrongReference RefReferenceType = iota
	WeakRefType
	OwningReference
	BorrowedReference
	SharedReference
	UniqueReference
)

type CycleBreakStrategy int

const (
	WeakReferenceBreaking CycleBreakStrategy = iota
	DelayedDeallocation
	CopyOnWrite
	RefCountBatching
	CycleCollection
)

type HintType int

const (
	ImmutableHint HintType = iota
	ShortLivedHint
	LongLivedHint
	SharedHint
	HotPathHint
	StackAllocatableHint
)

// Statistics structures
type RefCountStatistics struct {
	TotalObjects      int64     // Total tracked objects
	ActiveObjects     int64     // Currently active objects
	TotalIncrements   int64     // Total reference increments
	TotalDecrements   int64     // Total reference decrements
	CyclesDetected    int64     // Cycles detected
	CyclesBroken      int64     // Cycles broken
	OptimizedObjects  int64     // Objects optimized
	OverheadReduction float64   // Overhead reduction percentage
	PerformanceGain   float64   // Performance gain percentage
	MemoryReduction   float64   // Memory reduction percentage
	LastUpdate        time.Time // Last statistics update
}

type CycleStatistics struct {
	TotalCycles    int64         // Total cycles detected
	BrokenCycles   int64         // Cycles successfully broken
	ActiveCycles   int64         // Currently active cycles
	AverageSize    float64       // Average cycle size
	DetectionTime  time.Duration // Time spent detecting cycles
	BreakingTime   time.Duration // Time spent breaking cycles
	FalsePositives int64         // False positive detections
	MissedCycles   int64         // Estimated missed cycles
}

type OptimizationStatistics struct {
	TotalOptimizations int64         // Total optimizations applied
	DeferredOperations int64         // Deferred operations count
	BatchedOperations  int64         // Batched operations count
	OptimizationTime   time.Duration // Time spent optimizing
	PerformanceGain    float64       // Performance gain percentage
	OverheadReduction  float64       // Overhead reduction percentage
}

// Configuration structures
type RefCountConfig struct {
	EnableOptimization     bool          // Enable optimizations
	EnableCycleDetection   bool          // Enable cycle detection
	EnableWeakReferences   bool          // Enable weak references
	MaxCycleDepth          int           // Maximum cycle detection depth
	OptimizationInterval   time.Duration // Optimization interval
	CycleDetectionInterval time.Duration // Cycle detection interval
	DeferredCountThreshold int64         // Threshold for deferred counting
	BatchSize              int           // Batch operation size
	PerformanceMode        bool          // Prioritize performance over memory
	DebugMode              bool          // Enable debug output
}

type CycleConfig struct {
	EnableDetection   bool               // Enable cycle detection
	EnableBreaking    bool               // Enable cycle breaking
	DetectionInterval time.Duration      // Detection interval
	MaxCycleSize      int                // Maximum cycle size to handle
	BreakingThreshold float64            // Threshold for breaking cycles
	PreferredStrategy CycleBreakStrategy // Preferred breaking strategy
	AllowWeakBreaking bool               // Allow breaking with weak references
	MaxBreakingCost   float64            // Maximum cost for breaking
}

type OptimizationConfig struct {
	EnableDeferred      bool  // Enable deferred counting
	EnableBatching      bool  // Enable batch operations
	EnableInlining      bool  // Enable operation inlining
	BatchSize           int   // Batch size
	DeferralThreshold   int64 // Deferral threshold
	OptimizationLevel   int   // Optimization aggressiveness
	HotPathOptimization bool  // Optimize hot paths
	CacheOptimization   bool  // Optimize for cache locality
}

// Operation structures
type CountOptimization struct {
	Object      *RefCountedObject // Target object
	Type        OptimizationType  // Optimization type
	Applied     bool              // Has been applied
	Benefit     float64           // Expected benefit
	Cost        float64           // Implementation cost
	Description string            // Optimization description
}

type DeferredCount struct {
	Object            *RefCountedObject // Target object
	PendingIncrements int64             // Pending increments
	PendingDecrements int64             // Pending decrements
	LastUpdate        time.Time         // Last update time
	FlushThreshold    int64             // Flush threshold
}

type BatchOperations struct {
	mutex         sync.Mutex
	increments    map[ObjectID]int64 // Batched increments
	decrements    map[ObjectID]int64 // Batched decrements
	batchSize     int                // Current batch size
	lastFlush     time.Time          // Last flush time
	flushInterval time.Duration      // Flush interval
}

type RefOptimizationType int

const (
	DeferredCounting RefOptimizationType = iota
	BatchedOperations
	InlinedOperations
	CacheOptimization
	HotPathOptimization
	CycleAvoidance
)

// Strategy implementations
type StandardRefCount struct {
	name     string
	priority int
}

func (s *StandardRefCount) GetName() string  { return s.name }
func (s *StandardRefCount) GetPriority() int { return s.priority }
func (s *StandardRefCount) CanOptimize(obj *RefCountedObject, pattern *AccessPattern) bool {
	return true // Standard strategy always applicable
}
func (s *StandardRefCount) Optimize(obj *RefCountedObject, hint OptimizationHint) error {
	return nil // Standard counting - no optimization needed
}

type DeferredRefCount struct {
	name      string
	priority  int
	threshold int64
}

func (d *DeferredRefCount) GetName() string  { return d.name }
func (d *DeferredRefCount) GetPriority() int { return d.priority }
func (d *DeferredRefCount) CanOptimize(obj *RefCountedObject, pattern *AccessPattern) bool {
	return pattern.WriteCount < d.threshold && pattern.ReadCount > pattern.WriteCount*2
}
func (d *DeferredRefCount) Optimize(obj *RefCountedObject, hint OptimizationHint) error {
	obj.Flags |= FlagDeferred
	return nil
}

type BatchedRefCount struct {
	name      string
	priority  int
	batchSize int
}

func (b *BatchedRefCount) GetName() string  { return b.name }
func (b *BatchedRefCount) GetPriority() int { return b.priority }
func (b *BatchedRefCount) CanOptimize(obj *RefCountedObject, pattern *AccessPattern) bool {
	return pattern.WriteCount > int64(b.batchSize)
}
func (b *BatchedRefCount) Optimize(obj *RefCountedObject, hint OptimizationHint) error {
	obj.Flags |= FlagDeferred // Use FlagDeferred as batched flag
	return nil
}

type WeakRefCount struct {
	name     string
	priority int
}

func (w *WeakRefCount) GetName() string  { return w.name }
func (w *WeakRefCount) GetPriority() int { return w.priority }
func (w *WeakRefCount) CanOptimize(obj *RefCountedObject, pattern *AccessPattern) bool {
	return obj.Flags&FlagCyclic != 0 // Apply to cyclic objects
}
func (w *WeakRefCount) Optimize(obj *RefCountedObject, hint OptimizationHint) error {
	obj.Flags |= FlagWeak
	return nil
}

type CycleDetector struct {
	mutex      sync.RWMutex
	visited    map[ObjectID]bool   // Visited objects
	path       []*RefCountedObject // Current path
	cycles     []*ReferenceCycle   // Detected cycles
	config     CycleConfig         // Configuration
	statistics CycleStatistics     // Statistics
}

// Default configurations
var DefaultRefCountConfig = RefCountConfig{
	EnableOptimization:     true,
	EnableCycleDetection:   true,
	EnableWeakReferences:   true,
	MaxCycleDepth:          20,
	OptimizationInterval:   time.Second * 10,
	CycleDetectionInterval: time.Second * 30,
	DeferredCountThreshold: 100,
	BatchSize:              50,
	PerformanceMode:        false,
	DebugMode:              false,
}

var DefaultCycleConfig = CycleConfig{
	EnableDetection:   true,
	EnableBreaking:    true,
	DetectionInterval: time.Second * 30,
	MaxCycleSize:      100,
	BreakingThreshold: 0.8,
	PreferredStrategy: WeakReferenceBreaking,
	AllowWeakBreaking: true,
	MaxBreakingCost:   0.5,
}

var DefaultOptimizationConfig = OptimizationConfig{
	EnableDeferred:      true,
	EnableBatching:      true,
	EnableInlining:      true,
	BatchSize:           50,
	DeferralThreshold:   10,
	OptimizationLevel:   2,
	HotPathOptimization: true,
	CacheOptimization:   true,
}

// NewRefCountOptimizer creates a new reference count optimizer
func NewRefCountOptimizer(config RefCountConfig) *RefCountOptimizer {
	optimizer := &RefCountOptimizer{
		objects:    make(map[ObjectID]*RefCountedObject),
		strategies: make(map[string]RefCountStrategy),
		cycles:     make(map[CycleID]*ReferenceCycle),
		weakRefs:   make(map[ObjectID][]*WeakRef),
		config:     config,
		enabled:    config.EnableOptimization,
	}

	// Register default strategies
	optimizer.registerStrategy(&StandardRefCount{name: "standard", priority: 100})
	optimizer.registerStrategy(&DeferredRefCount{name: "deferred", priority: 90, threshold: config.DeferredCountThreshold})
	optimizer.registerStrategy(&BatchedRefCount{name: "batched", priority: 80, batchSize: config.BatchSize})
	optimizer.registerStrategy(&WeakRefCount{name: "weak", priority: 70})

	// Initialize components
	optimizer.cycleBuster = NewCycleBreaker(DefaultCycleConfig)
	optimizer.optimizer = NewCountOptimizer(DefaultOptimizationConfig)

	return optimizer
}

// RegisterObject registers an object for reference counting
func (rco *RefCountOptimizer) RegisterObject(obj *RefCountedObject) error {
	if !rco.enabled {
		return nil
	}

	rco.mutex.Lock()
	defer rco.mutex.Unlock()

	// Select optimal strategy
	strategy := rco.selectStrategy(obj)
	obj.Strategy = strategy

	// Initialize reference count
	atomic.StoreInt64(&obj.RefCount, 1)
	obj.CreatedAt = time.Now()
	obj.LastAccess = time.Now()

	// Register object
	rco.objects[obj.ID] = obj
	atomic.AddInt64(&rco.statistics.TotalObjects, 1)
	atomic.AddInt64(&rco.statistics.ActiveObjects, 1)

	return nil
}

// AddReference adds a reference to an object
func (rco *RefCountOptimizer) AddReference(objectID ObjectID) error {
	if !rco.enabled {
		return fmt.Errorf("optimizer disabled")
	}

	rco.mutex.RLock()
	obj, exists := rco.objects[objectID]
	rco.mutex.RUnlock()

	if !exists {
		return fmt.Errorf("object not found: %d", objectID)
	}

	// Use atomic operations for reference counting
	atomic.AddInt64(&obj.RefCount, 1)

	// Update statistics
	atomic.AddInt64(&rco.statistics.TotalIncrements, 1)
	obj.LastAccess = time.Now()

	return nil
}

// RemoveReference removes a reference from an object
func (rco *RefCountOptimizer) RemoveReference(objectID ObjectID) error {
	if !rco.enabled {
		return fmt.Errorf("optimizer disabled")
	}

	rco.mutex.RLock()
	obj, exists := rco.objects[objectID]
	rco.mutex.RUnlock()

	if !exists {
		return fmt.Errorf("object not found: %d", objectID)
	}

	// Use atomic operations for reference counting
	count := atomic.AddInt64(&obj.RefCount, -1)
	if count < 0 {
		return fmt.Errorf("reference count went negative for object %d", obj.ID)
	}

	// Update statistics
	atomic.AddInt64(&rco.statistics.TotalDecrements, 1)
	obj.LastAccess = time.Now()

	// Check if object should be deallocated
	if count == 0 {
		return rco.deallocateObject(obj)
	}

	return nil
}

// GetReferenceCount returns the current reference count
func (rco *RefCountOptimizer) GetReferenceCount(objectID ObjectID) (int64, error) {
	rco.mutex.RLock()
	obj, exists := rco.objects[objectID]
	rco.mutex.RUnlock()

	if !exists {
		return 0, fmt.Errorf("object not found: %d", objectID)
	}

	return atomic.LoadInt64(&obj.RefCount), nil
}

// OptimizeObjects performs optimization on all registered objects
func (rco *RefCountOptimizer) OptimizeObjects() error {
	if !rco.enabled {
		return nil
	}

	startTime := time.Now()

	// Run cycle detection
	if rco.config.EnableCycleDetection {
		err := rco.cycleBuster.DetectCycles(rco.objects)
		if err != nil {
			return fmt.Errorf("cycle detection failed: %w", err)
		}
	}

	// Run count optimizations
	err := rco.optimizer.OptimizeCounts(rco.objects)
	if err != nil {
		return fmt.Errorf("count optimization failed: %w", err)
	}

	// Update statistics
	rco.statistics.LastUpdate = time.Now()
	rco.lastOptimization = time.Now()

	optimizationTime := time.Since(startTime)
	if rco.config.DebugMode {
		fmt.Printf("Optimization completed in %v\n", optimizationTime)
	}

	return nil
}

// Helper methods

// selectStrategy selects the best reference counting strategy for an object
func (rco *RefCountOptimizer) selectStrategy(obj *RefCountedObject) RefCountStrategy {
	// Analyze object characteristics
	if obj.Flags&FlagHotPath != 0 {
		// Hot path objects benefit from deferred counting
		return rco.strategies["deferred"]
	}

	if obj.Flags&FlagShared != 0 {
		// Shared objects may benefit from batching
		return rco.strategies["batched"]
	}

	if obj.Flags&FlagImmutable != 0 {
		// Immutable objects can use simplified counting
		return rco.strategies["weak"]
	}

	// Default to standard counting
	return rco.strategies["standard"]
}

// deallocateObject deallocates an object when its reference count reaches zero
func (rco *RefCountOptimizer) deallocateObject(obj *RefCountedObject) error {
	// Remove from tracking
	rco.mutex.Lock()
	delete(rco.objects, obj.ID)
	rco.mutex.Unlock()

	// Update statistics
	atomic.AddInt64(&rco.statistics.ActiveObjects, -1)

	// Deallocate from allocator
	if obj.Allocator != nil && obj.Region != nil {
		// Use region-based deallocation
		if ptr, ok := obj.Data.(unsafe.Pointer); ok {
			return obj.Region.Deallocate(ptr)
		}
	}

	return nil
}

// registerStrategy registers a reference counting strategy
func (rco *RefCountOptimizer) registerStrategy(strategy RefCountStrategy) {
	rco.mutex.Lock()
	defer rco.mutex.Unlock()

	rco.strategies[strategy.GetName()] = strategy
}

// Component constructors

// NewCycleBreaker creates a new cycle breaker
func NewCycleBreaker(config CycleConfig) *CycleBreaker {
	return &CycleBreaker{
		cycles:     make(map[CycleID]*ReferenceCycle),
		strategies: []CycleBreakStrategy{WeakReferenceBreaking, DelayedDeallocation},
		detector:   NewCycleDetector(config),
		config:     config,
		enabled:    config.EnableDetection,
	}
}

// NewCountOptimizer creates a new count optimizer
func NewCountOptimizer(config OptimizationConfig) *CountOptimizer {
	return &CountOptimizer{
		optimizations:  make(map[ObjectID]*CountOptimization),
		deferredCounts: make(map[ObjectID]*DeferredCount),
		batchOperations: &BatchOperations{
			increments:    make(map[ObjectID]int64),
			decrements:    make(map[ObjectID]int64),
			batchSize:     0,
			flushInterval: time.Millisecond * 100,
		},
		config:  config,
		enabled: config.EnableDeferred || config.EnableBatching,
	}
}

// NewCycleDetector creates a new cycle detector
func NewCycleDetector(config CycleConfig) *CycleDetector {
	return &CycleDetector{
		visited: make(map[ObjectID]bool),
		path:    make([]*RefCountedObject, 0),
		cycles:  make([]*ReferenceCycle, 0),
		config:  config,
	}
}

// DetectCycles detects reference cycles in the object graph
func (cb *CycleBreaker) DetectCycles(objects map[ObjectID]*RefCountedObject) error {
	if !cb.enabled {
		return nil
	}

	// Use the cycle detector
	for _, obj := range objects {
		if !cb.detector.visited[obj.ID] {
			err := cb.detector.detectCycleFrom(obj)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// OptimizeCounts optimizes reference counting operations
func (co *CountOptimizer) OptimizeCounts(objects map[ObjectID]*RefCountedObject) error {
	if !co.enabled {
		return nil
	}

	// Apply deferred counting optimizations
	if co.config.EnableDeferred {
		for _, obj := range objects {
			co.applyDeferredCounting(obj)
		}
	}

	// Apply batching optimizations
	if co.config.EnableBatching {
		co.flushBatchedOperations()
	}

	return nil
}

// Placeholder implementations for complex methods
func (cd *CycleDetector) detectCycleFrom(obj *RefCountedObject) error {
	// Complex cycle detection algorithm would go here
	return nil
}

func (co *CountOptimizer) applyDeferredCounting(obj *RefCountedObject) {
	// Complex deferred counting logic would go here
}

func (co *CountOptimizer) flushBatchedOperations() {
	// Complex batch flushing logic would go here
}
