// Package cloud provides distributed computing and cluster management capabilities.
// This package includes cluster orchestration, service mesh, distributed storage,
// and microservices coordination.
package cloud

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

// Node represents a node in a distributed system.
type Node struct {
	ID        string
	Name      string
	Address   net.IP
	Port      int
	Status    DistributedNodeStatus
	Resources NodeResources
	Services  []string
	Labels    map[string]string
	JoinedAt  time.Time
	LastSeen  time.Time
	mu        sync.RWMutex
}

// DistributedNodeStatus represents the status of a node.
type DistributedNodeStatus int

const (
	DistributedNodeStatusReady DistributedNodeStatus = iota
	DistributedNodeStatusNotReady
	DistributedNodeStatusUnknown
	DistributedNodeStatusTerminating
	DistributedNodeStatusMaintenance
)

// NodeResources represents the resources available on a node.
type NodeResources struct {
	CPU         float64 // CPU cores
	Memory      int64   // Memory in bytes
	Storage     int64   // Storage in bytes
	Network     int64   // Network bandwidth in bps
	UsedCPU     float64
	UsedMemory  int64
	UsedStorage int64
	UsedNetwork int64
}

// Cluster represents a distributed cluster.
type Cluster struct {
	ID        string
	Name      string
	Nodes     map[string]*Node
	LeaderID  string
	Status    ClusterStatus
	Config    ClusterConfig
	Services  map[string]*DistributedService
	CreatedAt time.Time
	mu        sync.RWMutex
}

// ClusterStatus represents the status of a cluster.
type ClusterStatus int

const (
	ClusterStatusForming ClusterStatus = iota
	ClusterStatusActive
	ClusterStatusDegraded
	ClusterStatusFailed
	ClusterStatusMaintenance
)

// ClusterConfig represents cluster configuration.
type ClusterConfig struct {
	MinNodes          int
	MaxNodes          int
	ReplicationFactor int
	HeartbeatInterval time.Duration
	ElectionTimeout   time.Duration
	AutoScaling       bool
	LoadBalancing     LoadBalancingStrategy
}

// LoadBalancingStrategy represents load balancing strategies.
type LoadBalancingStrategy int

const (
	RoundRobin LoadBalancingStrategy = iota
	LeastConnections
	WeightedRoundRobin
	IPHash
	ConsistentHash
)

// DistributedService represents a service running across multiple nodes.
type DistributedService struct {
	ID        string
	Name      string
	Version   string
	Type      DistributedServiceType
	Replicas  int
	Placement PlacementPolicy
	Instances map[string]*ServiceInstance
	Status    DistributedServiceStatus
	Config    ServiceConfig
	CreatedAt time.Time
	UpdatedAt time.Time
	mu        sync.RWMutex
}

// DistributedServiceType represents different service types.
type DistributedServiceType int

const (
	DistributedStatelessService DistributedServiceType = iota
	DistributedStatefulService
	DistributedDatabaseService
	DistributedCacheService
	DistributedMessageQueueService
	DistributedStorageService
)

// DistributedServiceStatus represents service status.
type DistributedServiceStatus int

const (
	DistributedServiceStatusPending DistributedServiceStatus = iota
	DistributedServiceStatusRunning
	DistributedServiceStatusStopped
	DistributedServiceStatusFailed
	DistributedServiceStatusUpdating
)

// PlacementPolicy represents service placement policies.
type PlacementPolicy struct {
	Strategy    PlacementStrategy
	Constraints []PlacementConstraint
	Preferences []PlacementPreference
}

// PlacementStrategy represents placement strategies.
type PlacementStrategy int

const (
	SpreadPlacement PlacementStrategy = iota
	BinPackPlacement
	RandomPlacement
	AffinityPlacement
	AntiAffinityPlacement
)

// PlacementConstraint represents placement constraints.
type PlacementConstraint struct {
	Key      string
	Operator ConstraintOperator
	Values   []string
}

// ConstraintOperator represents constraint operators.
type ConstraintOperator int

const (
	Equal ConstraintOperator = iota
	NotEqual
	In
	NotIn
	Exists
	DoesNotExist
)

// PlacementPreference represents placement preferences.
type PlacementPreference struct {
	Key    string
	Weight int
}

// ServiceInstance represents an instance of a distributed service.
type ServiceInstance struct {
	ID        string
	NodeID    string
	Status    InstanceStatus
	Address   string
	Port      int
	Health    HealthStatus
	Metrics   InstanceMetrics
	StartedAt time.Time
}

// InstanceStatus represents instance status.
type InstanceStatus int

const (
	InstanceStatusStarting InstanceStatus = iota
	InstanceStatusRunning
	InstanceStatusStopping
	InstanceStatusStopped
	InstanceStatusFailed
)

// HealthStatus represents health status.
type HealthStatus int

const (
	HealthStatusHealthy HealthStatus = iota
	HealthStatusUnhealthy
	HealthStatusUnknown
)

// InstanceMetrics represents instance metrics.
type InstanceMetrics struct {
	CPUUsage     float64
	MemoryUsage  int64
	NetworkIn    int64
	NetworkOut   int64
	RequestCount int64
	ErrorCount   int64
	ResponseTime time.Duration
}

// ServiceConfig represents service configuration.
type ServiceConfig struct {
	Image         string
	Command       []string
	Args          []string
	Environment   map[string]string
	Volumes       []VolumeConfig
	Networks      []NetworkConfig
	Resources     ResourceConfig
	HealthCheck   HealthCheckConfig
	RestartPolicy RestartPolicy
}

// VolumeConfig represents volume configuration.
type VolumeConfig struct {
	Name       string
	Source     string
	Target     string
	ReadOnly   bool
	VolumeType VolumeType
}

// VolumeType represents volume types.
type VolumeType int

const (
	EmptyDirVolume VolumeType = iota
	HostPathVolume
	PersistentVolume
	ConfigMapVolume
	SecretVolume
)

// NetworkConfig represents network configuration.
type NetworkConfig struct {
	Name     string
	Driver   string
	Internal bool
	Options  map[string]string
}

// ResourceConfig represents resource configuration.
type ResourceConfig struct {
	CPULimit      string
	MemoryLimit   string
	CPURequest    string
	MemoryRequest string
	GPULimit      int
}

// HealthCheckConfig represents health check configuration.
type HealthCheckConfig struct {
	Type             HealthCheckType
	Path             string
	Port             int
	Interval         time.Duration
	Timeout          time.Duration
	Retries          int
	StartPeriod      time.Duration
	SuccessThreshold int
	FailureThreshold int
}

// HealthCheckType represents health check types.
type HealthCheckType int

const (
	HTTPHealthCheck HealthCheckType = iota
	TCPHealthCheck
	CommandHealthCheck
	GRPCHealthCheck
)

// RestartPolicy represents restart policies.
type RestartPolicy int

const (
	RestartAlways RestartPolicy = iota
	RestartOnFailure
	RestartNever
	RestartUnlessStopped
)

// ServiceMesh represents a service mesh.
type ServiceMesh struct {
	ID       string
	Name     string
	Services map[string]*MeshService
	Policies []TrafficPolicy
	Config   MeshConfig
	Status   DistributedServiceStatus
	mu       sync.RWMutex
}

// MeshService represents a service in the mesh.
type MeshService struct {
	ID             string
	Name           string
	Endpoints      []DistributedEndpoint
	Policies       []ServicePolicy
	Metrics        ServiceMetrics
	CircuitBreaker *CircuitBreakerConfig
}

// DistributedEndpoint represents a service endpoint.
type DistributedEndpoint struct {
	Address string
	Port    int
	Weight  int
	Health  HealthStatus
}

// TrafficPolicy represents traffic policies.
type TrafficPolicy struct {
	ID          string
	Name        string
	Source      string
	Destination string
	Rules       []TrafficRule
	Priority    int
}

// TrafficRule represents traffic rules.
type TrafficRule struct {
	Match   TrafficMatch
	Route   []RouteDestination
	Fault   *FaultInjection
	Timeout time.Duration
	Retry   *DistributedRetryPolicy
}

// TrafficMatch represents traffic matching criteria.
type TrafficMatch struct {
	Headers map[string]string
	Method  string
	URI     string
	Scheme  string
}

// RouteDestination represents route destinations.
type RouteDestination struct {
	Service string
	Subset  string
	Weight  int
}

// FaultInjection represents fault injection configuration.
type FaultInjection struct {
	Delay *DelayFault
	Abort *AbortFault
}

// DelayFault represents delay fault injection.
type DelayFault struct {
	Percentage float64
	Duration   time.Duration
}

// AbortFault represents abort fault injection.
type AbortFault struct {
	Percentage float64
	HTTPStatus int
}

// DistributedRetryPolicy represents retry policy.
type DistributedRetryPolicy struct {
	Attempts              int
	PerTryTimeout         time.Duration
	RetryOn               []string
	RetryRemoteLocalities bool
}

// ServicePolicy represents service-specific policies.
type ServicePolicy struct {
	Type   PolicyType
	Config map[string]interface{}
}

// PolicyType represents policy types.
type PolicyType int

const (
	AuthenticationPolicy PolicyType = iota
	AuthorizationPolicy
	SecurityPolicy
	RateLimitPolicy
	CircuitBreakerPolicy
)

// ServiceMetrics represents service metrics.
type ServiceMetrics struct {
	RequestsPerSecond float64
	ErrorRate         float64
	Latency           LatencyMetrics
	Throughput        int64
}

// LatencyMetrics represents latency metrics.
type LatencyMetrics struct {
	P50 time.Duration
	P90 time.Duration
	P95 time.Duration
	P99 time.Duration
}

// CircuitBreakerConfig represents circuit breaker configuration.
type CircuitBreakerConfig struct {
	MaxRequests       uint32
	Interval          time.Duration
	Timeout           time.Duration
	ReadyToTripFunc   func(counts map[string]uint64) bool
	OnStateChangeFunc func(name string, from, to string)
}

// MeshConfig represents service mesh configuration.
type MeshConfig struct {
	TLSEnabled bool
	MutualTLS  bool
	Tracing    TracingConfig
	Logging    LoggingConfig
	Monitoring MonitoringConfig
	Security   SecurityConfig
}

// TracingConfig represents tracing configuration.
type TracingConfig struct {
	Enabled    bool
	Provider   string
	SampleRate float64
	Endpoint   string
}

// LoggingConfig represents logging configuration.
type LoggingConfig struct {
	Level    string
	Format   string
	Output   string
	Sampling float64
}

// MonitoringConfig represents monitoring configuration.
type MonitoringConfig struct {
	Enabled           bool
	MetricsPort       int
	MetricsPath       string
	PrometheusEnabled bool
}

// SecurityConfig represents security configuration.
type SecurityConfig struct {
	AuthEnabled        bool
	AuthProvider       string
	TLSMinVersion      string
	CipherSuites       []string
	CertificateManager string
}

// DistributedStorage represents distributed storage system.
type DistributedStorage struct {
	ID          string
	Name        string
	Type        StorageType
	Nodes       map[string]*StorageNode
	Replication int
	Shards      int
	Config      StorageConfig
	Status      DistributedServiceStatus
	mu          sync.RWMutex
}

// StorageType represents storage types.
type StorageType int

const (
	BlockStorage StorageType = iota
	ObjectStorage
	FileStorage
	DatabaseStorage
)

// StorageNode represents a storage node.
type StorageNode struct {
	ID        string
	Address   string
	Port      int
	Capacity  int64
	Used      int64
	Available int64
	Status    DistributedNodeStatus
	LastSync  time.Time
}

// StorageConfig represents storage configuration.
type StorageConfig struct {
	Redundancy       int
	Compression      bool
	Encryption       bool
	BackupEnabled    bool
	BackupInterval   time.Duration
	ConsistencyLevel ConsistencyLevel
}

// ConsistencyLevel represents consistency levels.
type ConsistencyLevel int

const (
	EventualConsistency ConsistencyLevel = iota
	StrongConsistency
	BoundedStaleness
	SessionConsistency
	ConsistentPrefix
)

// ClusterManager manages distributed clusters.
type ClusterManager struct {
	clusters map[string]*Cluster
	nodes    map[string]*Node
	services map[string]*DistributedService
	meshes   map[string]*ServiceMesh
	storage  map[string]*DistributedStorage
	mu       sync.RWMutex
}

// Global cluster manager
var clusterManager *ClusterManager
var once sync.Once

// GetClusterManager returns the global cluster manager.
func GetClusterManager() *ClusterManager {
	once.Do(func() {
		clusterManager = &ClusterManager{
			clusters: make(map[string]*Cluster),
			nodes:    make(map[string]*Node),
			services: make(map[string]*DistributedService),
			meshes:   make(map[string]*ServiceMesh),
			storage:  make(map[string]*DistributedStorage),
		}
	})
	return clusterManager
}

// Cluster management

// CreateCluster creates a new distributed cluster.
func (cm *ClusterManager) CreateCluster(name string, config ClusterConfig) (*Cluster, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cluster := &Cluster{
		ID:        generateClusterID(),
		Name:      name,
		Nodes:     make(map[string]*Node),
		Status:    ClusterStatusForming,
		Config:    config,
		Services:  make(map[string]*DistributedService),
		CreatedAt: time.Now(),
	}

	cm.clusters[cluster.ID] = cluster

	return cluster, nil
}

// AddNode adds a node to a cluster.
func (cm *ClusterManager) AddNode(clusterID string, node *Node) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cluster, exists := cm.clusters[clusterID]
	if !exists {
		return errors.New("cluster not found")
	}

	cluster.mu.Lock()
	defer cluster.mu.Unlock()

	node.JoinedAt = time.Now()
	node.LastSeen = time.Now()
	node.Status = DistributedNodeStatusReady

	cluster.Nodes[node.ID] = node
	cm.nodes[node.ID] = node

	// Elect leader if this is the first node
	if len(cluster.Nodes) == 1 {
		cluster.LeaderID = node.ID
		cluster.Status = ClusterStatusActive
	}

	return nil
}

// RemoveNode removes a node from a cluster.
func (cm *ClusterManager) RemoveNode(clusterID, nodeID string) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cluster, exists := cm.clusters[clusterID]
	if !exists {
		return errors.New("cluster not found")
	}

	cluster.mu.Lock()
	defer cluster.mu.Unlock()

	node, exists := cluster.Nodes[nodeID]
	if !exists {
		return errors.New("node not found in cluster")
	}

	node.Status = DistributedNodeStatusTerminating
	delete(cluster.Nodes, nodeID)
	delete(cm.nodes, nodeID)

	// Elect new leader if the removed node was the leader
	if cluster.LeaderID == nodeID && len(cluster.Nodes) > 0 {
		for id := range cluster.Nodes {
			cluster.LeaderID = id
			break
		}
	}

	// Update cluster status
	if len(cluster.Nodes) == 0 {
		cluster.Status = ClusterStatusFailed
	} else if len(cluster.Nodes) < cluster.Config.MinNodes {
		cluster.Status = ClusterStatusDegraded
	}

	return nil
}

// Service management

// CreateService creates a distributed service.
func (cm *ClusterManager) CreateService(clusterID string, service *DistributedService) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	cluster, exists := cm.clusters[clusterID]
	if !exists {
		return errors.New("cluster not found")
	}

	service.ID = generateDistributedServiceID()
	service.Instances = make(map[string]*ServiceInstance)
	service.Status = DistributedServiceStatusPending
	service.CreatedAt = time.Now()
	service.UpdatedAt = time.Now()

	cluster.mu.Lock()
	cluster.Services[service.ID] = service
	cluster.mu.Unlock()

	cm.services[service.ID] = service

	// Schedule service instances
	go cm.scheduleService(clusterID, service)

	return nil
}

// scheduleService schedules service instances across nodes.
func (cm *ClusterManager) scheduleService(clusterID string, service *DistributedService) {
	cluster := cm.clusters[clusterID]
	if cluster == nil {
		return
	}

	cluster.mu.RLock()
	availableNodes := make([]*Node, 0, len(cluster.Nodes))
	for _, node := range cluster.Nodes {
		if node.Status == DistributedNodeStatusReady {
			availableNodes = append(availableNodes, node)
		}
	}
	cluster.mu.RUnlock()

	if len(availableNodes) == 0 {
		service.Status = DistributedServiceStatusFailed
		return
	}

	// Schedule replicas
	scheduled := 0
	for i := 0; i < service.Replicas && scheduled < len(availableNodes); i++ {
		node := availableNodes[i%len(availableNodes)]

		instance := &ServiceInstance{
			ID:        generateInstanceID(),
			NodeID:    node.ID,
			Status:    InstanceStatusStarting,
			Address:   node.Address.String(),
			Port:      8080 + i, // Simple port allocation
			Health:    HealthStatusUnknown,
			StartedAt: time.Now(),
		}

		service.mu.Lock()
		service.Instances[instance.ID] = instance
		service.mu.Unlock()

		// Simulate instance startup
		go func(inst *ServiceInstance) {
			time.Sleep(2 * time.Second)
			inst.Status = InstanceStatusRunning
			inst.Health = HealthStatusHealthy
		}(instance)

		scheduled++
	}

	if scheduled > 0 {
		service.Status = DistributedServiceStatusRunning
	} else {
		service.Status = DistributedServiceStatusFailed
	}
}

// Service mesh management

// CreateServiceMesh creates a service mesh.
func (cm *ClusterManager) CreateServiceMesh(name string, config MeshConfig) (*ServiceMesh, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	mesh := &ServiceMesh{
		ID:       generateMeshID(),
		Name:     name,
		Services: make(map[string]*MeshService),
		Policies: make([]TrafficPolicy, 0),
		Config:   config,
		Status:   DistributedServiceStatusRunning,
	}

	cm.meshes[mesh.ID] = mesh

	return mesh, nil
}

// AddServiceToMesh adds a service to a service mesh.
func (cm *ClusterManager) AddServiceToMesh(meshID, serviceID string) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	mesh, exists := cm.meshes[meshID]
	if !exists {
		return errors.New("service mesh not found")
	}

	service, exists := cm.services[serviceID]
	if !exists {
		return errors.New("service not found")
	}

	meshService := &MeshService{
		ID:        serviceID,
		Name:      service.Name,
		Endpoints: make([]DistributedEndpoint, 0),
		Policies:  make([]ServicePolicy, 0),
		Metrics: ServiceMetrics{
			Latency: LatencyMetrics{},
		},
	}

	// Convert service instances to endpoints
	service.mu.RLock()
	for _, instance := range service.Instances {
		if instance.Status == InstanceStatusRunning {
			endpoint := DistributedEndpoint{
				Address: instance.Address,
				Port:    instance.Port,
				Weight:  1,
				Health:  instance.Health,
			}
			meshService.Endpoints = append(meshService.Endpoints, endpoint)
		}
	}
	service.mu.RUnlock()

	mesh.mu.Lock()
	mesh.Services[serviceID] = meshService
	mesh.mu.Unlock()

	return nil
}

// Distributed storage management

// CreateStorage creates a distributed storage system.
func (cm *ClusterManager) CreateStorage(name string, storageType StorageType, config StorageConfig) (*DistributedStorage, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	storage := &DistributedStorage{
		ID:          generateStorageID(),
		Name:        name,
		Type:        storageType,
		Nodes:       make(map[string]*StorageNode),
		Replication: config.Redundancy,
		Shards:      8, // Default number of shards
		Config:      config,
		Status:      DistributedServiceStatusRunning,
	}

	cm.storage[storage.ID] = storage

	return storage, nil
}

// Monitoring and health checking

// HealthCheck performs health check on all components.
func (cm *ClusterManager) HealthCheck() map[string]interface{} {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	result := make(map[string]interface{})

	// Check clusters
	clusterHealth := make(map[string]string)
	for id, cluster := range cm.clusters {
		switch cluster.Status {
		case ClusterStatusActive:
			clusterHealth[id] = "healthy"
		case ClusterStatusDegraded:
			clusterHealth[id] = "degraded"
		default:
			clusterHealth[id] = "unhealthy"
		}
	}
	result["clusters"] = clusterHealth

	// Check nodes
	nodeHealth := make(map[string]string)
	for id, node := range cm.nodes {
		switch node.Status {
		case DistributedNodeStatusReady:
			nodeHealth[id] = "ready"
		case DistributedNodeStatusNotReady:
			nodeHealth[id] = "not_ready"
		default:
			nodeHealth[id] = "unknown"
		}
	}
	result["nodes"] = nodeHealth

	// Check services
	serviceHealth := make(map[string]string)
	for id, service := range cm.services {
		switch service.Status {
		case DistributedServiceStatusRunning:
			serviceHealth[id] = "running"
		case DistributedServiceStatusFailed:
			serviceHealth[id] = "failed"
		default:
			serviceHealth[id] = "pending"
		}
	}
	result["services"] = serviceHealth

	return result
}

// Helper functions

func generateClusterID() string {
	return fmt.Sprintf("cluster-%d", time.Now().UnixNano())
}

func generateDistributedServiceID() string {
	return fmt.Sprintf("service-%d", time.Now().UnixNano())
}

func generateInstanceID() string {
	return fmt.Sprintf("instance-%d", time.Now().UnixNano())
}

func generateMeshID() string {
	return fmt.Sprintf("mesh-%d", time.Now().UnixNano())
}

func generateStorageID() string {
	return fmt.Sprintf("storage-%d", time.Now().UnixNano())
}

// Public API functions

// CreateCluster creates a distributed cluster.
func CreateCluster(name string, config ClusterConfig) (*Cluster, error) {
	return GetClusterManager().CreateCluster(name, config)
}

// CreateNode creates a new node.
func CreateNode(name, address string, port int) *Node {
	return &Node{
		ID:      fmt.Sprintf("node-%d", time.Now().UnixNano()),
		Name:    name,
		Address: net.ParseIP(address),
		Port:    port,
		Status:  DistributedNodeStatusNotReady,
		Resources: NodeResources{
			CPU:     4.0,
			Memory:  8 * 1024 * 1024 * 1024,   // 8GB
			Storage: 100 * 1024 * 1024 * 1024, // 100GB
			Network: 1000 * 1000 * 1000,       // 1Gbps
		},
		Services: make([]string, 0),
		Labels:   make(map[string]string),
	}
}

// CreateDistributedService creates a distributed service.
func CreateDistributedService(name string, replicas int, serviceType DistributedServiceType) *DistributedService {
	return &DistributedService{
		Name:     name,
		Version:  "1.0.0",
		Type:     serviceType,
		Replicas: replicas,
		Placement: PlacementPolicy{
			Strategy:    SpreadPlacement,
			Constraints: make([]PlacementConstraint, 0),
			Preferences: make([]PlacementPreference, 0),
		},
		Config: ServiceConfig{
			Environment:   make(map[string]string),
			Volumes:       make([]VolumeConfig, 0),
			Networks:      make([]NetworkConfig, 0),
			RestartPolicy: RestartAlways,
		},
	}
}

// AddNodeToCluster adds a node to a cluster.
func AddNodeToCluster(clusterID string, node *Node) error {
	return GetClusterManager().AddNode(clusterID, node)
}

// DeployService deploys a service to a cluster.
func DeployService(clusterID string, service *DistributedService) error {
	return GetClusterManager().CreateService(clusterID, service)
}

// CreateServiceMesh creates a service mesh.
func CreateServiceMesh(name string, config MeshConfig) (*ServiceMesh, error) {
	return GetClusterManager().CreateServiceMesh(name, config)
}

// GetClusterHealth returns the health status of all components.
func GetClusterHealth() map[string]interface{} {
	return GetClusterManager().HealthCheck()
}
