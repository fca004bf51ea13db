// Package database provides a unified interface for database operations.
// This package supports multiple database backends including SQL databases,
// NoSQL databases, and in-memory stores with a consistent API.
package database

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// DatabaseType represents supported database types.
type DatabaseType int

const (
	SQLite DatabaseType = iota
	PostgreSQL
	MySQL
	MongoDB
	Redis
	InMemory
)

// Database represents a database connection interface.
type Database interface {
	Connect(connectionString string) error
	Close() error
	Ping() error
	BeginTransaction() (Transaction, error)
	Execute(query string, args ...interface{}) (Result, error)
	Query(query string, args ...interface{}) (Rows, error)
	QueryRow(query string, args ...interface{}) Row
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit() error
	Rollback() error
	Execute(query string, args ...interface{}) (Result, error)
	Query(query string, args ...interface{}) (Rows, error)
	QueryRow(query string, args ...interface{}) Row
}

// Result represents the result of a database operation.
type Result interface {
	LastInsertID() (int64, error)
	RowsAffected() (int64, error)
}

// Rows represents a set of query results.
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Close() error
	Columns() ([]string, error)
	Err() error
}

// Row represents a single query result.
type Row interface {
	Scan(dest ...interface{}) error
}

// ConnectionConfig holds database connection configuration.
type ConnectionConfig struct {
	Type             DatabaseType
	Host             string
	Port             int
	Database         string
	Username         string
	Password         string
	SSLMode          string
	MaxConnections   int
	ConnectTimeout   time.Duration
	QueryTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxRetries       int
	RetryInterval    time.Duration
	ConnectionString string
}

// DatabaseManager manages database connections and provides high-level operations.
type DatabaseManager struct {
	config *ConnectionConfig
	db     Database
}

// NewDatabaseManager creates a new database manager.
func NewDatabaseManager(config *ConnectionConfig) *DatabaseManager {
	return &DatabaseManager{
		config: config,
	}
}

// Connect establishes a database connection.
func (dm *DatabaseManager) Connect() error {
	var db Database
	var err error

	switch dm.config.Type {
	case SQLite:
		db, err = NewSQLiteDatabase()
	case PostgreSQL:
		db, err = NewPostgreSQLDatabase()
	case MySQL:
		db, err = NewMySQLDatabase()
	case MongoDB:
		db, err = NewMongoDatabase()
	case Redis:
		db, err = NewRedisDatabase()
	case InMemory:
		db, err = NewInMemoryDatabase()
	default:
		return fmt.Errorf("unsupported database type: %d", dm.config.Type)
	}

	if err != nil {
		return err
	}

	dm.db = db

	connectionString := dm.config.ConnectionString
	if connectionString == "" {
		connectionString = dm.buildConnectionString()
	}

	return dm.db.Connect(connectionString)
}

func (dm *DatabaseManager) buildConnectionString() string {
	switch dm.config.Type {
	case SQLite:
		return dm.config.Database
	case PostgreSQL:
		return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
			dm.config.Username, dm.config.Password, dm.config.Host,
			dm.config.Port, dm.config.Database, dm.config.SSLMode)
	case MySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s",
			dm.config.Username, dm.config.Password, dm.config.Host,
			dm.config.Port, dm.config.Database)
	default:
		return ""
	}
}

// Close closes the database connection.
func (dm *DatabaseManager) Close() error {
	if dm.db != nil {
		return dm.db.Close()
	}
	return nil
}

// QueryBuilder provides a fluent interface for building SQL queries.
type QueryBuilder struct {
	queryType string
	table     string
	columns   []string
	values    []interface{}
	where     []string
	joins     []string
	orderBy   []string
	groupBy   []string
	having    []string
	limit     int
	offset    int
	args      []interface{}
}

// NewQueryBuilder creates a new query builder.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{
		columns: make([]string, 0),
		values:  make([]interface{}, 0),
		where:   make([]string, 0),
		joins:   make([]string, 0),
		orderBy: make([]string, 0),
		groupBy: make([]string, 0),
		having:  make([]string, 0),
		args:    make([]interface{}, 0),
	}
}

// Select starts a SELECT query.
func (qb *QueryBuilder) Select(columns ...string) *QueryBuilder {
	qb.queryType = "SELECT"
	qb.columns = columns
	return qb
}

// Insert starts an INSERT query.
func (qb *QueryBuilder) Insert(table string) *QueryBuilder {
	qb.queryType = "INSERT"
	qb.table = table
	return qb
}

// Update starts an UPDATE query.
func (qb *QueryBuilder) Update(table string) *QueryBuilder {
	qb.queryType = "UPDATE"
	qb.table = table
	return qb
}

// Delete starts a DELETE query.
func (qb *QueryBuilder) Delete() *QueryBuilder {
	qb.queryType = "DELETE"
	return qb
}

// From sets the table for the query.
func (qb *QueryBuilder) From(table string) *QueryBuilder {
	qb.table = table
	return qb
}

// Values sets the values for INSERT queries.
func (qb *QueryBuilder) Values(values ...interface{}) *QueryBuilder {
	qb.values = append(qb.values, values...)
	return qb
}

// Set adds a SET clause for UPDATE queries.
func (qb *QueryBuilder) Set(column string, value interface{}) *QueryBuilder {
	qb.columns = append(qb.columns, column)
	qb.values = append(qb.values, value)
	return qb
}

// Where adds a WHERE condition.
func (qb *QueryBuilder) Where(condition string, args ...interface{}) *QueryBuilder {
	qb.where = append(qb.where, condition)
	qb.args = append(qb.args, args...)
	return qb
}

// Join adds a JOIN clause.
func (qb *QueryBuilder) Join(table, condition string) *QueryBuilder {
	qb.joins = append(qb.joins, fmt.Sprintf("JOIN %s ON %s", table, condition))
	return qb
}

// LeftJoin adds a LEFT JOIN clause.
func (qb *QueryBuilder) LeftJoin(table, condition string) *QueryBuilder {
	qb.joins = append(qb.joins, fmt.Sprintf("LEFT JOIN %s ON %s", table, condition))
	return qb
}

// OrderBy adds an ORDER BY clause.
func (qb *QueryBuilder) OrderBy(column string) *QueryBuilder {
	qb.orderBy = append(qb.orderBy, column)
	return qb
}

// GroupBy adds a GROUP BY clause.
func (qb *QueryBuilder) GroupBy(column string) *QueryBuilder {
	qb.groupBy = append(qb.groupBy, column)
	return qb
}

// Having adds a HAVING clause.
func (qb *QueryBuilder) Having(condition string, args ...interface{}) *QueryBuilder {
	qb.having = append(qb.having, condition)
	qb.args = append(qb.args, args...)
	return qb
}

// Limit sets the LIMIT clause.
func (qb *QueryBuilder) Limit(limit int) *QueryBuilder {
	qb.limit = limit
	return qb
}

// Offset sets the OFFSET clause.
func (qb *QueryBuilder) Offset(offset int) *QueryBuilder {
	qb.offset = offset
	return qb
}

// Build builds the final SQL query.
func (qb *QueryBuilder) Build() (string, []interface{}) {
	var query strings.Builder

	switch qb.queryType {
	case "SELECT":
		query.WriteString("SELECT ")
		if len(qb.columns) > 0 {
			query.WriteString(strings.Join(qb.columns, ", "))
		} else {
			query.WriteString("*")
		}
		query.WriteString(" FROM ")
		query.WriteString(qb.table)

	case "INSERT":
		query.WriteString("INSERT INTO ")
		query.WriteString(qb.table)
		if len(qb.columns) > 0 {
			query.WriteString(" (")
			query.WriteString(strings.Join(qb.columns, ", "))
			query.WriteString(") VALUES (")
			placeholders := make([]string, len(qb.values))
			for i := range placeholders {
				placeholders[i] = "?"
			}
			query.WriteString(strings.Join(placeholders, ", "))
			query.WriteString(")")
		}

	case "UPDATE":
		query.WriteString("UPDATE ")
		query.WriteString(qb.table)
		query.WriteString(" SET ")
		setPairs := make([]string, len(qb.columns))
		for i, col := range qb.columns {
			setPairs[i] = col + " = ?"
		}
		query.WriteString(strings.Join(setPairs, ", "))

	case "DELETE":
		query.WriteString("DELETE FROM ")
		query.WriteString(qb.table)
	}

	// Add JOINs
	for _, join := range qb.joins {
		query.WriteString(" ")
		query.WriteString(join)
	}

	// Add WHERE
	if len(qb.where) > 0 {
		query.WriteString(" WHERE ")
		query.WriteString(strings.Join(qb.where, " AND "))
	}

	// Add GROUP BY
	if len(qb.groupBy) > 0 {
		query.WriteString(" GROUP BY ")
		query.WriteString(strings.Join(qb.groupBy, ", "))
	}

	// Add HAVING
	if len(qb.having) > 0 {
		query.WriteString(" HAVING ")
		query.WriteString(strings.Join(qb.having, " AND "))
	}

	// Add ORDER BY
	if len(qb.orderBy) > 0 {
		query.WriteString(" ORDER BY ")
		query.WriteString(strings.Join(qb.orderBy, ", "))
	}

	// Add LIMIT
	if qb.limit > 0 {
		query.WriteString(fmt.Sprintf(" LIMIT %d", qb.limit))
	}

	// Add OFFSET
	if qb.offset > 0 {
		query.WriteString(fmt.Sprintf(" OFFSET %d", qb.offset))
	}

	// Combine values and args
	allArgs := make([]interface{}, 0, len(qb.values)+len(qb.args))
	allArgs = append(allArgs, qb.values...)
	allArgs = append(allArgs, qb.args...)

	return query.String(), allArgs
}

// ORM provides Object-Relational Mapping functionality.
type ORM struct {
	db *DatabaseManager
}

// NewORM creates a new ORM instance.
func NewORM(db *DatabaseManager) *ORM {
	return &ORM{db: db}
}

// Model represents a database model.
type Model interface {
	TableName() string
	PrimaryKey() string
}

// Create inserts a new record into the database.
func (orm *ORM) Create(model Model) error {
	// Use reflection to build INSERT query
	v := reflect.ValueOf(model).Elem()
	t := v.Type()

	var columns []string
	var values []interface{}

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			columns = append(columns, tag)
			values = append(values, value.Interface())
		}
	}

	qb := NewQueryBuilder().
		Insert(model.TableName()).
		Values(values...)

	// Set column names
	qb.columns = columns

	query, args := qb.Build()
	_, err := orm.db.db.Execute(query, args...)
	return err
}

// Find retrieves records by conditions.
func (orm *ORM) Find(model Model, conditions map[string]interface{}) error {
	qb := NewQueryBuilder().Select().From(model.TableName())

	for column, value := range conditions {
		qb.Where(column+" = ?", value)
	}

	query, args := qb.Build()
	rows, err := orm.db.db.Query(query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	// Use reflection to populate model
	v := reflect.ValueOf(model).Elem()

	if rows.Next() {
		var dest []interface{}
		for i := 0; i < v.NumField(); i++ {
			field := v.Field(i)
			if field.CanSet() {
				dest = append(dest, field.Addr().Interface())
			}
		}

		return rows.Scan(dest...)
	}

	return fmt.Errorf("record not found")
}

// Update updates a record in the database.
func (orm *ORM) Update(model Model) error {
	v := reflect.ValueOf(model).Elem()
	t := v.Type()

	qb := NewQueryBuilder().Update(model.TableName())

	var pkValue interface{}
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		if tag := field.Tag.Get("db"); tag != "" && tag != "-" {
			if tag == model.PrimaryKey() {
				pkValue = value.Interface()
			} else {
				qb.Set(tag, value.Interface())
			}
		}
	}

	qb.Where(model.PrimaryKey()+" = ?", pkValue)

	query, args := qb.Build()
	_, err := orm.db.db.Execute(query, args...)
	return err
}

// Delete removes a record from the database.
func (orm *ORM) Delete(model Model) error {
	v := reflect.ValueOf(model).Elem()
	t := v.Type()

	var pkValue interface{}
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		if tag := field.Tag.Get("db"); tag != "" && tag == model.PrimaryKey() {
			pkValue = value.Interface()
			break
		}
	}

	qb := NewQueryBuilder().Delete().From(model.TableName()).
		Where(model.PrimaryKey()+" = ?", pkValue)

	query, args := qb.Build()
	_, err := orm.db.db.Execute(query, args...)
	return err
}

// Migration represents a database migration.
type Migration struct {
	Version int
	Name    string
	Up      func(db Database) error
	Down    func(db Database) error
}

// MigrationManager manages database migrations.
type MigrationManager struct {
	db         *DatabaseManager
	migrations []Migration
}

// NewMigrationManager creates a new migration manager.
func NewMigrationManager(db *DatabaseManager) *MigrationManager {
	return &MigrationManager{
		db:         db,
		migrations: make([]Migration, 0),
	}
}

// AddMigration adds a migration to the manager.
func (mm *MigrationManager) AddMigration(migration Migration) {
	mm.migrations = append(mm.migrations, migration)
}

// RunMigrations runs all pending migrations.
func (mm *MigrationManager) RunMigrations() error {
	// Create migrations table if it doesn't exist
	if err := mm.createMigrationsTable(); err != nil {
		return err
	}

	// Get current version
	currentVersion, err := mm.getCurrentVersion()
	if err != nil {
		return err
	}

	// Run pending migrations
	for _, migration := range mm.migrations {
		if migration.Version > currentVersion {
			if err := migration.Up(mm.db.db); err != nil {
				return err
			}

			if err := mm.recordMigration(migration); err != nil {
				return err
			}
		}
	}

	return nil
}

func (mm *MigrationManager) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`

	_, err := mm.db.db.Execute(query)
	return err
}

func (mm *MigrationManager) getCurrentVersion() (int, error) {
	query := "SELECT COALESCE(MAX(version), 0) FROM migrations"
	row := mm.db.db.QueryRow(query)

	var version int
	err := row.Scan(&version)
	return version, err
}

func (mm *MigrationManager) recordMigration(migration Migration) error {
	query := "INSERT INTO migrations (version, name) VALUES (?, ?)"
	_, err := mm.db.db.Execute(query, migration.Version, migration.Name)
	return err
}

// Connection pool management
type ConnectionPool struct {
	config      *ConnectionConfig
	connections chan Database
	maxSize     int
	currentSize int
}

// NewConnectionPool creates a new connection pool.
func NewConnectionPool(config *ConnectionConfig, maxSize int) *ConnectionPool {
	return &ConnectionPool{
		config:      config,
		connections: make(chan Database, maxSize),
		maxSize:     maxSize,
		currentSize: 0,
	}
}

// Get retrieves a connection from the pool.
func (cp *ConnectionPool) Get(ctx context.Context) (Database, error) {
	select {
	case db := <-cp.connections:
		return db, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		if cp.currentSize < cp.maxSize {
			db, err := cp.createConnection()
			if err != nil {
				return nil, err
			}
			cp.currentSize++
			return db, nil
		}

		// Wait for available connection
		select {
		case db := <-cp.connections:
			return db, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Put returns a connection to the pool.
func (cp *ConnectionPool) Put(db Database) {
	select {
	case cp.connections <- db:
	default:
		// Pool is full, close the connection
		db.Close()
		cp.currentSize--
	}
}

func (cp *ConnectionPool) createConnection() (Database, error) {
	dm := NewDatabaseManager(cp.config)
	if err := dm.Connect(); err != nil {
		return nil, err
	}
	return dm.db, nil
}

// Close closes all connections in the pool.
func (cp *ConnectionPool) Close() error {
	close(cp.connections)
	for db := range cp.connections {
		if err := db.Close(); err != nil {
			return err
		}
	}
	return nil
}

// Advanced Database Features

// ShardingManager manages database sharding.
type ShardingManager struct {
	shards         map[string]*DatabaseManager
	shardingKey    string
	hashFunction   func(string) uint32
	replicas       int
	consistentHash *ConsistentHash
}

// ConsistentHash implements consistent hashing for sharding.
type ConsistentHash struct {
	ring         map[uint32]string
	sortedHashes []uint32
	virtualNodes int
}

// DatabaseReplication manages database replication.
type DatabaseReplication struct {
	master  *DatabaseManager
	slaves  []*DatabaseManager
	config  ReplicationConfig
	monitor *ReplicationMonitor
}

// ReplicationConfig represents replication configuration.
type ReplicationConfig struct {
	SyncMode            SyncMode
	FailoverMode        FailoverMode
	HealthCheckInterval time.Duration
	MaxLag              time.Duration
	AutoFailover        bool
}

// SyncMode represents synchronization modes.
type SyncMode int

const (
	Synchronous SyncMode = iota
	Asynchronous
	SemiSynchronous
)

// FailoverMode represents failover modes.
type FailoverMode int

const (
	ManualFailover FailoverMode = iota
	AutomaticFailover
	QuorumBasedFailover
)

// ReplicationMonitor monitors replication health.
type ReplicationMonitor struct {
	status        ReplicationStatus
	lag           time.Duration
	lastHeartbeat time.Time
	healthChecks  chan HealthCheck
	alertManager  *AlertManager
}

// ReplicationStatus represents replication status.
type ReplicationStatus int

const (
	Healthy ReplicationStatus = iota
	Degraded
	Failed
	Recovering
)

// HealthCheck represents a health check result.
type HealthCheck struct {
	Database  string
	Status    ReplicationStatus
	Lag       time.Duration
	Timestamp time.Time
	Error     error
}

// AlertManager manages database alerts.
type AlertManager struct {
	alerts   chan Alert
	handlers map[AlertType][]AlertHandler
	config   AlertConfig
}

// Alert represents a database alert.
type Alert struct {
	Type      AlertType
	Severity  AlertSeverity
	Message   string
	Database  string
	Timestamp time.Time
	Metadata  map[string]interface{}
}

// AlertType represents alert types.
type AlertType int

const (
	ConnectionAlert AlertType = iota
	PerformanceAlert
	ReplicationAlert
	StorageAlert
	SecurityAlert
)

// AlertSeverity represents alert severity levels.
type AlertSeverity int

const (
	Info AlertSeverity = iota
	Warning
	Error
	Critical
)

// AlertHandler represents an alert handler function.
type AlertHandler func(Alert) error

// AlertConfig represents alert configuration.
type AlertConfig struct {
	EnableEmail     bool
	EnableSlack     bool
	EnableWebhook   bool
	EmailRecipients []string
	SlackChannel    string
	WebhookURL      string
}

// DatabaseMonitoring provides comprehensive monitoring.
type DatabaseMonitoring struct {
	metrics  *MetricsCollector
	profiler *QueryProfiler
	monitor  *PerformanceMonitor
	analyzer *QueryAnalyzer
}

// MetricsCollector collects database metrics.
type MetricsCollector struct {
	counters   map[string]int64
	gauges     map[string]float64
	histograms map[string]*Histogram
	timers     map[string]*Timer
}

// Histogram represents a histogram metric.
type Histogram struct {
	buckets []float64
	counts  []int64
	sum     float64
	count   int64
}

// Timer represents a timer metric.
type Timer struct {
	durations []time.Duration
	count     int64
	sum       time.Duration
}

// QueryProfiler profiles database queries.
type QueryProfiler struct {
	profiles  map[string]*QueryProfile
	enabled   bool
	threshold time.Duration
}

// QueryProfile represents a query profile.
type QueryProfile struct {
	Query         string
	ExecutionTime time.Duration
	RowsExamined  int64
	RowsReturned  int64
	IndexesUsed   []string
	Plan          QueryPlan
	Timestamp     time.Time
}

// QueryPlan represents a query execution plan.
type QueryPlan struct {
	Steps []PlanStep
	Cost  float64
}

// PlanStep represents a step in the query plan.
type PlanStep struct {
	Operation string
	Table     string
	Index     string
	Cost      float64
	Rows      int64
	Condition string
}

// PerformanceMonitor monitors database performance.
type PerformanceMonitor struct {
	cpuUsage        float64
	memoryUsage     float64
	diskUsage       float64
	connectionCount int
	queryLatency    time.Duration
	throughput      float64
}

// QueryAnalyzer analyzes query patterns.
type QueryAnalyzer struct {
	patterns    map[string]*QueryPattern
	suggestions []OptimizationSuggestion
	analyzer    *StaticAnalyzer
}

// QueryPattern represents a query pattern.
type QueryPattern struct {
	Pattern     string
	Count       int64
	AvgDuration time.Duration
	Tables      []string
	Indexes     []string
}

// OptimizationSuggestion represents an optimization suggestion.
type OptimizationSuggestion struct {
	Type        SuggestionType
	Query       string
	Description string
	Impact      ImpactLevel
	Effort      EffortLevel
}

// SuggestionType represents types of optimization suggestions.
type SuggestionType int

const (
	IndexSuggestion SuggestionType = iota
	QueryRewriteSuggestion
	SchemaSuggestion
	ConfigurationSuggestion
)

// ImpactLevel represents the impact level of a suggestion.
type ImpactLevel int

const (
	LowImpact ImpactLevel = iota
	MediumImpact
	HighImpact
)

// EffortLevel represents the effort level required for a suggestion.
type EffortLevel int

const (
	LowEffort EffortLevel = iota
	MediumEffort
	HighEffort
)

// StaticAnalyzer performs static analysis of queries.
type StaticAnalyzer struct {
	rules []AnalysisRule
}

// AnalysisRule represents a static analysis rule.
type AnalysisRule struct {
	Name        string
	Description string
	Check       func(string) bool
	Severity    AlertSeverity
}

// DatabaseSecurity provides security features.
type DatabaseSecurity struct {
	encryption     *DatabaseEncryption
	authentication *AuthenticationManager
	authorization  *AuthorizationManager
	auditing       *AuditManager
}

// DatabaseEncryption manages database encryption.
type DatabaseEncryption struct {
	atRest     *EncryptionAtRest
	inTransit  *EncryptionInTransit
	keyManager *KeyManager
}

// EncryptionAtRest manages encryption at rest.
type EncryptionAtRest struct {
	enabled     bool
	algorithm   EncryptionAlgorithm
	keyRotation KeyRotationPolicy
}

// EncryptionInTransit manages encryption in transit.
type EncryptionInTransit struct {
	tlsEnabled  bool
	tlsVersion  string
	cipherSuite string
	certificate string
}

// EncryptionAlgorithm represents encryption algorithms.
type EncryptionAlgorithm int

const (
	AES256 EncryptionAlgorithm = iota
	ChaCha20
	AESGaloisCounterMode
)

// KeyRotationPolicy represents key rotation policies.
type KeyRotationPolicy struct {
	Enabled    bool
	Interval   time.Duration
	RetainKeys int
}

// KeyManager manages encryption keys.
type KeyManager struct {
	provider       KeyProvider
	keys           map[string]*EncryptionKey
	rotationPolicy KeyRotationPolicy
}

// KeyProvider represents key providers.
type KeyProvider int

const (
	LocalKeyProvider KeyProvider = iota
	AWSKMSProvider
	AzureKeyVaultProvider
	GoogleKMSProvider
	HashiCorpVaultProvider
)

// EncryptionKey represents an encryption key.
type EncryptionKey struct {
	ID        string
	Algorithm EncryptionAlgorithm
	Key       []byte
	CreatedAt time.Time
	ExpiresAt time.Time
}

// AuthenticationManager manages database authentication.
type AuthenticationManager struct {
	providers []AuthProvider
	sessions  map[string]*AuthSession
	config    AuthConfig
}

// AuthProvider represents authentication providers.
type AuthProvider interface {
	Authenticate(credentials Credentials) (*AuthSession, error)
	ValidateSession(sessionID string) bool
}

// Credentials represents user credentials.
type Credentials struct {
	Username string
	Password string
	Token    string
	Type     AuthType
}

// AuthType represents authentication types.
type AuthType int

const (
	PasswordAuth AuthType = iota
	TokenAuth
	CertificateAuth
	OAuthAuth
	SAMLAuth
)

// AuthSession represents an authentication session.
type AuthSession struct {
	ID          string
	UserID      string
	Role        string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Permissions []Permission
}

// Permission represents a database permission.
type Permission struct {
	Resource string
	Action   string
	Granted  bool
}

// AuthConfig represents authentication configuration.
type AuthConfig struct {
	SessionTimeout time.Duration
	MaxSessions    int
	PasswordPolicy PasswordPolicy
	MFAEnabled     bool
}

// PasswordPolicy represents password policy.
type PasswordPolicy struct {
	MinLength     int
	RequireUpper  bool
	RequireLower  bool
	RequireDigit  bool
	RequireSymbol bool
	MaxAge        time.Duration
}

// AuthorizationManager manages database authorization.
type AuthorizationManager struct {
	policies []AuthPolicy
	roles    map[string]*Role
	rbac     *RBAC
}

// AuthPolicy represents an authorization policy.
type AuthPolicy struct {
	ID         string
	Name       string
	Rules      []AuthRule
	Conditions []AuthCondition
}

// AuthRule represents an authorization rule.
type AuthRule struct {
	Resource  string
	Action    string
	Effect    AuthEffect
	Principal string
}

// AuthEffect represents authorization effects.
type AuthEffect int

const (
	Allow AuthEffect = iota
	Deny
)

// AuthCondition represents authorization conditions.
type AuthCondition struct {
	Key      string
	Operator string
	Value    interface{}
}

// Role represents a user role.
type Role struct {
	Name        string
	Permissions []Permission
	Inherits    []string
}

// RBAC implements role-based access control.
type RBAC struct {
	roles       map[string]*Role
	assignments map[string][]string // user to roles
	hierarchy   map[string][]string // role inheritance
}

// AuditManager manages database auditing.
type AuditManager struct {
	enabled  bool
	events   chan AuditEvent
	storage  AuditStorage
	policies []AuditPolicy
}

// AuditEvent represents an audit event.
type AuditEvent struct {
	ID        string
	Timestamp time.Time
	User      string
	Action    string
	Resource  string
	Result    string
	Details   map[string]interface{}
}

// AuditStorage represents audit storage backends.
type AuditStorage interface {
	Store(event AuditEvent) error
	Query(filter AuditFilter) ([]AuditEvent, error)
}

// AuditFilter represents audit query filters.
type AuditFilter struct {
	StartTime time.Time
	EndTime   time.Time
	User      string
	Action    string
	Resource  string
}

// AuditPolicy represents audit policies.
type AuditPolicy struct {
	Name      string
	Events    []string
	Storage   string
	Retention time.Duration
}

// DatabaseBackup provides backup and restore functionality.
type DatabaseBackup struct {
	scheduler  *BackupScheduler
	storage    BackupStorage
	policies   []BackupPolicy
	encryption *BackupEncryption
}

// BackupScheduler schedules database backups.
type BackupScheduler struct {
	jobs    map[string]*BackupJob
	cron    *CronScheduler
	enabled bool
}

// BackupJob represents a backup job.
type BackupJob struct {
	ID        string
	Name      string
	Database  string
	Schedule  string
	Type      BackupType
	Storage   string
	Retention time.Duration
}

// BackupType represents backup types.
type BackupType int

const (
	FullBackup BackupType = iota
	IncrementalBackup
	DifferentialBackup
	LogBackup
)

// CronScheduler implements cron-like scheduling.
type CronScheduler struct {
	entries map[string]*CronEntry
	running bool
}

// CronEntry represents a cron entry.
type CronEntry struct {
	Schedule string
	Job      func() error
	NextRun  time.Time
	LastRun  time.Time
}

// BackupStorage represents backup storage backends.
type BackupStorage interface {
	Store(backup *Backup) error
	Retrieve(id string) (*Backup, error)
	List() ([]*BackupMetadata, error)
	Delete(id string) error
}

// Backup represents a database backup.
type Backup struct {
	ID        string
	Database  string
	Type      BackupType
	Data      []byte
	Metadata  *BackupMetadata
	CreatedAt time.Time
}

// BackupMetadata represents backup metadata.
type BackupMetadata struct {
	ID        string
	Database  string
	Size      int64
	Type      BackupType
	Checksum  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// BackupPolicy represents backup policies.
type BackupPolicy struct {
	Name       string
	Databases  []string
	Schedule   string
	Type       BackupType
	Retention  time.Duration
	Storage    string
	Encryption bool
}

// BackupEncryption manages backup encryption.
type BackupEncryption struct {
	enabled   bool
	algorithm EncryptionAlgorithm
	keyID     string
}

// Implementation methods for advanced features

// NewShardingManager creates a new sharding manager.
func NewShardingManager(shardingKey string) *ShardingManager {
	return &ShardingManager{
		shards:         make(map[string]*DatabaseManager),
		shardingKey:    shardingKey,
		hashFunction:   defaultHashFunction,
		replicas:       3,
		consistentHash: NewConsistentHash(100),
	}
}

// AddShard adds a shard to the sharding manager.
func (sm *ShardingManager) AddShard(name string, db *DatabaseManager) {
	sm.shards[name] = db
	sm.consistentHash.Add(name)
}

// GetShard gets the appropriate shard for a key.
func (sm *ShardingManager) GetShard(key string) *DatabaseManager {
	hash := sm.hashFunction(key)
	shardName := sm.consistentHash.Get(hash)
	return sm.shards[shardName]
}

// defaultHashFunction is a simple hash function.
func defaultHashFunction(key string) uint32 {
	hash := uint32(2166136261)
	for _, b := range []byte(key) {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return hash
}

// NewConsistentHash creates a new consistent hash.
func NewConsistentHash(virtualNodes int) *ConsistentHash {
	return &ConsistentHash{
		ring:         make(map[uint32]string),
		virtualNodes: virtualNodes,
	}
}

// Add adds a node to the consistent hash.
func (ch *ConsistentHash) Add(node string) {
	for i := 0; i < ch.virtualNodes; i++ {
		hash := defaultHashFunction(fmt.Sprintf("%s:%d", node, i))
		ch.ring[hash] = node
		ch.sortedHashes = append(ch.sortedHashes, hash)
	}
	// Sort for binary search
	for i := 0; i < len(ch.sortedHashes)-1; i++ {
		for j := i + 1; j < len(ch.sortedHashes); j++ {
			if ch.sortedHashes[i] > ch.sortedHashes[j] {
				ch.sortedHashes[i], ch.sortedHashes[j] = ch.sortedHashes[j], ch.sortedHashes[i]
			}
		}
	}
}

// Get gets the node for a hash.
func (ch *ConsistentHash) Get(hash uint32) string {
	if len(ch.sortedHashes) == 0 {
		return ""
	}

	// Binary search for the first hash >= target
	idx := 0
	for i, h := range ch.sortedHashes {
		if h >= hash {
			idx = i
			break
		}
	}

	return ch.ring[ch.sortedHashes[idx]]
}

// NewDatabaseReplication creates a new database replication manager.
func NewDatabaseReplication(master *DatabaseManager, config ReplicationConfig) *DatabaseReplication {
	return &DatabaseReplication{
		master:  master,
		slaves:  make([]*DatabaseManager, 0),
		config:  config,
		monitor: NewReplicationMonitor(),
	}
}

// AddSlave adds a slave database.
func (dr *DatabaseReplication) AddSlave(slave *DatabaseManager) {
	dr.slaves = append(dr.slaves, slave)
}

// NewReplicationMonitor creates a new replication monitor.
func NewReplicationMonitor() *ReplicationMonitor {
	return &ReplicationMonitor{
		status:       Healthy,
		healthChecks: make(chan HealthCheck, 100),
		alertManager: NewAlertManager(),
	}
}

// NewAlertManager creates a new alert manager.
func NewAlertManager() *AlertManager {
	return &AlertManager{
		alerts:   make(chan Alert, 1000),
		handlers: make(map[AlertType][]AlertHandler),
	}
}

// SendAlert sends an alert.
func (am *AlertManager) SendAlert(alert Alert) {
	am.alerts <- alert

	if handlers, exists := am.handlers[alert.Type]; exists {
		for _, handler := range handlers {
			go handler(alert)
		}
	}
}

// NewDatabaseMonitoring creates a new database monitoring system.
func NewDatabaseMonitoring() *DatabaseMonitoring {
	return &DatabaseMonitoring{
		metrics:  NewMetricsCollector(),
		profiler: NewQueryProfiler(),
		monitor:  NewPerformanceMonitor(),
		analyzer: NewQueryAnalyzer(),
	}
}

// NewMetricsCollector creates a new metrics collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		counters:   make(map[string]int64),
		gauges:     make(map[string]float64),
		histograms: make(map[string]*Histogram),
		timers:     make(map[string]*Timer),
	}
}

// NewQueryProfiler creates a new query profiler.
func NewQueryProfiler() *QueryProfiler {
	return &QueryProfiler{
		profiles:  make(map[string]*QueryProfile),
		enabled:   false,
		threshold: 100 * time.Millisecond,
	}
}

// NewPerformanceMonitor creates a new performance monitor.
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{}
}

// NewQueryAnalyzer creates a new query analyzer.
func NewQueryAnalyzer() *QueryAnalyzer {
	return &QueryAnalyzer{
		patterns:    make(map[string]*QueryPattern),
		suggestions: make([]OptimizationSuggestion, 0),
		analyzer:    NewStaticAnalyzer(),
	}
}

// NewStaticAnalyzer creates a new static analyzer.
func NewStaticAnalyzer() *StaticAnalyzer {
	return &StaticAnalyzer{
		rules: make([]AnalysisRule, 0),
	}
}

// NewDatabaseSecurity creates a new database security manager.
func NewDatabaseSecurity() *DatabaseSecurity {
	return &DatabaseSecurity{
		encryption:     NewDatabaseEncryption(),
		authentication: NewAuthenticationManager(),
		authorization:  NewAuthorizationManager(),
		auditing:       NewAuditManager(),
	}
}

// NewDatabaseEncryption creates a new database encryption manager.
func NewDatabaseEncryption() *DatabaseEncryption {
	return &DatabaseEncryption{
		atRest:     &EncryptionAtRest{},
		inTransit:  &EncryptionInTransit{},
		keyManager: NewKeyManager(),
	}
}

// NewKeyManager creates a new key manager.
func NewKeyManager() *KeyManager {
	return &KeyManager{
		provider: LocalKeyProvider,
		keys:     make(map[string]*EncryptionKey),
	}
}

// NewAuthenticationManager creates a new authentication manager.
func NewAuthenticationManager() *AuthenticationManager {
	return &AuthenticationManager{
		providers: make([]AuthProvider, 0),
		sessions:  make(map[string]*AuthSession),
	}
}

// NewAuthorizationManager creates a new authorization manager.
func NewAuthorizationManager() *AuthorizationManager {
	return &AuthorizationManager{
		policies: make([]AuthPolicy, 0),
		roles:    make(map[string]*Role),
		rbac:     NewRBAC(),
	}
}

// NewRBAC creates a new RBAC system.
func NewRBAC() *RBAC {
	return &RBAC{
		roles:       make(map[string]*Role),
		assignments: make(map[string][]string),
		hierarchy:   make(map[string][]string),
	}
}

// NewAuditManager creates a new audit manager.
func NewAuditManager() *AuditManager {
	return &AuditManager{
		enabled:  false,
		events:   make(chan AuditEvent, 10000),
		policies: make([]AuditPolicy, 0),
	}
}

// NewDatabaseBackup creates a new database backup manager.
func NewDatabaseBackup() *DatabaseBackup {
	return &DatabaseBackup{
		scheduler:  NewBackupScheduler(),
		policies:   make([]BackupPolicy, 0),
		encryption: &BackupEncryption{},
	}
}

// NewBackupScheduler creates a new backup scheduler.
func NewBackupScheduler() *BackupScheduler {
	return &BackupScheduler{
		jobs: make(map[string]*BackupJob),
		cron: NewCronScheduler(),
	}
}

// NewCronScheduler creates a new cron scheduler.
func NewCronScheduler() *CronScheduler {
	return &CronScheduler{
		entries: make(map[string]*CronEntry),
	}
}
