// Package catalog holds the component library: the registry of known
// instrumentation components and the server kinds they talk to.
package catalog

// Component is one library entry. Client-side components (a database
// driver, an RPC client) carry the id of the server kind they connect to;
// server-side components point at themselves.
type Component struct {
	ID       int
	Name     string
	ServerID int
}

// Catalog resolves component ids to display names and owning server kinds.
// Read-only after construction; safe for concurrent use.
type Catalog struct {
	components map[int]Component
	servers    map[int]string
}

// Server kind ids. Client components map onto these so conjectural nodes
// are labeled by the external system they represent.
const (
	ServerMySQL         = 100
	ServerPostgreSQL    = 101
	ServerRedis         = 102
	ServerMongoDB       = 103
	ServerMemcached     = 104
	ServerElasticsearch = 105
	ServerKafka         = 106
	ServerRabbitMQ      = 107
	ServerHTTP          = 108
)

// Component ids.
const (
	ComponentTomcat           = 1
	ComponentHTTPClient       = 2
	ComponentMySQLDriver      = 3
	ComponentPostgreSQLDriver = 4
	ComponentRedisClient      = 5
	ComponentMongoDriver      = 6
	ComponentMemcachedClient  = 7
	ComponentElasticClient    = 8
	ComponentKafkaProducer    = 9
	ComponentRabbitMQProducer = 10
	ComponentGRPC             = 11
	ComponentSpringMVC        = 12
)

// NewDefault returns the catalog with the built-in component library.
func NewDefault() *Catalog {
	c := &Catalog{
		components: make(map[int]Component),
		servers: map[int]string{
			ServerMySQL:         "MySQL",
			ServerPostgreSQL:    "PostgreSQL",
			ServerRedis:         "Redis",
			ServerMongoDB:       "MongoDB",
			ServerMemcached:     "Memcached",
			ServerElasticsearch: "Elasticsearch",
			ServerKafka:         "Kafka",
			ServerRabbitMQ:      "RabbitMQ",
			ServerHTTP:          "HTTP",
		},
	}
	for _, comp := range []Component{
		{ComponentTomcat, "Tomcat", ServerHTTP},
		{ComponentHTTPClient, "HttpClient", ServerHTTP},
		{ComponentMySQLDriver, "mysql-connector", ServerMySQL},
		{ComponentPostgreSQLDriver, "pgjdbc", ServerPostgreSQL},
		{ComponentRedisClient, "Jedis", ServerRedis},
		{ComponentMongoDriver, "mongodb-driver", ServerMongoDB},
		{ComponentMemcachedClient, "spymemcached", ServerMemcached},
		{ComponentElasticClient, "elastic-client", ServerElasticsearch},
		{ComponentKafkaProducer, "kafka-producer", ServerKafka},
		{ComponentRabbitMQProducer, "rabbitmq-producer", ServerRabbitMQ},
		{ComponentGRPC, "gRPC", ServerHTTP},
		{ComponentSpringMVC, "SpringMVC", ServerHTTP},
	} {
		c.components[comp.ID] = comp
	}
	return c
}

// Register adds or replaces a component entry and its server name.
func (c *Catalog) Register(comp Component, serverName string) {
	c.components[comp.ID] = comp
	if serverName != "" {
		c.servers[comp.ServerID] = serverName
	}
}

// ComponentName returns the display name for a component id, or "" when
// the id is not in the library.
func (c *Catalog) ComponentName(componentID int) string {
	return c.components[componentID].Name
}

// ServerIDOf returns the server kind a component connects to, or 0.
func (c *Catalog) ServerIDOf(componentID int) int {
	return c.components[componentID].ServerID
}

// ServerName returns the display name of a server kind, or "" when
// unknown.
func (c *Catalog) ServerName(serverID int) string {
	return c.servers[serverID]
}
