package failure

// -- Errors Declarations --
var (
	EnvironmentLocalFileError = &Failure{
		Code:    0x0001,
		Message: "no .env file found, using system environment variables",
	}
	EnvironmentDatabaseError = &Failure{
		Code:    0x0002,
		Message: "no database connection string found",
	}
	EnvironmentPortError = &Failure{
		Code:    0x0003,
		Message: "port env variable is missing. applying default port 5003",
	}
	DatabaseInitializationError = &Failure{
		Code:    0x0004,
		Message: "database failed to init",
	}
	DatabaseMigrationError = &Failure{
		Code:    0x0005,
		Message: "database failed to run migrations",
	}
	RedisClientError = &Failure{
		Code:    0x0006,
		Message: "failed to connect to redis",
	}
	BrokerUnreachableError = &Failure{
		Code:    0x0007,
		Message: "broker is unreachable",
	}
	EnqueueError = &Failure{
		Code:    0x0008,
		Message: "failed to enqueue job",
	}
	RecipientLookupError = &Failure{
		Code:    0x0009,
		Message: "account directory lookup failed",
	}
	DeliveryLogError = &Failure{
		Code:    0x000A,
		Message: "failed to append delivery log entry",
	}
	FailedToStartServerError = &Failure{
		Code:    0x000B,
		Message: "server failed to start",
	}
	ForcedShutdownServerError = &Failure{
		Code:    0x000C,
		Message: "server forced to shutdown",
	}
	EnvironmentBrokersError = &Failure{
		Code:    0x000D,
		Message: "no kafka brokers configured",
	}
)
