package config

// Default values and environment variable names for queryctl
const (
	// Environment labels
	EnvDev  = "DEV"
	EnvUAT  = "UAT"
	EnvProd = "PROD"

	// DefaultEnvironment is used when no selector variable is set
	DefaultEnvironment = EnvDev

	// Environment variable names
	EnvVarEnvironment  = "QUERYCTL_ENV"       // primary environment selector
	EnvVarDotenvPath   = "DOTENV_PATH"        // explicit dotenv override
	EnvVarTestMode     = "QUERYCTL_TEST"      // test-mode marker ("1" enables)
	EnvVarLogLevel     = "QUERYCTL_LOG_LEVEL" // console level override
	EnvVarLogMaxBytes  = "LOG_MAX_BYTES"      // rotation size threshold
	EnvVarLogBackups   = "LOG_BACKUP_COUNT"   // rotated backups to keep
	EnvVarDebugEnvLoad = "QUERYCTL_DEBUG_ENV_LOAD"
	EnvVarRotateScheme = "QUERYCTL_LOG_ROTATE_SCHEME"

	// Logging defaults
	DefaultLogLevel    = "INFO"
	DefaultLogMaxBytes = 1_000_000
	DefaultLogBackups  = 5
	LogFileName        = "info.log"
	LogDirName         = "logs"

	// Rotation schemes
	RotateStandard = "standard" // stock size-based rotation
	RotateRenamed  = "renamed"  // info_1.log, info_2.log, ... with mtime pruning
)

// Dotenv file names checked in priority order when no explicit path is set
var dotenvCandidates = []string{".env.override", ".env", ".env.local"}

const (
	// DotenvSample is the last-resort fallback file
	DotenvSample = ".env.sample"

	// DotenvTest is loaded instead of the candidates when test mode is active
	DotenvTest = ".env.test"
)
