package appconf

// Environment identifies the runtime environment the application runs in.
type Environment int

const (
	Development Environment = iota
	Test
	Production
)

// Config holds the server-level application configuration.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	RateLimit int
	Verbose   bool
}

// EnvFlagToEnvironment converts an environment flag value to an Environment.
// Unknown values default to Development.
func EnvFlagToEnvironment(envFlag string) Environment {
	switch envFlag {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}
