package driven

// ConfigStore is the settings source. Keys use dot notation matching the
// TOML table layout, e.g. "github.owner" or "sync.cooldown".
//
// The typed getters return the zero value when a key is missing or holds
// another type. GetFloat also accepts integers; GetInt does not accept floats.
type ConfigStore interface {
	Get(key string) (any, bool)
	GetString(key string) string
	GetInt(key string) int
	GetFloat(key string) float64
	GetBool(key string) bool

	// Set stores value and persists it at once.
	Set(key string, value any) error
	Save() error
	Load() error

	// Path is where the configuration lives.
	Path() string
}
