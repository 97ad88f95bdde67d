package gauge

import (
	"fmt"
	"strings"
)

// Config is one point in a benchmark's parameter cross-product: an
// ordered mapping from option name to value. Iteration order equals
// insertion order, which is what sinks render.
type Config struct {
	names  []string
	values map[string]any
}

func NewConfig() *Config {
	return &Config{values: make(map[string]any)}
}

// Set stores value under name. Setting an existing name replaces the
// value but keeps the original position.
func (c *Config) Set(name string, value any) {
	if _, ok := c.values[name]; !ok {
		c.names = append(c.names, name)
	}
	c.values[name] = value
}

// Get returns the value stored under name, or nil when absent.
func (c *Config) Get(name string) any {
	return c.values[name]
}

// GetString formats the value stored under name. Absent names yield
// the empty string.
func (c *Config) GetString(name string) string {
	value, ok := c.values[name]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

// GetInt returns the value stored under name as an int. Absent names
// and non-numeric values yield zero.
func (c *Config) GetInt(name string) int {
	switch value := c.values[name].(type) {
	case int:
		return value
	case int64:
		return int(value)
	case uint32:
		return int(value)
	case float64:
		return int(value)
	default:
		return 0
	}
}

// Has reports whether name is set.
func (c *Config) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}

// Names returns the option names in insertion order.
func (c *Config) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of options in the set.
func (c *Config) Len() int {
	return len(c.names)
}

// String renders the set as "name=value" pairs in insertion order.
func (c *Config) String() string {
	pairs := make([]string, 0, len(c.names))
	for _, name := range c.names {
		pairs = append(pairs, fmt.Sprintf("%v=%v", name, c.values[name]))
	}
	return strings.Join(pairs, ",")
}
