package server

import "fmt"

type HttpConfig struct {
	// Host is the address to listen on.
	Host string `conf:"host"`

	// Port is the port to listen on.
	Port int `conf:"port"`

	// H2c enables HTTP/2 without TLS.
	H2c bool `conf:"h2c"`
}

// Addr returns the listen address.
func (c HttpConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
