// Package config manages ReqWise configuration.
//
// Settings come from three layers: built-in defaults, an optional YAML file
// (reqwise.yml under REQWISE_CONFIG_PATH, default /etc/reqwise/config), and
// environment variables. Environment wins over file wins over default, and
// each attribute remembers which layer supplied it so `reqwisectl
// configuration show` can report provenance.
//
// The token signing secret is deliberately not a config-file attribute: it
// is read only from the SECRET_KEY environment variable, and the server
// refuses to start without it.
package config
