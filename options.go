package bridge

import (
	"github.com/viant/mcp-bridge/schema"
)

// Options holds the CLI surface of the bridge.
type Options struct {
	Host  string `short:"H" long:"host" description:"editor server host" default:"127.0.0.1"`
	Port  int    `short:"p" long:"port" description:"editor server port" default:"27000"`
	Debug bool   `short:"d" long:"debug" description:"verbose diagnostics on stderr"`
}

// Init fills unset fields with defaults, for options built in code rather
// than parsed from flags.
func (o *Options) Init() {
	if o.Host == "" {
		o.Host = schema.DefaultHost
	}
	if o.Port == 0 {
		o.Port = schema.DefaultPort
	}
}
