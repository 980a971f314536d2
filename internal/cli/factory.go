// Package cli holds shared wiring helpers for the espalier commands.
package cli

import (
	"fmt"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/adapters/memory"
	redisadapter "github.com/aretw0/espalier/pkg/adapters/redis"
	"github.com/aretw0/espalier/pkg/adapters/yamlfile"
	"github.com/aretw0/espalier/pkg/ports"
)

// ResolveSource loads the pattern source for a command: the YAML file when
// given, the stock pattern set otherwise.
func ResolveSource(patternsPath string) (ports.PatternSource, error) {
	if patternsPath == "" {
		return memory.NewSource(espalier.DefaultPatterns()...), nil
	}
	return yamlfile.Load(patternsPath)
}

// ResolveStore selects the session store backend for the server.
func ResolveStore(kind, redisAddr string) (ports.SessionStore, error) {
	switch kind {
	case "", "memory":
		return memory.NewStore(), nil
	case "redis":
		if redisAddr == "" {
			return nil, fmt.Errorf("redis store requires --redis-addr")
		}
		return redisadapter.New(redisAddr, "", 0), nil
	default:
		return nil, fmt.Errorf("unknown store %q (expected memory or redis)", kind)
	}
}
