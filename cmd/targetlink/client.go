package main

import (
	targetlink "github.com/targetlink/targetlink"
	"github.com/targetlink/targetlink/internal/config"
	"github.com/targetlink/targetlink/internal/log"
)

// newClient builds a Client from resolved configuration. The logger is
// installed as the process default so library code logs consistently.
func newClient(cfg config.AppConfig) (*targetlink.Client, *log.Logger, error) {
	logger := log.Configure(cfg)

	client, err := targetlink.New(
		targetlink.WithConfig(cfg),
		targetlink.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}
	return client, logger, nil
}
