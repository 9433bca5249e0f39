// Package handler implements the HTTP endpoints of the chat relay server.
package handler

import (
	"log/slog"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/tidechat/tidechat/internal/config"
	"github.com/tidechat/tidechat/internal/provider"
	"github.com/tidechat/tidechat/internal/relay"
	"github.com/tidechat/tidechat/internal/storage"
	"github.com/tidechat/tidechat/internal/tokenizer"
)

// Repo holds the dependencies for HTTP handlers.
type Repo struct {
	Logger    *slog.Logger
	Config    *config.Config
	Registry  *provider.Registry
	Relay     *relay.Relay
	Mock      *provider.Responder
	Storage   storage.Storage
	Tokenizer tokenizer.Tokenizer
	Cache     *ristretto.Cache[string, any]
}

// NewRepo creates a new instance of the handler repository.
func NewRepo(logger *slog.Logger, cfg *config.Config, registry *provider.Registry, rel *relay.Relay, store storage.Storage, cache *ristretto.Cache[string, any]) *Repo {
	return &Repo{
		Logger:    logger,
		Config:    cfg,
		Registry:  registry,
		Relay:     rel,
		Mock:      provider.NewResponder(),
		Storage:   store,
		Tokenizer: tokenizer.New(),
		Cache:     cache,
	}
}
