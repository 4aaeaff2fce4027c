package mcp

import (
	"context"
	"fmt"
	"log/slog"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/lasercircuit/internal/config"
	"github.com/nvandessel/lasercircuit/internal/logging"
	"github.com/nvandessel/lasercircuit/internal/store"
)

// Server wraps the MCP SDK server and provides lasercircuit tools.
type Server struct {
	server   *sdk.Server
	store    store.RunStore // nil when history is disabled
	settings *config.Config
	root     string
	limits   toolLimits
	log      *slog.Logger
}

// Config holds server configuration.
type Config struct {
	Name     string         // Server name (e.g., "lasercircuit")
	Version  string         // Server version
	Root     string         // Project root directory
	Settings *config.Config // Effective configuration; nil means defaults
	Logger   *slog.Logger   // Operational logger; nil discards
}

// NewServer creates a new MCP server with circuit tools.
func NewServer(cfg *Config) (*Server, error) {
	settings := cfg.Settings
	if settings == nil {
		settings = config.Default()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	var runs store.RunStore
	if settings.History.Enabled {
		sqliteStore, err := store.NewSQLiteRunStore(cfg.Root)
		if err != nil {
			return nil, fmt.Errorf("failed to create run store: %w", err)
		}
		runs = sqliteStore
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			logger.Debug("mcp client initialized")
		},
	})

	s := &Server{
		server:   mcpServer,
		store:    runs,
		settings: settings,
		root:     cfg.Root,
		limits:   newToolLimits(),
		log:      logger,
	}
	s.registerTools()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	err := s.server.Run(ctx, &sdk.StdioTransport{})
	if cerr := s.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	if s.store == nil {
		return nil
	}
	err := s.store.Close()
	s.store = nil
	return err
}
