package mcp

import (
	"context"

	"pageload/internal/config"
	"pageload/internal/probe"
	"pageload/internal/sampling"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"
)

// ProbeFactory builds the probe used for one measure_page_load call.
type ProbeFactory func(cfg probe.Config) (sampling.Probe, error)

// Server exposes the sampler as MCP tools over stdio.
type Server struct {
	cfg      *config.AppConfig
	newProbe ProbeFactory

	// Only one sampling run is in flight at any time.
	runs *semaphore.Weighted

	server *sdk.Server
}

// NewServer creates a new MCP server that measures pages over HTTP.
func NewServer(cfg *config.AppConfig, version string) *Server {
	return newServer(cfg, version, newHTTPProbe)
}

func newServer(cfg *config.AppConfig, version string, factory ProbeFactory) *Server {
	s := &Server{
		cfg:      cfg,
		newProbe: factory,
		runs:     semaphore.NewWeighted(1),
		server:   sdk.NewServer(&sdk.Implementation{Name: "pageload", Version: version}, nil),
	}
	s.registerTools()
	return s
}

// Start serves MCP requests on stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Start(ctx context.Context) error {
	log.Info().Msg("MCP server starting Stdio loop")
	return s.server.Run(ctx, &sdk.StdioTransport{})
}

func newHTTPProbe(cfg probe.Config) (sampling.Probe, error) {
	p, err := probe.NewHTTPProbe(cfg)
	if err != nil {
		return nil, err
	}
	return p, nil
}
