package plugin

import (
	"context"
	"net/rpc"

	"github.com/hashicorp/go-plugin"
)

// SamplerPluginRPC implements the go-plugin Plugin interface for sampler plugins.
type SamplerPluginRPC struct {
	plugin.Plugin
	Impl SamplerPlugin
}

// Server returns an RPC server for this plugin.
func (p *SamplerPluginRPC) Server(*plugin.MuxBroker) (any, error) {
	return &SamplerPluginRPCServer{Impl: p.Impl}, nil
}

// Client returns an RPC client for this plugin.
func (p *SamplerPluginRPC) Client(_ *plugin.MuxBroker, c *rpc.Client) (any, error) {
	return &SamplerPluginRPCClient{client: c}, nil
}

// SamplerPluginRPCServer is the RPC server implementation for sampler plugins.
type SamplerPluginRPCServer struct {
	Impl SamplerPlugin
}

// Sample implements the RPC method for sampling a colour.
func (s *SamplerPluginRPCServer) Sample(opts SampleOptions, resp *SampleResult) error {
	hex, err := s.Impl.Sample(context.Background(), opts)
	if err != nil {
		return err
	}
	resp.Hex = hex
	return nil
}

// GetMetadata implements the RPC method for fetching plugin metadata.
func (s *SamplerPluginRPCServer) GetMetadata(_ any, resp *PluginInfo) error {
	*resp = s.Impl.GetMetadata()
	return nil
}

// GetFlagHelp implements the RPC method for fetching flag help.
func (s *SamplerPluginRPCServer) GetFlagHelp(_ any, resp *[]FlagHelp) error {
	*resp = s.Impl.GetFlagHelp()
	return nil
}

// SamplerPluginRPCClient is the RPC client implementation for sampler plugins.
type SamplerPluginRPCClient struct {
	client *rpc.Client
}

// Sample calls the remote Sample method. net/rpc has no cancellation, so a
// cancelled context abandons the call and returns the context error.
func (c *SamplerPluginRPCClient) Sample(ctx context.Context, opts SampleOptions) (string, error) {
	var resp SampleResult
	call := c.client.Go("Plugin.Sample", opts, &resp, make(chan *rpc.Call, 1))

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case done := <-call.Done:
		if done.Error != nil {
			return "", done.Error
		}
		return resp.Hex, nil
	}
}

// GetMetadata calls the remote GetMetadata method.
func (c *SamplerPluginRPCClient) GetMetadata() (PluginInfo, error) {
	var info PluginInfo
	err := c.client.Call("Plugin.GetMetadata", new(any), &info)
	return info, err
}

// GetFlagHelp calls the remote GetFlagHelp method.
func (c *SamplerPluginRPCClient) GetFlagHelp() []FlagHelp {
	var help []FlagHelp
	err := c.client.Call("Plugin.GetFlagHelp", new(any), &help)
	if err != nil {
		return []FlagHelp{}
	}
	return help
}

// RPCError represents an error returned from an RPC call.
type RPCError struct {
	Message string
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	return e.Message
}
