package main

import (
	"context"
	"testing"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

func TestSample(t *testing.T) {
	p := &ConstantPlugin{}

	tests := []struct {
		name    string
		args    map[string]any
		want    string
		wantErr bool
	}{
		{"default", nil, defaultHex, false},
		{"hex arg", map[string]any{"hex": "#336699"}, "#336699", false},
		{"bad hex", map[string]any{"hex": "#33669"}, "", true},
		{"negative seed", map[string]any{"seed": -1.0}, "", true},
		{"bad seed", map[string]any{"seed": "abc"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Sample(context.Background(), plugin.SampleOptions{PluginArgs: tt.args})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Sample() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Sample() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSampleSeeded(t *testing.T) {
	p := &ConstantPlugin{}

	a, err := p.Sample(context.Background(), plugin.SampleOptions{PluginArgs: map[string]any{"seed": 42.0}})
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	b, err := p.Sample(context.Background(), plugin.SampleOptions{PluginArgs: map[string]any{"seed": "42"}})
	if err != nil {
		t.Fatalf("Sample() error = %v", err)
	}
	if a != b {
		t.Errorf("numeric and string seeds differ: %s vs %s", a, b)
	}
	if !validHex(a) {
		t.Errorf("seeded sample %q is not a hex colour", a)
	}
}

func TestMetadata(t *testing.T) {
	info := (&ConstantPlugin{}).GetMetadata()
	if info.Type != plugin.TypeSampler {
		t.Errorf("Type = %q, want %q", info.Type, plugin.TypeSampler)
	}
	if info.PluginProtocol != string(plugin.PluginTypeGoPlugin) {
		t.Errorf("PluginProtocol = %q", info.PluginProtocol)
	}
}
