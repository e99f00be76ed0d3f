// Package kernel holds the literary device catalog the feedback layer
// consults. The catalog ships embedded but can be replaced at load time,
// and every load is validated against the device schema.
package kernel

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed devices.json
var embeddedDevices []byte

//go:embed schema.json
var deviceSchema []byte

// Device is one catalog entry. Function is the analytical sentence the
// feedback layer quotes when a response names the device without
// explaining what it does.
type Device struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Aliases  []string `json:"aliases,omitempty"`
	Function string   `json:"function"`
}

// Catalog is an immutable, indexed device set. Safe for concurrent reads.
type Catalog struct {
	devices []Device
	index   map[string]int
}

// Load parses and schema-validates a device catalog document.
func Load(data []byte) (*Catalog, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("devices.schema.json", bytes.NewReader(deviceSchema)); err != nil {
		return nil, fmt.Errorf("add device schema: %w", err)
	}
	schema, err := compiler.Compile("devices.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile device schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse device catalog: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate device catalog: %w", err)
	}

	var devices []Device
	if err := json.Unmarshal(data, &devices); err != nil {
		return nil, fmt.Errorf("decode device catalog: %w", err)
	}

	catalog := &Catalog{
		devices: devices,
		index:   make(map[string]int, len(devices)),
	}
	for i, device := range devices {
		catalog.index[normalize(device.Name)] = i
		for _, alias := range device.Aliases {
			catalog.index[normalize(alias)] = i
		}
	}
	return catalog, nil
}

// Default returns the embedded catalog. The embedded document is part of
// the build, so a failure here is a programming error.
func Default() *Catalog {
	catalog, err := Load(embeddedDevices)
	if err != nil {
		panic(fmt.Sprintf("kernel: embedded device catalog invalid: %v", err))
	}
	return catalog
}

// Lookup resolves a device by name: exact normalized match, then alias,
// then word overlap. Overlap requires at least two shared words covering
// half of the longer name, so "dramatic irony" resolves from
// "the dramatic irony technique" but not from "irony" alone.
func (c *Catalog) Lookup(name string) (Device, bool) {
	normalized := normalize(name)
	if normalized == "" {
		return Device{}, false
	}
	if i, ok := c.index[normalized]; ok {
		return c.devices[i], true
	}

	// Overlap fallback scans devices in catalog order so ties resolve the
	// same way on every call.
	queryWords := wordSet(normalized)
	for _, device := range c.devices {
		if overlaps(queryWords, wordSet(normalize(device.Name))) {
			return device, true
		}
		for _, alias := range device.Aliases {
			if overlaps(queryWords, wordSet(normalize(alias))) {
				return device, true
			}
		}
	}
	return Device{}, false
}

// Identify finds the first catalog device a response mentions, preferring
// extracted topics over a raw text scan.
func (c *Catalog) Identify(text string, topics []string) (Device, bool) {
	for _, topic := range topics {
		if device, ok := c.Lookup(topic); ok {
			return device, true
		}
	}

	lower := normalize(text)
	for _, device := range c.devices {
		if strings.Contains(lower, normalize(device.Name)) {
			return device, true
		}
		for _, alias := range device.Aliases {
			if strings.Contains(lower, normalize(alias)) {
				return device, true
			}
		}
	}
	return Device{}, false
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func wordSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, word := range strings.Fields(s) {
		set[word] = struct{}{}
	}
	return set
}

func overlaps(a, b map[string]struct{}) bool {
	shared := 0
	for word := range a {
		if _, ok := b[word]; ok {
			shared++
		}
	}
	if shared < 2 {
		return false
	}
	longer := len(a)
	if len(b) > longer {
		longer = len(b)
	}
	return float64(shared)/float64(longer) >= 0.5
}
