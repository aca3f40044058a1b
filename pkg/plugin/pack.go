package plugin

import (
	"fmt"

	"digital.vasic.assertions/pkg/assertion"
)

// Pack is a Plugin backed by a fixed list of predicates.
type Pack struct {
	name       string
	version    string
	predicates []assertion.Predicate
}

// NewPack returns a Plugin that registers predicates under their
// own names.
func NewPack(name, version string, predicates ...assertion.Predicate) *Pack {
	return &Pack{name: name, version: version, predicates: predicates}
}

func (p *Pack) Name() string    { return p.name }
func (p *Pack) Version() string { return p.version }

// Predicates returns the predicates the pack registers.
func (p *Pack) Predicates() []assertion.Predicate {
	out := make([]assertion.Predicate, len(p.predicates))
	copy(out, p.predicates)
	return out
}

// Init registers every predicate, stopping at the first conflict.
// The pack's Config entry may set "override" (bool), replacing
// existing predicates, and "prefix" (string), prepended to every
// named predicate.
func (p *Pack) Init(ctx *PluginContext) error {
	override, prefix, err := p.settings(ctx)
	if err != nil {
		return err
	}
	for _, pred := range p.predicates {
		name := pred.Name
		if prefix != "" && name != "" {
			name = prefix + name
			pred.Name = name
		}
		if err := ctx.register(pred, name, override); err != nil {
			return fmt.Errorf("pack %s: %w", p.name, err)
		}
	}
	return nil
}

func (p *Pack) settings(ctx *PluginContext) (override bool, prefix string, err error) {
	if ctx != nil {
		override = ctx.Override
	}
	settings, err := ctx.Settings(p.name)
	if err != nil {
		return false, "", err
	}
	if v, ok := settings["override"]; ok {
		b, ok := v.(bool)
		if !ok {
			return false, "", fmt.Errorf("pack %s: override must be a bool, got %T", p.name, v)
		}
		override = b
	}
	if v, ok := settings["prefix"]; ok {
		s, ok := v.(string)
		if !ok {
			return false, "", fmt.Errorf("pack %s: prefix must be a string, got %T", p.name, v)
		}
		prefix = s
	}
	return override, prefix, nil
}
