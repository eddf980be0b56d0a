// Package gamedata declares the built-in prototype family and registers it
// into a type table. It doubles as the reference for how host applications
// declare their own prototype types.
package gamedata

import (
	"protoforge/prototype"
)

// Effect is a status effect applied by other prototypes, e.g. a sword.
type Effect struct {
	prototype.Header
	DamageMultiplier *float64           `json:"damage_multiplier,omitempty" jsonschema:"title=Damage multiplier,description=Outgoing damage is scaled by this factor"`
	SlowFactor       *float64           `json:"slow_factor,omitempty" jsonschema:"title=Slow factor,description=Movement speed multiplier applied to the target"`
	SlowDuration     *float64           `json:"slow_duration,omitempty" jsonschema:"title=Slow duration,description=Seconds the slow persists"`
	Icon             prototype.AssetRef `json:"icon" jsonschema:"title=Icon,required"`
}

func (Effect) PrototypeType() string {
	return "effect"
}

func (e *Effect) Validate() error {
	if e.Icon.Path() == "" {
		return &prototype.MissingFieldError{Field: "icon"}
	}
	return nil
}
