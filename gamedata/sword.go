package gamedata

import (
	"encoding/json"

	"protoforge/prototype"
)

// Sword is a weapon prototype referencing the effects it applies on hit.
type Sword struct {
	prototype.Header
	Damage  float64                  `json:"damage,omitempty" jsonschema:"title=Damage,default=1,description=Base damage per hit"`
	Level   uint                     `json:"level,omitempty" jsonschema:"title=Level,minimum=0,description=Minimum wielder level"`
	Effects []prototype.Ref[Effect]  `json:"effects,omitempty" jsonschema:"title=Effects,description=Effects applied on hit"`
	Icon    prototype.AssetRef       `json:"icon" jsonschema:"title=Icon,required"`
}

func (Sword) PrototypeType() string {
	return "sword"
}

// UnmarshalJSON applies the damage default before decoding, so an absent
// field means 1.0 rather than 0.
func (s *Sword) UnmarshalJSON(data []byte) error {
	type rawSword Sword
	aux := rawSword{Damage: 1}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Sword(aux)
	return nil
}

func (s *Sword) Validate() error {
	if s.Icon.Path() == "" {
		return &prototype.MissingFieldError{Field: "icon"}
	}
	return nil
}
