package prototype

type glyph struct {
	Header
	Power float64  `json:"power,omitempty"`
	Icon  AssetRef `json:"icon,omitempty"`
}

func (glyph) PrototypeType() string { return "glyph" }

type weapon struct {
	Header
	Damage float64      `json:"damage,omitempty"`
	Glyphs []Ref[glyph] `json:"glyphs,omitempty"`
	Backup *Ref[glyph]  `json:"backup,omitempty"`
	Sheath struct {
		Emblem Ref[glyph] `json:"emblem"`
	} `json:"sheath,omitempty"`
	Icon AssetRef `json:"icon,omitempty"`
}

func (weapon) PrototypeType() string { return "weapon" }

type relic struct {
	Header
	Icon AssetRef `json:"icon"`
}

func (relic) PrototypeType() string { return "relic" }

func (r *relic) Validate() error {
	if r.Icon.Path() == "" {
		return &MissingFieldError{Field: "icon"}
	}
	return nil
}
