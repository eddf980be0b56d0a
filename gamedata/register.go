package gamedata

import (
	"protoforge/prototype"
)

// Register adds the built-in prototype family to the table. Call once during
// startup, before any document is parsed.
func Register(table *prototype.Table) error {
	if err := prototype.RegisterType[Sword](table); err != nil {
		return err
	}
	return prototype.RegisterType[Effect](table)
}

// MustRegister panics on registration failure, which indicates a programming
// error rather than bad content.
func MustRegister(table *prototype.Table) {
	if err := Register(table); err != nil {
		panic(err)
	}
}
