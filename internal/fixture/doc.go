// Package fixture loads card catalogs from YAML or CUE files into a store.
//
// A catalog lists cards by name with optional type line, rules text,
// power/toughness, colors, color identity and keywords:
//
//	cards:
//	  - name: Lightning Bolt
//	    type_line: Instant
//	    oracle_text: Lightning Bolt deals 3 damage to any target.
//	    colors: R
//	    identity: R
//
// Colors accept anything a color search accepts except the multicolor
// pseudo value: letters (WUB), names (esper) or "c" for colorless. Card ids
// are UUIDs; a card without one gets a name-derived UUID so reloading a
// catalog overwrites rather than duplicates.
//
// CUE catalogs are unified with a closed schema before decoding, so unknown
// fields and missing names are reported with their source position.
package fixture
