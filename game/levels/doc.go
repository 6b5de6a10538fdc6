// Package levels provides the level catalog for Boxworld.
//
// The levels package handles:
//   - Loading level files from the built-in catalog or a directory
//   - Validating every layout before it reaches the engine
//   - Looking levels up by file ID or level number
//
// Level Format:
//
// Each level is a JSON file holding a name, a description and a layout of
// exactly engine.Height rows of engine.Width characters:
//
//	{
//	  "name": "First Steps",
//	  "description": "One box, one target.",
//	  "layout": ["----------", "-#####----", ...]
//	}
//
// Files are ordered by file name, so "01_first_steps.json" is level 1.
//
// Usage:
//
//	catalog := levels.Default()
//	eng, err := engine.NewEngine(catalog)
//
//	custom, err := levels.NewManagerFromDir("my-levels")
package levels
