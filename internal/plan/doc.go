// Package plan assigns an animation treatment to each image and builds the
// immutable composition plan (per-image transform stages plus a final
// concatenation) that the render tiers consume. Fallback tiers rebuild a
// fresh, simpler plan rather than patching an existing one.
package plan
