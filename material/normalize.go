package material

import "github.com/chewxy/math32"

// Normalize rewrites key and uvmap into the canonical form the variant
// cache hashes on. A texture channel whose UV set has no shader-visible
// slot (uvmap entry 0, out of range, or beyond the slot budget) cannot be
// sampled, so the channel is disabled rather than treated as an error.
// Disabled channels get their UV index zeroed, the mask threshold is
// zeroed outside MASK mode, non-finite factors are replaced, and uvmap
// entries no enabled channel reads are cleared. Normalize is idempotent
// and never re-enables a channel.
func Normalize(key *Key, uvmap *UvMap) {
	for _, c := range key.channels() {
		if *c.has {
			uv := int(*c.uv)
			if uv >= len(uvmap) || uvmap[uv] == 0 || uvmap[uv] > MaxUvSlots {
				*c.has = false
			}
		}
		if !*c.has {
			*c.uv = 0
		}
	}

	if key.AlphaMode != AlphaMask {
		key.AlphaMaskThreshold = 0
	}

	// Imported factors are untrusted floats. A NaN field never compares
	// equal to itself, so an unsanitized key would miss the cache on every
	// lookup and leak one compiled variant per call.
	key.AlphaMaskThreshold = finite(key.AlphaMaskThreshold)
	for i := range key.BaseColorFactor {
		key.BaseColorFactor[i] = finite(key.BaseColorFactor[i])
	}
	for i := range key.EmissiveFactor {
		key.EmissiveFactor[i] = finite(key.EmissiveFactor[i])
	}
	key.MetallicFactor = finite(key.MetallicFactor)
	key.RoughnessFactor = finite(key.RoughnessFactor)
	key.NormalScale = finite(key.NormalScale)
	key.AoStrength = finite(key.AoStrength)

	var used [len(uvmap)]bool
	for _, c := range key.channels() {
		if *c.has {
			used[*c.uv] = true
		}
	}
	for i := range uvmap {
		if !used[i] {
			uvmap[i] = 0
		}
	}
}

// finite replaces NaN and infinities with zero.
func finite(v float32) float32 {
	if math32.IsNaN(v) || math32.IsInf(v, 0) {
		return 0
	}
	return v
}
