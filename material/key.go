package material

// AlphaMode selects how a material's alpha channel affects coverage.
type AlphaMode uint8

const (
	AlphaOpaque AlphaMode = iota
	AlphaMask
	AlphaBlend
)

func (a AlphaMode) String() string {
	switch a {
	case AlphaOpaque:
		return "OPAQUE"
	case AlphaMask:
		return "MASK"
	case AlphaBlend:
		return "BLEND"
	}
	return "UNKNOWN"
}

// UvMap maps a source UV-set index (0-7) to a shader-visible UV slot.
// Entry values: 0 = never sampled, 1 = slot UV0, 2 = slot UV1. The shader
// exposes at most MaxUvSlots slots regardless of how many UV sets the
// source asset carries.
type UvMap [8]uint8

// MaxUvSlots is the number of UV slots the ubershader samples from.
const MaxUvSlots = 2

// Key is the canonical description of one material's shading behavior.
// It is a plain comparable value: two Keys compare equal exactly when they
// produce identical shader source and parameter lists, which makes the
// type directly usable as a variant-cache map key. Run Normalize before
// comparing keys built from imported data.
type Key struct {
	DoubleSided bool
	Unlit       bool

	AlphaMode          AlphaMode
	AlphaMaskThreshold float32 // only meaningful when AlphaMode == AlphaMask

	HasBaseColorTexture         bool
	HasNormalTexture            bool
	HasMetallicRoughnessTexture bool
	HasOcclusionTexture         bool
	HasEmissiveTexture          bool

	// Source UV-set index per channel; only meaningful while the matching
	// Has*Texture flag is set. Normalize zeroes the index of any disabled
	// channel so that it cannot split the cache.
	BaseColorUV         uint8
	NormalUV            uint8
	MetallicRoughnessUV uint8
	OcclusionUV         uint8
	EmissiveUV          uint8

	BaseColorFactor [4]float32
	MetallicFactor  float32
	RoughnessFactor float32
	NormalScale     float32
	AoStrength      float32
	EmissiveFactor  [3]float32
}

// DefaultKey returns a Key with the glTF material defaults: opaque, lit,
// no textures, all factors at their neutral values.
func DefaultKey() Key {
	return Key{
		BaseColorFactor: [4]float32{1, 1, 1, 1},
		MetallicFactor:  1,
		RoughnessFactor: 1,
		NormalScale:     1,
		AoStrength:      1,
	}
}

// channel is a mutable view over one of the five texture channels.
type channel struct {
	has *bool
	uv  *uint8
}

// channels returns the five texture channels in their fixed declaration
// order. Every pass over the key (normalization, binding) walks this order
// so that equal keys always see identical traversal.
func (k *Key) channels() [5]channel {
	return [5]channel{
		{&k.HasBaseColorTexture, &k.BaseColorUV},
		{&k.HasMetallicRoughnessTexture, &k.MetallicRoughnessUV},
		{&k.HasNormalTexture, &k.NormalUV},
		{&k.HasOcclusionTexture, &k.OcclusionUV},
		{&k.HasEmissiveTexture, &k.EmissiveUV},
	}
}
