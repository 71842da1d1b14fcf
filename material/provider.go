package material

import (
	"fmt"

	"github.com/kismeter/filament/math"
)

// Provider deduplicates material configurations into compiled shader
// variants and binds per-object instances against them. Structurally
// equal configurations share one compiled program; only the numeric and
// texture parameters differ per instance.
//
// Provider is not safe for concurrent use; callers that share one across
// goroutines must supply their own locking.
type Provider struct {
	backend  Backend
	cache    map[Key]Program
	programs []Program
}

// NewProvider returns a Provider that compiles through the given backend.
// The backend handle is held for the Provider's whole lifetime.
func NewProvider(backend Backend) *Provider {
	return &Provider{
		backend: backend,
		cache:   make(map[Key]Program),
	}
}

// CreateInstance normalizes the key, compiles a shader variant for it if
// no structurally equal key has been seen before, and returns an instance
// with every parameter bound. A compile failure aborts only this call;
// nothing is cached on failure and the Provider stays usable.
func (p *Provider) CreateInstance(key Key, uvmap UvMap, label string) (Instance, error) {
	Normalize(&key, &uvmap)

	prog, ok := p.cache[key]
	if !ok {
		source, params := Synthesize(key)
		var err error
		prog, err = p.backend.Compile(label, source, params, States(key))
		if err != nil {
			return nil, fmt.Errorf("material %q: compile variant: %w", label, err)
		}
		p.cache[key] = prog
		p.programs = append(p.programs, prog)
	}

	inst, err := p.backend.Instantiate(prog)
	if err != nil {
		return nil, fmt.Errorf("material %q: instantiate: %w", label, err)
	}
	bindInstance(inst, key, uvmap)
	return inst, nil
}

// MaterialCount reports how many distinct variants are currently cached.
func (p *Provider) MaterialCount() int {
	return len(p.programs)
}

// Materials returns the cached variants in creation order. The slice is
// owned by the Provider and is valid until the next DestroyMaterials.
func (p *Provider) Materials() []Program {
	return p.programs
}

// DestroyMaterials releases every cached program back to the backend and
// empties the cache. The Provider stays usable; a later CreateInstance
// simply recompiles.
func (p *Provider) DestroyMaterials() {
	for _, prog := range p.programs {
		p.backend.Release(prog)
	}
	p.programs = nil
	p.cache = make(map[Key]Program)
}

// bindInstance writes every instance parameter for a normalized key.
// Shader-visible slots are 1-based in the UvMap and converted to the
// 0-based runtime convention here; -1 means "texture absent, skip the
// sample". UV matrices stay identity until per-texture UV transforms are
// imported from source assets.
func bindInstance(inst Instance, key Key, uvmap UvMap) {
	uvIndex := func(has bool, uv uint8) int32 {
		if !has {
			return -1
		}
		return int32(uvmap[uv]) - 1
	}

	inst.SetInt("baseColorIndex", uvIndex(key.HasBaseColorTexture, key.BaseColorUV))
	inst.SetInt("normalIndex", uvIndex(key.HasNormalTexture, key.NormalUV))
	inst.SetInt("metallicRoughnessIndex", uvIndex(key.HasMetallicRoughnessTexture, key.MetallicRoughnessUV))
	inst.SetInt("aoIndex", uvIndex(key.HasOcclusionTexture, key.OcclusionUV))
	inst.SetInt("emissiveIndex", uvIndex(key.HasEmissiveTexture, key.EmissiveUV))

	identity := math.Mat3Identity()
	inst.SetMat3("baseColorUvMatrix", identity)
	inst.SetMat3("metallicRoughnessUvMatrix", identity)
	inst.SetMat3("normalUvMatrix", identity)
	inst.SetMat3("occlusionUvMatrix", identity)
	inst.SetMat3("emissiveUvMatrix", identity)

	inst.SetFloat4("baseColorFactor", key.BaseColorFactor)
	inst.SetFloat("metallicFactor", key.MetallicFactor)
	inst.SetFloat("roughnessFactor", key.RoughnessFactor)
	inst.SetFloat("normalScale", key.NormalScale)
	inst.SetFloat("aoStrength", key.AoStrength)
	inst.SetFloat3("emissiveFactor", key.EmissiveFactor)

	inst.SetBool("blendEnabled", key.AlphaMode == AlphaBlend)
}
