// Package gltfio turns glTF material descriptions into the canonical
// (Key, UvMap) pairs the material provider consumes. It reads only the
// material section of a document; geometry and texture payloads never
// pass through here.
package gltfio

import (
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/kismeter/filament/material"
)

// ExtUnlit is the glTF extension marking a material as unlit.
const ExtUnlit = "KHR_materials_unlit"

// ImportedMaterial is one document material reduced to its shading
// configuration, ready for Provider.CreateInstance.
type ImportedMaterial struct {
	Name  string
	Key   material.Key
	UvMap material.UvMap
}

// ImportMaterials extracts every material in the document. Materials with
// no name get a positional one.
func ImportMaterials(doc *gltf.Document) []ImportedMaterial {
	out := make([]ImportedMaterial, 0, len(doc.Materials))
	for i, gm := range doc.Materials {
		key, uvmap := FromMaterial(gm)
		name := gm.Name
		if name == "" {
			name = fmt.Sprintf("material_%d", i)
		}
		out = append(out, ImportedMaterial{Name: name, Key: key, UvMap: uvmap})
	}
	return out
}

// FromMaterial builds the raw key and UV-slot assignment for one glTF
// material. The result is not yet normalized; channels referencing UV
// sets beyond the slot budget keep their flags until material.Normalize
// drops them.
func FromMaterial(gm *gltf.Material) (material.Key, material.UvMap) {
	key := material.DefaultKey()
	key.DoubleSided = gm.DoubleSided

	if _, ok := gm.Extensions[ExtUnlit]; ok {
		key.Unlit = true
	}

	switch gm.AlphaMode {
	case gltf.AlphaMask:
		key.AlphaMode = material.AlphaMask
		key.AlphaMaskThreshold = 0.5
		if gm.AlphaCutoff != nil {
			key.AlphaMaskThreshold = float32(*gm.AlphaCutoff)
		}
	case gltf.AlphaBlend:
		key.AlphaMode = material.AlphaBlend
	}

	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		cf := pbr.BaseColorFactorOrDefault()
		key.BaseColorFactor = [4]float32{
			float32(cf[0]), float32(cf[1]), float32(cf[2]), float32(cf[3]),
		}
		key.MetallicFactor = float32(pbr.MetallicFactorOrDefault())
		key.RoughnessFactor = float32(pbr.RoughnessFactorOrDefault())
		if pbr.BaseColorTexture != nil {
			key.HasBaseColorTexture = true
			key.BaseColorUV = uint8(pbr.BaseColorTexture.TexCoord)
		}
		if pbr.MetallicRoughnessTexture != nil {
			key.HasMetallicRoughnessTexture = true
			key.MetallicRoughnessUV = uint8(pbr.MetallicRoughnessTexture.TexCoord)
		}
	}

	if nt := gm.NormalTexture; nt != nil && nt.Index != nil {
		key.HasNormalTexture = true
		key.NormalUV = uint8(nt.TexCoord)
		if nt.Scale != nil {
			key.NormalScale = float32(*nt.Scale)
		}
	}

	if ot := gm.OcclusionTexture; ot != nil && ot.Index != nil {
		key.HasOcclusionTexture = true
		key.OcclusionUV = uint8(ot.TexCoord)
		if ot.Strength != nil {
			key.AoStrength = float32(*ot.Strength)
		}
	}

	if gm.EmissiveTexture != nil {
		key.HasEmissiveTexture = true
		key.EmissiveUV = uint8(gm.EmissiveTexture.TexCoord)
	}
	key.EmissiveFactor = [3]float32{
		float32(gm.EmissiveFactor[0]),
		float32(gm.EmissiveFactor[1]),
		float32(gm.EmissiveFactor[2]),
	}

	return key, assignUvMap(&key)
}

// assignUvMap hands out shader-visible UV slots to the first two distinct
// UV sets referenced by enabled channels, in channel declaration order.
// Sets referenced after the budget is spent stay unassigned, so
// normalization disables the channels that point at them.
func assignUvMap(key *material.Key) material.UvMap {
	var uvmap material.UvMap
	next := uint8(1)
	assign := func(has bool, uv uint8) {
		if !has || int(uv) >= len(uvmap) {
			return
		}
		if uvmap[uv] == 0 && next <= material.MaxUvSlots {
			uvmap[uv] = next
			next++
		}
	}
	assign(key.HasBaseColorTexture, key.BaseColorUV)
	assign(key.HasMetallicRoughnessTexture, key.MetallicRoughnessUV)
	assign(key.HasNormalTexture, key.NormalUV)
	assign(key.HasOcclusionTexture, key.OcclusionUV)
	assign(key.HasEmissiveTexture, key.EmissiveUV)
	return uvmap
}
