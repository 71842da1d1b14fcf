package gltfio

import (
	"testing"

	"github.com/qmuntal/gltf"

	"github.com/kismeter/filament/material"
)

func TestFromMaterialDefaults(t *testing.T) {
	key, uvmap := FromMaterial(&gltf.Material{Name: "empty"})

	want := material.DefaultKey()
	if key != want {
		t.Errorf("empty material key:\ngot  %+v\nwant %+v", key, want)
	}
	if uvmap != (material.UvMap{}) {
		t.Errorf("empty material uvmap: %v", uvmap)
	}
}

func TestFromMaterialChannels(t *testing.T) {
	normalIdx := 1
	scale := 0.8
	gm := &gltf.Material{
		Name: "crate",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorTexture:         &gltf.TextureInfo{Index: 0, TexCoord: 0},
			MetallicRoughnessTexture: &gltf.TextureInfo{Index: 2, TexCoord: 0},
		},
		NormalTexture: &gltf.NormalTexture{Index: &normalIdx, TexCoord: 1, Scale: &scale},
	}

	key, uvmap := FromMaterial(gm)

	if !key.HasBaseColorTexture || key.BaseColorUV != 0 {
		t.Errorf("base color channel: %+v", key)
	}
	if !key.HasMetallicRoughnessTexture || key.MetallicRoughnessUV != 0 {
		t.Errorf("metallic-roughness channel: %+v", key)
	}
	if !key.HasNormalTexture || key.NormalUV != 1 {
		t.Errorf("normal channel: %+v", key)
	}
	if key.NormalScale != 0.8 {
		t.Errorf("normal scale: %v", key.NormalScale)
	}

	// set 0 referenced first gets slot 1, set 1 gets slot 2
	if uvmap[0] != 1 || uvmap[1] != 2 {
		t.Errorf("uv slot assignment: %v", uvmap)
	}
}

func TestFromMaterialUvSlotBudget(t *testing.T) {
	occlusionIdx := 3
	gm := &gltf.Material{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorTexture:         &gltf.TextureInfo{Index: 0, TexCoord: 0},
			MetallicRoughnessTexture: &gltf.TextureInfo{Index: 1, TexCoord: 1},
		},
		OcclusionTexture: &gltf.OcclusionTexture{Index: &occlusionIdx, TexCoord: 2},
	}

	key, uvmap := FromMaterial(gm)

	if uvmap[2] != 0 {
		t.Errorf("third UV set got a slot: %v", uvmap)
	}

	material.Normalize(&key, &uvmap)
	if key.HasOcclusionTexture {
		t.Error("channel past the slot budget survived normalization")
	}
	if !key.HasBaseColorTexture || !key.HasMetallicRoughnessTexture {
		t.Error("in-budget channels were dropped")
	}
}

func TestFromMaterialUnlitExtension(t *testing.T) {
	gm := &gltf.Material{
		Extensions: gltf.Extensions{ExtUnlit: nil},
	}
	key, _ := FromMaterial(gm)
	if !key.Unlit {
		t.Error("KHR_materials_unlit not detected")
	}
}

func TestFromMaterialAlphaModes(t *testing.T) {
	cutoff := 0.25

	mask := &gltf.Material{AlphaMode: gltf.AlphaMask, AlphaCutoff: &cutoff}
	key, _ := FromMaterial(mask)
	if key.AlphaMode != material.AlphaMask || key.AlphaMaskThreshold != 0.25 {
		t.Errorf("mask: %+v", key)
	}

	maskDefault := &gltf.Material{AlphaMode: gltf.AlphaMask}
	key, _ = FromMaterial(maskDefault)
	if key.AlphaMaskThreshold != 0.5 {
		t.Errorf("default cutoff: %v", key.AlphaMaskThreshold)
	}

	blend := &gltf.Material{AlphaMode: gltf.AlphaBlend}
	key, _ = FromMaterial(blend)
	if key.AlphaMode != material.AlphaBlend {
		t.Errorf("blend: %+v", key)
	}
}

func TestFromMaterialFactors(t *testing.T) {
	base := [4]float64{0.5, 0.25, 0.125, 1}
	metallic := 0.0
	roughness := 0.4
	gm := &gltf.Material{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &base,
			MetallicFactor:  &metallic,
			RoughnessFactor: &roughness,
		},
		EmissiveFactor: [3]float64{1, 0.5, 0},
	}

	key, _ := FromMaterial(gm)

	if key.BaseColorFactor != [4]float32{0.5, 0.25, 0.125, 1} {
		t.Errorf("base color factor: %v", key.BaseColorFactor)
	}
	if key.MetallicFactor != 0 || key.RoughnessFactor != 0.4 {
		t.Errorf("metallic/roughness: %v %v", key.MetallicFactor, key.RoughnessFactor)
	}
	if key.EmissiveFactor != [3]float32{1, 0.5, 0} {
		t.Errorf("emissive factor: %v", key.EmissiveFactor)
	}
}

func TestImportMaterials(t *testing.T) {
	doc := &gltf.Document{
		Materials: []*gltf.Material{
			{Name: "named"},
			{},
		},
	}

	out := ImportMaterials(doc)
	if len(out) != 2 {
		t.Fatalf("imported %d materials", len(out))
	}
	if out[0].Name != "named" {
		t.Errorf("name: %q", out[0].Name)
	}
	if out[1].Name != "material_1" {
		t.Errorf("fallback name: %q", out[1].Name)
	}
}
