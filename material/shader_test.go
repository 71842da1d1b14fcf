package material

import (
	"strings"
	"testing"
)

func TestSynthesizeDeterministic(t *testing.T) {
	key := DefaultKey()
	key.HasBaseColorTexture = true
	key.AlphaMode = AlphaMask
	key.AlphaMaskThreshold = 0.5

	src1, params1 := Synthesize(key)
	src2, params2 := Synthesize(key)

	if src1 != src2 {
		t.Error("equal keys produced different shader source")
	}
	if len(params1) != len(params2) {
		t.Fatalf("parameter count differs: %d vs %d", len(params1), len(params2))
	}
	for i := range params1 {
		if params1[i] != params2[i] {
			t.Errorf("param %d differs: %v vs %v", i, params1[i], params2[i])
		}
	}
}

func TestSynthesizeUnlitIsSmaller(t *testing.T) {
	lit := DefaultKey()
	unlit := DefaultKey()
	unlit.Unlit = true

	litSrc, _ := Synthesize(lit)
	unlitSrc, _ := Synthesize(unlit)

	if len(unlitSrc) >= len(litSrc) {
		t.Errorf("unlit source (%d bytes) not smaller than lit (%d bytes)", len(unlitSrc), len(litSrc))
	}
	if strings.Contains(unlitSrc, "lightDir") {
		t.Error("unlit source contains lighting code")
	}
	for _, term := range []string{"texture(normalMap", "texture(metallicRoughnessMap", "texture(occlusionMap", "texture(emissiveMap", "lightDir"} {
		if !strings.Contains(litSrc, term) {
			t.Errorf("lit source missing %s", term)
		}
	}
}

func TestSynthesizeBaseColorRuntimeBranch(t *testing.T) {
	// texture presence must not be a compile-time branch: the same source
	// comes out whether or not the channel is enabled
	with := DefaultKey()
	with.HasBaseColorTexture = true
	without := DefaultKey()

	srcWith, _ := Synthesize(with)
	srcWithout, _ := Synthesize(without)

	if srcWith != srcWithout {
		t.Error("base color texture presence changed compiled source")
	}
	if !strings.Contains(srcWith, "if (baseColorIndex > -1)") {
		t.Error("runtime base color branch missing")
	}
	if !strings.Contains(srcWith, "baseColor.rgb *= baseColor.a") {
		t.Error("premultiply-on-blend missing")
	}
}

func TestSynthesizeMaskThreshold(t *testing.T) {
	key := DefaultKey()
	key.AlphaMode = AlphaMask
	key.AlphaMaskThreshold = 0.25

	src, _ := Synthesize(key)
	if !strings.Contains(src, "baseColor.a < 0.25") {
		t.Errorf("mask threshold not in source:\n%s", src)
	}

	opaque := DefaultKey()
	opaqueSrc, _ := Synthesize(opaque)
	if strings.Contains(opaqueSrc, "discard") {
		t.Error("opaque source contains discard")
	}
}

func TestGlslFloatLiteral(t *testing.T) {
	cases := []struct {
		in   float32
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{0.5, "0.5"},
		{0.25, "0.25"},
	}
	for _, tc := range cases {
		if got := glslFloat(tc.in); got != tc.want {
			t.Errorf("glslFloat(%v): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParamsOrder(t *testing.T) {
	params := Params()
	wantFirst := []Param{
		{"baseColorIndex", ParamInt},
		{"baseColorFactor", ParamFloat4},
		{"baseColorMap", ParamSampler2D},
		{"baseColorUvMatrix", ParamMat3},
		{"blendEnabled", ParamBool},
	}
	for i, want := range wantFirst {
		if params[i] != want {
			t.Errorf("param %d: got %v, want %v", i, params[i], want)
		}
	}
	if last := params[len(params)-1]; last.Name != "emissiveUvMatrix" {
		t.Errorf("last param: got %s", last.Name)
	}
}

func TestSynthesizeDeclaresAllParams(t *testing.T) {
	src, params := Synthesize(DefaultKey())
	for _, p := range params {
		decl := "uniform " + p.Type.String() + " " + p.Name + ";"
		if !strings.Contains(src, decl) {
			t.Errorf("missing declaration %q", decl)
		}
	}
}

func TestStates(t *testing.T) {
	opaque := DefaultKey()
	s := States(opaque)
	if s.Blending != BlendingOpaque || !s.DepthWrite || s.Shading != ShadingLit {
		t.Errorf("opaque states: %+v", s)
	}

	mask := DefaultKey()
	mask.AlphaMode = AlphaMask
	mask.AlphaMaskThreshold = 0.5
	s = States(mask)
	if s.Blending != BlendingMasked || s.MaskThreshold != 0.5 {
		t.Errorf("mask states: %+v", s)
	}

	blend := DefaultKey()
	blend.AlphaMode = AlphaBlend
	blend.DoubleSided = true
	s = States(blend)
	if s.Blending != BlendingTransparent {
		t.Errorf("blend states: %+v", s)
	}
	if !s.DepthWrite {
		t.Error("transparent variant must keep depth writes on")
	}
	if !s.DoubleSided {
		t.Error("double sided flag lost")
	}

	unlit := DefaultKey()
	unlit.Unlit = true
	if States(unlit).Shading != ShadingUnlit {
		t.Error("unlit shading model not selected")
	}
}
