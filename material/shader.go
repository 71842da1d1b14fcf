package material

import (
	"fmt"
	"strings"
)

// VertexSource is the vertex stage shared by every variant. All variants
// require position, normal, UV0, UV1, and per-vertex color so that one
// vertex layout serves the whole ubershader family, whether or not a given
// instance samples both UV slots.
const VertexSource = `#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV0;
layout(location = 3) in vec2 inUV1;
layout(location = 4) in vec4 inColor;

uniform mat4 mvp;

out vec3 fragNormal;
out vec2 fragUV0;
out vec2 fragUV1;
out vec4 fragColor;

void main() {
    gl_Position = mvp * vec4(inPosition, 1.0);
    fragNormal  = inNormal;
    fragUV0     = inUV0;
    fragUV1     = inUV1;
    fragColor   = inColor;
}
`

// Params returns the ordered parameter declarations every variant exposes.
// Texture presence is a runtime parameter (a negative *Index skips the
// sample), so the list does not depend on which channels are enabled; the
// order is fixed and consumed verbatim by the instance binder.
func Params() []Param {
	return []Param{
		// base color
		{"baseColorIndex", ParamInt},
		{"baseColorFactor", ParamFloat4},
		{"baseColorMap", ParamSampler2D},
		{"baseColorUvMatrix", ParamMat3},
		{"blendEnabled", ParamBool},
		// metallic-roughness
		{"metallicRoughnessIndex", ParamInt},
		{"metallicFactor", ParamFloat},
		{"roughnessFactor", ParamFloat},
		{"metallicRoughnessMap", ParamSampler2D},
		{"metallicRoughnessUvMatrix", ParamMat3},
		// normal map
		{"normalIndex", ParamInt},
		{"normalScale", ParamFloat},
		{"normalMap", ParamSampler2D},
		{"normalUvMatrix", ParamMat3},
		// ambient occlusion
		{"aoIndex", ParamInt},
		{"aoStrength", ParamFloat},
		{"occlusionMap", ParamSampler2D},
		{"occlusionUvMatrix", ParamMat3},
		// emissive
		{"emissiveIndex", ParamInt},
		{"emissiveFactor", ParamFloat3},
		{"emissiveMap", ParamSampler2D},
		{"emissiveUvMatrix", ParamMat3},
	}
}

// Synthesize produces the fragment shader source and the ordered parameter
// declarations for a normalized key. It is a pure function: equal keys
// yield byte-identical source, which the variant cache relies on. The only
// compile-time branch is Unlit; unlit variants omit every lighting term
// and compile to a strictly smaller program.
func Synthesize(key Key) (source string, params []Param) {
	params = Params()

	var b strings.Builder
	b.WriteString("#version 410 core\n")
	b.WriteString("in vec3 fragNormal;\nin vec2 fragUV0;\nin vec2 fragUV1;\nin vec4 fragColor;\n\n")
	b.WriteString("out vec4 outColor;\n\n")
	for _, p := range params {
		fmt.Fprintf(&b, "uniform %s %s;\n", p.Type, p.Name)
	}

	b.WriteString(`
void main() {
    vec2 uvs[2] = vec2[2](fragUV0, fragUV1);

    vec4 baseColor = baseColorFactor;
    if (baseColorIndex > -1) {
        vec2 uv = (vec3(uvs[baseColorIndex], 1.0) * baseColorUvMatrix).xy;
        baseColor *= texture(baseColorMap, uv);
    }
    if (blendEnabled) {
        baseColor.rgb *= baseColor.a;
    }
    baseColor *= fragColor;
`)

	if key.AlphaMode == AlphaMask {
		fmt.Fprintf(&b, `
    if (baseColor.a < %s) {
        discard;
    }
`, glslFloat(key.AlphaMaskThreshold))
	}

	if key.Unlit {
		b.WriteString(`
    outColor = baseColor;
}
`)
		return b.String(), params
	}

	b.WriteString(`
    vec3 normal = normalize(fragNormal);
    if (normalIndex > -1) {
        vec2 uv = (vec3(uvs[normalIndex], 1.0) * normalUvMatrix).xy;
        vec3 n = texture(normalMap, uv).xyz * 2.0 - 1.0;
        n.y = -n.y;
        n.xy *= normalScale;
        normal = normalize(n);
    }

    float roughness = roughnessFactor;
    float metallic  = metallicFactor;
    if (metallicRoughnessIndex > -1) {
        vec2 uv = (vec3(uvs[metallicRoughnessIndex], 1.0) * metallicRoughnessUvMatrix).xy;
        vec4 mr = texture(metallicRoughnessMap, uv);
        roughness *= mr.g;
        metallic  *= mr.b;
    }

    float ao = 1.0;
    if (aoIndex > -1) {
        vec2 uv = (vec3(uvs[aoIndex], 1.0) * occlusionUvMatrix).xy;
        ao = texture(occlusionMap, uv).r * aoStrength;
    }

    vec3 emissive = emissiveFactor;
    if (emissiveIndex > -1) {
        vec2 uv = (vec3(uvs[emissiveIndex], 1.0) * emissiveUvMatrix).xy;
        emissive *= texture(emissiveMap, uv).rgb;
    }

    vec3  lightDir = normalize(vec3(0.5, -1.0, -0.5));
    float diff     = max(dot(normal, -lightDir), 0.0);
    float spec     = pow(diff, (1.0 - roughness) * 64.0 + 1.0) * mix(0.04, 1.0, metallic);
    vec3  lit      = baseColor.rgb * (0.3 + 0.7 * diff) * ao + vec3(spec) * diff + emissive;
    outColor = vec4(lit, baseColor.a);
}
`)
	return b.String(), params
}

// States maps the key onto the fixed-function render state the variant
// must be drawn with. Transparent variants force DepthWrite on; the
// deferred passes need transparent surfaces in the depth buffer.
func States(key Key) RenderStates {
	states := RenderStates{
		DoubleSided: key.DoubleSided,
		DepthWrite:  true,
	}
	if key.Unlit {
		states.Shading = ShadingUnlit
	}
	switch key.AlphaMode {
	case AlphaMask:
		states.Blending = BlendingMasked
		states.MaskThreshold = key.AlphaMaskThreshold
	case AlphaBlend:
		states.Blending = BlendingTransparent
	}
	return states
}

// glslFloat formats a float32 as a GLSL literal with an explicit decimal
// point so "0" comes out as "0.0".
func glslFloat(v float32) string {
	s := fmt.Sprintf("%g", v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
