// variants reports how many ubershader variants the materials of a glTF
// file deduplicate into. By default compilation is simulated with the
// in-memory backend; -gl compiles every variant through a real OpenGL
// context instead.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/qmuntal/gltf"

	"github.com/kismeter/filament/gltfio"
	"github.com/kismeter/filament/internal/membackend"
	"github.com/kismeter/filament/material"
	"github.com/kismeter/filament/opengl"
)

func init() {
	// OpenGL requires all calls on the thread that owns the context.
	runtime.LockOSThread()
}

func main() {
	useGL := flag.Bool("gl", false, "compile variants on a real OpenGL context (needs a display)")
	verbose := flag.Bool("v", false, "print the synthesized fragment shader per variant")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-gl] [-v] scene.gltf\n", os.Args[0])
		os.Exit(2)
	}
	path := flag.Arg(0)

	doc, err := gltf.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gltf open %q: %v\n", path, err)
		os.Exit(1)
	}
	imported := gltfio.ImportMaterials(doc)

	var backend material.Backend
	if *useGL {
		b, cleanup, err := newGLBackend()
		if err != nil {
			fmt.Fprintf(os.Stderr, "opengl init: %v\n", err)
			os.Exit(1)
		}
		defer cleanup()
		backend = b
	} else {
		backend = membackend.New()
	}

	provider := material.NewProvider(backend)
	defer provider.DestroyMaterials()

	// variantKeys[i] is the normalized key behind provider.Materials()[i];
	// the cache appends variants in creation order, so recording the key
	// whenever the count grows keeps the two aligned.
	var variantKeys []material.Key
	for _, im := range imported {
		before := provider.MaterialCount()
		if _, err := provider.CreateInstance(im.Key, im.UvMap, im.Name); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		if provider.MaterialCount() > before {
			key, uvmap := im.Key, im.UvMap
			material.Normalize(&key, &uvmap)
			variantKeys = append(variantKeys, key)
		}
	}

	fmt.Printf("%s: %d materials -> %d shader variants\n", path, len(imported), provider.MaterialCount())
	for i, prog := range provider.Materials() {
		fmt.Printf("  variant %q\n", prog.Label())
		if *verbose {
			source, _ := material.Synthesize(variantKeys[i])
			fmt.Println(source)
		}
	}
}

// newGLBackend spins up a hidden window purely to own a GL context.
func newGLBackend() (*opengl.Backend, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	win, err := glfw.CreateWindow(64, 64, "variants", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, fmt.Errorf("create context window: %w", err)
	}
	win.MakeContextCurrent()

	backend, err := opengl.NewBackend()
	if err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, nil, err
	}
	cleanup := func() {
		win.Destroy()
		glfw.Terminate()
	}
	return backend, cleanup, nil
}
