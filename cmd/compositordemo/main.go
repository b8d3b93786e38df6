// Command compositordemo builds a small compositor resource graph and
// prints the channels it produces.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/backend"
	_ "github.com/gogpu/compositor/backend/native"
)

func main() {
	var (
		width   = flag.Uint("width", 1920, "reference target width")
		height  = flag.Uint("height", 1080, "reference target height")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	tb, err := backend.New(backend.Options{})
	if err != nil {
		log.Fatalf("no texture backend: %v", err)
	}
	defer tb.Close()
	log.Printf("texture backend: %s", tb.Name())

	// A workspace-wide texture nodes can share.
	wreg := compositor.NewWorkspaceRegistry()
	gdef, err := wreg.AddTextureDefinition("global_prev_frame")
	if err != nil {
		log.Fatal(err)
	}
	gdef.Formats = []gputypes.TextureFormat{gputypes.TextureFormatRGBA8Unorm}
	gdef.FSAA = false

	ws, err := compositor.NewWorkspace(wreg, compositor.WorkspaceOptions{
		Backend:  tb,
		RefWidth: uint32(*width), RefHeight: uint32(*height),
	})
	if err != nil {
		log.Fatalf("workspace: %v", err)
	}
	defer ws.Destroy()

	// Shadow node definition: a plain depth map and an MRT variant
	// (depth + normals) for filtered shadows.
	def := compositor.NewShadowNodeDef("shadows")
	def.Reserve(2)

	sm0, err := def.AddShadowTextureDefinition("shadowmap0", 0, 0)
	if err != nil {
		log.Fatal(err)
	}
	sm0.Width, sm0.Height = 2048, 2048
	sm0.Formats = []gputypes.TextureFormat{gputypes.TextureFormatR32Float}

	sm1, err := def.AddShadowTextureDefinition("shadowmap1", 0, 1)
	if err != nil {
		log.Fatal(err)
	}
	sm1.Width, sm1.Height = 1024, 1024
	sm1.Formats = []gputypes.TextureFormat{
		gputypes.TextureFormatR32Float,
		gputypes.TextureFormatRGBA8Unorm,
	}

	// Two live instances of the same definition.
	for id := uint64(1); id <= 2; id++ {
		node, err := compositor.NewShadowNode(id, def, compositor.NodeOptions{
			Backend:     tb,
			RefWidth:    uint32(*width),
			RefHeight:   uint32(*height),
			FSAASamples: 4,
			Globals:     ws,
		})
		if err != nil {
			log.Fatalf("shadow node %d: %v", id, err)
		}
		defer node.Destroy()

		for i, ch := range node.LocalChannels() {
			kind := "single"
			if ch.IsMRT() {
				kind = "MRT"
			}
			log.Printf("node %d channel %d (%s): target %q, %d texture(s)",
				id, i, kind, ch.Target.Name(), len(ch.Textures))
			for j, tex := range ch.Textures {
				log.Printf("  texture %d: %q %dx%d", j, tex.Name(), tex.Width(), tex.Height())
			}
		}
	}
}
