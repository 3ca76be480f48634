package worlds

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/df07/go-mis-pathtracer/pkg/log"
	"github.com/df07/go-mis-pathtracer/pkg/scene"
)

// ErrUnknownWorld is returned by Lookup for an id that is not in the catalog
var ErrUnknownWorld = errors.New("worlds: unknown world")

var logger = log.New("worlds")

// Params tunes how a world is built
type Params struct {
	AspectRatio float64 // camera aspect ratio; the world's default when <= 0
	Seed        int64   // seed for worlds with random placement
}

// Info describes a world in the catalog
type Info struct {
	ID          string
	DisplayName string
	Description string
	Width       int // suggested image width
	Height      int // suggested image height

	build func(p Params, rng *rand.Rand) (*scene.World, error)
}

// Build constructs the world
func (i Info) Build(p Params) (*scene.World, error) {
	if p.AspectRatio <= 0 {
		p.AspectRatio = float64(i.Width) / float64(i.Height)
	}
	world, err := i.build(p, rand.New(rand.NewSource(p.Seed)))
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", i.ID, err)
	}
	logger.Debugf("built world %s (aspect %.3f, seed %d, %d elements, light %v)",
		i.ID, p.AspectRatio, p.Seed, world.Scene.Len(), world.Light != nil)
	return world, nil
}

var catalog = map[string]Info{}

func register(id, description string, width, height int, build func(Params, *rand.Rand) (*scene.World, error)) {
	catalog[id] = Info{
		ID:          id,
		DisplayName: titleCase(id),
		Description: description,
		Width:       width,
		Height:      height,
		build:       build,
	}
}

func init() {
	register("cornell-box", "Cornell box with two rotated boxes and a sampled ceiling light", 400, 400, buildCornellBox)
	register("cornell-smoke", "Cornell box with the boxes replaced by black and white smoke", 400, 400, buildCornellSmoke)
	register("spheres", "Field of random diffuse, metal and glass spheres under a sky", 400, 225, buildSpheres)
	register("moving-spheres", "Random spheres bouncing during the shutter interval over a checker ground", 400, 225, buildMovingSpheres)
	register("sphere-grid", "Grid of metal spheres colored across the OKLCH hue wheel", 400, 225, buildSphereGrid)
	register("triangle-mesh", "Pyramid, icosahedron and box meshes lit by a rect light", 400, 225, buildTriangleMesh)
	register("perlin-spheres", "Marble spheres textured with Perlin turbulence under a sky", 400, 225, buildPerlinSpheres)
	register("simple-light", "Textured spheres lit by a single rect light in the dark", 400, 225, buildSimpleLight)
}

// List returns every world sorted by display name
func List() []Info {
	infos := make([]Info, 0, len(catalog))
	for _, info := range catalog {
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].DisplayName < infos[j].DisplayName
	})
	return infos
}

// Lookup finds a world by id. Ids are matched case-insensitively.
func Lookup(id string) (Info, error) {
	info, ok := catalog[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownWorld, id)
	}
	return info, nil
}

// titleCase converts an id to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
