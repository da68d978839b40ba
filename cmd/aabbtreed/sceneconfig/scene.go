// Package sceneconfig loads an HCL scene description for the aabbtreed
// command: tree tunables, an initial proxy set, and ray-cast scenarios to
// run against it. The decoding shape follows bitmarkd's own
// configuration.ParseConfigurationFile: a pointer-to-struct is filled in by
// hashicorp/hcl after defaults are populated by hand.
package sceneconfig

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"reflect"

	"github.com/hashicorp/hcl"
	"github.com/hashicorp/hcl/hcl/ast"
)

// ProxySpec describes one object to seed the tree with.
type ProxySpec struct {
	Name    string  `hcl:"name"`
	MinX    float64 `hcl:"min_x"`
	MinY    float64 `hcl:"min_y"`
	MaxX    float64 `hcl:"max_x"`
	MaxY    float64 `hcl:"max_y"`
	UserTag string  `hcl:"user_tag"`
}

// RayCastSpec describes one ray-cast scenario to run after construction.
type RayCastSpec struct {
	Name        string  `hcl:"name"`
	P1X         float64 `hcl:"p1_x"`
	P1Y         float64 `hcl:"p1_y"`
	P2X         float64 `hcl:"p2_x"`
	P2Y         float64 `hcl:"p2_y"`
	MaxFraction float64 `hcl:"max_fraction"`
}

// Scene is the fully decoded contents of a scene file.
type Scene struct {
	AABBExtension    float64       `hcl:"aabb_extension"`
	AABBMultiplier   float64       `hcl:"aabb_multiplier"`
	InitialCapacity  int           `hcl:"initial_capacity"`
	GrowthFactor     float64       `hcl:"growth_factor"`
	QueriesPerSecond float64       `hcl:"queries_per_second"`
	Burst            int           `hcl:"burst"`
	Proxies          []ProxySpec   `hcl:"proxy"`
	RayCasts         []RayCastSpec `hcl:"ray_cast"`
}

// defaultScene mirrors dyntree.DefaultConfig's hard-coded values plus
// permissive defaults for the parts dyntree.Config doesn't cover.
func defaultScene() *Scene {
	return &Scene{
		AABBExtension:    0.1,
		AABBMultiplier:   2.0,
		InitialCapacity:  16,
		GrowthFactor:     2.0,
		QueriesPerSecond: 0, // 0 disables rate limiting, see service.NewGuarded
		Burst:            1,
	}
}

// Load reads and decodes the scene file at path, applying defaults first so
// an HCL file only needs to mention the fields it overrides.
func Load(path string) (*Scene, error) {
	path, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	scene := defaultScene()

	if err := parseFile(path, scene); err != nil {
		return nil, err
	}

	if scene.GrowthFactor != 2.0 {
		return nil, fmt.Errorf("sceneconfig: growth_factor %v is not supported, the tree always doubles", scene.GrowthFactor)
	}
	if scene.AABBExtension < 0 {
		return nil, fmt.Errorf("sceneconfig: aabb_extension must be non-negative, got %v", scene.AABBExtension)
	}
	if scene.InitialCapacity <= 0 {
		return nil, fmt.Errorf("sceneconfig: initial_capacity must be positive, got %v", scene.InitialCapacity)
	}

	return scene, nil
}

// parseFile decodes an HCL file into config, following the same
// reflect-based pointer-to-struct verification bitmarkd's
// configuration.ParseConfigurationFile does before decoding with hcl.
func parseFile(path string, config interface{}) error {
	rv := reflect.ValueOf(config)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("sceneconfig: config must be a non-nil pointer")
	}
	if rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("sceneconfig: config must point to a struct")
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := ioutil.ReadAll(f)
	if err != nil {
		return err
	}

	file, err := hcl.ParseBytes(b)
	if err != nil {
		return err
	}
	// An unkeyed block such as `proxy { ... }` would decode into one slice
	// element per attribute; wrapped in a one-element list it decodes as one.
	if list, ok := file.Node.(*ast.ObjectList); ok {
		for _, item := range list.Items {
			if ot, ok := item.Val.(*ast.ObjectType); ok && len(item.Keys) == 1 {
				item.Val = &ast.ListType{List: []ast.Node{ot}}
			}
		}
	}
	return hcl.DecodeObject(config, file)
}
