package sceneconfig_test

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mathnerd314/supertux/cmd/aabbtreed/sceneconfig"
)

func writeScene(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.hcl")
	require.NoError(t, ioutil.WriteFile(file, []byte(body), 0644))
	return file
}

// TestLoadRoundTripsProxiesAndRayCasts is the scene round-trip test: a
// generated HCL scene decodes to the same proxy set and ray-cast scenarios
// it was written with.
func TestLoadRoundTripsProxiesAndRayCasts(t *testing.T) {
	file := writeScene(t, `
aabb_extension = 0.2
aabb_multiplier = 3.0
initial_capacity = 8
growth_factor = 2.0
queries_per_second = 50
burst = 4

proxy {
  name = "a"
  min_x = 0
  min_y = 0
  max_x = 1
  max_y = 1
  user_tag = "crate"
}

proxy {
  name = "b"
  min_x = 10
  min_y = 10
  max_x = 11
  max_y = 11
  user_tag = "barrel"
}

ray_cast {
  name = "through"
  p1_x = -1
  p1_y = 0.5
  p2_x = 20
  p2_y = 0.5
  max_fraction = 1.0
}
`)

	scene, err := sceneconfig.Load(file)
	require.NoError(t, err)

	assert.InDelta(t, 0.2, scene.AABBExtension, 1e-9)
	assert.InDelta(t, 3.0, scene.AABBMultiplier, 1e-9)
	assert.Equal(t, 8, scene.InitialCapacity)
	assert.InDelta(t, 50.0, scene.QueriesPerSecond, 1e-9)
	assert.Equal(t, 4, scene.Burst)

	require.Len(t, scene.Proxies, 2)
	assert.Equal(t, "a", scene.Proxies[0].Name)
	assert.Equal(t, "crate", scene.Proxies[0].UserTag)
	assert.Equal(t, "b", scene.Proxies[1].Name)

	require.Len(t, scene.RayCasts, 1)
	assert.Equal(t, "through", scene.RayCasts[0].Name)
	assert.InDelta(t, 1.0, scene.RayCasts[0].MaxFraction, 1e-9)
}

// TestLoadAppliesDefaults checks that a scene file overriding only one
// tunable still gets sane defaults for the rest.
func TestLoadAppliesDefaults(t *testing.T) {
	file := writeScene(t, `
aabb_extension = 0.5
`)

	scene, err := sceneconfig.Load(file)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, scene.AABBExtension, 1e-9)
	assert.InDelta(t, 2.0, scene.AABBMultiplier, 1e-9)
	assert.Equal(t, 16, scene.InitialCapacity)
}

// TestLoadRejectsUnsupportedGrowthFactor covers the documented limitation:
// growth_factor must be 2.0 since the tree's own doubling is what actually
// governs growth.
func TestLoadRejectsUnsupportedGrowthFactor(t *testing.T) {
	file := writeScene(t, `
growth_factor = 1.5
`)

	_, err := sceneconfig.Load(file)
	assert.Error(t, err)
}

func TestLoadRejectsNegativeAABBExtension(t *testing.T) {
	file := writeScene(t, `
aabb_extension = -1
`)

	_, err := sceneconfig.Load(file)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := sceneconfig.Load(filepath.Join(t.TempDir(), "does-not-exist.hcl"))
	assert.Error(t, err)
}
