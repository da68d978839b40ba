// SPDX-License-Identifier: ISC

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/Mathnerd314/supertux/cmd/aabbtreed/sceneconfig"
	"github.com/Mathnerd314/supertux/dyntree"
	"github.com/Mathnerd314/supertux/internal/geom"
	"github.com/Mathnerd314/supertux/service"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "scene", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 's'},
		{Long: "watch", HasArg: getoptions.NO_ARGUMENT, Short: 'w'},
	}

	program, options, _, err := getoptions.GetOS(flags)
	if err != nil {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--quiet] --scene=FILE [--watch]", program)
	}

	if len(options["scene"]) != 1 {
		exitwithstatus.Message("%s: exactly one --scene=FILE option is required", program)
	}
	scenePath := options["scene"][0]
	watch := len(options["watch"]) > 0

	level := "critical"
	if len(options["verbose"]) > 0 {
		level = "debug"
	}
	if len(options["quiet"]) > 0 {
		level = "error"
	}

	if err := logger.Initialise(logger.Configuration{
		Directory: ".",
		File:      "aabbtreed.log",
		Size:      1 * 1024 * 1024,
		Count:     10,
		Levels:    map[string]string{logger.DefaultTag: level},
	}); err != nil {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	log := logger.New("aabbtreed")
	defer log.Info("shutting down…")
	log.Info("starting…")
	log.Infof("version: %s", version)

	scene, err := sceneconfig.Load(scenePath)
	if err != nil {
		exitwithstatus.Message("%s: failed to load scene %q: %s", program, scenePath, err)
	}

	guarded := buildScene(scene)
	runScene(log, guarded, scene)

	if !watch {
		return
	}

	updates := make(chan *sceneconfig.Scene, 1)
	watcher, err := sceneconfig.Watch(scenePath, updates)
	if err != nil {
		exitwithstatus.Message("%s: failed to watch scene %q: %s", program, scenePath, err)
	}
	defer watcher.Close()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	log.Info("watching for scene changes…")
	for {
		select {
		case scene := <-updates:
			log.Info("scene file changed, rebuilding tree…")
			guarded = buildScene(scene)
			runScene(log, guarded, scene)
		case <-signals:
			return
		}
	}
}

// buildScene constructs a fresh guarded tree from a scene's tunables and
// proxy list. A full rebuild, not RebuildBottomUp, is required when
// tunables change: aabb_extension and aabb_multiplier only take effect on
// new CreateProxy/MoveProxy calls.
func buildScene(scene *sceneconfig.Scene) *service.Guarded {
	tree := dyntree.NewTreeWithConfig(dyntree.Config{
		AABBExtension:   scene.AABBExtension,
		AABBMultiplier:  scene.AABBMultiplier,
		InitialCapacity: scene.InitialCapacity,
	})

	for _, p := range scene.Proxies {
		aabb := geom.NewRect(geom.NewVec2(p.MinX, p.MinY), geom.NewVec2(p.MaxX, p.MaxY))
		tree.CreateProxy(aabb, p.UserTag)
	}

	return service.NewGuarded(tree, scene.QueriesPerSecond, scene.Burst)
}

// runScene executes every ray-cast scenario in the scene against guarded,
// printing the hit sequence, then prints the §4.8 diagnostics.
func runScene(log *logger.L, guarded *service.Guarded, scene *sceneconfig.Scene) {
	ctx := context.Background()

	for _, rc := range scene.RayCasts {
		input := dyntree.RayCastInput{
			P1:          geom.NewVec2(rc.P1X, rc.P1Y),
			P2:          geom.NewVec2(rc.P2X, rc.P2Y),
			MaxFraction: rc.MaxFraction,
		}

		var hits []int
		err := guarded.RayCast(ctx, input, func(_ dyntree.RayCastInput, proxyID int) float64 {
			hits = append(hits, proxyID)
			return -1
		})
		if err != nil {
			log.Errorf("ray cast %q failed: %s", rc.Name, err)
			continue
		}

		fmt.Printf("ray cast %q hit %d proxies: %v\n", rc.Name, len(hits), hits)
	}

	fmt.Printf("height=%d max_balance=%d area_ratio=%.4f\n",
		guarded.GetHeight(), guarded.GetMaxBalance(), guarded.GetAreaRatio())
}
