// Command scene2dview opens a window showing the scene described by a YAML
// or TOML configuration file. With -watch, edits to the file rebuild the
// scene without restarting.
//
// Objects are synthesized from the configuration: viewports are added under
// their id, "Curve" adaptors get a two-point PointList, and any other
// object key gets a plain placeholder.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/phanxgames/scene2d"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "scene.yaml", "scene configuration file (.yaml, .yml or .toml)")
		watch      = flag.Bool("watch", false, "reload the scene when the configuration file changes")
		width      = flag.Int("width", 800, "window width")
		height     = flag.Int("height", 600, "window height")
		showFPS    = flag.Bool("fps", false, "show FPS counter")
		verbose    = flag.Bool("v", false, "log at debug level")
		script     = flag.String("script", "", "JSON test script to run against the scene")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	scene2d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := scene2d.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	r, err := scene2d.NewRender(cfg)
	if err != nil {
		return err
	}
	r.SetDebugMode(*verbose)
	if *script != "" {
		data, err := os.ReadFile(*script)
		if err != nil {
			return err
		}
		runner, err := scene2d.LoadTestScript(data)
		if err != nil {
			return fmt.Errorf("%s: %w", *script, err)
		}
		r.SetTestRunner(runner)
	}

	c, err := populate(r)
	if err != nil {
		return err
	}
	if err := r.Start(c); err != nil {
		return err
	}

	rc := scene2d.RunConfig{
		Title:     "scene2dview - " + *configPath,
		Width:     *width,
		Height:    *height,
		Resizable: true,
		ShowFPS:   *showFPS,
	}
	if *watch {
		w, err := scene2d.WatchConfig(*configPath)
		if err != nil {
			return err
		}
		defer w.Close()
		rc.Reload = w.Configs()
		rc.Populate = populate
	}

	return scene2d.Run(r, rc)
}

// placeholder stands in for objects the viewer cannot synthesize.
type placeholder string

// populate builds a composite holding an object for every key the render's
// adaptors bind to.
func populate(r *scene2d.Render) (*scene2d.Composite, error) {
	objects := make(map[string]any)
	for _, vp := range r.Viewports() {
		objects[vp.ID] = vp
	}
	for _, ac := range r.Config().Adaptors {
		if _, ok := objects[ac.Object]; ok {
			continue
		}
		if ac.Type == "Curve" {
			objects[ac.Object] = scene2d.NewPointList(scene2d.Vec2{X: 0, Y: 0}, scene2d.Vec2{X: 1, Y: 1})
			continue
		}
		objects[ac.Object] = placeholder(ac.Object)
	}
	c := scene2d.NewComposite()
	if err := c.AddAll(objects); err != nil {
		return nil, err
	}
	return c, nil
}
