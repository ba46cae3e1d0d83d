package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/movingsphere/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "draw physics shapes and log ground transitions")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	courseName := flag.String("course", prefabs.CourseFile, "course spec (yaml) to load")
	sphereName := flag.String("sphere", prefabs.SphereFile, "sphere spec (yaml) to load")
	scriptName := flag.String("script", "", "tengo script driving the sphere instead of the keyboard")
	prefabsDir := flag.String("prefabs", prefabs.Dir, "directory whose specs override the embedded ones")
	watch := flag.Bool("watch", true, "reload specs and scripts when they change on disk")
	flag.Parse()

	prefabs.Dir = *prefabsDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("moving sphere")
	ebiten.SetTPS(inputRate)

	game, err := NewGame(Options{
		Course: *courseName,
		Sphere: *sphereName,
		Script: *scriptName,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}
