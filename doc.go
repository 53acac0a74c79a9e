/*
Package tracer is an offline CPU path tracer. It renders a triangle-mesh
scene lit by point lights into a flat pixel buffer by casting one primary
ray per pixel through a pinhole camera and recursively shading each hit
against diffuse, reflective, refractive and constant-emissive materials.

The package provides a command line interface:

	$ tracer -in scene.json -out render.ppm

In case you wish to integrate the renderer in a self constructed
environment here is a simple example:

	package main

	import (
		"os"

		"github.com/lumenray/tracer"
	)

	func main() {
		scene, settings, err := tracer.LoadSceneFile("scene.json")
		if err != nil {
			panic(err)
		}
		img := tracer.RenderImage(scene, settings, 800, 600, nil)
		f, _ := os.Create("out.ppm")
		defer f.Close()
		tracer.WritePPM(f, img)
	}
*/
package tracer
