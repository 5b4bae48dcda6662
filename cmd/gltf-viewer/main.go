package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"

	"gltf-viewer/app"
	"gltf-viewer/camera"
	"gltf-viewer/core"
	"gltf-viewer/opengl"
)

var (
	lookat     string
	outputPath string
	width      int
	height     int
)

func main() {
	root := &cobra.Command{
		Use:          "gltf-viewer",
		Short:        "glTF 2.0 scene viewer",
		SilenceUsage: true,
	}

	viewer := &cobra.Command{
		Use:   "viewer <file.gltf|file.glb>",
		Short: "Open a glTF scene, interactively or rendered to a PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config{
				GltfPath:   args[0],
				Width:      width,
				Height:     height,
				OutputPath: outputPath,
			}
			if lookat != "" {
				cam, err := parseLookat(lookat)
				if err != nil {
					return err
				}
				cfg.Lookat = &cam
			}
			return app.Run(cfg)
		},
	}
	viewer.Flags().StringVar(&lookat, "lookat", "",
		"camera pose as eye_x,eye_y,eye_z,center_x,center_y,center_z,up_x,up_y,up_z")
	viewer.Flags().StringVarP(&outputPath, "output", "o", "",
		"render a single frame to this PNG file instead of opening a window")
	viewer.Flags().IntVarP(&width, "width", "w", 1280, "window or output image width")
	viewer.Flags().IntVar(&height, "height", 720, "window or output image height")

	info := &cobra.Command{
		Use:   "info",
		Short: "Print the OpenGL version and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			wc := core.DefaultWindowConfig()
			wc.Width, wc.Height = 1, 1
			wc.Visible = false
			window, err := core.NewWindow(wc)
			if err != nil {
				return err
			}
			defer window.Destroy()

			renderer, err := opengl.NewRenderer()
			if err != nil {
				return err
			}
			defer renderer.Destroy()
			fmt.Printf("OpenGL version: %s\n", renderer.Version())
			return nil
		},
	}

	root.AddCommand(viewer, info)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseLookat turns the 9 comma-separated floats of --lookat into a camera,
// rejecting degenerate poses up front.
func parseLookat(s string) (camera.Camera, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 9 {
		return camera.Camera{}, fmt.Errorf("--lookat: expected 9 numbers, got %d", len(parts))
	}
	var f [9]float32
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return camera.Camera{}, fmt.Errorf("--lookat: %q: %w", p, err)
		}
		f[i] = float32(v)
	}
	cam, err := camera.NewCamera(
		mgl32.Vec3{f[0], f[1], f[2]},
		mgl32.Vec3{f[3], f[4], f[5]},
		mgl32.Vec3{f[6], f[7], f[8]})
	if err != nil {
		return camera.Camera{}, fmt.Errorf("--lookat: %w", err)
	}
	return cam, nil
}
