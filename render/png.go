package render

import (
	"errors"

	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View positions the camera of a PNG preview. Coordinates are those of the
// mesh after it has been fit into the bi-unit cube centered at the origin.
type View struct {
	// LookAt is the point the camera looks at.
	LookAt r3.Vec
	// Up is the camera's up direction.
	Up r3.Vec
	// Eye is the camera position.
	Eye r3.Vec
	// Near and Far clip planes.
	Near, Far float64
}

// DefaultView is an isometric view of the bi-unit cube.
var DefaultView = View{
	Up:   r3.Vec{Z: 1},
	Eye:  r3.Vec{X: 2.4, Y: 2.4, Z: 2.4},
	Near: 1,
	Far:  10,
}

// SavePNG renders the binary STL at stlPath into a width by height PNG image
// at pngPath using a phong shader.
func SavePNG(stlPath, pngPath string, width, height int, view View) error {
	if width <= 0 || height <= 0 {
		return errors.New("render: PNG dimensions must be positive")
	}
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return err
	}
	const (
		scale = 2  // supersampling
		fovy  = 30 // vertical field of view in degrees
	)
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
	)
	mesh.BiUnitCube()
	context := fauxgl.NewContext(width*scale, height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(width) / float64(height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = fauxgl.HexColor("#468966")
	context.Shader = shader
	context.DrawMesh(mesh)
	// Downsample for antialiasing.
	image := resize.Resize(uint(width), uint(height), context.Image(), resize.Bilinear)
	return fauxgl.SavePNG(pngPath, image)
}
