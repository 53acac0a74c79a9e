package tracer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// sceneFileDTO mirrors the scene file's JSON grammar. The core engineering
// effort of this repository is deliberately not the parser — this is the
// plain encoding/json boundary code the scene model is built from.
type sceneFileDTO struct {
	Settings struct {
		BackgroundColor [3]float64 `json:"background_color"`
		ImageSettings   struct {
			Width      int `json:"width"`
			Height     int `json:"height"`
			BucketSize int `json:"bucket_size"`
		} `json:"image_settings"`
		GIOn          *bool `json:"gi_on"`
		ReflectionsOn *bool `json:"reflections_on"`
		RefractionsOn *bool `json:"refractions_on"`
	} `json:"settings"`
	Camera struct {
		Position   [3]float64 `json:"position"`
		Matrix     [9]float64 `json:"matrix"`
		FOVDegrees float64    `json:"fov_degrees"`
	} `json:"camera"`
	Textures  []textureDTO  `json:"textures"`
	Materials []materialDTO `json:"materials"`
	Objects   []objectDTO   `json:"objects"`
	Lights    []lightDTO    `json:"lights"`
}

type textureDTO struct {
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Albedo     [3]float64 `json:"albedo"`
	EdgeColor  [3]float64 `json:"edge_color"`
	InnerColor [3]float64 `json:"inner_color"`
	EdgeWidth  float64    `json:"edge_width"`
	ColorA     [3]float64 `json:"color_a"`
	ColorB     [3]float64 `json:"color_b"`
	SquareSize float64    `json:"square_size"`
	FilePath   string     `json:"file_path"`
}

type materialDTO struct {
	Type            string          `json:"type"`
	SmoothShading   bool            `json:"smooth_shading"`
	BackFaceCulling bool            `json:"back_face_culling"`
	Albedo          json.RawMessage `json:"albedo"`
	IOR             float64         `json:"ior"`
}

type objectDTO struct {
	Vertices      []float64 `json:"vertices"`
	Triangles     []int     `json:"triangles"`
	UVs           []float64 `json:"uvs"`
	MaterialIndex int       `json:"material_index"`
}

type lightDTO struct {
	Intensity float64    `json:"intensity"`
	Position  [3]float64 `json:"position"`
}

// LoadSceneFile parses a JSON scene description and assembles the Scene and
// RenderSettings it describes. An unreadable file, malformed or ill-typed
// JSON, a non-refractive material without albedo, or any other structural
// error aborts construction entirely as a *ParseError (a bitmap texture
// that cannot be loaded is an *AssetError); there is no partial scene.
// Other absent fields are not reported: they take zero or default values.
func LoadSceneFile(path string) (*Scene, RenderSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, RenderSettings{}, &ParseError{Path: path, Err: err}
	}

	var dto sceneFileDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, RenderSettings{}, &ParseError{Path: path, Err: err}
	}

	dir := filepath.Dir(path)

	textures, byName, err := buildTextures(dto.Textures, dir)
	if err != nil {
		return nil, RenderSettings{}, err
	}

	materials, materialFlags, textures, err := buildMaterials(dto.Materials, textures, byName)
	if err != nil {
		return nil, RenderSettings{}, err
	}

	meshes, err := buildMeshes(dto.Objects, materialFlags)
	if err != nil {
		return nil, RenderSettings{}, err
	}

	lights := make([]Light, len(dto.Lights))
	for i, l := range dto.Lights {
		lights[i] = Light{Position: vec3From(l.Position), Intensity: l.Intensity}
	}

	rotation := Mat3{}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			rotation[r][c] = dto.Camera.Matrix[r*3+c]
		}
	}
	if dto.Camera.Matrix == ([9]float64{}) {
		rotation = Identity3()
	}
	camera := NewCamera(Transform{Location: vec3From(dto.Camera.Position), Rotation: rotation}, dto.Camera.FOVDegrees)

	scene, err := NewScene(vec3From(dto.Settings.BackgroundColor), camera, meshes, lights, textures, materials)
	if err != nil {
		return nil, RenderSettings{}, &ParseError{Path: path, Err: err}
	}

	scene.GIOn = boolOr(dto.Settings.GIOn, false)
	scene.ReflectionsOn = boolOr(dto.Settings.ReflectionsOn, true)
	scene.RefractionsOn = boolOr(dto.Settings.RefractionsOn, true)
	if dto.Settings.ImageSettings.BucketSize > 0 {
		scene.BucketSize = dto.Settings.ImageSettings.BucketSize
	}

	settings := DefaultRenderSettings()
	return scene, settings, nil
}

// SceneImageSize reports the width/height a scene file requests. It reads
// and decodes the file on its own, separately from LoadSceneFile, and
// builds no scene.
func SceneImageSize(path string) (width, height int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, &ParseError{Path: path, Err: err}
	}
	var dto sceneFileDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return 0, 0, &ParseError{Path: path, Err: err}
	}
	return dto.Settings.ImageSettings.Width, dto.Settings.ImageSettings.Height, nil
}

func buildTextures(dtos []textureDTO, sceneDir string) ([]Texture, map[string]int, error) {
	byName := make(map[string]int, len(dtos))
	textures := make([]Texture, 0, len(dtos))

	for _, t := range dtos {
		var tex Texture
		switch t.Type {
		case "albedo":
			tex = Texture{Kind: TextureAlbedo, Albedo: vec3From(t.Albedo)}
		case "edges":
			tex = Texture{Kind: TextureEdges, EdgeColor: vec3From(t.EdgeColor), InnerColor: vec3From(t.InnerColor), EdgeWidth: t.EdgeWidth}
		case "checker":
			tex = Texture{Kind: TextureChecker, ColorA: vec3From(t.ColorA), ColorB: vec3From(t.ColorB), SquareSize: t.SquareSize}
		case "bitmap":
			img, err := LoadBitmapImage(filepath.Join(sceneDir, t.FilePath))
			if err != nil {
				return nil, nil, err
			}
			tex = Texture{Kind: TextureBitmap, Bitmap: img}
		default:
			return nil, nil, &ParseError{Path: sceneDir, Err: fmt.Errorf("unknown texture type %q", t.Type)}
		}
		if t.Name != "" {
			byName[t.Name] = len(textures)
		}
		textures = append(textures, tex)
	}
	return textures, byName, nil
}

// buildMaterials resolves each material's albedo (a color triple or a
// texture name) and returns the final material list, the per-material
// shading/culling flags (smooth_shading and back_face_culling live on the
// material in the scene grammar, but are applied per-triangle), and the
// texture list, which may have grown with implicit inline-color textures.
func buildMaterials(dtos []materialDTO, textures []Texture, byName map[string]int) ([]Material, []TriangleFlags, []Texture, error) {
	materials := make([]Material, 0, len(dtos))
	flagsByMaterial := make([]TriangleFlags, 0, len(dtos))

	for _, m := range dtos {
		var kind MaterialKind
		switch m.Type {
		case "diffuse":
			kind = Diffuse
		case "reflective":
			kind = Reflective
		case "refractive":
			kind = Refractive
		case "constant":
			kind = Constant
		default:
			return nil, nil, nil, &ParseError{Err: fmt.Errorf("unknown material type %q", m.Type)}
		}

		var flags TriangleFlags
		if m.SmoothShading {
			flags |= FlagSmoothShading
		}
		if m.BackFaceCulling {
			flags |= FlagBackFaceCulling
		}

		if kind != Refractive && len(m.Albedo) == 0 {
			return nil, nil, nil, &ParseError{Err: fmt.Errorf("%s material has no albedo", m.Type)}
		}

		albedoTex := -1
		if kind != Refractive || len(m.Albedo) > 0 {
			idx, newTextures, err := resolveAlbedo(m.Albedo, textures, byName)
			if err != nil {
				return nil, nil, nil, err
			}
			textures = newTextures
			albedoTex = idx
		}

		materials = append(materials, NewMaterial(kind, albedoTex, m.IOR))
		flagsByMaterial = append(flagsByMaterial, flags)
	}
	return materials, flagsByMaterial, textures, nil
}

// resolveAlbedo interprets a material's "albedo" JSON field, which is
// either a [r,g,b] triple (an inline Albedo texture) or the name of a
// texture defined in the textures block.
func resolveAlbedo(raw json.RawMessage, textures []Texture, byName map[string]int) (int, []Texture, error) {
	if len(raw) == 0 {
		return -1, textures, nil
	}

	var triple [3]float64
	if err := json.Unmarshal(raw, &triple); err == nil {
		textures = append(textures, Texture{Kind: TextureAlbedo, Albedo: vec3From(triple)})
		return len(textures) - 1, textures, nil
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		idx, ok := byName[name]
		if !ok {
			return 0, textures, &ParseError{Err: fmt.Errorf("material references unknown texture %q", name)}
		}
		return idx, textures, nil
	}

	return 0, textures, &ParseError{Err: fmt.Errorf("material albedo is neither a color triple nor a texture name: %s", raw)}
}

// buildMeshes converts each object's flat float arrays into MeshData,
// looking up each mesh's TriangleFlags from the material it references.
func buildMeshes(dtos []objectDTO, materialFlags []TriangleFlags) ([]MeshData, error) {
	meshes := make([]MeshData, 0, len(dtos))

	for oi, o := range dtos {
		if len(o.Vertices)%3 != 0 {
			return nil, &ParseError{Err: fmt.Errorf("object %d: vertex array length %d is not a multiple of 3", oi, len(o.Vertices))}
		}
		if o.MaterialIndex < 0 || o.MaterialIndex >= len(materialFlags) {
			return nil, &ParseError{Err: fmt.Errorf("object %d: material_index %d out of range", oi, o.MaterialIndex)}
		}

		positions := make([]Vec3, len(o.Vertices)/3)
		for i := range positions {
			positions[i] = Vec3{X: o.Vertices[i*3], Y: o.Vertices[i*3+1], Z: o.Vertices[i*3+2]}
		}

		var uvs []Vec3
		if len(o.UVs) > 0 {
			if len(o.UVs)%3 != 0 {
				return nil, &ParseError{Err: fmt.Errorf("object %d: uv array length %d is not a multiple of 3", oi, len(o.UVs))}
			}
			uvs = make([]Vec3, len(o.UVs)/3)
			for i := range uvs {
				uvs[i] = Vec3{X: o.UVs[i*3], Y: o.UVs[i*3+1]}
			}
		}

		meshes = append(meshes, MeshData{
			Positions:     positions,
			UVs:           uvs,
			Indices:       o.Triangles,
			MaterialIndex: o.MaterialIndex,
			Flags:         materialFlags[o.MaterialIndex],
		})
	}
	return meshes, nil
}

func vec3From(a [3]float64) Vec3 {
	return Vec3{X: a[0], Y: a[1], Z: a[2]}
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
