// Package config handles viewer configuration loading and management.
package config

// Picking strategies.
const (
	PickingCPU = "cpu"
	PickingGPU = "gpu"
)

// Config holds all viewer settings.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Scene    SceneConfig    `yaml:"scene"`
	Camera   CameraConfig   `yaml:"camera"`
	Picking  PickingConfig  `yaml:"picking"`
	Lighting LightingConfig `yaml:"lighting"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// SceneConfig selects what is shown.
type SceneConfig struct {
	Network      string  `yaml:"network"`       // Network file; empty shows the demo scene
	Watch        bool    `yaml:"watch"`         // Reload the network file on change
	SortByMesh   bool    `yaml:"sort_by_mesh"`  // Group instances by mesh before drawing
	GroundHeight float32 `yaml:"ground_height"` // Height of the drag plane
	ShowBounds   bool    `yaml:"show_bounds"`   // Outline the hovered node
}

// CameraConfig holds the initial orbit. Angles are in degrees.
type CameraConfig struct {
	Distance   float32 `yaml:"distance"`
	Yaw        float32 `yaml:"yaw"`
	Pitch      float32 `yaml:"pitch"`
	FOV        float32 `yaml:"fov"`
	Near       float32 `yaml:"near"`
	Far        float32 `yaml:"far"`
	OrbitSpeed float32 `yaml:"orbit_speed"`
	ZoomStep   float32 `yaml:"zoom_step"`
	FitToScene bool    `yaml:"fit_to_scene"`
}

// PickingConfig selects the hover strategy.
type PickingConfig struct {
	Strategy string `yaml:"strategy"` // cpu or gpu
}

// LightingConfig holds sun and ambient settings.
type LightingConfig struct {
	SunDirection  [3]float32 `yaml:"sun_direction"`
	SunColor      [3]float32 `yaml:"sun_color"`
	SunIntensity  float32    `yaml:"sun_intensity"`
	HorizonColor  [3]float32 `yaml:"horizon_color"`
	AmbientHeight float32    `yaml:"ambient_height"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Corridor",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			SortByMesh: true,
			ShowBounds: true,
		},
		Camera: CameraConfig{
			Distance:   12,
			Yaw:        45,
			Pitch:      22.5,
			FOV:        45,
			Near:       0.1,
			Far:        100,
			OrbitSpeed: 0.005,
			ZoomStep:   0.5,
			FitToScene: true,
		},
		Picking: PickingConfig{
			Strategy: PickingCPU,
		},
		Lighting: LightingConfig{
			SunDirection:  [3]float32{-0.4, -1, -0.3},
			SunColor:      [3]float32{1, 0.7, 0.7},
			SunIntensity:  1.25,
			HorizonColor:  [3]float32{0.15, 0.2, 0.55},
			AmbientHeight: 6,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
