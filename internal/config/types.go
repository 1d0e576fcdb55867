package config

type Config struct {
	DataDir          string
	ListenAddr       string
	SeekStepSeconds  float64
	VolumeStep       float64
	ShortcutsEnabled bool
	SimItemSeconds   float64 // default duration the simulated engine assumes
}
