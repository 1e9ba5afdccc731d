package config

var Presets = map[string]map[string]*Config{
	"square": {
		"sharp": {
			Profile: "square", Seed: 1,
			Tip: TipConfig{Kind: "normal", Radius: 0.1, Width: 0.2},
		},
		"blunt": {
			Profile: "square", Seed: 1,
			Tip: TipConfig{Kind: "normal", Radius: 0.8, Width: 0.9},
		},
		"worn": {
			Profile: "square", Seed: 1,
			Tip: TipConfig{Kind: "sheared"},
		},
	},
	"sine": {
		"standard": {
			Profile: "sine", Seed: 1,
			Tip: TipConfig{Kind: "normal", Radius: 0.5, Width: 0.5},
		},
		"dirty": {
			Profile: "sine", Seed: 7,
			Tip: TipConfig{Kind: "normal", Radius: 0.5, Width: 0.5, Contaminated: true},
		},
	},
	"inverted-triangle": {
		"sharp": {
			Profile: "inverted-triangle", Seed: 1,
			Tip: TipConfig{Kind: "normal", Radius: 0.15, Width: 0.3},
		},
		"split": {
			Profile: "inverted-triangle", Seed: 1,
			Tip: TipConfig{Kind: "multipeak"},
		},
	},
	"semicircle": {
		"standard": {
			Profile: "semicircle", Seed: 1,
			Tip: TipConfig{Kind: "normal", Radius: 0.5, Width: 0.5},
		},
		"blunt": {
			Profile: "semicircle", Seed: 1,
			Tip: TipConfig{Kind: "normal", Radius: 0.9, Width: 0.7},
		},
	},
	"random": {
		"survey": {
			Profile: "random", Seed: 1,
			Tip: TipConfig{Kind: "normal", Radius: 0.4, Width: 0.6},
		},
		"dirty": {
			Profile: "random", Seed: 3,
			Tip: TipConfig{Kind: "normal", Radius: 0.4, Width: 0.6, Contaminated: true},
		},
	},
}

func GetPreset(profile, preset string) *Config {
	profilePresets, ok := Presets[profile]
	if !ok {
		return nil
	}
	cfg, ok := profilePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(profile string) []string {
	profilePresets, ok := Presets[profile]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(profilePresets))
	for name := range profilePresets {
		names = append(names, name)
	}
	return names
}
