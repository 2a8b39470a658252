package brush

// Setting identifies one brush parameter.
type Setting int

const (
	// SettingRadiusLog is the natural logarithm of the dab radius in pixels.
	SettingRadiusLog Setting = iota
	// SettingHardness shapes the falloff: 1 is a hard edge.
	SettingHardness
	// SettingOpaque is the base opacity of each dab.
	SettingOpaque
	// SettingOpaqueMultiply scales SettingOpaque; usually driven by pressure.
	SettingOpaqueMultiply
	// SettingDabsPerRadius is the number of dabs per radius of travel.
	SettingDabsPerRadius
	// SettingAspectRatio stretches dabs into ellipses; 1 is round.
	SettingAspectRatio
	// SettingAngle rotates elliptical dabs, in degrees.
	SettingAngle
	// SettingColorH is the hue of the paint color.
	SettingColorH
	// SettingColorS is the saturation of the paint color.
	SettingColorS
	// SettingColorV is the value of the paint color.
	SettingColorV
	// SettingSmudge mixes the paint color with the color under the dab.
	SettingSmudge
	// SettingLockAlpha paints without changing canvas alpha.
	SettingLockAlpha
	// SettingEraser turns the brush into an eraser at 1.
	SettingEraser

	// SettingCount is the number of settings.
	SettingCount
)

// Input identifies one stroke input a setting can depend on.
type Input int

const (
	InputPressure Input = iota
	InputXTilt
	InputYTilt
	InputSpeed

	// InputCount is the number of inputs.
	InputCount
)

// SettingInfo describes a setting's range and default.
type SettingInfo struct {
	Name     string
	Min, Max float32
	Default  float32
}

var settingInfos = [SettingCount]SettingInfo{
	SettingRadiusLog:      {"radius_logarithmic", -2, 6, 2},
	SettingHardness:       {"hardness", 0, 1, 0.8},
	SettingOpaque:         {"opaque", 0, 2, 1},
	SettingOpaqueMultiply: {"opaque_multiply", 0, 2, 0},
	SettingDabsPerRadius:  {"dabs_per_actual_radius", 0, 6, 2},
	SettingAspectRatio:    {"elliptical_dab_ratio", 1, 10, 1},
	SettingAngle:          {"elliptical_dab_angle", 0, 180, 90},
	SettingColorH:         {"color_h", 0, 1, 0},
	SettingColorS:         {"color_s", 0, 1, 0},
	SettingColorV:         {"color_v", 0, 1, 0},
	SettingSmudge:         {"smudge", 0, 1, 0},
	SettingLockAlpha:      {"lock_alpha", 0, 1, 0},
	SettingEraser:         {"eraser", 0, 1, 0},
}

var inputNames = [InputCount]string{
	InputPressure: "pressure",
	InputXTilt:    "xtilt",
	InputYTilt:    "ytilt",
	InputSpeed:    "speed",
}

// Info returns the setting's description. Unknown settings return the
// zero SettingInfo.
func (s Setting) Info() SettingInfo {
	if s < 0 || s >= SettingCount {
		return SettingInfo{}
	}
	return settingInfos[s]
}

// String returns the setting's canonical name.
func (s Setting) String() string {
	if name := s.Info().Name; name != "" {
		return name
	}
	return "unknown"
}

// String returns the input's canonical name.
func (i Input) String() string {
	if i < 0 || i >= InputCount {
		return "unknown"
	}
	return inputNames[i]
}

// SettingByName returns the setting with the given canonical name.
func SettingByName(name string) (Setting, bool) {
	for s := range SettingCount {
		if settingInfos[s].Name == name {
			return s, true
		}
	}
	return 0, false
}
