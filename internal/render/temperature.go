package render

import "math"

// Temperature model bounds, in °C.
const (
	InitialTemperature = 42
	idleFloor          = 35
	loadedBase         = 40
	loadedSpan         = 20
	saturationRate     = 50000
)

// Heat tone thresholds, in °C.
const (
	WarmThreshold = 50
	HotThreshold  = 57
)

// NextTemperature advances the simulated chip temperature by one frame.
// While mining it tracks load between 40 and 60; while idle it cools by one
// degree per frame down to 35.
func NextTemperature(prev int, running bool, rate float64) int {
	if running {
		load := math.Min(rate/saturationRate, 1.0)
		if load < 0 {
			load = 0
		}
		return loadedBase + int(math.Floor(load*loadedSpan))
	}
	if prev-1 < idleFloor {
		return idleFloor
	}
	return prev - 1
}

// HeatTone classifies a temperature for display.
func HeatTone(temp int) Tone {
	switch {
	case temp >= HotThreshold:
		return ToneHot
	case temp >= WarmThreshold:
		return ToneWarm
	default:
		return ToneCool
	}
}
