package scenegen

import "math"

// fractalNoise2D layers octaves of smooth value noise. Output is in [0,1].
func fractalNoise2D(x, y float64, seed uint64, octaves int, lacunarity, gain float64) float64 {
	var sum, maxAmp float64
	amplitude, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		sum += valueNoise2D(x*freq, y*freq, int32(seed)+int32(i)) * amplitude
		maxAmp += amplitude
		amplitude *= gain
		freq *= lacunarity
	}
	if maxAmp == 0 {
		return 0
	}
	return sum / maxAmp
}

func valueNoise2D(x, y float64, seed int32) float64 {
	x0 := int32(math.Floor(x))
	y0 := int32(math.Floor(y))
	sx := smoothStep(x - float64(x0))
	sy := smoothStep(y - float64(y0))

	top := lerp(hash2D(x0, y0, seed), hash2D(x0+1, y0, seed), sx)
	bottom := lerp(hash2D(x0, y0+1, seed), hash2D(x0+1, y0+1, seed), sx)
	return lerp(top, bottom, sy)
}

// hash2D maps lattice coordinates to a deterministic value in [0,1].
func hash2D(x, y, seed int32) float64 {
	n := x*374761393 + y*668265263 + seed*362437
	n = (n ^ (n >> 13)) * 1274126177
	n = n ^ (n >> 16)
	return float64(n&0x7fffffff) / 2147483647.0
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// smoothStep is 3t² - 2t³ clamped to [0,1].
func smoothStep(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return t * t * (3 - 2*t)
}
