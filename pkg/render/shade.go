package render

// A Shader converts an escape time into a gray level.
//
// Shaders must map non-escaping points to 0 and give points that escape
// sooner a level at least as high as points that escape later.
type Shader func(count int, escaped bool) uint8

// Inverse maps a point escaping at count to 255 - min(count, 255), so the set
// interior is black and the boundary ramps to white.
func Inverse(count int, escaped bool) uint8 {
	if !escaped {
		return 0
	}
	return uint8(255 - min(count, 255))
}

// Linear stretches escape times in [0, limit) across the full gray range,
// keeping 0 for points that never escape.
func Linear(limit int) Shader {
	if limit < 1 {
		limit = 1
	}

	return func(count int, escaped bool) uint8 {
		if !escaped {
			return 0
		}
		count = max(0, min(count, limit-1))
		// Level 1 is the darkest escaped shade, leaving 0 for the interior.
		return uint8(255 - count*254/max(limit-1, 1))
	}
}
