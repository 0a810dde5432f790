// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 scales a normalised sample in [-1,1] to int16, clamping
// values outside the range.
func Float32ToInt16(x float32) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}
