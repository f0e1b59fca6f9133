package gif

import "log"

// validateDisposal logs any disposal method outside the four GIF89a defines
// (0 unspecified, 1 do not dispose, 2 restore to background, 3 restore to
// previous). Per-frame bit extraction reads each frame's own Pix and
// Palette directly and never depends on what an earlier frame left
// composited on screen, so disposal handling here is informational only:
// nothing about decoding changes based on it.
func validateDisposal(i int, disposal byte) {
	switch disposal {
	case 0, 1, 2, 3:
	default:
		log.Printf("frame %d: unknown disposal method %d", i, disposal)
	}
}
