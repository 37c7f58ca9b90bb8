package catalog

import (
	"strings"
)

// categoryPrefixes are the audio reference prefixes that map to asset
// subdirectories. Order matters only for readability; the prefixes are
// mutually exclusive.
var categoryPrefixes = []string{
	"basic_needs_",
	"emotions_",
	"conversation_",
	"pain_",
	"family_",
}

// ResolveAudioPath converts a raw audio reference from the catalog into the
// relative asset path of the playable file.
//
// The rule: strip a known category prefix and place the remainder under the
// matching subdirectory, always ending in a single ".mp3" suffix.
//
//	"pain_head"       -> "pain/head.mp3"
//	"pain_head.mp3"   -> "pain/head.mp3"
//	"unknown_ref"     -> "unknown_ref.mp3"
//	"unknown_ref.mp3" -> "unknown_ref.mp3"
func ResolveAudioPath(audioFile string) string {
	name := strings.TrimSuffix(audioFile, ".mp3")

	for _, prefix := range categoryPrefixes {
		if strings.HasPrefix(name, prefix) {
			dir := strings.TrimSuffix(prefix, "_")
			return dir + "/" + strings.TrimPrefix(name, prefix) + ".mp3"
		}
	}

	// No known prefix: treat the reference as a bare filename.
	return name + ".mp3"
}
