// Package ports defines collaborator interfaces implemented by platform code.
package ports

// Speaker is the external text-to-speech collaborator used for custom
// phrases. Bundled catalog phrases never go through TTS; they play from
// pre-recorded files.
type Speaker interface {
	// Speak utters text in the language identified by the BCP-47 tag.
	Speak(text, languageTag string) error

	// Stop cancels any in-flight utterance. No-op when idle.
	Stop() error
}

// ShareTarget is the external app collaborator that delivers a pre-filled
// message through a URL scheme (e.g. WhatsApp). Out of the core's scope;
// defined here so the UI layer can be wired against an interface.
type ShareTarget interface {
	// Share opens the external app with message pre-filled.
	Share(message string) error
}
