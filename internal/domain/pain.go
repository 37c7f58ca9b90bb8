package domain

import "strings"

// painIntensityOption carries the display attributes of one intensity level.
type painIntensityOption struct {
	arabicLabel  string
	englishLabel string
	color        string
	icon         string
}

// defaultPainColor and defaultPainIcon apply when no intensity is selected.
const (
	defaultPainColor = "#C9594C"
	defaultPainIcon  = "😐"
)

var painIntensityOptions = map[PainIntensity]painIntensityOption{
	PainLight:    {arabicLabel: "خفيف", englishLabel: "Light", color: "#F1C40F", icon: "😐"},
	PainModerate: {arabicLabel: "متوسط", englishLabel: "Moderate", color: "#E67E22", icon: "😣"},
	PainSevere:   {arabicLabel: "قوي", englishLabel: "Severe", color: "#C9594C", icon: "😖"},
}

// BuildPainPhrase composes the Arabic pain phrase for a body part, with the
// intensity qualifier inserted between "I have pain" and the body part.
// An empty or unknown intensity yields the simple form.
//
//	BuildPainPhrase("راسي", "")         → "عندي وجع راسي"
//	BuildPainPhrase("راسي", PainSevere) → "عندي وجع قوي راسي"
func BuildPainPhrase(bodyPartArabic string, intensity PainIntensity) string {
	const base = "عندي وجع"

	option, ok := painIntensityOptions[intensity]
	if !ok {
		return base + " " + bodyPartArabic
	}
	return base + " " + option.arabicLabel + " " + bodyPartArabic
}

// BuildPainPhraseEnglish composes the English translation of the pain phrase.
func BuildPainPhraseEnglish(bodyPartEnglish string, intensity PainIntensity) string {
	bodyPart := strings.ToLower(bodyPartEnglish)

	option, ok := painIntensityOptions[intensity]
	if !ok {
		return "I have pain in my " + bodyPart
	}
	return "I have " + strings.ToLower(option.englishLabel) + " pain in my " + bodyPart
}

// PainIntensityColor returns the hex color associated with an intensity.
func PainIntensityColor(intensity PainIntensity) string {
	if option, ok := painIntensityOptions[intensity]; ok {
		return option.color
	}
	return defaultPainColor
}

// PainIntensityIcon returns the emoji associated with an intensity.
func PainIntensityIcon(intensity PainIntensity) string {
	if option, ok := painIntensityOptions[intensity]; ok {
		return option.icon
	}
	return defaultPainIcon
}
