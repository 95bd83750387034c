package utils

import (
	"regexp"
	"strings"
)

// Language codes
const (
	LangEnglish  = "en"
	LangHebrew   = "he"
	LangArabic   = "ar"
	LangRussian  = "ru"
	LangChinese  = "zh"
	LangJapanese = "ja"
	LangKorean   = "ko"
)

// Language represents a detected language
type Language struct {
	Code       string
	Name       string
	Confidence float64
}

// script holds a precompiled detector for one writing system
type script struct {
	code    string
	name    string
	pattern *regexp.Regexp
}

var scripts = []script{
	{LangHebrew, "Hebrew", regexp.MustCompile(`[\x{0590}-\x{05FF}]`)},
	{LangArabic, "Arabic", regexp.MustCompile(`[\x{0600}-\x{06FF}]`)},
	{LangRussian, "Russian", regexp.MustCompile(`[\x{0400}-\x{04FF}]`)},
	{LangChinese, "Chinese", regexp.MustCompile(`[\x{4E00}-\x{9FFF}]`)},
	{LangJapanese, "Japanese", regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}\x{4E00}-\x{9FFF}]`)},
	{LangKorean, "Korean", regexp.MustCompile(`[\x{AC00}-\x{D7AF}]`)},
}

var kanaPattern = regexp.MustCompile(`[\x{3040}-\x{309F}\x{30A0}-\x{30FF}]`)

// DetectLanguage detects the language of the input text based on the
// dominant writing system. Latin-script text defaults to English.
func DetectLanguage(text string) Language {
	text = strings.TrimSpace(text)
	if text == "" {
		return Language{Code: LangEnglish, Name: "English", Confidence: 0.0}
	}

	runes := float64(len([]rune(text)))
	best := Language{Code: LangEnglish, Name: "English", Confidence: 0.0}

	for _, s := range scripts {
		ratio := float64(len(s.pattern.FindAllString(text, -1))) / runes
		if ratio > 0.01 && ratio > best.Confidence {
			best = Language{Code: s.code, Name: s.name, Confidence: ratio}
		}
	}

	// Kanji alone cannot distinguish Chinese from Japanese; Hiragana or
	// Katakana presence settles it
	if best.Code == LangChinese || best.Code == LangJapanese {
		kanaRatio := float64(len(kanaPattern.FindAllString(text, -1))) / runes
		if kanaRatio > 0.05 {
			best.Code = LangJapanese
			best.Name = "Japanese"
		} else {
			best.Code = LangChinese
			best.Name = "Chinese"
		}
	}

	return best
}

// ReplyLanguageInstruction returns the prompt instruction telling the model
// which language generated reply content should be written in
func ReplyLanguageInstruction(lang Language) string {
	switch lang.Code {
	case LangHebrew:
		return "Write any generated email content in Hebrew (עברית)."
	case LangArabic:
		return "Write any generated email content in Arabic (العربية)."
	case LangRussian:
		return "Write any generated email content in Russian (Русский)."
	case LangChinese:
		return "Write any generated email content in Chinese (中文)."
	case LangJapanese:
		return "Write any generated email content in Japanese (日本語)."
	case LangKorean:
		return "Write any generated email content in Korean (한국어)."
	default:
		return "Write any generated email content in English."
	}
}
