package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  string
	}{
		{"folds diacritics", "Özel Ders VERİYORUM", "ozel ders veriyorum"},
		{"full diacritic set", "Çğışöü ĞÜŞİÖÇ", "cgisou gusioc"},
		{"dotless capital I", "YARDIM LAZIM", "yardim lazim"},
		{"strips punctuation", "  React,   ve; TypeScript!! ", "react ve typescript"},
		{"keeps digits", "PHP 8.3 sürümü", "php 8 3 surumu"},
		{"empty", "   ", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.input))
		})
	}
}

func TestLowerTurkish(t *testing.T) {
	// strings.ToLower turns İ into "i" plus a combining dot, which breaks
	// substring matching against the keyword tables.
	assert.Equal(t, "ilan", lowerTurkish("İLAN"))
	assert.Equal(t, "yardım", lowerTurkish("YARDIM"))
	assert.Equal(t, "özel ders", lowerTurkish("ÖZEL DERS"))
}

func TestTokenChecks(t *testing.T) {
	assert.True(t, isAllDigits("12345"))
	assert.False(t, isAllDigits("123a"))
	assert.False(t, isAllDigits(""))

	assert.True(t, hasAlnum("şşş"))
	assert.True(t, hasAlnum("a!!"))
	assert.False(t, hasAlnum("!!! ??"))

	assert.Equal(t, 3, tokenCount("  bir  iki üç "))
	assert.Equal(t, 0, tokenCount(""))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, containsAny("özel ders veriyorum", []string{"kurs", "özel ders"}))
	assert.False(t, containsAny("merhaba", []string{"kurs", "özel ders"}))
	assert.False(t, containsAny("merhaba", nil))
}

func TestDerivePhase(t *testing.T) {
	assert.Equal(t, PhaseFirstInput, DerivePhase(nil))
	assert.Equal(t, PhaseFirstInput, DerivePhase([]Message{
		{Role: RoleUser, Text: "merhaba"},
	}))
	assert.Equal(t, PhaseClarificationAnswer, DerivePhase([]Message{
		{Role: RoleUser, Text: "uygulama yapmak istiyorum"},
		{Role: RoleAssistant, Text: "Web mi, mobil mi?"},
		{Role: RoleUser, Text: "mobil"},
	}))
}
