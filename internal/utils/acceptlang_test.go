package utils

import "testing"

func TestDetermineLocale_QueryParamWins(t *testing.T) {
	got := DetermineLocale("pt-BR", "en-US,en;q=0.9,pt;q=0.8", []string{"pt", "en"}, "pt")
	if got != "pt" {
		t.Fatalf("want pt, got %s", got)
	}
}

func TestDetermineLocale_AcceptLanguagePrefersHigherQ(t *testing.T) {
	got := DetermineLocale("", "pt;q=0.9,en;q=0.8", []string{"pt", "en"}, "pt")
	if got != "pt" {
		t.Fatalf("want pt, got %s", got)
	}
	got = DetermineLocale("", "en-US,en;q=0.9,pt;q=0.8", []string{"pt", "en"}, "pt")
	if got != "en" {
		t.Fatalf("want en, got %s", got)
	}
}

func TestDetermineLocale_RegionalTagCollapses(t *testing.T) {
	got := DetermineLocale("", "pt-BR", []string{"pt", "en"}, "en")
	if got != "pt" {
		t.Fatalf("want pt, got %s", got)
	}
}

func TestDetermineLocale_DefaultFallback(t *testing.T) {
	got := DetermineLocale("", "fr-FR,es;q=0.9", []string{"pt", "en"}, "pt")
	if got != "pt" {
		t.Fatalf("want pt fallback, got %s", got)
	}
}
