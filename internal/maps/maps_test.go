package maps

import (
	"strings"
	"testing"

	"github.com/wanderpost/wanderpost/internal/landmarks"
)

func TestComposerMarkers(t *testing.T) {
	composer, err := NewComposer(StrategyMarkers, "maps-key")
	if err != nil {
		t.Fatal(err)
	}

	annotations := []landmarks.Annotation{
		{Name: "Charles Bridge"},
		{Name: "Prague Castle"},
	}

	url := composer.ImageURL(annotations, "Prague")

	for _, fragment := range []string{
		"https://maps.googleapis.com/maps/api/staticmap?",
		"size=600x300",
		"markers=Charles+Bridge,Prague",
		"markers=Prague+Castle,Prague",
		"key=maps-key",
	} {
		if !strings.Contains(url, fragment) {
			t.Errorf("Map URL missing %q: %s", fragment, url)
		}
	}
}

func TestComposerCenter(t *testing.T) {
	composer, err := NewComposer(StrategyCenter, "maps-key")
	if err != nil {
		t.Fatal(err)
	}

	url := composer.ImageURL(nil, "New York City")

	for _, fragment := range []string{
		"center=New+York+City",
		"zoom=12",
		"size=600x300",
		"key=maps-key",
	} {
		if !strings.Contains(url, fragment) {
			t.Errorf("Map URL missing %q: %s", fragment, url)
		}
	}
	if strings.Contains(url, "markers=") {
		t.Errorf("Center strategy must not emit markers: %s", url)
	}
}

func TestComposerUnknownStrategy(t *testing.T) {
	if _, err := NewComposer(Strategy("globe"), "k"); err == nil {
		t.Fatal("Expected error for unknown strategy")
	}
}

func TestSearchURL(t *testing.T) {
	url := SearchURL("Charles Bridge", "Prague")
	want := "https://www.google.com/maps/search/?api=1&query=Charles+Bridge+Prague"
	if url != want {
		t.Errorf("SearchURL: got %s, want %s", url, want)
	}
}
