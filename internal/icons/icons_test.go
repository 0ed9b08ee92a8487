//nolint:goconst // test cases intentionally repeat strings for readability
package icons

import (
	"testing"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name     string
		style    string
		expected Icons
	}{
		{"nerd style", "nerd", nerdIcons},
		{"unicode style", "unicode", unicodeIcons},
		{"none style", "none", noneIcons},
		{"empty string defaults to none", "", noneIcons},
		{"unknown style defaults to none", "invalid", noneIcons},
		{"case sensitive - NERD defaults to none", "NERD", noneIcons},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(tt.style)
			if current != tt.expected {
				t.Errorf("Init(%q) selected %+v", tt.style, current)
			}
		})
	}

	Init("none")
}

func TestTransportIcons(t *testing.T) {
	tests := []struct {
		style string
		play  string
		pause string
		stop  string
	}{
		{"none", ">", "||", "[]"},
		{"unicode", "▶", "⏸", "⏹"},
		{"nerd", "\uf04b", "\uf04c", "\uf04d"},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			Init(tt.style)
			defer Init("none")

			if got := Play(); got != tt.play {
				t.Errorf("Play() = %q, want %q", got, tt.play)
			}
			if got := Pause(); got != tt.pause {
				t.Errorf("Pause() = %q, want %q", got, tt.pause)
			}
			if got := Stop(); got != tt.stop {
				t.Errorf("Stop() = %q, want %q", got, tt.stop)
			}
		})
	}
}

func TestFormatStem(t *testing.T) {
	tests := []struct {
		style    string
		input    string
		expected string
	}{
		{"none", "vocals", "vocals"},
		{"unicode", "vocals", "🎵 vocals"},
		{"nerd", "drums", "󰎈 drums"},
		{"none", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.style+"/"+tt.input, func(t *testing.T) {
			Init(tt.style)
			defer Init("none")

			if got := FormatStem(tt.input); got != tt.expected {
				t.Errorf("FormatStem(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLoadStateIconsDistinct(t *testing.T) {
	for _, style := range []string{"none", "unicode", "nerd"} {
		t.Run(style, func(t *testing.T) {
			Init(style)
			defer Init("none")

			seen := map[string]bool{}
			for _, icon := range []string{Loading(), Ready(), Failed()} {
				if icon == "" {
					t.Error("load state icon is empty")
				}
				if seen[icon] {
					t.Errorf("duplicate load state icon %q", icon)
				}
				seen[icon] = true
			}
		})
	}
}

func TestVolume(t *testing.T) {
	Init("unicode")
	defer Init("none")

	if got := Volume(false); got != "🔊" {
		t.Errorf("Volume(false) = %q, want 🔊", got)
	}
	if got := Volume(true); got != "🔇" {
		t.Errorf("Volume(true) = %q, want 🔇", got)
	}
}
