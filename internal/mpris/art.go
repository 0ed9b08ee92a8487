package mpris

import (
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// coverNames lists cover art filenames next to local stems, in priority order.
var coverNames = []string{
	"cover.jpg", "cover.png", "cover.jpeg",
	"folder.jpg", "folder.png", "folder.jpeg",
	"front.jpg", "front.png",
}

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ArtURL returns an art URL for the loaded source: the video thumbnail for
// YouTube sources, or a cover file next to the first local stem.
func ArtURL(source string, locations []string) string {
	if id := youTubeID(source); id != "" {
		return "https://i.ytimg.com/vi/" + id + "/hqdefault.jpg"
	}
	for _, loc := range locations {
		if p := localPath(loc); p != "" {
			if art := findCover(filepath.Dir(p)); art != "" {
				return "file://" + art
			}
			return ""
		}
	}
	return ""
}

// youTubeID extracts the video ID of a YouTube URL or bare ID.
func youTubeID(source string) string {
	if videoIDPattern.MatchString(source) {
		return source
	}
	u, err := url.Parse(source)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	host = strings.TrimPrefix(host, "m.")

	var id string
	switch host {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "youtube.com", "music.youtube.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/shorts/"), strings.HasPrefix(u.Path, "/embed/"):
			id = u.Path[strings.LastIndex(u.Path, "/")+1:]
		}
	}
	if !videoIDPattern.MatchString(id) {
		return ""
	}
	return id
}

func localPath(location string) string {
	u, err := url.Parse(location)
	switch {
	case err != nil:
		return ""
	case u.Scheme == "file":
		return u.Path
	case u.Scheme == "" && filepath.IsAbs(location):
		return location
	}
	return ""
}

func findCover(dir string) string {
	for _, name := range coverNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
