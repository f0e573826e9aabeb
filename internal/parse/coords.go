package parse

import (
	"regexp"
	"strconv"
)

// Coords is a WGS84 coordinate pair. The pair is all-or-nothing; a
// partial pair is never produced.
type Coords struct {
	Lat float64
	Lng float64
}

// Sri Lanka bounding box; anything outside is treated as a bogus match.
const (
	minLat = 5.9
	maxLat = 9.9
	minLng = 79.5
	maxLng = 81.9
)

// InSriLanka reports whether the coordinate pair falls inside the Sri
// Lanka bounding box.
func InSriLanka(lat, lng float64) bool {
	return lat >= minLat && lat <= maxLat && lng >= minLng && lng <= maxLng
}

var mapURLPatterns = []*regexp.Regexp{
	// path segment pair: /maps/place/6.9271,79.8612 or !3d6.9271!4d79.8612
	regexp.MustCompile(`!3d(-?\d+\.\d+)!4d(-?\d+\.\d+)`),
	// "@lat,lng" pair: /maps/@6.9271,79.8612,15z
	regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`),
	// query parameter pair: ?q=6.9271,79.8612 or ll=6.9271,79.8612
	regexp.MustCompile(`[?&](?:q|ll|query|center)=(-?\d+\.\d+)[,%2C]+(-?\d+\.\d+)`),
}

// CoordsFromMapURL extracts an embedded coordinate pair from a map
// service link. Three positional patterns are tried in order; the first
// match wins. No geographic bounds validation happens at this stage.
func CoordsFromMapURL(u string) (Coords, bool) {
	for _, re := range mapURLPatterns {
		if match := re.FindStringSubmatch(u); len(match) > 2 {
			lat, err1 := strconv.ParseFloat(match[1], 64)
			lng, err2 := strconv.ParseFloat(match[2], 64)
			if err1 == nil && err2 == nil {
				return Coords{Lat: lat, Lng: lng}, true
			}
		}
	}
	return Coords{}, false
}

var scriptCoordPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"lat(?:itude)?"\s*[:=]\s*"?(-?\d+\.\d+)"?[\s\S]{0,80}?"(?:lng|lon|longitude)"\s*[:=]\s*"?(-?\d+\.\d+)"?`),
	regexp.MustCompile(`lat(?:itude)?\s*[:=]\s*(-?\d+\.\d+)\s*[,;][\s\S]{0,40}?(?:lng|lon|longitude)\s*[:=]\s*(-?\d+\.\d+)`),
	regexp.MustCompile(`LatLng\(\s*(-?\d+\.\d+)\s*,\s*(-?\d+\.\d+)\s*\)`),
}

// CoordsFromScript scans inline script content for key-value coordinate
// patterns. Matches outside the Sri Lanka bounding box are rejected and
// scanning continues with the next pattern.
func CoordsFromScript(text string) (Coords, bool) {
	for _, re := range scriptCoordPatterns {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			lat, err1 := strconv.ParseFloat(match[1], 64)
			lng, err2 := strconv.ParseFloat(match[2], 64)
			if err1 != nil || err2 != nil {
				continue
			}
			if InSriLanka(lat, lng) {
				return Coords{Lat: lat, Lng: lng}, true
			}
		}
	}
	return Coords{}, false
}
