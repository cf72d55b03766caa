// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

import "strings"

// supportedMediaTypes is the fixed allow-list of media types the extraction
// model can read. Anything else is rejected before extraction.
var supportedMediaTypes = map[string]struct{}{
	// Images
	"image/jpeg":    {},
	"image/png":     {},
	"image/webp":    {},
	"image/gif":     {},
	"image/bmp":     {},
	"image/heic":    {},
	"image/heif":    {},
	"image/svg+xml": {},
	"image/tiff":    {},

	// Audio
	"audio/wav":    {},
	"audio/mp3":    {},
	"audio/mpeg":   {},
	"audio/aac":    {},
	"audio/ogg":    {},
	"audio/flac":   {},
	"audio/midi":   {},
	"audio/x-midi": {},

	// Video
	"video/mp4":       {},
	"video/mpeg":      {},
	"video/mov":       {},
	"video/avi":       {},
	"video/x-flv":     {},
	"video/mpg":       {},
	"video/webm":      {},
	"video/wmv":       {},
	"video/3gpp":      {},
	"video/quicktime": {},

	// Documents
	"application/pdf": {},

	// Microsoft Office, modern formats
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"application/vnd.ms-visio.drawing.main+xml":                                 {},

	// Microsoft Office, legacy formats
	"application/msword":            {},
	"application/vnd.ms-excel":      {},
	"application/vnd.ms-powerpoint": {},
	"application/vnd.visio":         {},
	"application/vnd.ms-outlook":    {},
	"application/vnd.ms-project":    {},
	"application/x-mspublisher":     {},
	"application/vnd.ms-access":     {},

	// OpenDocument formats
	"application/vnd.oasis.opendocument.text":         {},
	"application/vnd.oasis.opendocument.spreadsheet":  {},
	"application/vnd.oasis.opendocument.presentation": {},

	// Archive formats
	"application/zip":              {},
	"application/x-zip-compressed": {},
	"application/x-rar-compressed": {},
	"application/x-7z-compressed":  {},
	"application/gzip":             {},
	"application/x-tar":            {},

	// Text and code formats
	"application/x-javascript": {},
	"text/javascript":          {},
	"application/x-python":     {},
	"text/x-python":            {},
	"text/plain":               {},
	"text/html":                {},
	"text/css":                 {},
	"text/csv":                 {},
	"text/xml":                 {},
	"text/rtf":                 {},
	"text/markdown":            {},
	"application/json":         {},
	"application/xml":          {},
	"application/sql":          {},
	"application/xhtml+xml":    {},

	// Email formats
	"message/rfc822": {},

	// Calendar formats
	"text/calendar": {},

	// Font formats
	"font/ttf":   {},
	"font/woff":  {},
	"font/woff2": {},
	"font/otf":   {},

	// CAD and 3D formats
	"application/vnd.dwg": {},
	"application/vnd.dxf": {},
	"model/stl":           {},

	// Database formats
	"application/vnd.sqlite3": {},

	// Vector graphics
	"application/postscript":  {},
	"application/illustrator": {},

	// Other business-relevant formats
	"application/vnd.adobe.photoshop":      {},
	"application/vnd.adobe.indesign":       {},
	"application/vnd.ms-xpsdocument":       {},
	"application/vnd.google-earth.kml+xml": {},
}

// ResolveMediaType returns the media type to use for extraction, or false
// when the file must be rejected. A markdown filename with no declared type
// resolves to text/markdown; every other file must carry a declared type
// from the allow-list.
func ResolveMediaType(filename, declaredType string) (string, bool) {
	if _, ok := supportedMediaTypes[declaredType]; ok {
		return declaredType, true
	}
	if declaredType == "" && strings.HasSuffix(strings.ToLower(filename), ".md") {
		return "text/markdown", true
	}
	return "", false
}
