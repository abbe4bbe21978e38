package converter

import (
	"bytes"
	"encoding/base64"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/url"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageDimensions reads the pixel size of an image embedded in a data: URI.
// Remote sources are never fetched.
func imageDimensions(src string) (width, height int, ok bool) {
	payload, ok := decodeDataURI(src)
	if !ok {
		return 0, 0, false
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(payload))
	if err != nil {
		return 0, 0, false
	}
	return cfg.Width, cfg.Height, true
}

// decodeDataURI returns the payload of a "data:[<mediatype>][;base64],<data>" URI.
func decodeDataURI(src string) ([]byte, bool) {
	rest, found := strings.CutPrefix(src, "data:")
	if !found {
		return nil, false
	}
	meta, data, found := strings.Cut(rest, ",")
	if !found {
		return nil, false
	}
	if strings.HasSuffix(meta, ";base64") {
		payload, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, false
		}
		return payload, true
	}
	payload, err := url.PathUnescape(data)
	if err != nil {
		return nil, false
	}
	return []byte(payload), true
}
