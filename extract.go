package assist

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
)

// The generation API has shipped both camelCase and snake_case names for
// the same logical fields. Lookups try each name in order.
var (
	inlineDataKeys = []string{"inlineData", "inline_data"}
	mimeTypeKeys   = []string{"mimeType", "mime_type"}
)

// PayloadExtractor locates raw image payloads in a loosely structured
// generation response document (a JSON-shaped map). The response schema is
// not contractually fixed, so extraction is defensive: an unexpected or
// empty shape yields zero payloads, never an error. Shape anomalies are
// reported through the logger at debug level rather than swallowed.
type PayloadExtractor struct {
	logger *slog.Logger
}

// NewPayloadExtractor creates an extractor. A nil logger disables anomaly
// reporting.
func NewPayloadExtractor(logger *slog.Logger) *PayloadExtractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PayloadExtractor{logger: logger}
}

// Images returns every image payload found in doc, in encounter order.
//
// It walks candidates -> content -> parts, collecting inline data whose
// declared MIME type starts with "image/". Payload data may be raw bytes
// (returned untouched) or a base64 string (decoded). If the walk finds
// nothing, a top-level "image" field is tried as a last resort. An empty
// result means the service returned no image; it is not an error.
func (e *PayloadExtractor) Images(doc map[string]any) [][]byte {
	if doc == nil {
		return nil
	}

	var payloads [][]byte

	candidates, _ := doc["candidates"].([]any)
	for i, c := range candidates {
		candidate, ok := c.(map[string]any)
		if !ok {
			e.logger.Debug("skipping non-object candidate", "index", i)
			continue
		}
		content, ok := candidate["content"].(map[string]any)
		if !ok {
			continue
		}
		parts, ok := content["parts"].([]any)
		if !ok {
			continue
		}
		for _, p := range parts {
			part, ok := p.(map[string]any)
			if !ok {
				continue
			}
			blob, ok := firstField(part, inlineDataKeys...)
			if !ok {
				continue
			}
			blobObj, ok := blob.(map[string]any)
			if !ok {
				e.logger.Debug("inline data is not an object", "candidate", i)
				continue
			}
			mime, _ := firstField(blobObj, mimeTypeKeys...)
			mimeStr, _ := mime.(string)
			if !strings.HasPrefix(mimeStr, "image/") {
				continue
			}
			if data, ok := e.decodePayload(blobObj["data"]); ok {
				payloads = append(payloads, data)
			}
		}
	}

	if len(payloads) == 0 {
		if raw, ok := doc["image"]; ok {
			if data, ok := e.decodePayload(raw); ok {
				payloads = append(payloads, data)
			}
		}
	}

	return payloads
}

// decodePayload normalizes a data field to raw bytes. Byte slices pass
// through byte-for-byte; strings are base64-decoded. Any other
// representation is ignored.
func (e *PayloadExtractor) decodePayload(v any) ([]byte, bool) {
	switch d := v.(type) {
	case nil:
		return nil, false
	case []byte:
		if len(d) == 0 {
			return nil, false
		}
		return d, true
	case string:
		if d == "" {
			return nil, false
		}
		decoded, err := base64.StdEncoding.DecodeString(d)
		if err != nil {
			e.logger.Debug("undecodable image payload", "error", err)
			return nil, false
		}
		return decoded, true
	default:
		e.logger.Debug("unexpected image payload type", "type", fmt.Sprintf("%T", d))
		return nil, false
	}
}

// firstField returns the value of the first key present in m, trying keys
// in priority order.
func firstField(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}
