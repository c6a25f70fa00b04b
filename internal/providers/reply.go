package providers

import "strings"

// StripFences removes the markdown code fences models often wrap a reply in,
// despite being told not to. Replies without fences pass through unchanged.
func StripFences(reply string) string {
	reply = strings.TrimSpace(reply)
	for _, prefix := range []string{"```html", "```json", "```"} {
		if strings.HasPrefix(reply, prefix) {
			reply = strings.TrimPrefix(reply, prefix)
			break
		}
	}
	reply = strings.TrimSuffix(strings.TrimSpace(reply), "```")
	return strings.TrimSpace(reply)
}
