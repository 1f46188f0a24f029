package probe

import (
	"strings"

	"github.com/alessio/shellescape"
)

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// curlCommand renders the probe request as an equivalent curl invocation, so
// a failure seen in debug output can be replayed by hand.
func curlCommand(method, url string, body []byte, headers map[string]string) string {
	var b commandBuilder
	b.add("curl", "-s", "-X", method)
	b.add("-H", "Content-Type: application/json")
	for _, k := range sortedKeys(headers) {
		b.add("-H", k+": "+headers[k])
	}
	if len(body) > 0 {
		b.add("-d", string(body))
	}
	b.add(url)
	return b.String()
}
