package discovery

import (
	"regexp"
	"strconv"
)

// Port announcement phrases written by the target's language server. The
// service re-announces its ports on every restart, so the LAST match per
// pattern reflects the currently listening instance.
var (
	httpsPortRe     = regexp.MustCompile(`random port at (\d+) for HTTPS`)
	httpPortRe      = regexp.MustCompile(`random port at (\d+) for HTTP`)
	extensionPortRe = regexp.MustCompile(`extension server client at port (\d+)`)
)

// Ports holds the port announcements parsed from one log file. A zero
// value with ok=false means that announcement was absent or malformed.
type Ports struct {
	HTTPS     uint16
	HTTPSOK   bool
	HTTP      uint16
	HTTPOK    bool
	Extension uint16
	ExtOK     bool
}

// ParsePorts extracts the HTTPS, HTTP and extension-server ports from the
// full log text. For each pattern the last match wins; a captured value
// outside the u16 range yields absence for that entry only.
func ParsePorts(content string) Ports {
	var p Ports
	p.HTTPS, p.HTTPSOK = lastPort(httpsPortRe, content)
	p.HTTP, p.HTTPOK = lastPort(httpPortRe, content)
	p.Extension, p.ExtOK = lastPort(extensionPortRe, content)
	return p
}

func lastPort(re *regexp.Regexp, content string) (uint16, bool) {
	matches := re.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return 0, false
	}
	last := matches[len(matches)-1]
	n, err := strconv.ParseUint(last[1], 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}
